// fock.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

package scf

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Fock returns F = H + G(D), where the two-electron part is
//
//	G[u,v] = Σ_σλ D[σ,λ] (2 (uv|λσ) - (uλ|vσ))
//
// i.e. the density contracted with 2J - K, K being the integral tensor with
// its middle two axes swapped. Shapes are not checked.
func Fock(h, d mat.Matrix, eri *ERI) *mat.Dense {
	return fock(h, d, eri, 1)
}

// fock evaluates the rows of F on up to workers goroutines. Each row is
// written by exactly one goroutine, so the result does not depend on workers.
func fock(h, d mat.Matrix, eri *ERI, workers int) *mat.Dense {
	n := eri.Dim()
	f := mat.DenseCopyOf(h)
	dens := mat.DenseCopyOf(d).RawMatrix()
	v4 := eri.data

	row := func(u int) {
		fu := f.RawRowView(u)
		for v := 0; v < n; v++ {
			var g float64
			for l := 0; l < n; l++ {
				jrow := ((u*n+v)*n + l) * n // (uv|l·)
				krow := ((u*n+l)*n + v) * n // (ul|v·)
				for s := 0; s < n; s++ {
					g += dens.Data[s*dens.Stride+l] * (2*v4[jrow+s] - v4[krow+s])
				}
			}
			fu[v] += g
		}
	}

	if workers <= 1 || n == 1 {
		for u := 0; u < n; u++ {
			row(u)
		}
		return f
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range rows {
				row(u)
			}
		}()
	}
	for u := 0; u < n; u++ {
		rows <- u
	}
	close(rows)
	wg.Wait()
	return f
}
