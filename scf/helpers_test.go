// helpers_test.go --  This file is part of goHF project.
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
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// randomSPD returns BᵀB + n·I for a random B.
func randomSPD(rnd *rand.Rand, n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(i, j, rnd.Float64()-0.5)
		}
	}
	var s mat.Dense
	s.Mul(b.T(), b)
	for i := 0; i < n; i++ {
		s.Set(i, i, s.At(i, i)+float64(n))
	}
	return &s
}

func randomSymmetric(rnd *rand.Rand, n int) *mat.Dense {
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rnd.Float64() - 0.5
			a.Set(i, j, v)
			a.Set(j, i, v)
		}
	}
	return a
}

// randomERI fills a tensor with the 8-fold symmetry of real integrals.
func randomERI(rnd *rand.Rand, n int) *ERI {
	eri, err := NewERI(n, nil)
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					if i*(i+1)/2+j < k*(k+1)/2+l {
						continue
					}
					eri.SetSymmetric(i, j, k, l, rnd.Float64())
				}
			}
		}
	}
	return eri
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// h2 holds H2 in the STO-3G basis at R = 1.4 bohr (Szabo & Ostlund, §3.5.2).
// The core Hamiltonian is passed as the kinetic part.
func h2() Settings {
	eri, err := NewERI(2, nil)
	if err != nil {
		panic(err)
	}
	eri.SetSymmetric(0, 0, 0, 0, 0.7746)
	eri.SetSymmetric(1, 1, 1, 1, 0.7746)
	eri.SetSymmetric(0, 0, 1, 1, 0.5697)
	eri.SetSymmetric(1, 0, 0, 0, 0.4441)
	eri.SetSymmetric(1, 1, 1, 0, 0.4441)
	eri.SetSymmetric(1, 0, 1, 0, 0.2970)
	return Settings{
		Electrons:        2,
		Kinetic:          mat.NewDense(2, 2, []float64{-1.1204, -0.9584, -0.9584, -1.1204}),
		Potential:        mat.NewDense(2, 2, nil),
		Overlap:          mat.NewDense(2, 2, []float64{1, 0.6593, 0.6593, 1}),
		ERI:              eri,
		NuclearRepulsion: 1 / 1.4,
		Threshold:        1e-10,
		MaxIterations:    50,
	}
}

// oneOrbital is the n=1, two-electron system with S=1, H=-1, (11|11)=0.5.
func oneOrbital() Settings {
	eri, err := NewERI(1, []float64{0.5})
	if err != nil {
		panic(err)
	}
	return Settings{
		Electrons:     2,
		Kinetic:       mat.NewDense(1, 1, []float64{-1}),
		Potential:     mat.NewDense(1, 1, []float64{0}),
		Overlap:       mat.NewDense(1, 1, []float64{1}),
		ERI:           eri,
		Threshold:     1e-10,
		MaxIterations: 50,
	}
}

type countingObserver struct {
	advanced []Iteration
	skipped  []Iteration
}

func (c *countingObserver) Advance(it Iteration) { c.advanced = append(c.advanced, it) }
func (c *countingObserver) Skip(it Iteration)    { c.skipped = append(c.skipped, it) }
