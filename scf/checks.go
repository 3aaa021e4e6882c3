// checks.go --  This file is part of goHF project.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// symmetryTol is relative to max(1, |a_ij|).
	symmetryTol = 1e-10
	// orthoTol bounds every element of Xᵗ S X - I.
	orthoTol = 1e-8
)

func square(a mat.Matrix) bool {
	r, c := a.Dims()
	return r == c
}

func symmetric(a mat.Matrix, tol float64) bool {
	if !square(a) {
		return false
	}
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, aji := a.At(i, j), a.At(j, i)
			scale := math.Max(1, math.Max(math.Abs(aij), math.Abs(aji)))
			if !(math.Abs(aij-aji) <= tol*scale) {
				return false
			}
		}
	}
	return true
}

func positiveDefinite(a mat.Symmetric) bool {
	var chol mat.Cholesky
	return chol.Factorize(a)
}

// symDense copies the symmetric part (a+aᵗ)/2 of a square matrix.
func symDense(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
