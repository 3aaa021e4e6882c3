// density.go --  This file is part of goHF project.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Density builds the closed-shell density matrix
//
//	D[u,v] = Σ_i C[u,i] C[v,i],  i < electrons/2
//
// from the first electrons/2 columns of the coefficient matrix c. An odd
// electron count leaves its last electron out; Run rejects such counts
// before calling Density.
func Density(c mat.Matrix, electrons int) (*mat.Dense, error) {
	n, cols := c.Dims()
	if n != cols {
		return nil, fmt.Errorf("density: %w: coefficients are %d×%d", ErrNotSquare, n, cols)
	}
	if electrons < 0 {
		return nil, fmt.Errorf("density: %w: %d", ErrInvalidElectrons, electrons)
	}
	occupied := electrons / 2
	if occupied > n {
		return nil, fmt.Errorf("density: %w: %d occupied orbitals in a basis of %d", ErrInvalidElectrons, occupied, n)
	}

	d := mat.NewDense(n, n, nil)
	if occupied == 0 {
		return d, nil
	}
	occ := mat.DenseCopyOf(c).Slice(0, n, 0, occupied)
	d.Mul(occ, occ.T())
	return d, nil
}
