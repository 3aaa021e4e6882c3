// errors.go --  This file is part of goHF project.
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

import "errors"

// Error kinds returned by the SCF core. Callers match them with errors.Is;
// the returned errors carry extra context wrapped around these values.
var (
	// ErrInvalidOverlap: S is not square, not symmetric or not positive definite.
	ErrInvalidOverlap = errors.New("scf: invalid overlap matrix")

	// ErrOrthogonalization: Xᵗ S X differs from the identity beyond tolerance.
	ErrOrthogonalization = errors.New("scf: orthogonalization failed")

	// ErrEigendecomposition: the symmetric eigensolver failed or produced
	// non-finite eigenvalues.
	ErrEigendecomposition = errors.New("scf: eigendecomposition failed")

	// ErrNotConverged is returned together with a complete Result when the
	// iteration budget is exhausted.
	ErrNotConverged = errors.New("scf: iteration limit reached")

	ErrNotSquare             = errors.New("scf: matrix is not square")
	ErrDimension             = errors.New("scf: dimension mismatch")
	ErrInvalidElectrons      = errors.New("scf: invalid electron count")
	ErrOddElectrons          = errors.New("scf: odd electron count is not supported by closed-shell RHF")
	ErrInvalidSettings       = errors.New("scf: invalid settings")
	ErrUnknownOrthogonalizer = errors.New("scf: unknown orthogonalizer")
)
