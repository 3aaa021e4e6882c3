// orthogonalize.go --  This file is part of goHF project.
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
	"math"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Orthogonalizer finds a basis change X with Xᵗ S X = I for an overlap
// matrix S. Implementations validate S and must not modify it.
type Orthogonalizer interface {
	Orthogonalize(s mat.Matrix) (*mat.Dense, error)
}

// Canonical orthogonalization: X = U s^(-1/2), where S = U diag(s) Uᵗ.
type Canonical struct{}

func (Canonical) Orthogonalize(s mat.Matrix) (*mat.Dense, error) {
	vals, vecs, err := overlapEigen(s)
	if err != nil {
		return nil, err
	}
	var x mat.Dense
	x.Mul(vecs, invSqrtDiag(vals))
	if err := checkOrthonormal(&x, s); err != nil {
		return nil, err
	}
	return &x, nil
}

// Symmetric (Löwdin) orthogonalization: X = S^(-1/2) = U s^(-1/2) Uᵗ.
type Symmetric struct{}

func (Symmetric) Orthogonalize(s mat.Matrix) (*mat.Dense, error) {
	vals, vecs, err := overlapEigen(s)
	if err != nil {
		return nil, err
	}
	var us, x mat.Dense
	us.Mul(vecs, invSqrtDiag(vals))
	x.Mul(&us, vecs.T())
	if err := checkOrthonormal(&x, s); err != nil {
		return nil, err
	}
	return &x, nil
}

var orthogonalizers = map[string]Orthogonalizer{
	"canonical": Canonical{},
	"symmetric": Symmetric{},
	"lowdin":    Symmetric{},
}

// OrthogonalizerByName resolves a configuration name. The empty name
// selects Canonical.
func OrthogonalizerByName(name string) (Orthogonalizer, error) {
	if name == "" {
		return Canonical{}, nil
	}
	o, ok := orthogonalizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownOrthogonalizer, name, strings.Join(OrthogonalizerNames(), ", "))
	}
	return o, nil
}

// OrthogonalizerNames lists the accepted names in sorted order.
func OrthogonalizerNames() []string {
	names := maps.Keys(orthogonalizers)
	slices.Sort(names)
	return names
}

// overlapEigen validates S and returns its eigenvalues (ascending, all > 0)
// and eigenvectors as columns.
func overlapEigen(s mat.Matrix) ([]float64, *mat.Dense, error) {
	r, c := s.Dims()
	if r != c {
		return nil, nil, fmt.Errorf("%w: %d×%d is not square", ErrInvalidOverlap, r, c)
	}
	if !symmetric(s, symmetryTol) {
		return nil, nil, fmt.Errorf("%w: not symmetric", ErrInvalidOverlap)
	}
	sym := symDense(s)
	if !positiveDefinite(sym) {
		return nil, nil, fmt.Errorf("%w: not positive definite", ErrInvalidOverlap)
	}

	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("%w: overlap matrix", ErrEigendecomposition)
	}
	vals := eigsym.Values(nil)
	for i, v := range vals {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: eigenvalue %d of S is %g", ErrInvalidOverlap, i, v)
		}
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	return vals, &ev, nil
}

func invSqrtDiag(vals []float64) *mat.DiagDense {
	d := make([]float64, len(vals))
	for i, v := range vals {
		d[i] = 1 / math.Sqrt(v)
	}
	return mat.NewDiagDense(len(d), d)
}

// checkOrthonormal verifies |Xᵗ S X - I| < orthoTol element-wise.
func checkOrthonormal(x *mat.Dense, s mat.Matrix) error {
	var xs, xsx mat.Dense
	xs.Mul(x.T(), s)
	xsx.Mul(&xs, x)
	n, _ := xsx.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if dev := math.Abs(xsx.At(i, j) - want); !(dev < orthoTol) {
				return fmt.Errorf("%w: |XᵗSX - I| = %g at (%d,%d)", ErrOrthogonalization, dev, i, j)
			}
		}
	}
	return nil
}
