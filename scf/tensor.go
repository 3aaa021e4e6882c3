// tensor.go --  This file is part of goHF project.
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

// ERI is a dense n×n×n×n tensor of electron repulsion integrals (ij|kl),
// stored row-major in (i, j, k, l).
type ERI struct {
	n    int
	data []float64
}

// NewERI returns an n⁴ tensor backed by data. If data is nil a zero tensor
// is allocated, otherwise len(data) must be n⁴.
func NewERI(n int, data []float64) (*ERI, error) {
	if n <= 0 {
		return nil, fmt.Errorf("eri: %w: basis dimension %d", ErrDimension, n)
	}
	size := n * n * n * n
	if data == nil {
		data = make([]float64, size)
	}
	if len(data) != size {
		return nil, fmt.Errorf("eri: %w: %d values for n=%d, want %d", ErrDimension, len(data), n, size)
	}
	return &ERI{n: n, data: data}, nil
}

// Dim returns the basis dimension n.
func (e *ERI) Dim() int { return e.n }

func (e *ERI) index(i, j, k, l int) int {
	n := e.n
	return ((i*n+j)*n+k)*n + l
}

func (e *ERI) At(i, j, k, l int) float64 {
	return e.data[e.index(i, j, k, l)]
}

func (e *ERI) Set(i, j, k, l int, v float64) {
	e.data[e.index(i, j, k, l)] = v
}

// SetSymmetric stores v at all eight index permutations that are equivalent
// for real orbitals: (ij|kl) = (ji|kl) = (ij|lk) = (ji|lk) = (kl|ij) = ...
func (e *ERI) SetSymmetric(i, j, k, l int, v float64) {
	for _, p := range [8][4]int{
		{i, j, k, l}, {j, i, k, l}, {i, j, l, k}, {j, i, l, k},
		{k, l, i, j}, {l, k, i, j}, {k, l, j, i}, {l, k, j, i},
	} {
		e.Set(p[0], p[1], p[2], p[3], v)
	}
}

// SetBlock stores the n×n (k,l) block for fixed (i,j).
func (e *ERI) SetBlock(i, j int, b mat.Matrix) error {
	r, c := b.Dims()
	if r != e.n || c != e.n {
		return fmt.Errorf("eri: %w: block (%d,%d) is %d×%d, want %d×%d", ErrDimension, i, j, r, c, e.n, e.n)
	}
	for k := 0; k < e.n; k++ {
		for l := 0; l < e.n; l++ {
			e.Set(i, j, k, l, b.At(k, l))
		}
	}
	return nil
}

// Block returns a copy of the (k,l) block for fixed (i,j).
func (e *ERI) Block(i, j int) *mat.Dense {
	start := e.index(i, j, 0, 0)
	raw := make([]float64, e.n*e.n)
	copy(raw, e.data[start:start+e.n*e.n])
	return mat.NewDense(e.n, e.n, raw)
}
