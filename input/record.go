// record.go --  This file is part of goHF project.
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

// Package input loads the precomputed integrals and run parameters of an
// SCF calculation.
package input

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// Record is the validated input of one SCF run.
type Record struct {
	Electrons int

	Kinetic   *mat.Dense
	Potential *mat.Dense
	Overlap   *mat.Dense
	ERI       *scf.ERI
	// DensityInit is nil when no starting density is given.
	DensityInit *mat.Dense

	NuclearRepulsion float64
	Converge         float64
	Iterations       int
}

// Dim returns the basis dimension.
func (r *Record) Dim() int {
	n, _ := r.Overlap.Dims()
	return n
}

// Validate checks that all matrices are square and share one basis dimension.
func (r *Record) Validate() error {
	if r.Overlap == nil || r.Kinetic == nil || r.Potential == nil || r.ERI == nil {
		return fmt.Errorf("input: %w: overlap, kinetic, potential and eri are required", scf.ErrInvalidSettings)
	}
	n := r.Dim()
	for _, m := range []struct {
		name string
		m    *mat.Dense
	}{
		{"overlap", r.Overlap},
		{"kinetic", r.Kinetic},
		{"potential", r.Potential},
		{"density_init", r.DensityInit},
	} {
		if m.m == nil {
			continue
		}
		if rows, cols := m.m.Dims(); rows != n || cols != n {
			return fmt.Errorf("input: %w: %s is %d×%d, want %d×%d", scf.ErrDimension, m.name, rows, cols, n, n)
		}
	}
	if r.ERI.Dim() != n {
		return fmt.Errorf("input: %w: eri basis dimension %d, want %d", scf.ErrDimension, r.ERI.Dim(), n)
	}
	return nil
}

// Settings converts the record to SCF settings. The caller may set the
// strategy fields (Orthogonalizer, Guess, Workers, Observer) afterwards.
func (r *Record) Settings() scf.Settings {
	s := scf.Settings{
		Electrons:        r.Electrons,
		Kinetic:          r.Kinetic,
		Potential:        r.Potential,
		Overlap:          r.Overlap,
		ERI:              r.ERI,
		NuclearRepulsion: r.NuclearRepulsion,
		Threshold:        r.Converge,
		MaxIterations:    r.Iterations,
	}
	if r.DensityInit != nil {
		s.InitialDensity = r.DensityInit
	}
	return s
}
