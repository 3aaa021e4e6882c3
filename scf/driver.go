// driver.go --  This file is part of goHF project.
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

// Package scf implements the closed-shell (restricted) Hartree-Fock
// self-consistent field method on precomputed integrals.
//
// The numerical kernels (Orthogonalizer, Density, Fock, Energy) are pure
// functions on gonum matrices. Run composes them into the plain fixed-point
// iteration
//
//	F = Fock(H, D)      X = orthogonalize(S)     E = Energy(D, H, F)
//	F' = Xᵗ F X         F' C' = C' ε             C = X C'
//	D_new = Density(C, N)
//
// until Σ (D - D_new)² falls below the threshold.
package scf

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// State of the SCF driver.
type State int

const (
	Initializing State = iota
	Iterating
	Converged
	MaxIterationsReached
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Guess selects the starting density when none is supplied.
type Guess int

const (
	// GuessZero starts from the zero density, so the first Fock matrix is H.
	GuessZero Guess = iota
	// GuessCore starts from the density of the orbitals of H in the
	// orthogonal basis.
	GuessCore
)

func (g Guess) String() string {
	switch g {
	case GuessZero:
		return "zero"
	case GuessCore:
		return "core"
	}
	return fmt.Sprintf("Guess(%d)", int(g))
}

// GuessByName resolves "zero" or "core". The empty name selects GuessZero.
func GuessByName(name string) (Guess, error) {
	switch strings.ToLower(name) {
	case "", "zero":
		return GuessZero, nil
	case "core":
		return GuessCore, nil
	}
	return 0, fmt.Errorf("%w: unknown guess %q", ErrInvalidSettings, name)
}

// Settings holds the input of an SCF run. Matrices are read, never written.
type Settings struct {
	// Electrons is the number of electrons; it must be even.
	Electrons int

	// Kinetic and Potential are summed into the core Hamiltonian H.
	Kinetic, Potential mat.Matrix
	// Overlap is the basis overlap matrix S.
	Overlap mat.Matrix
	// ERI holds the two-electron integrals (ij|kl).
	ERI *ERI

	// InitialDensity is the starting density. If nil, Guess decides.
	InitialDensity mat.Matrix
	Guess          Guess

	// NuclearRepulsion is added to the electronic energy of the result.
	NuclearRepulsion float64

	// Threshold is the convergence bound on Σ (D - D_new)². It must be positive.
	Threshold float64
	// MaxIterations is the iteration budget. It must be positive.
	MaxIterations int

	// Orthogonalizer defaults to Canonical.
	Orthogonalizer Orthogonalizer
	// Workers is the number of goroutines used to build the Fock matrix.
	// Zero means one.
	Workers int
	// Observer receives progress notifications. It may be nil.
	Observer Observer
}

// Result of an SCF run.
type Result struct {
	State      State
	Iterations int

	// Electronic is the energy of the last iteration, computed from the
	// density that iteration started with.
	Electronic       float64
	NuclearRepulsion float64
	// Total is Electronic + NuclearRepulsion.
	Total float64

	// Density is D when the loop ended: on convergence the density whose
	// update passed the threshold, otherwise the newest density.
	Density *mat.Dense
	// Fock, Coefficients and OrbitalEnergies are from the last iteration.
	// Orbitals are ordered by ascending energy.
	Fock            *mat.Dense
	Coefficients    *mat.Dense
	OrbitalEnergies []float64
	// DensityChange is the last convergence metric.
	DensityChange float64
}

// Run performs the SCF iteration described by s.
//
// Invalid settings and an invalid overlap matrix are reported before the
// first iteration with a zero Result. If the budget is exhausted without
// convergence, Run returns the complete Result in state MaxIterationsReached
// together with an error wrapping ErrNotConverged; the energy is then the
// energy of the last iteration.
//
// A numerical failure inside the loop (ErrEigendecomposition) returns the
// Result in state Iterating, holding the fields of the last completed
// iteration (zero if the first iteration failed) and a nil Density.
func Run(s Settings) (Result, error) {
	res := Result{State: Initializing}
	n, err := s.validate()
	if err != nil {
		return res, err
	}
	orth := s.Orthogonalizer
	if orth == nil {
		orth = Canonical{}
	}
	obs := s.Observer
	if obs == nil {
		obs = NopObserver{}
	}
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	var h mat.Dense
	h.Add(s.Kinetic, s.Potential)

	// S is not modified by the loop, so X is computed once.
	x, err := orth.Orthogonalize(mat.DenseCopyOf(s.Overlap))
	if err != nil {
		return res, err
	}

	d, err := s.initialDensity(&h, x, n)
	if err != nil {
		return res, err
	}

	res.State = Iterating
	var ePrev float64
	for i := 1; i <= s.MaxIterations; i++ {
		f := fock(&h, d, s.ERI, workers)
		e := Energy(d, &h, f)

		eps, c, err := roothaan(f, x)
		if err != nil {
			return res, err
		}
		dNew, err := Density(c, s.Electrons)
		if err != nil {
			return res, err
		}
		metric, rms := densityChange(d, dNew)

		it := Iteration{
			Number:        i,
			Energy:        e,
			DeltaEnergy:   e - ePrev,
			DensityChange: metric,
			DensityRMS:    rms,
		}
		res.Iterations = i
		res.Electronic = e
		res.Fock = f
		res.Coefficients = c
		res.OrbitalEnergies = eps
		res.DensityChange = metric
		obs.Advance(it)

		if metric < s.Threshold {
			res.State = Converged
			obs.Skip(it)
			break
		}
		d = dNew
		ePrev = e
	}

	res.Density = d
	res.NuclearRepulsion = s.NuclearRepulsion
	res.Total = res.Electronic + s.NuclearRepulsion
	if res.State != Converged {
		res.State = MaxIterationsReached
		return res, fmt.Errorf("%w: %d iterations, density change %g >= %g",
			ErrNotConverged, res.Iterations, res.DensityChange, s.Threshold)
	}
	return res, nil
}

func (s *Settings) validate() (int, error) {
	if s.Overlap == nil || s.Kinetic == nil || s.Potential == nil || s.ERI == nil {
		return 0, fmt.Errorf("%w: overlap, kinetic, potential and two-electron integrals are required", ErrInvalidSettings)
	}
	n, c := s.Overlap.Dims()
	if n != c {
		return 0, fmt.Errorf("%w: %d×%d is not square", ErrInvalidOverlap, n, c)
	}
	for _, m := range []struct {
		name string
		m    mat.Matrix
	}{
		{"kinetic", s.Kinetic},
		{"potential", s.Potential},
		{"initial density", s.InitialDensity},
	} {
		if m.m == nil {
			continue
		}
		if r, c := m.m.Dims(); r != n || c != n {
			return 0, fmt.Errorf("%w: %s matrix is %d×%d, overlap is %d×%d", ErrDimension, m.name, r, c, n, n)
		}
	}
	if s.ERI.Dim() != n {
		return 0, fmt.Errorf("%w: two-electron integrals for n=%d, overlap is %d×%d", ErrDimension, s.ERI.Dim(), n, n)
	}

	switch {
	case s.Electrons < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidElectrons, s.Electrons)
	case s.Electrons%2 != 0:
		return 0, fmt.Errorf("%w: %d", ErrOddElectrons, s.Electrons)
	case s.Electrons/2 > n:
		return 0, fmt.Errorf("%w: %d electrons do not fit in %d orbitals", ErrInvalidElectrons, s.Electrons, n)
	}

	if !(s.Threshold > 0) {
		return 0, fmt.Errorf("%w: threshold must be positive, got %g", ErrInvalidSettings, s.Threshold)
	}
	if s.MaxIterations <= 0 {
		return 0, fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidSettings, s.MaxIterations)
	}
	if s.Workers < 0 {
		return 0, fmt.Errorf("%w: negative worker count %d", ErrInvalidSettings, s.Workers)
	}
	return n, nil
}

func (s *Settings) initialDensity(h *mat.Dense, x *mat.Dense, n int) (*mat.Dense, error) {
	if s.InitialDensity != nil {
		return mat.DenseCopyOf(s.InitialDensity), nil
	}
	switch s.Guess {
	case GuessZero:
		return mat.NewDense(n, n, nil), nil
	case GuessCore:
		_, c, err := roothaan(h, x)
		if err != nil {
			return nil, err
		}
		return Density(c, s.Electrons)
	}
	return nil, fmt.Errorf("%w: unknown guess %v", ErrInvalidSettings, s.Guess)
}

// roothaan solves F C = S C ε through F' = Xᵗ F X and returns the orbital
// energies in ascending order with C = X C'. F' is symmetrized before the
// decomposition.
func roothaan(f, x *mat.Dense) ([]float64, *mat.Dense, error) {
	var xf, fp mat.Dense
	xf.Mul(x.T(), f)
	fp.Mul(&xf, x)

	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(symDense(&fp), true); !ok {
		return nil, nil, fmt.Errorf("%w: transformed Fock matrix", ErrEigendecomposition)
	}
	vals := eigsym.Values(nil)
	if !allFinite(vals) {
		return nil, nil, fmt.Errorf("%w: non-finite orbital energies %v", ErrEigendecomposition, vals)
	}
	var cp, c mat.Dense
	eigsym.VectorsTo(&cp)
	c.Mul(x, &cp)
	return vals, &c, nil
}

// densityChange returns Σ (a-b)² and the RMS of a-b.
func densityChange(a, b *mat.Dense) (sum, rms float64) {
	var diff mat.Dense
	diff.Sub(a, b)
	diff.MulElem(&diff, &diff)
	sq := diff.RawMatrix().Data
	return mat.Sum(&diff), math.Sqrt(stat.Mean(sq, nil))
}
