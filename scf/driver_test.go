// driver_test.go --  This file is part of goHF project.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRunOneOrbital(t *testing.T) {
	s := oneOrbital()
	obs := &countingObserver{}
	s.Observer = obs

	res, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, Converged, res.State)
	assert.Equal(t, 2, res.Iterations)
	// D = 1 gives F = -1 + (2·0.5 - 0.5) = -0.5 and E = 1·(-1 - 0.5).
	assert.InDelta(t, -1.5, res.Electronic, 1e-12)
	assert.InDelta(t, -1.5, res.Total, 1e-12)
	assert.InDelta(t, 1, res.Density.At(0, 0), 1e-12)

	require.Len(t, obs.advanced, 2)
	require.Len(t, obs.skipped, 1)
	assert.Equal(t, 0.0, obs.advanced[0].Energy)
	assert.Equal(t, obs.advanced[1], obs.skipped[0])
}

func TestRunMaxIterations(t *testing.T) {
	s := oneOrbital()
	s.MaxIterations = 1
	obs := &countingObserver{}
	s.Observer = obs

	res, err := Run(s)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Equal(t, MaxIterationsReached, res.State)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 0.0, res.Total)
	assert.Len(t, obs.advanced, 1)
	assert.Empty(t, obs.skipped)
}

func TestRunRestartFromConverged(t *testing.T) {
	for name, s := range map[string]Settings{"one orbital": oneOrbital(), "H2": h2()} {
		first, err := Run(s)
		require.NoError(t, err, name)

		s.InitialDensity = first.Density
		again, err := Run(s)
		require.NoError(t, err, name)
		assert.Equal(t, Converged, again.State, name)
		assert.Equal(t, 1, again.Iterations, name)
		assert.InDelta(t, first.Total, again.Total, 1e-12, name)
	}
}

func TestRunH2(t *testing.T) {
	var energies []float64
	for _, orth := range []Orthogonalizer{Canonical{}, Symmetric{}} {
		for _, workers := range []int{0, 2} {
			s := h2()
			s.Orthogonalizer = orth
			s.Workers = workers

			res, err := Run(s)
			require.NoError(t, err, "%T workers=%d", orth, workers)
			assert.Equal(t, Converged, res.State)
			assert.InDelta(t, -1.8310, res.Electronic, 1e-3)
			assert.InDelta(t, -1.1167, res.Total, 1e-3)
			energies = append(energies, res.Total)

			// Orbitals are S-orthonormal and ordered by energy.
			var cs, csc mat.Dense
			cs.Mul(res.Coefficients.T(), s.Overlap)
			csc.Mul(&cs, res.Coefficients)
			assert.True(t, mat.EqualApprox(&csc, identity(2), 1e-10))
			assert.Less(t, res.OrbitalEnergies[0], res.OrbitalEnergies[1])
			assert.InDelta(t, -0.578, res.OrbitalEnergies[0], 1e-3)
		}
	}
	for _, e := range energies[1:] {
		assert.InDelta(t, energies[0], e, 1e-10)
	}
}

func TestRunCoreGuess(t *testing.T) {
	zero, err := Run(h2())
	require.NoError(t, err)

	s := h2()
	s.Guess = GuessCore
	core, err := Run(s)
	require.NoError(t, err)
	assert.InDelta(t, zero.Total, core.Total, 1e-10)
	assert.Less(t, core.Iterations, zero.Iterations)
}

func TestRunDoesNotModifyInput(t *testing.T) {
	s := h2()
	s.InitialDensity = mat.NewDense(2, 2, []float64{0.3, 0.3, 0.3, 0.3})
	overlap := mat.DenseCopyOf(s.Overlap)
	kinetic := mat.DenseCopyOf(s.Kinetic)
	density := mat.DenseCopyOf(s.InitialDensity)

	_, err := Run(s)
	require.NoError(t, err)
	assert.True(t, mat.Equal(overlap, s.Overlap))
	assert.True(t, mat.Equal(kinetic, s.Kinetic))
	assert.True(t, mat.Equal(density, s.InitialDensity))
}

func TestRunInvalid(t *testing.T) {
	for _, test := range []struct {
		name   string
		modify func(*Settings)
		want   error
	}{
		{"odd electrons", func(s *Settings) { s.Electrons = 3 }, ErrOddElectrons},
		{"negative electrons", func(s *Settings) { s.Electrons = -2 }, ErrInvalidElectrons},
		{"too many electrons", func(s *Settings) { s.Electrons = 6 }, ErrInvalidElectrons},
		{"indefinite overlap", func(s *Settings) { s.Overlap = mat.NewDense(2, 2, []float64{1, 2, 2, 1}) }, ErrInvalidOverlap},
		{"asymmetric overlap", func(s *Settings) { s.Overlap = mat.NewDense(2, 2, []float64{1, 0.5, 0.1, 1}) }, ErrInvalidOverlap},
		{"kinetic shape", func(s *Settings) { s.Kinetic = mat.NewDense(3, 3, nil) }, ErrDimension},
		{"density shape", func(s *Settings) { s.InitialDensity = mat.NewDense(1, 1, nil) }, ErrDimension},
		{"eri shape", func(s *Settings) { s.ERI = oneOrbital().ERI }, ErrDimension},
		{"missing eri", func(s *Settings) { s.ERI = nil }, ErrInvalidSettings},
		{"zero threshold", func(s *Settings) { s.Threshold = 0 }, ErrInvalidSettings},
		{"zero iterations", func(s *Settings) { s.MaxIterations = 0 }, ErrInvalidSettings},
		{"negative workers", func(s *Settings) { s.Workers = -1 }, ErrInvalidSettings},
	} {
		s := h2()
		test.modify(&s)
		res, err := Run(s)
		assert.True(t, errors.Is(err, test.want), "%s: got %v", test.name, err)
		assert.Equal(t, Initializing, res.State, test.name)
	}
}

func TestRunNonFiniteInput(t *testing.T) {
	for _, test := range []struct {
		name   string
		modify func(*Settings)
	}{
		{"NaN density", func(s *Settings) { s.InitialDensity = mat.NewDense(2, 2, []float64{math.NaN(), 0, 0, 0}) }},
		{"Inf density", func(s *Settings) { s.InitialDensity = mat.NewDense(2, 2, []float64{math.Inf(1), 0, 0, 0}) }},
		{"NaN integral", func(s *Settings) { s.ERI.SetSymmetric(0, 0, 0, 0, math.NaN()) }},
	} {
		s := h2()
		test.modify(&s)
		obs := &countingObserver{}
		s.Observer = obs

		res, err := Run(s)
		assert.ErrorIs(t, err, ErrEigendecomposition, test.name)
		assert.Equal(t, Iterating, res.State, test.name)
		assert.Nil(t, res.Density, test.name)
		assert.Empty(t, obs.advanced, test.name)
	}
}

func TestGuessByName(t *testing.T) {
	g, err := GuessByName("Core")
	require.NoError(t, err)
	assert.Equal(t, GuessCore, g)
	g, err = GuessByName("")
	require.NoError(t, err)
	assert.Equal(t, GuessZero, g)
	_, err = GuessByName("huckel")
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "converged", Converged.String())
	assert.Equal(t, "max iterations reached", MaxIterationsReached.String())
}
