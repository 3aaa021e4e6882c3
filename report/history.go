// history.go --  This file is part of goHF project.
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

package report

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"example.com/gohf/scf"
)

// logFloor replaces log10 of exact zeros in the plot.
const logFloor = -16

// History records the iterations of a run.
type History struct {
	Iterations []scf.Iteration
	Converged  bool
}

func (h *History) Advance(it scf.Iteration) { h.Iterations = append(h.Iterations, it) }
func (h *History) Skip(scf.Iteration)       { h.Converged = true }

// Plot saves a convergence plot of log10 Σ(D-D_new)² and log10 |dE| per
// iteration. The image format follows the file extension.
func (h *History) Plot(fname string) error {
	if len(h.Iterations) == 0 {
		return errors.New("report: no iterations to plot")
	}
	p := plot.New()
	p.Title.Text = "SCF convergence"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "log10"
	p.Add(plotter.NewGrid())

	dd := make(plotter.XYs, len(h.Iterations))
	de := make(plotter.XYs, len(h.Iterations))
	for i, it := range h.Iterations {
		dd[i].X, dd[i].Y = float64(it.Number), log10(it.DensityChange)
		de[i].X, de[i].Y = float64(it.Number), log10(math.Abs(it.DeltaEnergy))
	}
	if err := plotutil.AddLinePoints(p, "density change", dd, "energy change", de); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}

func log10(v float64) float64 {
	if v <= 0 {
		return logFloor
	}
	return math.Max(math.Log10(v), logFloor)
}
