// observer.go --  This file is part of goHF project.
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

// Iteration describes one pass of the SCF loop.
type Iteration struct {
	// Number counts iterations from 1.
	Number int
	// Energy is the electronic energy of the density the pass started with.
	Energy float64
	// DeltaEnergy is Energy minus the previous pass' energy (minus zero on
	// the first pass).
	DeltaEnergy float64
	// DensityChange is the convergence metric Σ (D - D_new)².
	DensityChange float64
	// DensityRMS is sqrt(mean((D - D_new)²)).
	DensityRMS float64
}

// Observer receives advisory progress notifications from Run. Advance is
// called once per iteration; Skip is called once more, with the same
// Iteration, when convergence ends the loop before the budget is used up.
// Observers cannot influence the computation.
type Observer interface {
	Advance(Iteration)
	Skip(Iteration)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) Advance(Iteration) {}
func (NopObserver) Skip(Iteration)    {}

// ObserverFunc adapts a function to an Observer that only watches Advance.
type ObserverFunc func(Iteration)

func (fn ObserverFunc) Advance(it Iteration) { fn(it) }
func (ObserverFunc) Skip(Iteration)          {}

// MultiObserver forwards every notification to each of its members in order.
type MultiObserver []Observer

func (m MultiObserver) Advance(it Iteration) {
	for _, o := range m {
		o.Advance(it)
	}
}

func (m MultiObserver) Skip(it Iteration) {
	for _, o := range m {
		o.Skip(it)
	}
}
