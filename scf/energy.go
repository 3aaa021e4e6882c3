// energy.go --  This file is part of goHF project.
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

import "gonum.org/v1/gonum/mat"

// Energy returns the electronic energy Σ_uv D[u,v] (H[u,v] + F[u,v]).
func Energy(d, h, f mat.Matrix) float64 {
	var hf, e mat.Dense
	hf.Add(h, f)
	e.MulElem(d, &hf)
	return mat.Sum(&e)
}
