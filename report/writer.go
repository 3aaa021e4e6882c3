// writer.go --  This file is part of goHF project.
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

// Package report writes the human-readable output of an SCF run.
package report

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// Writer produces the .out file. It implements scf.Observer, printing one
// line per iteration.
type Writer struct {
	out    *log.Logger
	closer io.Closer
}

// New writes the report to w.
func New(w io.Writer) *Writer {
	return &Writer{out: log.New(w, "", 0)}
}

// Create appends the report to fname, creating it if needed.
func Create(fname string) (*Writer, error) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	w := New(file)
	w.closer = file
	return w, nil
}

func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func (w *Writer) Banner(version string) {
	w.out.Println("\n" +
		"              __  __  ____      |\n" +
		"             /\\ \\/\\ \\/\\  __\\    | goHF " + version + "\n" +
		"   __     ___\\ \\ \\_\\ \\ \\ \\_/    | Restricted Hartree-Fock SCF on precomputed integrals\n" +
		" /'_ `\\  / __`\\ \\  _  \\ \\  _\\   |\n" +
		"/\\ \\L\\ \\/\\ \\L\\ \\ \\ \\ \\ \\ \\ \\/   | Have Fun!!!\n" +
		"\\ \\____ \\ \\____/\\ \\_\\ \\_\\ \\_\\   |\n" +
		" \\/___L\\ \\/___/  \\/_/\\/_/\\/_/   |\n" +
		"   /\\____/                      |\n" +
		"   \\_/__/                       |\n")
}

func (w *Writer) Delimiter() {
	w.out.Println(strings.Repeat("-", 70))
}

// Input echoes the run file.
func (w *Writer) Input(name string, lines []string) {
	w.out.Println("Input file " + name + ":")
	w.Delimiter()
	for _, l := range lines {
		w.out.Println(l)
	}
	w.Delimiter()
}

func (w *Writer) Advance(it scf.Iteration) {
	w.out.Printf("Iteration %3d. Energy = %18.10f, dE = %12.4e, dD = %12.4e, dRMS = %12.4e",
		it.Number, it.Energy, it.DeltaEnergy, it.DensityChange, it.DensityRMS)
}

func (w *Writer) Skip(it scf.Iteration) {
	w.out.Printf("SCF converged after step %d", it.Number)
}

// Matrix prints m under a title.
func (w *Writer) Matrix(title string, m mat.Matrix) {
	w.out.Println(title + ":")
	fa := mat.Formatted(m, mat.Prefix("    "), mat.Squeeze())
	w.out.Printf("    %.8f\n", fa)
}

// Result prints the final energies, orbital energies and density. err is
// the error returned by scf.Run, if any.
func (w *Writer) Result(res scf.Result, err error) {
	w.Delimiter()
	switch {
	case err == nil:
	case errors.Is(err, scf.ErrNotConverged):
		w.out.Printf("Warning! SCF NOT converged after step %d", res.Iterations)
	default:
		w.out.Printf("SCF failed: %v", err)
		w.Delimiter()
		return
	}
	w.out.Printf("Final state:               %v", res.State)
	w.out.Printf("Electronic energy = %20.12f a.u.", res.Electronic)
	w.out.Printf("Nuclei Repulsion Energy = %14.12f a.u.", res.NuclearRepulsion)
	w.out.Printf("Final total energy = %19.12f a.u.", res.Total)
	w.Delimiter()
	if res.OrbitalEnergies != nil {
		w.out.Println("Orbital energies:")
		for i, e := range res.OrbitalEnergies {
			w.out.Printf("%5d %18.10f", i+1, e)
		}
		w.Delimiter()
	}
	if res.Density != nil {
		w.Matrix("Density matrix", res.Density)
		w.Delimiter()
	}
}

// Summary returns the single line printed to the terminal.
func Summary(res scf.Result) string {
	return fmt.Sprintf("Final total energy = %.12f a.u. (%v, %d iterations)", res.Total, res.State, res.Iterations)
}
