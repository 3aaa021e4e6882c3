// matrix.go --  This file is part of goHF project.
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

package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

// ReadMatrix reads a matrix written one row per line with whitespace
// separated values. Blank lines and text after '#' are ignored.
func ReadMatrix(fname string) (*mat.Dense, error) {
	f, err := open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readMatrix(f, fname)
}

func readMatrix(r io.Reader, name string) (*mat.Dense, error) {
	var data []float64
	rows, cols := 0, 0
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		words := fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if rows == 0 {
			cols = len(words)
		} else if len(words) != cols {
			return nil, fmt.Errorf("%s:%d: %w: %d values in a row, want %d", name, line, ErrFormat, len(words), cols)
		}
		for _, w := range words {
			v, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w: %v", name, line, ErrFormat, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%s: %w: no data", name, ErrFormat)
	}
	return mat.NewDense(rows, cols, data), nil
}

func fields(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}

// WriteMatrix writes m in the format read by ReadMatrix, with enough digits
// to read back the same values.
func WriteMatrix(fname string, m mat.Matrix) error {
	w, err := create(fname)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			fmt.Fprintf(bw, " %24.16e", m.At(i, j))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadDenseERI reads an n⁴ integral tensor stored as a directory tree
// dir/<base><i>/<j>.txt, where base is the last element of dir and each file
// holds the n×n (k,l) block of (ij|kl).
func ReadDenseERI(dir string, n int) (*scf.ERI, error) {
	eri, err := scf.NewERI(n, nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			block, err := ReadMatrix(blockName(dir, i, j))
			if err != nil {
				return nil, err
			}
			if err := eri.SetBlock(i, j, block); err != nil {
				return nil, fmt.Errorf("%s: %w", blockName(dir, i, j), err)
			}
		}
	}
	return eri, nil
}

// WriteDenseERI writes eri in the layout read by ReadDenseERI.
func WriteDenseERI(dir string, eri *scf.ERI) error {
	n := eri.Dim()
	for i := 0; i < n; i++ {
		if err := os.MkdirAll(filepath.Dir(blockName(dir, i, 0)), 0755); err != nil {
			return err
		}
		for j := 0; j < n; j++ {
			if err := WriteMatrix(blockName(dir, i, j), eri.Block(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func blockName(dir string, i, j int) string {
	base := filepath.Base(filepath.Clean(dir))
	return filepath.Join(dir, base+strconv.Itoa(i), strconv.Itoa(j)+".txt")
}

// ReadERIList reads symmetry-unique integrals, one "i j k l value" line per
// integral with 0-based indices, and expands them to the full tensor.
func ReadERIList(fname string, n int) (*scf.ERI, error) {
	f, err := open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	eri, err := scf.NewERI(n, nil)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		words := fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if len(words) != 5 {
			return nil, fmt.Errorf("%s:%d: %w: want \"i j k l value\"", fname, line, ErrFormat)
		}
		var idx [4]int
		for p := range idx {
			idx[p], err = strconv.Atoi(words[p])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w: %v", fname, line, ErrFormat, err)
			}
			if idx[p] < 0 || idx[p] >= n {
				return nil, fmt.Errorf("%s:%d: %w: index %d outside basis of %d", fname, line, ErrFormat, idx[p], n)
			}
		}
		v, err := strconv.ParseFloat(words[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", fname, line, ErrFormat, err)
		}
		eri.SetSymmetric(idx[0], idx[1], idx[2], idx[3], v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return eri, nil
}
