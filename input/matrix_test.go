// matrix_test.go --  This file is part of goHF project.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"example.com/gohf/scf"
)

func writeFile(t *testing.T, fname, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(fname), 0755))
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestReadMatrix(t *testing.T) {
	fname := writeFile(t, filepath.Join(t.TempDir(), "s.txt"),
		"# overlap\n"+
			"   1.000000   0.659300\n"+
			"\n"+
			"   0.659300   1.000000  # last row\n")
	m, err := ReadMatrix(fname)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 0.6593, 0.6593, 1}), m))
}

func TestReadMatrixErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"ragged.txt": "1 2\n3\n",
		"word.txt":   "1 x\n",
		"empty.txt":  "# nothing\n\n",
	} {
		_, err := ReadMatrix(writeFile(t, filepath.Join(dir, name), content))
		assert.ErrorIs(t, err, ErrFormat, name)
	}
	_, err := ReadMatrix(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteMatrixCompressed(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1.0 / 3, -2e-12, 7, 0.1, 0.2, 1e300})
	for _, name := range []string{"d.txt", "d.txt.gz", "d.txt.zst"} {
		fname := filepath.Join(t.TempDir(), name)
		require.NoError(t, WriteMatrix(fname, m), name)
		got, err := ReadMatrix(fname)
		require.NoError(t, err, name)
		assert.True(t, mat.Equal(m, got), "%s: got %v", name, mat.Formatted(got))
	}
}

func TestReadERIList(t *testing.T) {
	fname := writeFile(t, filepath.Join(t.TempDir(), "eri.txt"),
		"# i j k l (ij|kl)\n"+
			"0 0 0 0 0.7746\n"+
			"1 1 1 1 0.7746\n"+
			"0 0 1 1 0.5697\n"+
			"1 0 0 0 0.4441\n"+
			"1 1 1 0 0.4441\n"+
			"1 0 1 0 0.2970\n")
	eri, err := ReadERIList(fname, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.5697, eri.At(1, 1, 0, 0))
	assert.Equal(t, 0.4441, eri.At(0, 0, 0, 1))
	assert.Equal(t, 0.4441, eri.At(0, 1, 1, 1))
	assert.Equal(t, 0.2970, eri.At(0, 1, 1, 0))

	_, err = ReadERIList(writeFile(t, filepath.Join(t.TempDir(), "bad.txt"), "0 0 2 0 1.0\n"), 2)
	assert.ErrorIs(t, err, ErrFormat)
	_, err = ReadERIList(writeFile(t, filepath.Join(t.TempDir(), "short.txt"), "0 0 0 1.0\n"), 2)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDenseERI(t *testing.T) {
	eri, err := scf.NewERI(2, nil)
	require.NoError(t, err)
	for i, v := range []float64{0.7746, 0.4441, 0.4441, 0.5697} {
		eri.SetSymmetric(i/2, i%2, 0, 0, v)
	}
	dir := filepath.Join(t.TempDir(), "eri")
	require.NoError(t, WriteDenseERI(dir, eri))
	assert.FileExists(t, filepath.Join(dir, "eri1", "0.txt"))

	got, err := ReadDenseERI(dir, 2)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.True(t, mat.Equal(eri.Block(i, j), got.Block(i, j)), "block %d %d", i, j)
		}
	}

	_, err = ReadDenseERI(dir, 3)
	assert.Error(t, err)
}

func TestReadFileLines(t *testing.T) {
	fname := writeFile(t, filepath.Join(t.TempDir(), "run.yaml"), "a: 1\nb: 2\n")
	lines, err := ReadFileLines(fname)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2", strings.Join(lines, "\n"))
}
