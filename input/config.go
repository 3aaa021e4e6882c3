// config.go --  This file is part of goHF project.
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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"example.com/gohf/scf"
)

// Defaults for fields missing from a run file.
const (
	DefaultConverge   = 1e-10
	DefaultIterations = 100
)

// RunFile is the YAML description of a run. File names are relative to
// the data directory, which itself is relative to the run file.
type RunFile struct {
	Electrons        int     `yaml:"electrons"`
	NuclearRepulsion float64 `yaml:"nuclear_repulsion"`
	Converge         float64 `yaml:"converge"`
	Iterations       int     `yaml:"iterations"`

	Orthogonalizer string `yaml:"orthogonalizer"`
	Guess          string `yaml:"guess"`
	Workers        int    `yaml:"workers"`

	Data        string `yaml:"data"`
	Kinetic     string `yaml:"kinetic"`
	Potential   string `yaml:"potential"`
	Overlap     string `yaml:"overlap"`
	ERI         string `yaml:"eri"`
	ERIFormat   string `yaml:"eri_format"`
	DensityInit string `yaml:"density_init"`

	DensityOut string `yaml:"density_out"`
	Plot       string `yaml:"plot"`

	dir string
}

// ReadRunFile parses a YAML run file and fills in defaults.
func ReadRunFile(fname string) (*RunFile, error) {
	raw, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	rf, err := ParseRunFile(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	rf.dir = filepath.Dir(fname)
	return rf, nil
}

// ParseRunFile parses YAML run file content. Relative paths are resolved
// against the working directory.
func ParseRunFile(raw []byte) (*RunFile, error) {
	rf := &RunFile{dir: "."}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(rf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if rf.Converge == 0 {
		rf.Converge = DefaultConverge
	}
	if rf.Iterations == 0 {
		rf.Iterations = DefaultIterations
	}
	for _, f := range []struct{ name, v string }{
		{"kinetic", rf.Kinetic},
		{"potential", rf.Potential},
		{"overlap", rf.Overlap},
		{"eri", rf.ERI},
	} {
		if f.v == "" {
			return nil, fmt.Errorf("%w: %s file not given", ErrFormat, f.name)
		}
	}
	switch strings.ToLower(rf.ERIFormat) {
	case "", "dense", "list":
	default:
		return nil, fmt.Errorf("%w: eri_format %q, want dense or list", ErrFormat, rf.ERIFormat)
	}
	return rf, nil
}

// Path resolves a file name from the run file.
func (rf *RunFile) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(rf.dir, rf.Data, name)
}

// OutputPath resolves an output file name against the run file directory.
func (rf *RunFile) OutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(rf.dir, name)
}

// Load reads all data files and returns a validated Record. A density_init
// that does not exist is treated as absent.
func (rf *RunFile) Load() (*Record, error) {
	rec := &Record{
		Electrons:        rf.Electrons,
		NuclearRepulsion: rf.NuclearRepulsion,
		Converge:         rf.Converge,
		Iterations:       rf.Iterations,
	}
	var err error
	if rec.Overlap, err = ReadMatrix(rf.Path(rf.Overlap)); err != nil {
		return nil, err
	}
	if rec.Kinetic, err = ReadMatrix(rf.Path(rf.Kinetic)); err != nil {
		return nil, err
	}
	if rec.Potential, err = ReadMatrix(rf.Path(rf.Potential)); err != nil {
		return nil, err
	}
	if p := existOrNone(rf.Path(rf.DensityInit)); p != "" {
		if rec.DensityInit, err = ReadMatrix(p); err != nil {
			return nil, err
		}
	}

	n := rec.Dim()
	if rec.ERI, err = rf.loadERI(n); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (rf *RunFile) loadERI(n int) (*scf.ERI, error) {
	p := rf.Path(rf.ERI)
	format := strings.ToLower(rf.ERIFormat)
	if format == "" {
		format = "list"
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			format = "dense"
		}
	}
	if format == "dense" {
		return ReadDenseERI(p, n)
	}
	return ReadERIList(p, n)
}
