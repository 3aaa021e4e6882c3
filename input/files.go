// files.go --  This file is part of goHF project.
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
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrFormat is wrapped by every parse error, together with file and line.
var ErrFormat = errors.New("input: malformed data")

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if e := r.closers[i](); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// open opens fname, decompressing files ending in .gz (gzip) or .zst (zstd).
func open(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(fname, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		return &readCloser{gz, []func() error{f.Close, gz.Close}}, nil
	case strings.HasSuffix(fname, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		return &readCloser{zr, []func() error{f.Close, func() error { zr.Close(); return nil }}}, nil
	}
	return f, nil
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// create creates fname, compressing by extension like open. Closing the
// returned writer flushes the compressor before the file is closed.
func create(fname string) (io.WriteCloser, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(fname, ".gz"):
		gz := gzip.NewWriter(f)
		return &writeCloser{gz, []func() error{gz.Close, f.Close}}, nil
	case strings.HasSuffix(fname, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		return &writeCloser{zw, []func() error{zw.Close, f.Close}}, nil
	}
	return f, nil
}

// ReadFileLines returns the lines of fname.
func ReadFileLines(fname string) ([]string, error) {
	var result []string
	file, err := open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

// existOrNone returns path if it exists and "" otherwise.
func existOrNone(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
