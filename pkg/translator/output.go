package translator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"hackvm/pkg/source"
)

// AsmExt is the extension of generated files.
const AsmExt = ".asm"

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("output differs from expected")

// OutputPath returns where the translation of path is written: <dir>/<dir>.asm
// for a directory, the same name with an .asm extension for a file.
func OutputPath(path string) (string, error) {
	full, isDir, err := source.PathInfo(path)
	if err != nil {
		return "", err
	}
	if isDir {
		return filepath.Join(full, filepath.Base(full)+AsmExt), nil
	}
	return strings.TrimSuffix(full, filepath.Ext(full)) + AsmExt, nil
}

// TranslatePath translates a .vm file or directory into out, or into
// OutputPath(path) when out is empty. It returns the path written. A failed
// translation leaves no output file behind.
func TranslatePath(path, out string, opts Options) (string, Stats, error) {
	b, err := source.Load(path)
	if err != nil {
		return "", Stats{}, err
	}

	if out == "" {
		if out, err = OutputPath(path); err != nil {
			return "", Stats{}, err
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return "", Stats{}, err
	}

	bw := bufio.NewWriter(f)
	stats, err := Translate(b, bw, opts)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(out)
		return "", stats, err
	}

	glog.V(1).Infof("wrote %s: %d units, %d commands", out, stats.Units, stats.Commands)
	return out, stats, nil
}

// MismatchError locates the first difference found by Compare. Line is the
// 1-based index among significant lines; zero means the line counts differ.
type MismatchError struct {
	Line     int
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: expected %s lines, got %s", ErrMismatch, e.Expected, e.Got)
	}
	return fmt.Sprintf("%v on line %d: expected %q, got %q", ErrMismatch, e.Line, e.Expected, e.Got)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Compare checks actual against expected assembly. Comments, surrounding
// whitespace and blank lines are ignored.
func Compare(expected, actual io.Reader) error {
	want, err := significantLines(expected)
	if err != nil {
		return fmt.Errorf("reading expected: %w", err)
	}
	got, err := significantLines(actual)
	if err != nil {
		return fmt.Errorf("reading actual: %w", err)
	}

	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] != got[i] {
			return &MismatchError{Line: i + 1, Expected: want[i], Got: got[i]}
		}
	}
	if len(want) != len(got) {
		return &MismatchError{Expected: fmt.Sprint(len(want)), Got: fmt.Sprint(len(got))}
	}
	return nil
}

// CompareFiles runs Compare on two files.
func CompareFiles(expectedPath, actualPath string) error {
	ef, err := os.Open(expectedPath)
	if err != nil {
		return err
	}
	defer ef.Close()
	af, err := os.Open(actualPath)
	if err != nil {
		return err
	}
	defer af.Close()
	return Compare(ef, af)
}

func significantLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "//")
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
