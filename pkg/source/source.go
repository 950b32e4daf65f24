// Package source holds the VM units of one program in memory. A program is
// either a single .vm file or every .vm file directly inside a directory;
// each file becomes one unit named after its base name.
package source

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Ext is the extension of VM source files.
const Ext = ".vm"

// validUnitName matches names usable as a static-symbol prefix.
var validUnitName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	ErrUnitNotFound    = errors.New("unit not found")
	ErrInvalidUnitName = errors.New("invalid unit name (use letters, digits and _, not starting with a digit)")
	ErrDuplicateUnit   = errors.New("duplicate unit")
	ErrNoUnits         = errors.New("no " + Ext + " files found")
	ErrNotVMFile       = errors.New("not a " + Ext + " file")
)

// Unit is one source file.
type Unit struct {
	Name string
	Path string // host path, empty for units added from memory
	Data []byte
}

// Origin names the unit in diagnostics: its host path when it has one.
func (u *Unit) Origin() string {
	if u.Path != "" {
		return u.Path
	}
	return u.Name
}

// Bundle is an in-memory set of units, safe for concurrent use.
type Bundle struct {
	mu    sync.RWMutex
	units map[string]*Unit
}

// NewBundle creates an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{units: make(map[string]*Unit)}
}

// Add stores a copy of data as unit name.
func (b *Bundle) Add(name string, data []byte) error {
	return b.add(&Unit{Name: name, Data: data})
}

func (b *Bundle) add(u *Unit) error {
	if !validUnitName.MatchString(u.Name) {
		return &UnitError{Name: u.Name, Err: ErrInvalidUnitName}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.units[u.Name]; exists {
		return &UnitError{Name: u.Name, Err: ErrDuplicateUnit}
	}

	data := make([]byte, len(u.Data))
	copy(data, u.Data)
	u.Data = data
	b.units[u.Name] = u
	return nil
}

// Get returns the named unit.
func (b *Bundle) Get(name string) (*Unit, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	u, ok := b.units[name]
	if !ok {
		return nil, &UnitError{Name: name, Err: ErrUnitNotFound}
	}
	return u, nil
}

// Open returns a reader over the named unit's text.
func (b *Bundle) Open(name string) (io.Reader, error) {
	u, err := b.Get(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(u.Data), nil
}

// List returns the unit names in sorted order.
func (b *Bundle) List() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.units))
	for k := range b.units {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of units.
func (b *Bundle) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.units)
}

// Load builds a bundle from a .vm file or a directory of them.
// Subdirectories and other files in a directory are ignored.
func Load(path string) (*Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	b := NewBundle()
	if !info.IsDir() {
		if filepath.Ext(path) != Ext {
			return nil, &UnitError{Name: path, Err: ErrNotVMFile}
		}
		if err := b.LoadFile(path); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := b.LoadFrom(path); err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return nil, &UnitError{Name: path, Err: ErrNoUnits}
	}
	return b, nil
}

// LoadFile adds one host file, named by UnitName.
func (b *Bundle) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return b.add(&Unit{Name: UnitName(path), Path: path, Data: raw})
}

// LoadFrom adds every .vm file directly inside dir.
func (b *Bundle) LoadFrom(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Ext {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

var nameSanitizer = strings.NewReplacer(" ", "_", "-", "_")

// UnitName derives a unit name from a file path: the base name without its
// extension, with spaces and hyphens replaced by underscores.
func UnitName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return nameSanitizer.Replace(base)
}

// PathInfo resolves path to an absolute path and reports whether it is a
// directory.
func PathInfo(path string) (fullPath string, isDir bool, err error) {
	fullPath, err = filepath.Abs(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return "", false, err
	}
	return fullPath, info.IsDir(), nil
}

// UnitError reports a problem with a named unit or path.
type UnitError struct {
	Name string
	Err  error
}

func (e *UnitError) Error() string { return e.Err.Error() + ": " + e.Name }

func (e *UnitError) Unwrap() error { return e.Err }
