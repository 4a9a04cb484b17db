package peripherals

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/jcorbin/retrobasic/internal/runeio"
)

// MemFileSystem is an in-memory FileSystem: OPEN/PRINT#/INPUT#/CLOSE
// address named byte buffers instead of a real disk, and double as
// the Persistence backend for SAVE/LOAD. It is the default file
// peripheral for the CLI and for tests, since no real storage
// peripheral is in scope (spec.md §6).
type MemFileSystem struct {
	mu    sync.Mutex
	files map[int]*memFile
	store map[string]string
}

type memFile struct {
	name string
	mode string
	buf  *strings.Builder
	in   *bufio.Scanner
}

// NewMemFileSystem returns an empty in-memory file system.
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{
		files: map[int]*memFile{},
		store: map[string]string{},
	}
}

// Open binds file number file to name under mode ("I" input, "O"
// output, "A" append), matching spec.md's OPEN statement.
func (m *MemFileSystem) Open(file int, name string, mode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[file]; ok {
		return fmt.Errorf("file %d already open", file)
	}
	f := &memFile{name: name, mode: mode}
	switch strings.ToUpper(mode) {
	case "I":
		f.in = bufio.NewScanner(runeio.NewReader(strings.NewReader(m.store[name])))
	case "O":
		f.buf = &strings.Builder{}
	case "A":
		f.buf = &strings.Builder{}
		f.buf.WriteString(m.store[name])
	default:
		return fmt.Errorf("unknown file mode %q", mode)
	}
	m.files[file] = f
	return nil
}

// Close flushes any pending output for file back into the named
// backing store and releases the file number.
func (m *MemFileSystem) Close(file int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[file]
	if !ok {
		return fmt.Errorf("file %d not open", file)
	}
	if f.buf != nil {
		m.store[f.name] = f.buf.String()
	}
	delete(m.files, file)
	return nil
}

// Print appends s (plus a newline) to the output file's buffer.
func (m *MemFileSystem) Print(file int, s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[file]
	if !ok {
		return fmt.Errorf("file %d not open", file)
	}
	if f.buf == nil {
		return fmt.Errorf("file %d not open for output", file)
	}
	f.buf.WriteString(s)
	f.buf.WriteByte('\n')
	return nil
}

// InputLine reads the next line from an input file, for INPUT#.
func (m *MemFileSystem) InputLine(file int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[file]
	if !ok {
		return "", fmt.Errorf("file %d not open", file)
	}
	if f.in == nil {
		return "", fmt.Errorf("file %d not open for input", file)
	}
	if !f.in.Scan() {
		if err := f.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("file %d: end of file", file)
	}
	return f.in.Text(), nil
}

// Save implements Persistence by writing listing under name.
func (m *MemFileSystem) Save(name string, listing string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[name] = listing
	return nil
}

// Load implements Persistence by reading the listing saved under
// name.
func (m *MemFileSystem) Load(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listing, ok := m.store[name]
	if !ok {
		return "", fmt.Errorf("no saved program named %q", name)
	}
	return listing, nil
}
