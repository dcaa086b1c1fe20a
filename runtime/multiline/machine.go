// Package multiline buffers partial input lines until a snippet is complete.
package multiline

import (
	"strings"
	"sync"
)

// Mode is the input mode of a machine
type Mode int

const (
	// SingleLine evaluates every submitted line
	SingleLine Mode = iota
	// Accumulating buffers lines until an empty submit
	Accumulating
)

func (m Mode) String() string {
	if m == Accumulating {
		return "accumulating"
	}
	return "single-line"
}

// Machine accumulates lines between an explicit continue action and an empty submit
type Machine struct {
	mux    sync.Mutex
	mode   Mode
	buffer []string
}

// Continue pushes line to the buffer and switches to accumulating mode
func (m *Machine) Continue(line string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.buffer = append(m.buffer, line)
	m.mode = Accumulating
}

// Submit handles a plain submit. In single-line mode line is ready as is.
// While accumulating a non-empty line is buffered; an empty line flushes the
// buffer joined with newlines and returns to single-line mode.
func (m *Machine) Submit(line string) (string, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.mode == SingleLine {
		return line, true
	}
	if strings.TrimSpace(line) != "" {
		m.buffer = append(m.buffer, line)
		return "", false
	}
	snippet := strings.Join(m.buffer, "\n")
	m.buffer = nil
	m.mode = SingleLine
	return snippet, true
}

// Paste returns a pasted block for immediate evaluation; it never touches the buffer
func (m *Machine) Paste(block string) string {
	return strings.ReplaceAll(block, "\r\n", "\n")
}

// Mode returns current mode
func (m *Machine) Mode() Mode {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.mode
}

// Buffer returns buffered lines
func (m *Machine) Buffer() []string {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]string(nil), m.buffer...)
}

// Reset drops buffered lines and returns to single-line mode
func (m *Machine) Reset() {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.buffer = nil
	m.mode = SingleLine
}

// New creates a machine in single-line mode
func New() *Machine {
	return &Machine{}
}
