// Package capture buffers text printed by a snippet during one evaluation.
package capture

import (
	"strings"
	"sync"
)

// Printer collects printed lines; it implements script.Console
type Printer struct {
	mux   sync.Mutex
	lines []string
}

// Print appends one line
func (p *Printer) Print(line string) {
	p.mux.Lock()
	p.lines = append(p.lines, line)
	p.mux.Unlock()
}

// Has returns true if anything was printed since the last reset
func (p *Printer) Has() bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	return len(p.lines) > 0
}

// Lines returns a copy of printed lines
func (p *Printer) Lines() []string {
	p.mux.Lock()
	defer p.mux.Unlock()
	return append([]string(nil), p.lines...)
}

// Text returns printed lines joined with newlines
func (p *Printer) Text() string {
	return strings.Join(p.Lines(), "\n")
}

// Reset clears the buffer
func (p *Printer) Reset() {
	p.mux.Lock()
	p.lines = nil
	p.mux.Unlock()
}

// Flush returns the buffered text and clears the buffer
func (p *Printer) Flush() string {
	p.mux.Lock()
	defer p.mux.Unlock()
	text := strings.Join(p.lines, "\n")
	p.lines = nil
	return text
}

// New creates a printer
func New() *Printer {
	return &Printer{}
}

// Discard drops every printed line
var Discard = discard{}

type discard struct{}

func (discard) Print(string) {}
