package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/jsrepl/runtime/binding"
	"github.com/viant/jsrepl/runtime/multiline"
	"github.com/viant/jsrepl/runtime/script"
	"github.com/viant/structology/conv"
	"github.com/viant/toolbox"
)

// Record is one transcript line: the submitted snippet and what was displayed
type Record struct {
	Input   string
	Output  string
	IsError bool
}

// Listener is invoked after every recorded evaluation.
// The call is made synchronously, therefore listeners MUST return quickly and
// must not call back into Record to avoid re-entrancy.
type Listener func(s *Session, record *Record)

// Session represents one shell's persistent evaluation context
type Session struct {
	ID           string
	CreatedAt    time.Time
	env          *binding.Environment
	machine      *multiline.Machine
	historyLimit int
	converter    *conv.Converter

	mu         sync.RWMutex
	history    []string
	cursor     int
	transcript []*Record
	listeners  []Listener
}

// Env returns the binding environment
func (s *Session) Env() *binding.Environment {
	return s.env
}

// Machine returns the multiline input state machine
func (s *Session) Machine() *multiline.Machine {
	return s.machine
}

// RegisterListeners attaches callbacks called on every Record
func (s *Session) RegisterListeners(fn ...Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn...)
}

// Record appends an evaluated snippet to history and the transcript.
// Blank input is ignored.
func (s *Session) Record(input, output string, isError bool) {
	if strings.TrimSpace(input) == "" {
		return
	}
	record := &Record{Input: input, Output: output, IsError: isError}
	s.mu.Lock()
	s.history = append(s.history, input)
	s.transcript = append(s.transcript, record)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	s.cursor = -1
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(s, record)
	}
}

// History returns submitted snippets, oldest first
func (s *Session) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

// Transcript returns recorded evaluations, oldest first
func (s *Session) Transcript() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Record(nil), s.transcript...)
}

// Previous moves the history cursor back; it stops at the oldest entry
func (s *Session) Previous() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return "", false
	}
	switch {
	case s.cursor == -1:
		s.cursor = len(s.history) - 1
	case s.cursor > 0:
		s.cursor--
	}
	return s.history[s.cursor], true
}

// Next moves the history cursor forward; past the newest entry it returns an empty line
func (s *Session) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == -1 {
		return "", false
	}
	s.cursor++
	if s.cursor < len(s.history) {
		return s.history[s.cursor], true
	}
	s.cursor = -1
	return "", true
}

// Reset drops bindings, buffered input and history
func (s *Session) Reset() {
	s.env.Reset()
	s.machine.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.transcript = nil
	s.cursor = -1
}

// Decode converts binding name into dest, a pointer to a Go value
func (s *Session) Decode(name string, dest interface{}) error {
	value, ok := s.env.Get(name)
	if !ok {
		return fmt.Errorf("binding %v not found", name)
	}
	if err := s.converter.Convert(script.Export(value), dest); err != nil {
		return fmt.Errorf("failed to decode %v: %w", name, err)
	}
	return nil
}

// Bind converts a Go value (struct, map, slice or scalar) into a script value bound to name
func (s *Session) Bind(name string, value interface{}) error {
	if value == nil {
		s.env.Set(name, nil)
		return nil
	}
	switch actual := value.(type) {
	case string, bool, float64, int, int64, []interface{}, map[string]interface{}:
		s.env.Set(name, script.Import(actual))
		return nil
	}
	var aMap = map[string]interface{}{}
	if err := toolbox.DefaultConverter.AssignConverted(&aMap, value); err != nil {
		imported := script.Import(value)
		if script.IsUndefined(imported) {
			return fmt.Errorf("failed to bind %v: unsupported type %T: %w", name, value, err)
		}
		s.env.Set(name, imported)
		return nil
	}
	s.env.Set(name, script.Import(aMap))
	return nil
}

// New creates a session
func New(id string, options ...Option) *Session {
	ret := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		env:       binding.New(),
		machine:   multiline.New(),
		converter: conv.NewConverter(conv.DefaultOptions()),
		cursor:    -1,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
