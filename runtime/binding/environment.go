package binding

import "sync"

// Environment is an ordered mapping of names to script values.
// A name maps to exactly one current value; setting an existing name
// overwrites it in place and keeps its original position.
type Environment struct {
	mux    sync.RWMutex
	names  []string
	values map[string]interface{}
}

// Set binds name to value
func (e *Environment) Set(name string, value interface{}) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = value
}

// Get returns the value bound to name
func (e *Environment) Get(name string) (interface{}, bool) {
	e.mux.RLock()
	defer e.mux.RUnlock()
	value, ok := e.values[name]
	return value, ok
}

// Has returns true if name is bound
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Delete removes a binding
func (e *Environment) Delete(name string) bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	if _, ok := e.values[name]; !ok {
		return false
	}
	delete(e.values, name)
	for i, candidate := range e.names {
		if candidate == name {
			e.names = append(e.names[:i], e.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns bound names in insertion order
func (e *Environment) Names() []string {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return append([]string(nil), e.names...)
}

// Len returns binding count
func (e *Environment) Len() int {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return len(e.names)
}

// Range calls fn for every binding in insertion order until fn returns false
func (e *Environment) Range(fn func(name string, value interface{}) bool) {
	for _, name := range e.Names() {
		value, ok := e.Get(name)
		if !ok {
			continue
		}
		if !fn(name, value) {
			return
		}
	}
}

// Clone returns a shallow copy; values themselves are shared
func (e *Environment) Clone() *Environment {
	e.mux.RLock()
	defer e.mux.RUnlock()
	ret := New()
	ret.names = append(ret.names, e.names...)
	for k, v := range e.values {
		ret.values[k] = v
	}
	return ret
}

// Reset removes every binding
func (e *Environment) Reset() {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.names = nil
	e.values = map[string]interface{}{}
}

// New creates an empty environment
func New() *Environment {
	return &Environment{values: map[string]interface{}{}}
}
