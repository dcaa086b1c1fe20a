package script

type binding struct {
	value    interface{}
	constant bool
	lexical  bool
}

// Scope holds variable bindings of a block, function or program
type Scope struct {
	parent   *Scope
	vars     map[string]*binding
	function bool
	hasThis  bool
	this     interface{}
	home     *Class
}

// NewScope creates a child scope
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: map[string]*binding{}}
}

func newFunctionScope(parent *Scope) *Scope {
	scope := NewScope(parent)
	scope.function = true
	return scope
}

// Declare creates or replaces a binding in this scope
func (s *Scope) Declare(name string, value interface{}, constant bool) {
	s.vars[name] = &binding{value: value, constant: constant}
}

func (s *Scope) declareLexical(name string, value interface{}, constant bool) error {
	if existing, ok := s.vars[name]; ok && existing.lexical {
		return NewError(SyntaxError, "Identifier '%s' has already been declared", name)
	}
	s.vars[name] = &binding{value: value, constant: constant, lexical: true}
	return nil
}

// Lookup returns the value visible under name
func (s *Scope) Lookup(name string) (interface{}, bool) {
	if b := s.lookup(name); b != nil {
		return b.value, true
	}
	return nil, false
}

func (s *Scope) lookup(name string) *binding {
	for scope := s; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b
		}
	}
	return nil
}

func (s *Scope) functionScope() *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.function {
			return scope
		}
	}
	return s
}

func (s *Scope) thisScope() *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.hasThis {
			return scope
		}
	}
	return nil
}

// copyOf returns a sibling scope with copies of the named bindings
func (s *Scope) copyOf(names []string) *Scope {
	result := NewScope(s.parent)
	for _, name := range names {
		if b, ok := s.vars[name]; ok {
			clone := *b
			result.vars[name] = &clone
		}
	}
	return result
}
