package dao

// Parameter is a named list criterion, e.g. ParentPath=/docs.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter holding a single string or a string slice
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Values returns parameter values as a string slice
func (p *Parameter) Values() []string {
	switch actual := p.Value.(type) {
	case string:
		return []string{actual}
	case []string:
		return actual
	}
	return nil
}
