package script

// UndefinedValue is the type of Undefined
type UndefinedValue struct{}

// Undefined represents absence of a value; nil represents null
var Undefined = UndefinedValue{}

// IsUndefined returns true for Undefined
func IsUndefined(value interface{}) bool {
	_, ok := value.(UndefinedValue)
	return ok
}

// Array is a mutable, ordered list of values
type Array struct {
	Elements []interface{}
}

// NewArray creates an array
func NewArray(elements ...interface{}) *Array {
	if elements == nil {
		elements = []interface{}{}
	}
	return &Array{Elements: elements}
}

// Object is an ordered property bag, optionally an instance of a class
type Object struct {
	keys   []string
	values map[string]interface{}
	class  *Class
}

// NewObject creates an empty plain object
func NewObject() *Object {
	return &Object{values: map[string]interface{}{}}
}

// Keys returns own property names in insertion order
func (o *Object) Keys() []string {
	result := make([]string, len(o.keys))
	copy(result, o.keys)
	return result
}

// Len returns own property count
func (o *Object) Len() int {
	return len(o.keys)
}

// Own returns an own property
func (o *Object) Own(key string) (interface{}, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Get returns own property, falling back to class methods, or Undefined
func (o *Object) Get(key string) interface{} {
	if value, ok := o.values[key]; ok {
		return value
	}
	for class := o.class; class != nil; class = class.Parent {
		if method, ok := class.methods[key]; ok {
			return method
		}
	}
	return Undefined
}

// Has returns true if key is an own or inherited property
func (o *Object) Has(key string) bool {
	if _, ok := o.values[key]; ok {
		return true
	}
	for class := o.class; class != nil; class = class.Parent {
		if _, ok := class.methods[key]; ok {
			return true
		}
	}
	return false
}

// Set sets own property, preserving the position of existing keys
func (o *Object) Set(key string, value interface{}) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes own property
func (o *Object) Delete(key string) bool {
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, candidate := range o.keys {
		if candidate == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Class returns the class the object was constructed from
func (o *Object) Class() *Class {
	return o.class
}

func (o *Object) isError() bool {
	for class := o.class; class != nil; class = class.Parent {
		if class.errorBase {
			return true
		}
	}
	return false
}

// Function is a closure created from a function literal
type Function struct {
	Name    string
	literal *FunctionLiteral
	scope   *Scope
	home    *Class
	props   *Object
}

// Source returns function source text
func (f *Function) Source() string {
	if f.literal == nil {
		return "function " + f.Name + "() { [native code] }"
	}
	return f.literal.Source
}

// Call describes one native function invocation
type Call struct {
	Interp *Interpreter
	This   interface{}
	Args   []interface{}
}

// Arg returns argument i or Undefined
func (c *Call) Arg(i int) interface{} {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return Undefined
}

// NativeFunc implements a host function
type NativeFunc func(call *Call) (interface{}, error)

// Native is a host-provided callable, optionally carrying static members
type Native struct {
	Name      string
	Fn        NativeFunc
	Construct NativeFunc
	Members   *Object
}

// NewNative creates a native function
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{Name: name, Fn: fn}
}

// Class is a constructor created by a class declaration or a builtin error type
type Class struct {
	Name        string
	Parent      *Class
	constructor *Function
	methods     map[string]interface{}
	static      *Object
	fields      []*ClassMember
	scope       *Scope
	init        func(obj *Object, args []interface{})
	errorBase   bool
	source      string
}

func newClass(name string) *Class {
	return &Class{Name: name, methods: map[string]interface{}{}, static: NewObject()}
}

// IsCallable returns true for functions, natives and classes
func IsCallable(value interface{}) bool {
	switch value.(type) {
	case *Function, *Native, *Class:
		return true
	}
	return false
}

// CallableName returns the name of a callable or empty string
func CallableName(value interface{}) string {
	switch actual := value.(type) {
	case *Function:
		return actual.Name
	case *Native:
		return actual.Name
	case *Class:
		return actual.Name
	}
	return ""
}
