package script

import (
	"context"
	"errors"
)

// DefaultMaxCallDepth bounds nested calls
const DefaultMaxCallDepth = 2048

// Console receives one formatted line per print call
type Console interface {
	Print(line string)
}

// Interpreter executes parsed programs against a scope chain:
// builtins, then session bindings, then the program itself.
type Interpreter struct {
	ctx          context.Context
	global       *Scope
	session      *Scope
	console      Console
	maxCallDepth int
	depth        int
	errorClasses map[string]*Class
	methods      map[string]*Native
	assigned     []string
}

// Option customises an interpreter
type Option func(i *Interpreter)

// WithConsole binds the console object to c
func WithConsole(c Console) Option {
	return func(i *Interpreter) {
		i.console = c
	}
}

// WithMaxCallDepth sets the maximum call depth
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// New creates an interpreter with a fresh set of builtins
func New(ctx context.Context, options ...Option) *Interpreter {
	if ctx == nil {
		ctx = context.Background()
	}
	ret := &Interpreter{
		ctx:          ctx,
		global:       newFunctionScope(nil),
		maxCallDepth: DefaultMaxCallDepth,
		errorClasses: map[string]*Class{},
		methods:      map[string]*Native{},
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.session = NewScope(ret.global)
	ret.installBuiltins()
	return ret
}

// DefineGlobal binds a host value next to the builtins
func (i *Interpreter) DefineGlobal(name string, value interface{}) {
	i.global.Declare(name, value, false)
}

// Define binds a session value visible to every program run by this interpreter
func (i *Interpreter) Define(name string, value interface{}) {
	i.session.Declare(name, value, false)
}

// Global returns a value assigned to an undeclared name or defined globally
func (i *Interpreter) Global(name string) (interface{}, bool) {
	b, ok := i.global.vars[name]
	if !ok {
		return nil, false
	}
	return b.value, true
}

// Assigned returns names, in first-assignment order, of session values and
// implicit globals written by plain assignment, with their current values
func (i *Interpreter) Assigned() ([]string, []interface{}) {
	var values []interface{}
	for _, name := range i.assigned {
		b, ok := i.session.vars[name]
		if !ok {
			b = i.global.vars[name]
		}
		values = append(values, b.value)
	}
	return i.assigned, values
}

func (i *Interpreter) markAssigned(name string) {
	for _, candidate := range i.assigned {
		if candidate == name {
			return
		}
	}
	i.assigned = append(i.assigned, name)
}

func (i *Interpreter) programScope() *Scope {
	scope := newFunctionScope(i.session)
	scope.hasThis = true
	scope.this = Undefined
	return scope
}

// Evaluate evaluates a single expression
func (i *Interpreter) Evaluate(expr Expression) (interface{}, error) {
	value, err := i.eval(expr, i.programScope())
	if err == errShortCircuit {
		return Undefined, nil
	}
	return value, err
}

// Run executes a program and returns the value of a top-level return, or Undefined
func (i *Interpreter) Run(program *Program) (interface{}, error) {
	scope := i.programScope()
	i.hoistVars(program.Body, scope)
	c, err := i.execBlock(program.Body, scope)
	if err != nil {
		return nil, err
	}
	if c.kind == returnCompletion {
		return c.value, nil
	}
	return Undefined, nil
}

// Call invokes a callable value from host code
func (i *Interpreter) Call(callee interface{}, this interface{}, args ...interface{}) (interface{}, error) {
	return i.call(callee, this, args)
}

func (i *Interpreter) checkContext() error {
	if err := i.ctx.Err(); err != nil {
		return &Interrupt{Err: err}
	}
	return nil
}

type completionKind int

const (
	normalCompletion completionKind = iota
	returnCompletion
	breakCompletion
	continueCompletion
)

type completion struct {
	kind  completionKind
	value interface{}
}

func (i *Interpreter) execBlock(body []Statement, scope *Scope) (completion, error) {
	i.hoistFunctions(body, scope)
	for _, stmt := range body {
		c, err := i.exec(stmt, scope)
		if err != nil || c.kind != normalCompletion {
			return c, err
		}
	}
	return completion{}, nil
}

func (i *Interpreter) hoistFunctions(body []Statement, scope *Scope) {
	for _, stmt := range body {
		if decl, ok := stmt.(*FunctionDeclaration); ok {
			scope.Declare(decl.Function.Name, i.newFunction(decl.Function, scope, nil), false)
		}
	}
}

// hoistVars declares var names of body in the function scope
func (i *Interpreter) hoistVars(body []Statement, scope *Scope) {
	declare := func(target Expression) {
		for _, name := range PatternNames(target) {
			if _, ok := scope.vars[name]; !ok {
				scope.Declare(name, Undefined, false)
			}
		}
	}
	var visit func(stmt Statement)
	visit = func(stmt Statement) {
		switch actual := stmt.(type) {
		case *VariableDeclaration:
			if actual.Kind == "var" {
				for _, declarator := range actual.Declarations {
					declare(declarator.Target)
				}
			}
		case *BlockStatement:
			i.hoistVars(actual.Body, scope)
		case *IfStatement:
			visit(actual.Consequent)
			if actual.Alternate != nil {
				visit(actual.Alternate)
			}
		case *ForStatement:
			if actual.Init != nil {
				visit(actual.Init)
			}
			visit(actual.Body)
		case *ForOfStatement:
			if actual.Kind == "var" {
				declare(actual.Target)
			}
			visit(actual.Body)
		case *WhileStatement:
			visit(actual.Body)
		case *DoWhileStatement:
			visit(actual.Body)
		case *TryStatement:
			i.hoistVars(actual.Block.Body, scope)
			if actual.Handler != nil {
				i.hoistVars(actual.Handler.Body, scope)
			}
			if actual.Finalizer != nil {
				i.hoistVars(actual.Finalizer.Body, scope)
			}
		case *SwitchStatement:
			for _, switchCase := range actual.Cases {
				i.hoistVars(switchCase.Body, scope)
			}
		}
	}
	for _, stmt := range body {
		visit(stmt)
	}
}

// PatternNames lists identifiers bound by a binding target
func PatternNames(target Expression) []string {
	switch actual := target.(type) {
	case *Ident:
		return []string{actual.Name}
	case *ArrayPattern:
		var names []string
		for _, element := range actual.Elements {
			if element != nil {
				names = append(names, PatternNames(element.Target)...)
			}
		}
		return names
	case *ObjectPattern:
		var names []string
		for _, property := range actual.Properties {
			names = append(names, PatternNames(property.Target)...)
		}
		return names
	}
	return nil
}

func (i *Interpreter) exec(stmt Statement, scope *Scope) (completion, error) {
	switch actual := stmt.(type) {
	case *ExpressionStatement:
		value, err := i.eval(actual.Expression, scope)
		return completion{value: value}, err
	case *VariableDeclaration:
		return completion{}, i.execDeclaration(actual, scope)
	case *FunctionDeclaration, *EmptyStatement:
		return completion{}, nil
	case *ClassDeclaration:
		class, err := i.evalClass(actual.Class, scope)
		if err != nil {
			return completion{}, err
		}
		return completion{}, scope.declareLexical(actual.Class.Name, class, false)
	case *BlockStatement:
		return i.execBlock(actual.Body, NewScope(scope))
	case *IfStatement:
		test, err := i.eval(actual.Test, scope)
		if err != nil {
			return completion{}, err
		}
		if ToBoolean(test) {
			return i.exec(actual.Consequent, scope)
		}
		if actual.Alternate != nil {
			return i.exec(actual.Alternate, scope)
		}
		return completion{}, nil
	case *ForStatement:
		return i.execFor(actual, scope)
	case *ForOfStatement:
		return i.execForOf(actual, scope)
	case *WhileStatement:
		for {
			if err := i.checkContext(); err != nil {
				return completion{}, err
			}
			test, err := i.eval(actual.Test, scope)
			if err != nil {
				return completion{}, err
			}
			if !ToBoolean(test) {
				return completion{}, nil
			}
			c, err := i.exec(actual.Body, scope)
			if stop, result, err := loopControl(c, err); stop {
				return result, err
			}
		}
	case *DoWhileStatement:
		for {
			if err := i.checkContext(); err != nil {
				return completion{}, err
			}
			c, err := i.exec(actual.Body, scope)
			if stop, result, err := loopControl(c, err); stop {
				return result, err
			}
			test, err := i.eval(actual.Test, scope)
			if err != nil {
				return completion{}, err
			}
			if !ToBoolean(test) {
				return completion{}, nil
			}
		}
	case *ReturnStatement:
		if actual.Argument == nil {
			return completion{kind: returnCompletion, value: Undefined}, nil
		}
		value, err := i.eval(actual.Argument, scope)
		return completion{kind: returnCompletion, value: value}, err
	case *BreakStatement:
		return completion{kind: breakCompletion}, nil
	case *ContinueStatement:
		return completion{kind: continueCompletion}, nil
	case *ThrowStatement:
		value, err := i.eval(actual.Argument, scope)
		if err != nil {
			return completion{}, err
		}
		return completion{}, &Throw{Value: value}
	case *TryStatement:
		return i.execTry(actual, scope)
	case *SwitchStatement:
		return i.execSwitch(actual, scope)
	}
	return completion{}, NewError(SyntaxError, "Unsupported statement")
}

// loopControl interprets a loop body completion; stop reports the loop must end
func loopControl(c completion, err error) (bool, completion, error) {
	if err != nil {
		return true, completion{}, err
	}
	switch c.kind {
	case breakCompletion:
		return true, completion{}, nil
	case returnCompletion:
		return true, c, nil
	}
	return false, completion{}, nil
}

func (i *Interpreter) execDeclaration(decl *VariableDeclaration, scope *Scope) error {
	for _, declarator := range decl.Declarations {
		if declarator.Init == nil && decl.Kind == "var" {
			continue
		}
		var value interface{} = Undefined
		if declarator.Init != nil {
			var err error
			if value, err = i.eval(declarator.Init, scope); err != nil {
				return err
			}
			inferName(declarator.Target, declarator.Init, value)
		}
		if err := i.bindPattern(declarator.Target, value, scope, decl.Kind); err != nil {
			return err
		}
	}
	return nil
}

// inferName names anonymous functions and classes after their binding
func inferName(target Expression, init Expression, value interface{}) {
	ident, ok := target.(*Ident)
	if !ok {
		return
	}
	switch init.(type) {
	case *FunctionLiteral, *ClassLiteral:
	default:
		return
	}
	switch actual := value.(type) {
	case *Function:
		if actual.Name == "" {
			actual.Name = ident.Name
		}
	case *Class:
		if actual.Name == "" {
			actual.Name = ident.Name
		}
	}
}

// bindPattern binds value to target; kind is var, let, const or empty for assignment
func (i *Interpreter) bindPattern(target Expression, value interface{}, scope *Scope, kind string) error {
	switch actual := target.(type) {
	case *Ident:
		switch kind {
		case "let", "const":
			return scope.declareLexical(actual.Name, value, kind == "const")
		case "param":
			scope.Declare(actual.Name, value, false)
			return nil
		case "var":
			fnScope := scope.functionScope()
			if b, ok := fnScope.vars[actual.Name]; ok {
				b.value = value
				return nil
			}
			fnScope.Declare(actual.Name, value, false)
			return nil
		}
		return i.assign(actual.Name, value, scope)
	case *MemberExpression:
		if kind != "" {
			return NewError(SyntaxError, "Invalid destructuring assignment target")
		}
		object, key, err := i.memberTarget(actual, scope)
		if err != nil {
			return err
		}
		return i.setMember(object, key, value)
	case *ArrayPattern:
		elements, err := i.iterate(value)
		if err != nil {
			return err
		}
		for index, element := range actual.Elements {
			if element == nil {
				continue
			}
			if element.Rest {
				var rest []interface{}
				if index < len(elements) {
					rest = append(rest, elements[index:]...)
				}
				if err := i.bindPattern(element.Target, NewArray(rest...), scope, kind); err != nil {
					return err
				}
				break
			}
			var item interface{} = Undefined
			if index < len(elements) {
				item = elements[index]
			}
			if item, err = i.withDefault(item, element.Default, element.Target, scope); err != nil {
				return err
			}
			if err := i.bindPattern(element.Target, item, scope, kind); err != nil {
				return err
			}
		}
		return nil
	case *ObjectPattern:
		if isNullish(value) {
			return NewError(TypeError, "Cannot destructure '%s' as it is %s.", ToString(value), ToString(value))
		}
		used := map[string]bool{}
		for _, property := range actual.Properties {
			if property.Rest {
				rest := NewObject()
				if obj, ok := value.(*Object); ok {
					for _, key := range obj.keys {
						if !used[key] {
							rest.Set(key, obj.values[key])
						}
					}
				}
				if err := i.bindPattern(property.Target, rest, scope, kind); err != nil {
					return err
				}
				continue
			}
			key := property.Key
			if property.Computed != nil {
				computed, err := i.eval(property.Computed, scope)
				if err != nil {
					return err
				}
				key = ToString(computed)
			}
			used[key] = true
			item, err := i.getMember(value, key)
			if err != nil {
				return err
			}
			if item, err = i.withDefault(item, property.Default, property.Target, scope); err != nil {
				return err
			}
			if err := i.bindPattern(property.Target, item, scope, kind); err != nil {
				return err
			}
		}
		return nil
	}
	return NewError(SyntaxError, "Invalid destructuring assignment target")
}

func (i *Interpreter) withDefault(value interface{}, fallback Expression, target Expression, scope *Scope) (interface{}, error) {
	if !IsUndefined(value) || fallback == nil {
		return value, nil
	}
	result, err := i.eval(fallback, scope)
	if err != nil {
		return nil, err
	}
	inferName(target, fallback, result)
	return result, nil
}

// assign updates an existing binding or creates a global one
func (i *Interpreter) assign(name string, value interface{}, scope *Scope) error {
	b := scope.lookup(name)
	if b == nil {
		i.global.Declare(name, value, false)
		i.markAssigned(name)
		return nil
	}
	if b.constant {
		return NewError(TypeError, "Assignment to constant variable.")
	}
	b.value = value
	if i.session.vars[name] == b {
		i.markAssigned(name)
	}
	return nil
}

func (i *Interpreter) execFor(stmt *ForStatement, scope *Scope) (completion, error) {
	loopScope := NewScope(scope)
	var names []string
	if stmt.Init != nil {
		if decl, ok := stmt.Init.(*VariableDeclaration); ok && decl.Kind != "var" {
			for _, declarator := range decl.Declarations {
				names = append(names, PatternNames(declarator.Target)...)
			}
		}
		if _, err := i.exec(stmt.Init, loopScope); err != nil {
			return completion{}, err
		}
	}
	iteration := loopScope
	if len(names) > 0 {
		iteration = loopScope.copyOf(names)
	}
	for {
		if err := i.checkContext(); err != nil {
			return completion{}, err
		}
		if stmt.Test != nil {
			test, err := i.eval(stmt.Test, iteration)
			if err != nil {
				return completion{}, err
			}
			if !ToBoolean(test) {
				return completion{}, nil
			}
		}
		c, err := i.exec(stmt.Body, iteration)
		if stop, result, err := loopControl(c, err); stop {
			return result, err
		}
		if len(names) > 0 {
			iteration = iteration.copyOf(names)
		}
		if stmt.Update != nil {
			if _, err := i.eval(stmt.Update, iteration); err != nil {
				return completion{}, err
			}
		}
	}
}

func (i *Interpreter) execForOf(stmt *ForOfStatement, scope *Scope) (completion, error) {
	iterable, err := i.eval(stmt.Iterable, scope)
	if err != nil {
		return completion{}, err
	}
	var items []interface{}
	if stmt.In {
		items = forInKeys(iterable)
	} else if items, err = i.iterate(iterable); err != nil {
		return completion{}, err
	}
	for _, item := range items {
		if err := i.checkContext(); err != nil {
			return completion{}, err
		}
		iteration := NewScope(scope)
		if err := i.bindPattern(stmt.Target, item, iteration, stmt.Kind); err != nil {
			return completion{}, err
		}
		c, err := i.exec(stmt.Body, iteration)
		if stop, result, err := loopControl(c, err); stop {
			return result, err
		}
	}
	return completion{}, nil
}

func forInKeys(value interface{}) []interface{} {
	var keys []interface{}
	switch actual := value.(type) {
	case *Object:
		for _, key := range actual.keys {
			keys = append(keys, key)
		}
	case *Array:
		for index := range actual.Elements {
			keys = append(keys, numberToString(float64(index)))
		}
	case string:
		for index := range []rune(actual) {
			keys = append(keys, numberToString(float64(index)))
		}
	}
	return keys
}

func (i *Interpreter) execTry(stmt *TryStatement, scope *Scope) (completion, error) {
	c, err := i.execBlock(stmt.Block.Body, NewScope(scope))
	if err != nil && stmt.Handler != nil && catchable(err) {
		handlerScope := NewScope(scope)
		if stmt.Param != nil {
			if bindErr := i.bindPattern(stmt.Param, i.errorValue(err), handlerScope, "let"); bindErr != nil {
				return completion{}, bindErr
			}
		}
		c, err = i.execBlock(stmt.Handler.Body, handlerScope)
	}
	if stmt.Finalizer != nil {
		final, finalErr := i.execBlock(stmt.Finalizer.Body, NewScope(scope))
		if finalErr != nil || final.kind != normalCompletion {
			return final, finalErr
		}
	}
	return c, err
}

func catchable(err error) bool {
	var interrupt *Interrupt
	return !errors.As(err, &interrupt)
}

func (i *Interpreter) execSwitch(stmt *SwitchStatement, scope *Scope) (completion, error) {
	discriminant, err := i.eval(stmt.Discriminant, scope)
	if err != nil {
		return completion{}, err
	}
	start := -1
	for index, switchCase := range stmt.Cases {
		if switchCase.Test == nil {
			continue
		}
		test, err := i.eval(switchCase.Test, scope)
		if err != nil {
			return completion{}, err
		}
		if StrictEquals(discriminant, test) {
			start = index
			break
		}
	}
	if start == -1 {
		for index, switchCase := range stmt.Cases {
			if switchCase.Test == nil {
				start = index
			}
		}
	}
	if start == -1 {
		return completion{}, nil
	}
	var body []Statement
	for _, switchCase := range stmt.Cases[start:] {
		body = append(body, switchCase.Body...)
	}
	c, err := i.execBlock(body, NewScope(scope))
	if err != nil {
		return completion{}, err
	}
	if c.kind == breakCompletion {
		return completion{}, nil
	}
	return c, nil
}
