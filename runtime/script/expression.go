package script

import (
	"math"
	"strings"
	"unicode/utf8"
)

func (i *Interpreter) eval(expr Expression, scope *Scope) (interface{}, error) {
	switch actual := expr.(type) {
	case *NumberLiteral:
		return actual.Value, nil
	case *StringLiteral:
		return actual.Value, nil
	case *BooleanLiteral:
		return actual.Value, nil
	case *NullLiteral:
		return nil, nil
	case *TemplateLiteral:
		var builder strings.Builder
		for index, quasi := range actual.Quasis {
			builder.WriteString(quasi)
			if index < len(actual.Expressions) {
				value, err := i.eval(actual.Expressions[index], scope)
				if err != nil {
					return nil, err
				}
				builder.WriteString(ToString(value))
			}
		}
		return builder.String(), nil
	case *Ident:
		b := scope.lookup(actual.Name)
		if b == nil {
			return nil, NewError(ReferenceError, "%s is not defined", actual.Name)
		}
		return b.value, nil
	case *ThisExpression:
		if thisScope := scope.thisScope(); thisScope != nil {
			return thisScope.this, nil
		}
		return Undefined, nil
	case *ArrayLiteral:
		return i.evalArray(actual, scope)
	case *ObjectLiteral:
		return i.evalObject(actual, scope)
	case *FunctionLiteral:
		return i.evalFunction(actual, scope), nil
	case *ClassLiteral:
		return i.evalClass(actual, scope)
	case *UnaryExpression:
		return i.evalUnary(actual, scope)
	case *UpdateExpression:
		return i.evalUpdate(actual, scope)
	case *BinaryExpression:
		left, err := i.eval(actual.Left, scope)
		if err != nil {
			return nil, err
		}
		right, err := i.eval(actual.Right, scope)
		if err != nil {
			return nil, err
		}
		return i.binary(actual.Op, left, right)
	case *LogicalExpression:
		left, err := i.eval(actual.Left, scope)
		if err != nil {
			return nil, err
		}
		if !shouldEvaluateRight(actual.Op, left) {
			return left, nil
		}
		return i.eval(actual.Right, scope)
	case *ConditionalExpression:
		test, err := i.eval(actual.Test, scope)
		if err != nil {
			return nil, err
		}
		if ToBoolean(test) {
			return i.eval(actual.Consequent, scope)
		}
		return i.eval(actual.Alternate, scope)
	case *AssignmentExpression:
		return i.evalAssignment(actual, scope)
	case *MemberExpression:
		object, key, err := i.memberTarget(actual, scope)
		if err != nil {
			return nil, err
		}
		return i.getMember(object, key)
	case *SuperMember:
		method, _, err := i.superMember(actual.Property, scope)
		return method, err
	case *CallExpression:
		return i.evalCall(actual, scope)
	case *SuperCall:
		return i.evalSuperCall(actual, scope)
	case *NewExpression:
		callee, err := i.eval(actual.Callee, scope)
		if err != nil {
			return nil, err
		}
		args, err := i.evalArgs(actual.Args, scope)
		if err != nil {
			return nil, err
		}
		return i.construct(callee, args, describe(actual.Callee))
	case *OptionalChain:
		value, err := i.eval(actual.Expression, scope)
		if err == errShortCircuit {
			return Undefined, nil
		}
		return value, err
	case *SequenceExpression:
		var value interface{} = Undefined
		for _, item := range actual.Expressions {
			var err error
			if value, err = i.eval(item, scope); err != nil {
				return nil, err
			}
		}
		return value, nil
	case *SpreadElement:
		return nil, NewError(SyntaxError, "Unexpected token '...'")
	case *ArrayPattern, *ObjectPattern:
		return nil, NewError(SyntaxError, "Invalid destructuring assignment target")
	}
	return nil, NewError(SyntaxError, "Unsupported expression")
}

func shouldEvaluateRight(op string, left interface{}) bool {
	switch op {
	case "&&":
		return ToBoolean(left)
	case "||":
		return !ToBoolean(left)
	}
	return isNullish(left)
}

func (i *Interpreter) evalArray(literal *ArrayLiteral, scope *Scope) (interface{}, error) {
	elements := make([]interface{}, 0, len(literal.Elements))
	for _, element := range literal.Elements {
		if element == nil {
			elements = append(elements, Undefined)
			continue
		}
		if spread, ok := element.(*SpreadElement); ok {
			value, err := i.eval(spread.Argument, scope)
			if err != nil {
				return nil, err
			}
			items, err := i.iterate(value)
			if err != nil {
				return nil, err
			}
			elements = append(elements, items...)
			continue
		}
		value, err := i.eval(element, scope)
		if err != nil {
			return nil, err
		}
		elements = append(elements, value)
	}
	return NewArray(elements...), nil
}

func (i *Interpreter) evalObject(literal *ObjectLiteral, scope *Scope) (interface{}, error) {
	obj := NewObject()
	for _, property := range literal.Properties {
		if property.Spread {
			value, err := i.eval(property.Value, scope)
			if err != nil {
				return nil, err
			}
			spreadInto(obj, value)
			continue
		}
		key := property.Key
		if property.Computed != nil {
			computed, err := i.eval(property.Computed, scope)
			if err != nil {
				return nil, err
			}
			key = ToString(computed)
		}
		value, err := i.eval(property.Value, scope)
		if err != nil {
			return nil, err
		}
		inferName(&Ident{Name: key}, property.Value, value)
		obj.Set(key, value)
	}
	return obj, nil
}

func spreadInto(obj *Object, value interface{}) {
	switch actual := value.(type) {
	case *Object:
		for _, key := range actual.keys {
			obj.Set(key, actual.values[key])
		}
	case *Array:
		for index, element := range actual.Elements {
			obj.Set(numberToString(float64(index)), element)
		}
	case string:
		for index, r := range []rune(actual) {
			obj.Set(numberToString(float64(index)), string(r))
		}
	}
}

func (i *Interpreter) evalUnary(expr *UnaryExpression, scope *Scope) (interface{}, error) {
	switch expr.Op {
	case "typeof":
		if ident, ok := expr.Operand.(*Ident); ok && scope.lookup(ident.Name) == nil {
			return "undefined", nil
		}
	case "delete":
		member, ok := expr.Operand.(*MemberExpression)
		if !ok {
			return true, nil
		}
		object, key, err := i.memberTarget(member, scope)
		if err != nil {
			return nil, err
		}
		switch actual := object.(type) {
		case *Object:
			actual.Delete(key)
		case *Array:
			if index, ok := arrayIndex(key); ok && index < len(actual.Elements) {
				actual.Elements[index] = Undefined
			}
		case *Function:
			if actual.props != nil {
				actual.props.Delete(key)
			}
		}
		return true, nil
	}
	operand, err := i.eval(expr.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case "typeof":
		return TypeOf(operand), nil
	case "!":
		return !ToBoolean(operand), nil
	case "-":
		return -ToNumber(operand), nil
	case "+":
		return ToNumber(operand), nil
	case "~":
		return float64(^toInt32(operand)), nil
	case "void":
		return Undefined, nil
	}
	return nil, NewError(SyntaxError, "Unexpected token '%s'", expr.Op)
}

func (i *Interpreter) evalUpdate(expr *UpdateExpression, scope *Scope) (interface{}, error) {
	current, err := i.eval(expr.Target, scope)
	if err != nil {
		return nil, err
	}
	old := ToNumber(current)
	updated := old + 1
	if expr.Op == "--" {
		updated = old - 1
	}
	if err = i.store(expr.Target, updated, scope); err != nil {
		return nil, err
	}
	if expr.Prefix {
		return updated, nil
	}
	return old, nil
}

// store writes value into a simple assignment target
func (i *Interpreter) store(target Expression, value interface{}, scope *Scope) error {
	switch actual := target.(type) {
	case *Ident:
		return i.assign(actual.Name, value, scope)
	case *MemberExpression:
		object, key, err := i.memberTarget(actual, scope)
		if err != nil {
			return err
		}
		return i.setMember(object, key, value)
	}
	return i.bindPattern(target, value, scope, "")
}

func (i *Interpreter) evalAssignment(expr *AssignmentExpression, scope *Scope) (interface{}, error) {
	if expr.Op == "=" {
		if member, ok := expr.Target.(*MemberExpression); ok {
			object, key, err := i.memberTarget(member, scope)
			if err != nil {
				return nil, err
			}
			value, err := i.eval(expr.Value, scope)
			if err != nil {
				return nil, err
			}
			return value, i.setMember(object, key, value)
		}
		value, err := i.eval(expr.Value, scope)
		if err != nil {
			return nil, err
		}
		inferName(expr.Target, expr.Value, value)
		return value, i.bindPattern(expr.Target, value, scope, "")
	}
	current, err := i.eval(expr.Target, scope)
	if err != nil {
		return nil, err
	}
	op := strings.TrimSuffix(expr.Op, "=")
	var value interface{}
	switch op {
	case "&&", "||", "??":
		if !shouldEvaluateRight(op, current) {
			return current, nil
		}
		if value, err = i.eval(expr.Value, scope); err != nil {
			return nil, err
		}
	default:
		right, err := i.eval(expr.Value, scope)
		if err != nil {
			return nil, err
		}
		if value, err = i.binary(op, current, right); err != nil {
			return nil, err
		}
	}
	return value, i.store(expr.Target, value, scope)
}

func (i *Interpreter) binary(op string, left, right interface{}) (interface{}, error) {
	switch op {
	case "+":
		left, right = toPrimitive(left), toPrimitive(right)
		_, leftString := left.(string)
		_, rightString := right.(string)
		if leftString || rightString {
			return ToString(left) + ToString(right), nil
		}
		return ToNumber(left) + ToNumber(right), nil
	case "-":
		return ToNumber(left) - ToNumber(right), nil
	case "*":
		return ToNumber(left) * ToNumber(right), nil
	case "/":
		return ToNumber(left) / ToNumber(right), nil
	case "%":
		return math.Mod(ToNumber(left), ToNumber(right)), nil
	case "**":
		return power(ToNumber(left), ToNumber(right)), nil
	case "==":
		return LooseEquals(left, right), nil
	case "!=":
		return !LooseEquals(left, right), nil
	case "===":
		return StrictEquals(left, right), nil
	case "!==":
		return !StrictEquals(left, right), nil
	case "<", ">", "<=", ">=":
		return compare(op, toPrimitive(left), toPrimitive(right)), nil
	case "&":
		return float64(toInt32(left) & toInt32(right)), nil
	case "|":
		return float64(toInt32(left) | toInt32(right)), nil
	case "^":
		return float64(toInt32(left) ^ toInt32(right)), nil
	case "<<":
		return float64(toInt32(left) << (toUint32(right) & 31)), nil
	case ">>":
		return float64(toInt32(left) >> (toUint32(right) & 31)), nil
	case ">>>":
		return float64(toUint32(left) >> (toUint32(right) & 31)), nil
	case "instanceof":
		return instanceOf(left, right)
	case "in":
		key := ToString(left)
		switch actual := right.(type) {
		case *Object:
			return actual.Has(key), nil
		case *Array:
			if key == "length" {
				return true, nil
			}
			index, ok := arrayIndex(key)
			return ok && index < len(actual.Elements), nil
		case *Class:
			_, ok := actual.staticMember(key)
			return ok, nil
		}
		return nil, NewError(TypeError, "Cannot use 'in' operator to search for '%s' in %s", key, ToString(right))
	}
	return nil, NewError(SyntaxError, "Unexpected token '%s'", op)
}

func toPrimitive(value interface{}) interface{} {
	switch value.(type) {
	case *Array, *Object, *Function, *Native, *Class:
		return ToString(value)
	}
	return value
}

func power(base, exponent float64) float64 {
	if math.IsNaN(exponent) || (math.Abs(base) == 1 && math.IsInf(exponent, 0)) {
		return math.NaN()
	}
	return math.Pow(base, exponent)
}

func compare(op string, left, right interface{}) bool {
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			switch op {
			case "<":
				return l < r
			case ">":
				return l > r
			case "<=":
				return l <= r
			}
			return l >= r
		}
	}
	l, r := ToNumber(left), ToNumber(right)
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	}
	return l >= r
}

func instanceOf(left, right interface{}) (interface{}, error) {
	switch actual := right.(type) {
	case *Class:
		obj, ok := left.(*Object)
		if !ok {
			return false, nil
		}
		for class := obj.class; class != nil; class = class.Parent {
			if class == actual {
				return true, nil
			}
		}
		return false, nil
	case *Native:
		switch actual.Name {
		case "Array":
			_, ok := left.(*Array)
			return ok, nil
		case "Object":
			switch left.(type) {
			case *Object, *Array, *Function, *Native, *Class:
				return true, nil
			}
		case "Function":
			return IsCallable(left), nil
		}
		return false, nil
	case *Function:
		return false, nil
	}
	return nil, NewError(TypeError, "Right-hand side of 'instanceof' is not callable")
}

// memberTarget evaluates object and key of a member expression
func (i *Interpreter) memberTarget(expr *MemberExpression, scope *Scope) (interface{}, string, error) {
	object, err := i.eval(expr.Object, scope)
	if err != nil {
		return nil, "", err
	}
	if expr.Optional && isNullish(object) {
		return nil, "", errShortCircuit
	}
	key := expr.Property
	if expr.Computed != nil {
		computed, err := i.eval(expr.Computed, scope)
		if err != nil {
			return nil, "", err
		}
		key = ToString(computed)
	}
	if isNullish(object) {
		return nil, "", NewError(TypeError, "Cannot read properties of %s (reading '%s')", ToString(object), key)
	}
	return object, key, nil
}

func (i *Interpreter) getMember(object interface{}, key string) (interface{}, error) {
	switch actual := object.(type) {
	case nil, UndefinedValue:
		return nil, NewError(TypeError, "Cannot read properties of %s (reading '%s')", ToString(object), key)
	case *Object:
		if actual.Has(key) {
			return actual.Get(key), nil
		}
		if method := i.method(objectMethods, "Object", key); method != nil {
			return method, nil
		}
		return Undefined, nil
	case *Array:
		if key == "length" {
			return float64(len(actual.Elements)), nil
		}
		if index, ok := arrayIndex(key); ok {
			if index < len(actual.Elements) {
				return actual.Elements[index], nil
			}
			return Undefined, nil
		}
		if method := i.method(arrayMethods, "Array", key); method != nil {
			return method, nil
		}
	case string:
		if key == "length" {
			return float64(utf8.RuneCountInString(actual)), nil
		}
		if index, ok := arrayIndex(key); ok {
			runes := []rune(actual)
			if index < len(runes) {
				return string(runes[index]), nil
			}
			return Undefined, nil
		}
		if method := i.method(stringMethods, "String", key); method != nil {
			return method, nil
		}
	case float64:
		if method := i.method(numberMethods, "Number", key); method != nil {
			return method, nil
		}
	case bool:
		if key == "toString" {
			return i.method(objectMethods, "Object", key), nil
		}
	case *Function:
		switch key {
		case "name":
			return actual.Name, nil
		case "length":
			return float64(paramCount(actual.literal)), nil
		}
		if actual.props != nil && actual.props.Has(key) {
			return actual.props.Get(key), nil
		}
		if method := i.method(functionMethods, "Function", key); method != nil {
			return method, nil
		}
	case *Native:
		if actual.Members != nil && actual.Members.Has(key) {
			return actual.Members.Get(key), nil
		}
		if key == "name" {
			return actual.Name, nil
		}
		if method := i.method(functionMethods, "Function", key); method != nil {
			return method, nil
		}
	case *Class:
		if value, ok := actual.staticMember(key); ok {
			return value, nil
		}
		if key == "name" {
			return actual.Name, nil
		}
		if method := i.method(functionMethods, "Function", key); method != nil {
			return method, nil
		}
	}
	return Undefined, nil
}

func paramCount(literal *FunctionLiteral) int {
	if literal == nil {
		return 0
	}
	count := 0
	for _, param := range literal.Params {
		if param.Rest || param.Default != nil {
			break
		}
		count++
	}
	return count
}

func (c *Class) staticMember(key string) (interface{}, bool) {
	for class := c; class != nil; class = class.Parent {
		if value, ok := class.static.Own(key); ok {
			return value, true
		}
	}
	return nil, false
}

func (i *Interpreter) setMember(object interface{}, key string, value interface{}) error {
	switch actual := object.(type) {
	case nil, UndefinedValue:
		return NewError(TypeError, "Cannot set properties of %s (setting '%s')", ToString(object), key)
	case *Object:
		actual.Set(key, value)
	case *Array:
		if key == "length" {
			length := ToNumber(value)
			if length < 0 || length != math.Trunc(length) || math.IsNaN(length) {
				return NewError(RangeError, "Invalid array length")
			}
			n := int(length)
			for len(actual.Elements) < n {
				actual.Elements = append(actual.Elements, Undefined)
			}
			actual.Elements = actual.Elements[:n]
			return nil
		}
		if index, ok := arrayIndex(key); ok {
			for len(actual.Elements) <= index {
				actual.Elements = append(actual.Elements, Undefined)
			}
			actual.Elements[index] = value
		}
	case *Function:
		if actual.props == nil {
			actual.props = NewObject()
		}
		actual.props.Set(key, value)
	case *Native:
		if actual.Members == nil {
			actual.Members = NewObject()
		}
		actual.Members.Set(key, value)
	case *Class:
		actual.static.Set(key, value)
	}
	return nil
}

func (i *Interpreter) superMember(property string, scope *Scope) (interface{}, interface{}, error) {
	thisScope := scope.thisScope()
	if thisScope == nil || thisScope.home == nil || thisScope.home.Parent == nil {
		return nil, nil, NewError(SyntaxError, "'super' keyword unexpected here")
	}
	parent := thisScope.home.Parent
	if class, ok := thisScope.this.(*Class); ok && class != nil {
		value, _ := parent.staticMember(property)
		if value == nil {
			return Undefined, thisScope.this, nil
		}
		return value, thisScope.this, nil
	}
	for class := parent; class != nil; class = class.Parent {
		if method, ok := class.methods[property]; ok {
			return method, thisScope.this, nil
		}
	}
	return Undefined, thisScope.this, nil
}

func (i *Interpreter) evalArgs(args []Expression, scope *Scope) ([]interface{}, error) {
	values := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if spread, ok := arg.(*SpreadElement); ok {
			value, err := i.eval(spread.Argument, scope)
			if err != nil {
				return nil, err
			}
			items, err := i.iterate(value)
			if err != nil {
				return nil, err
			}
			values = append(values, items...)
			continue
		}
		value, err := i.eval(arg, scope)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (i *Interpreter) evalCall(expr *CallExpression, scope *Scope) (interface{}, error) {
	var callee interface{}
	var this interface{} = Undefined
	var err error
	switch actual := expr.Callee.(type) {
	case *MemberExpression:
		var object interface{}
		var key string
		if object, key, err = i.memberTarget(actual, scope); err != nil {
			return nil, err
		}
		if callee, err = i.getMember(object, key); err != nil {
			return nil, err
		}
		this = object
	case *SuperMember:
		if callee, this, err = i.superMember(actual.Property, scope); err != nil {
			return nil, err
		}
	default:
		if callee, err = i.eval(expr.Callee, scope); err != nil {
			return nil, err
		}
	}
	if expr.Optional && isNullish(callee) {
		return nil, errShortCircuit
	}
	args, err := i.evalArgs(expr.Args, scope)
	if err != nil {
		return nil, err
	}
	if !IsCallable(callee) {
		return nil, NewError(TypeError, "%s is not a function", describe(expr.Callee))
	}
	return i.call(callee, this, args)
}

// describe renders a callee expression for error messages
func describe(expr Expression) string {
	switch actual := expr.(type) {
	case *Ident:
		return actual.Name
	case *ThisExpression:
		return "this"
	case *MemberExpression:
		if actual.Computed != nil {
			return describe(actual.Object) + "[...]"
		}
		return describe(actual.Object) + "." + actual.Property
	case *SuperMember:
		return "(intermediate value)." + actual.Property
	case *CallExpression:
		return describe(actual.Callee) + "(...)"
	case *OptionalChain:
		return describe(actual.Expression)
	}
	return "expression"
}

func (i *Interpreter) call(callee interface{}, this interface{}, args []interface{}) (interface{}, error) {
	if err := i.checkContext(); err != nil {
		return nil, err
	}
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.maxCallDepth {
		return nil, NewError(RangeError, "Maximum call stack size exceeded")
	}
	switch actual := callee.(type) {
	case *Native:
		return actual.Fn(&Call{Interp: i, This: this, Args: args})
	case *Function:
		return i.callFunction(actual, this, args)
	case *Class:
		if actual.init != nil {
			return i.construct(actual, args, actual.Name)
		}
		return nil, NewError(TypeError, "Class constructor %s cannot be invoked without 'new'", actual.Name)
	}
	return nil, NewError(TypeError, "%s is not a function", Inspect(callee))
}

// evalFunction creates a function expression; a named one sees its own name
func (i *Interpreter) evalFunction(literal *FunctionLiteral, scope *Scope) *Function {
	if literal.Name == "" || literal.Arrow || literal.Method {
		return i.newFunction(literal, scope, nil)
	}
	own := NewScope(scope)
	fn := i.newFunction(literal, own, nil)
	own.Declare(literal.Name, fn, true)
	return fn
}

func (i *Interpreter) newFunction(literal *FunctionLiteral, scope *Scope, home *Class) *Function {
	return &Function{Name: literal.Name, literal: literal, scope: scope, home: home}
}

func (i *Interpreter) callFunction(fn *Function, this interface{}, args []interface{}) (interface{}, error) {
	literal := fn.literal
	scope := newFunctionScope(fn.scope)
	if !literal.Arrow {
		scope.hasThis = true
		scope.this = this
		scope.home = fn.home
		scope.Declare("arguments", NewArray(append([]interface{}{}, args...)...), false)
	}
	for index, param := range literal.Params {
		var value interface{} = Undefined
		if param.Rest {
			var rest []interface{}
			if index < len(args) {
				rest = append(rest, args[index:]...)
			}
			value = NewArray(rest...)
		} else if index < len(args) {
			value = args[index]
		}
		value, err := i.withDefault(value, param.Default, param.Target, scope)
		if err != nil {
			return nil, err
		}
		if err = i.bindPattern(param.Target, value, scope, "param"); err != nil {
			return nil, err
		}
	}
	if literal.ExprBody != nil {
		return i.eval(literal.ExprBody, scope)
	}
	i.hoistVars(literal.Body, scope)
	c, err := i.execBlock(literal.Body, scope)
	if err != nil {
		return nil, err
	}
	if c.kind == returnCompletion {
		return c.value, nil
	}
	return Undefined, nil
}

func (i *Interpreter) evalClass(literal *ClassLiteral, scope *Scope) (*Class, error) {
	class := newClass(literal.Name)
	class.source = literal.Source
	if literal.Super != nil {
		parent, err := i.eval(literal.Super, scope)
		if err != nil {
			return nil, err
		}
		parentClass, ok := parent.(*Class)
		if !ok {
			return nil, NewError(TypeError, "Class extends value %s is not a constructor or null", Inspect(parent))
		}
		class.Parent = parentClass
	}
	classScope := NewScope(scope)
	if literal.Name != "" {
		classScope.Declare(literal.Name, class, true)
	}
	class.scope = classScope
	if literal.Constructor != nil {
		class.constructor = i.newFunction(literal.Constructor, classScope, class)
	}
	for _, member := range literal.Members {
		switch {
		case member.Function != nil && member.Static:
			class.static.Set(member.Name, i.newFunction(member.Function, classScope, class))
		case member.Function != nil:
			class.methods[member.Name] = i.newFunction(member.Function, classScope, class)
		case member.Static:
			fieldScope := NewScope(classScope)
			fieldScope.hasThis = true
			fieldScope.this = class
			fieldScope.home = class
			var value interface{} = Undefined
			if member.Value != nil {
				var err error
				if value, err = i.eval(member.Value, fieldScope); err != nil {
					return nil, err
				}
				inferName(&Ident{Name: member.Name}, member.Value, value)
			}
			class.static.Set(member.Name, value)
		default:
			class.fields = append(class.fields, member)
		}
	}
	return class, nil
}

func (i *Interpreter) construct(callee interface{}, args []interface{}, name string) (interface{}, error) {
	switch actual := callee.(type) {
	case *Class:
		obj := &Object{values: map[string]interface{}{}, class: actual}
		if err := i.initialize(actual, obj, args); err != nil {
			return nil, err
		}
		return obj, nil
	case *Native:
		if actual.Construct != nil {
			return actual.Construct(&Call{Interp: i, This: Undefined, Args: args})
		}
	case *Function:
		if !actual.literal.Arrow && !actual.literal.Method {
			obj := NewObject()
			result, err := i.call(actual, obj, args)
			if err != nil {
				return nil, err
			}
			switch result.(type) {
			case *Object, *Array:
				return result, nil
			}
			return obj, nil
		}
	}
	return nil, NewError(TypeError, "%s is not a constructor", name)
}

// initialize runs the constructor chain of class against obj
func (i *Interpreter) initialize(class *Class, obj *Object, args []interface{}) error {
	if class.init != nil {
		class.init(obj, args)
		return nil
	}
	if class.constructor == nil {
		if class.Parent != nil {
			if err := i.initialize(class.Parent, obj, args); err != nil {
				return err
			}
		}
		return i.initFields(class, obj)
	}
	if class.Parent == nil {
		if err := i.initFields(class, obj); err != nil {
			return err
		}
	}
	_, err := i.call(class.constructor, obj, args)
	return err
}

func (i *Interpreter) initFields(class *Class, obj *Object) error {
	if len(class.fields) == 0 {
		return nil
	}
	scope := NewScope(class.scope)
	scope.hasThis = true
	scope.this = obj
	scope.home = class
	for _, field := range class.fields {
		var value interface{} = Undefined
		if field.Value != nil {
			var err error
			if value, err = i.eval(field.Value, scope); err != nil {
				return err
			}
			inferName(&Ident{Name: field.Name}, field.Value, value)
		}
		obj.Set(field.Name, value)
	}
	return nil
}

func (i *Interpreter) evalSuperCall(expr *SuperCall, scope *Scope) (interface{}, error) {
	thisScope := scope.thisScope()
	if thisScope == nil || thisScope.home == nil || thisScope.home.Parent == nil {
		return nil, NewError(SyntaxError, "'super' keyword unexpected here")
	}
	obj, ok := thisScope.this.(*Object)
	if !ok {
		return nil, NewError(SyntaxError, "'super' keyword unexpected here")
	}
	args, err := i.evalArgs(expr.Args, scope)
	if err != nil {
		return nil, err
	}
	if err = i.initialize(thisScope.home.Parent, obj, args); err != nil {
		return nil, err
	}
	if err = i.initFields(thisScope.home, obj); err != nil {
		return nil, err
	}
	return Undefined, nil
}

// iterate returns the elements produced by iterating value
func (i *Interpreter) iterate(value interface{}) ([]interface{}, error) {
	switch actual := value.(type) {
	case *Array:
		return append([]interface{}{}, actual.Elements...), nil
	case string:
		runes := []rune(actual)
		items := make([]interface{}, len(runes))
		for index, r := range runes {
			items[index] = string(r)
		}
		return items, nil
	}
	return nil, NewError(TypeError, "%s is not iterable", Inspect(value))
}
