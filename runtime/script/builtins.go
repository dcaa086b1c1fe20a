package script

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ErrorKinds lists builtin error constructors
var ErrorKinds = []string{GenericError, TypeError, RangeError, SyntaxError, ReferenceError}

func (i *Interpreter) installBuiltins() {
	i.DefineGlobal("undefined", Undefined)
	i.DefineGlobal("NaN", math.NaN())
	i.DefineGlobal("Infinity", math.Inf(1))
	if i.console != nil {
		i.DefineGlobal("console", i.newConsole())
	}
	i.DefineGlobal("Math", newMath())
	i.DefineGlobal("JSON", i.newJSON())
	i.DefineGlobal("Object", newObjectConstructor())
	i.DefineGlobal("Array", newArrayConstructor())
	i.DefineGlobal("Number", newNumberConstructor())
	i.DefineGlobal("String", &Native{Name: "String", Fn: func(call *Call) (interface{}, error) {
		if len(call.Args) == 0 {
			return "", nil
		}
		return ToString(call.Args[0]), nil
	}, Members: objectOf("fromCharCode", NewNative("fromCharCode", func(call *Call) (interface{}, error) {
		var builder strings.Builder
		for _, arg := range call.Args {
			builder.WriteRune(rune(toUint32(arg) & 0xFFFF))
		}
		return builder.String(), nil
	}))})
	i.DefineGlobal("Boolean", NewNative("Boolean", func(call *Call) (interface{}, error) {
		return ToBoolean(call.Arg(0)), nil
	}))
	i.DefineGlobal("Function", NewNative("Function", func(call *Call) (interface{}, error) {
		return nil, NewError(GenericError, "Code generation from strings disallowed for this context")
	}))
	i.DefineGlobal("parseInt", NewNative("parseInt", parseInt))
	i.DefineGlobal("parseFloat", NewNative("parseFloat", parseFloat))
	i.DefineGlobal("isNaN", NewNative("isNaN", func(call *Call) (interface{}, error) {
		return math.IsNaN(ToNumber(call.Arg(0))), nil
	}))
	i.DefineGlobal("isFinite", NewNative("isFinite", func(call *Call) (interface{}, error) {
		number := ToNumber(call.Arg(0))
		return !math.IsNaN(number) && !math.IsInf(number, 0), nil
	}))
	i.DefineGlobal("Date", &Native{Name: "Date", Fn: func(call *Call) (interface{}, error) {
		return time.Now().UTC().Format(time.RFC3339), nil
	}, Members: objectOf("now", NewNative("now", func(call *Call) (interface{}, error) {
		return float64(time.Now().UnixMilli()), nil
	}))})
	for _, kind := range ErrorKinds {
		i.DefineGlobal(kind, i.errorClass(kind))
	}
}

func objectOf(pairs ...interface{}) *Object {
	obj := NewObject()
	for index := 0; index+1 < len(pairs); index += 2 {
		obj.Set(pairs[index].(string), pairs[index+1])
	}
	return obj
}

func (i *Interpreter) newConsole() *Object {
	emit := func(name string) *Native {
		return NewNative(name, func(call *Call) (interface{}, error) {
			parts := make([]string, len(call.Args))
			for index, arg := range call.Args {
				text, err := ConsoleText(arg)
				if err != nil {
					return nil, err
				}
				parts[index] = text
			}
			i.console.Print(strings.Join(parts, " "))
			return Undefined, nil
		})
	}
	return objectOf(
		"log", emit("log"),
		"info", emit("info"),
		"warn", emit("warn"),
		"error", emit("error"),
		"debug", emit("debug"),
	)
}

// errorClass returns the builtin error class of kind, creating it on demand
func (i *Interpreter) errorClass(kind string) *Class {
	if class, ok := i.errorClasses[kind]; ok {
		return class
	}
	class := newClass(kind)
	class.methods["name"] = kind
	class.init = func(obj *Object, args []interface{}) {
		message := ""
		if len(args) > 0 && !IsUndefined(args[0]) {
			message = ToString(args[0])
		}
		obj.Set("message", message)
	}
	if kind == GenericError {
		class.errorBase = true
		class.methods["toString"] = NewNative("toString", func(call *Call) (interface{}, error) {
			return ToString(call.This), nil
		})
	} else {
		class.Parent = i.errorClass(GenericError)
	}
	i.errorClasses[kind] = class
	return class
}

func (i *Interpreter) newErrorObject(kind string, message string) *Object {
	obj := &Object{values: map[string]interface{}{}, class: i.errorClass(kind)}
	obj.Set("message", message)
	return obj
}

func newMath() *Object {
	unary := func(name string, fn func(float64) float64) *Native {
		return NewNative(name, func(call *Call) (interface{}, error) {
			return fn(ToNumber(call.Arg(0))), nil
		})
	}
	extreme := func(name string, initial float64, better func(a, b float64) bool) *Native {
		return NewNative(name, func(call *Call) (interface{}, error) {
			result := initial
			for _, arg := range call.Args {
				number := ToNumber(arg)
				if math.IsNaN(number) {
					return math.NaN(), nil
				}
				if better(number, result) {
					result = number
				}
			}
			return result, nil
		})
	}
	return objectOf(
		"PI", math.Pi,
		"E", math.E,
		"LN2", math.Ln2,
		"LN10", math.Ln10,
		"LOG2E", math.Log2E,
		"LOG10E", math.Log10E,
		"SQRT2", math.Sqrt2,
		"SQRT1_2", math.Sqrt2/2,
		"abs", unary("abs", math.Abs),
		"floor", unary("floor", math.Floor),
		"ceil", unary("ceil", math.Ceil),
		"round", unary("round", func(x float64) float64 { return math.Floor(x + 0.5) }),
		"trunc", unary("trunc", math.Trunc),
		"sign", unary("sign", func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return -1
			}
			return x
		}),
		"sqrt", unary("sqrt", math.Sqrt),
		"cbrt", unary("cbrt", math.Cbrt),
		"log", unary("log", math.Log),
		"log2", unary("log2", math.Log2),
		"log10", unary("log10", math.Log10),
		"exp", unary("exp", math.Exp),
		"sin", unary("sin", math.Sin),
		"cos", unary("cos", math.Cos),
		"tan", unary("tan", math.Tan),
		"asin", unary("asin", math.Asin),
		"acos", unary("acos", math.Acos),
		"atan", unary("atan", math.Atan),
		"pow", NewNative("pow", func(call *Call) (interface{}, error) {
			return power(ToNumber(call.Arg(0)), ToNumber(call.Arg(1))), nil
		}),
		"atan2", NewNative("atan2", func(call *Call) (interface{}, error) {
			return math.Atan2(ToNumber(call.Arg(0)), ToNumber(call.Arg(1))), nil
		}),
		"hypot", NewNative("hypot", func(call *Call) (interface{}, error) {
			sum := 0.0
			for _, arg := range call.Args {
				number := ToNumber(arg)
				sum += number * number
			}
			return math.Sqrt(sum), nil
		}),
		"min", extreme("min", math.Inf(1), func(a, b float64) bool { return a < b }),
		"max", extreme("max", math.Inf(-1), func(a, b float64) bool { return a > b }),
		"random", NewNative("random", func(call *Call) (interface{}, error) {
			return rand.Float64(), nil
		}),
	)
}

func newObjectConstructor() *Native {
	return &Native{
		Name: "Object",
		Fn: func(call *Call) (interface{}, error) {
			switch arg := call.Arg(0).(type) {
			case *Object, *Array:
				return arg, nil
			}
			return NewObject(), nil
		},
		Construct: func(call *Call) (interface{}, error) {
			return NewObject(), nil
		},
		Members: objectOf(
			"keys", NewNative("keys", func(call *Call) (interface{}, error) {
				return NewArray(ownEntries(call.Arg(0), func(key string, _ interface{}) interface{} { return key })...), nil
			}),
			"values", NewNative("values", func(call *Call) (interface{}, error) {
				return NewArray(ownEntries(call.Arg(0), func(_ string, value interface{}) interface{} { return value })...), nil
			}),
			"entries", NewNative("entries", func(call *Call) (interface{}, error) {
				return NewArray(ownEntries(call.Arg(0), func(key string, value interface{}) interface{} {
					return NewArray(key, value)
				})...), nil
			}),
			"assign", NewNative("assign", func(call *Call) (interface{}, error) {
				target, ok := call.Arg(0).(*Object)
				if !ok {
					return nil, NewError(TypeError, "Cannot convert undefined or null to object")
				}
				for _, source := range call.Args[1:] {
					spreadInto(target, source)
				}
				return target, nil
			}),
			"fromEntries", NewNative("fromEntries", func(call *Call) (interface{}, error) {
				items, err := call.Interp.iterate(call.Arg(0))
				if err != nil {
					return nil, err
				}
				result := NewObject()
				for _, item := range items {
					pair, ok := item.(*Array)
					if !ok {
						return nil, NewError(TypeError, "Iterator value %s is not an entry object", ToString(item))
					}
					var key, value interface{} = Undefined, Undefined
					if len(pair.Elements) > 0 {
						key = pair.Elements[0]
					}
					if len(pair.Elements) > 1 {
						value = pair.Elements[1]
					}
					result.Set(ToString(key), value)
				}
				return result, nil
			}),
			"freeze", NewNative("freeze", func(call *Call) (interface{}, error) {
				return call.Arg(0), nil
			}),
		),
	}
}

func ownEntries(value interface{}, fn func(key string, value interface{}) interface{}) []interface{} {
	var result []interface{}
	switch actual := value.(type) {
	case *Object:
		for _, key := range actual.keys {
			result = append(result, fn(key, actual.values[key]))
		}
	case *Array:
		for index, element := range actual.Elements {
			result = append(result, fn(numberToString(float64(index)), element))
		}
	case string:
		for index, r := range []rune(actual) {
			result = append(result, fn(numberToString(float64(index)), string(r)))
		}
	}
	return result
}

func newArrayConstructor() *Native {
	create := func(call *Call) (interface{}, error) {
		if len(call.Args) == 1 {
			if length, ok := call.Args[0].(float64); ok {
				if length < 0 || length != math.Trunc(length) {
					return nil, NewError(RangeError, "Invalid array length")
				}
				elements := make([]interface{}, int(length))
				for index := range elements {
					elements[index] = Undefined
				}
				return NewArray(elements...), nil
			}
		}
		return NewArray(append([]interface{}{}, call.Args...)...), nil
	}
	return &Native{
		Name:      "Array",
		Fn:        create,
		Construct: create,
		Members: objectOf(
			"isArray", NewNative("isArray", func(call *Call) (interface{}, error) {
				_, ok := call.Arg(0).(*Array)
				return ok, nil
			}),
			"of", NewNative("of", func(call *Call) (interface{}, error) {
				return NewArray(append([]interface{}{}, call.Args...)...), nil
			}),
			"from", NewNative("from", func(call *Call) (interface{}, error) {
				source := call.Arg(0)
				var items []interface{}
				if obj, ok := source.(*Object); ok {
					length := int(ToNumber(obj.Get("length")))
					for index := 0; index < length; index++ {
						items = append(items, obj.Get(numberToString(float64(index))))
					}
				} else if !isNullish(source) {
					var err error
					if items, err = call.Interp.iterate(source); err != nil {
						return nil, err
					}
				} else {
					return nil, NewError(TypeError, "%s is not iterable", ToString(source))
				}
				if mapper := call.Arg(1); IsCallable(mapper) {
					for index, item := range items {
						mapped, err := call.Interp.call(mapper, Undefined, []interface{}{item, float64(index)})
						if err != nil {
							return nil, err
						}
						items[index] = mapped
					}
				}
				return NewArray(items...), nil
			}),
		),
	}
}

func newNumberConstructor() *Native {
	return &Native{
		Name: "Number",
		Fn: func(call *Call) (interface{}, error) {
			if len(call.Args) == 0 {
				return 0.0, nil
			}
			return ToNumber(call.Args[0]), nil
		},
		Members: objectOf(
			"MAX_SAFE_INTEGER", float64(1<<53-1),
			"MIN_SAFE_INTEGER", -float64(1<<53-1),
			"EPSILON", math.Nextafter(1, 2)-1,
			"MAX_VALUE", math.MaxFloat64,
			"MIN_VALUE", 5e-324,
			"POSITIVE_INFINITY", math.Inf(1),
			"NEGATIVE_INFINITY", math.Inf(-1),
			"NaN", math.NaN(),
			"isInteger", NewNative("isInteger", func(call *Call) (interface{}, error) {
				number, ok := call.Arg(0).(float64)
				return ok && !math.IsInf(number, 0) && number == math.Trunc(number), nil
			}),
			"isFinite", NewNative("isFinite", func(call *Call) (interface{}, error) {
				number, ok := call.Arg(0).(float64)
				return ok && !math.IsInf(number, 0) && !math.IsNaN(number), nil
			}),
			"isNaN", NewNative("isNaN", func(call *Call) (interface{}, error) {
				number, ok := call.Arg(0).(float64)
				return ok && math.IsNaN(number), nil
			}),
			"parseFloat", NewNative("parseFloat", parseFloat),
			"parseInt", NewNative("parseInt", parseInt),
		),
	}
}

func parseInt(call *Call) (interface{}, error) {
	text := strings.TrimSpace(ToString(call.Arg(0)))
	radix := 10
	if arg := call.Arg(1); !IsUndefined(arg) {
		radix = int(toInt32(arg))
	}
	sign := 1.0
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		if text[0] == '-' {
			sign = -1
		}
		text = text[1:]
	}
	if (radix == 16 || radix == 0) && len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		text = text[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}
	if radix < 2 || radix > 36 {
		return math.NaN(), nil
	}
	end := 0
	for end < len(text) {
		digit, err := strconv.ParseInt(text[end:end+1], 36, 64)
		if err != nil || int(digit) >= radix {
			break
		}
		end++
	}
	if end == 0 {
		return math.NaN(), nil
	}
	result := 0.0
	for _, c := range text[:end] {
		digit, _ := strconv.ParseInt(string(c), 36, 64)
		result = result*float64(radix) + float64(digit)
	}
	return sign * result, nil
}

func parseFloat(call *Call) (interface{}, error) {
	text := strings.TrimSpace(ToString(call.Arg(0)))
	for _, prefix := range []string{"Infinity", "+Infinity", "-Infinity"} {
		if strings.HasPrefix(text, prefix) {
			return stringToNumber(prefix), nil
		}
	}
	end := 0
	seenDot, seenExp, seenDigit := false, false, false
scan:
	for end < len(text) {
		c := text[end]
		switch {
		case isDecimalDigit(c):
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || text[end-1] == 'e' || text[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			break scan
		}
		end++
	}
	for end > 0 {
		if value, err := strconv.ParseFloat(text[:end], 64); err == nil {
			return value, nil
		}
		end--
	}
	return math.NaN(), nil
}
