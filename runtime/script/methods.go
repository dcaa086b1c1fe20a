package script

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	objectMethods   map[string]NativeFunc
	arrayMethods    map[string]NativeFunc
	stringMethods   map[string]NativeFunc
	numberMethods   map[string]NativeFunc
	functionMethods map[string]NativeFunc
)

// method returns a cached native for a builtin method of typeName
func (i *Interpreter) method(table map[string]NativeFunc, typeName, key string) *Native {
	fn, ok := table[key]
	if !ok {
		return nil
	}
	cacheKey := typeName + "." + key
	if native, ok := i.methods[cacheKey]; ok {
		return native
	}
	native := NewNative(key, fn)
	i.methods[cacheKey] = native
	return native
}

// invoke calls a callback argument
func (c *Call) invoke(fn interface{}, args ...interface{}) (interface{}, error) {
	if !IsCallable(fn) {
		return nil, NewError(TypeError, "%s is not a function", Inspect(fn))
	}
	return c.Interp.call(fn, Undefined, args)
}

func onArray(fn func(call *Call, array *Array) (interface{}, error)) NativeFunc {
	return func(call *Call) (interface{}, error) {
		array, ok := call.This.(*Array)
		if !ok {
			return nil, NewError(TypeError, "Array.prototype method called on incompatible receiver %s", ToString(call.This))
		}
		return fn(call, array)
	}
}

func onString(fn func(call *Call, text string) (interface{}, error)) NativeFunc {
	return func(call *Call) (interface{}, error) {
		text, ok := call.This.(string)
		if !ok {
			return nil, NewError(TypeError, "String.prototype method called on incompatible receiver %s", ToString(call.This))
		}
		return fn(call, text)
	}
}

func onNumber(fn func(call *Call, number float64) (interface{}, error)) NativeFunc {
	return func(call *Call) (interface{}, error) {
		number, ok := call.This.(float64)
		if !ok {
			return nil, NewError(TypeError, "Number.prototype method called on incompatible receiver %s", ToString(call.This))
		}
		return fn(call, number)
	}
}

// iterateArray calls fn for each element until it reports stop
func iterateArray(call *Call, array *Array, fn func(index int, element, result interface{}) (bool, error)) error {
	callback := call.Arg(0)
	if !IsCallable(callback) {
		return NewError(TypeError, "%s is not a function", Inspect(callback))
	}
	for index := 0; index < len(array.Elements); index++ {
		element := array.Elements[index]
		result, err := call.Interp.call(callback, call.Arg(1), []interface{}{element, float64(index), array})
		if err != nil {
			return err
		}
		stop, err := fn(index, element, result)
		if err != nil || stop {
			return err
		}
	}
	return nil
}

func sameValueZero(left, right interface{}) bool {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if lok && rok && math.IsNaN(l) && math.IsNaN(r) {
		return true
	}
	return StrictEquals(left, right)
}

func reduceArray(call *Call, array *Array, reverse bool) (interface{}, error) {
	callback := call.Arg(0)
	if !IsCallable(callback) {
		return nil, NewError(TypeError, "%s is not a function", Inspect(callback))
	}
	indexes := make([]int, len(array.Elements))
	for index := range indexes {
		indexes[index] = index
		if reverse {
			indexes[index] = len(indexes) - 1 - index
		}
	}
	var accumulator interface{}
	if len(call.Args) > 1 {
		accumulator = call.Args[1]
	} else {
		if len(indexes) == 0 {
			return nil, NewError(TypeError, "Reduce of empty array with no initial value")
		}
		accumulator = array.Elements[indexes[0]]
		indexes = indexes[1:]
	}
	for _, index := range indexes {
		if index >= len(array.Elements) {
			continue
		}
		var err error
		accumulator, err = call.Interp.call(callback, Undefined, []interface{}{accumulator, array.Elements[index], float64(index), array})
		if err != nil {
			return nil, err
		}
	}
	return accumulator, nil
}

func flatten(elements []interface{}, depth float64) []interface{} {
	result := make([]interface{}, 0, len(elements))
	for _, element := range elements {
		if nested, ok := element.(*Array); ok && depth >= 1 {
			result = append(result, flatten(nested.Elements, depth-1)...)
			continue
		}
		result = append(result, element)
	}
	return result
}

func sortArray(call *Call, array *Array) (interface{}, error) {
	comparator := call.Arg(0)
	if !IsUndefined(comparator) && !IsCallable(comparator) {
		return nil, NewError(TypeError, "The comparison function must be either a function or undefined")
	}
	var failure error
	sort.SliceStable(array.Elements, func(a, b int) bool {
		left, right := array.Elements[a], array.Elements[b]
		if failure != nil {
			return false
		}
		if IsUndefined(left) || IsUndefined(right) {
			return !IsUndefined(left) && IsUndefined(right)
		}
		if IsUndefined(comparator) {
			return ToString(left) < ToString(right)
		}
		result, err := call.Interp.call(comparator, Undefined, []interface{}{left, right})
		if err != nil {
			failure = err
			return false
		}
		return ToNumber(result) < 0
	})
	if failure != nil {
		return nil, failure
	}
	return array, nil
}

// runeIndex converts a byte offset within text into a character index
func runeIndex(text string, offset int) float64 {
	return float64(utf8.RuneCountInString(text[:offset]))
}

func pad(call *Call, text string, atStart bool) (interface{}, error) {
	length := int(ToNumber(call.Arg(0)))
	filler := " "
	if arg := call.Arg(1); !IsUndefined(arg) {
		filler = ToString(arg)
	}
	current := utf8.RuneCountInString(text)
	if length <= current || filler == "" {
		return text, nil
	}
	fill := []rune(strings.Repeat(filler, (length-current)/utf8.RuneCountInString(filler)+1))[:length-current]
	if atStart {
		return string(fill) + text, nil
	}
	return text + string(fill), nil
}

func replace(call *Call, text string, all bool) (interface{}, error) {
	pattern := ToString(call.Arg(0))
	replacement := call.Arg(1)
	var builder strings.Builder
	position := 0
	for {
		offset := strings.Index(text[position:], pattern)
		if offset < 0 {
			break
		}
		offset += position
		builder.WriteString(text[position:offset])
		if IsCallable(replacement) {
			value, err := call.Interp.call(replacement, Undefined, []interface{}{pattern, runeIndex(text, offset), text})
			if err != nil {
				return nil, err
			}
			builder.WriteString(ToString(value))
		} else {
			builder.WriteString(strings.ReplaceAll(ToString(replacement), "$&", pattern))
		}
		position = offset + len(pattern)
		if !all {
			break
		}
		if pattern == "" {
			if position >= len(text) {
				break
			}
			_, width := utf8.DecodeRuneInString(text[position:])
			builder.WriteString(text[position : position+width])
			position += width
		}
	}
	builder.WriteString(text[position:])
	return builder.String(), nil
}

func formatExponential(number float64, digits int) string {
	formatted := strconv.FormatFloat(number, 'e', digits, 64)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	sign := exponent[:1]
	exponent = strings.TrimLeft(exponent[1:], "0")
	if exponent == "" {
		exponent = "0"
	}
	return mantissa + "e" + sign + exponent
}

func init() {
	objectMethods = map[string]NativeFunc{
		"hasOwnProperty": func(call *Call) (interface{}, error) {
			key := ToString(call.Arg(0))
			switch actual := call.This.(type) {
			case *Object:
				_, ok := actual.Own(key)
				return ok, nil
			case *Array:
				index, ok := arrayIndex(key)
				return ok && index < len(actual.Elements), nil
			}
			return false, nil
		},
		"toString": func(call *Call) (interface{}, error) {
			return ToString(call.This), nil
		},
		"valueOf": func(call *Call) (interface{}, error) {
			return call.This, nil
		},
	}

	arrayMethods = map[string]NativeFunc{
		"push": onArray(func(call *Call, array *Array) (interface{}, error) {
			array.Elements = append(array.Elements, call.Args...)
			return float64(len(array.Elements)), nil
		}),
		"pop": onArray(func(call *Call, array *Array) (interface{}, error) {
			if len(array.Elements) == 0 {
				return Undefined, nil
			}
			last := array.Elements[len(array.Elements)-1]
			array.Elements = array.Elements[:len(array.Elements)-1]
			return last, nil
		}),
		"shift": onArray(func(call *Call, array *Array) (interface{}, error) {
			if len(array.Elements) == 0 {
				return Undefined, nil
			}
			first := array.Elements[0]
			array.Elements = append([]interface{}{}, array.Elements[1:]...)
			return first, nil
		}),
		"unshift": onArray(func(call *Call, array *Array) (interface{}, error) {
			array.Elements = append(append([]interface{}{}, call.Args...), array.Elements...)
			return float64(len(array.Elements)), nil
		}),
		"slice": onArray(func(call *Call, array *Array) (interface{}, error) {
			length := len(array.Elements)
			start, end := toIndex(call.Arg(0), length, 0), toIndex(call.Arg(1), length, length)
			if start >= end {
				return NewArray(), nil
			}
			return NewArray(append([]interface{}{}, array.Elements[start:end]...)...), nil
		}),
		"splice": onArray(func(call *Call, array *Array) (interface{}, error) {
			length := len(array.Elements)
			start := toIndex(call.Arg(0), length, 0)
			count := length - start
			if len(call.Args) > 1 {
				count = int(math.Max(0, math.Min(float64(length-start), math.Trunc(ToNumber(call.Args[1])))))
			}
			if len(call.Args) == 0 {
				count = 0
			}
			removed := append([]interface{}{}, array.Elements[start:start+count]...)
			var inserted []interface{}
			if len(call.Args) > 2 {
				inserted = call.Args[2:]
			}
			elements := append([]interface{}{}, array.Elements[:start]...)
			elements = append(elements, inserted...)
			array.Elements = append(elements, array.Elements[start+count:]...)
			return NewArray(removed...), nil
		}),
		"concat": onArray(func(call *Call, array *Array) (interface{}, error) {
			elements := append([]interface{}{}, array.Elements...)
			for _, arg := range call.Args {
				if other, ok := arg.(*Array); ok {
					elements = append(elements, other.Elements...)
					continue
				}
				elements = append(elements, arg)
			}
			return NewArray(elements...), nil
		}),
		"join": onArray(func(call *Call, array *Array) (interface{}, error) {
			separator := ","
			if arg := call.Arg(0); !IsUndefined(arg) {
				separator = ToString(arg)
			}
			return joinArray(array, separator, map[*Array]bool{}), nil
		}),
		"toString": onArray(func(call *Call, array *Array) (interface{}, error) {
			return ToString(array), nil
		}),
		"reverse": onArray(func(call *Call, array *Array) (interface{}, error) {
			for left, right := 0, len(array.Elements)-1; left < right; left, right = left+1, right-1 {
				array.Elements[left], array.Elements[right] = array.Elements[right], array.Elements[left]
			}
			return array, nil
		}),
		"indexOf": onArray(func(call *Call, array *Array) (interface{}, error) {
			for index := toIndex(call.Arg(1), len(array.Elements), 0); index < len(array.Elements); index++ {
				if StrictEquals(array.Elements[index], call.Arg(0)) {
					return float64(index), nil
				}
			}
			return -1.0, nil
		}),
		"lastIndexOf": onArray(func(call *Call, array *Array) (interface{}, error) {
			for index := len(array.Elements) - 1; index >= 0; index-- {
				if StrictEquals(array.Elements[index], call.Arg(0)) {
					return float64(index), nil
				}
			}
			return -1.0, nil
		}),
		"includes": onArray(func(call *Call, array *Array) (interface{}, error) {
			for _, element := range array.Elements {
				if sameValueZero(element, call.Arg(0)) {
					return true, nil
				}
			}
			return false, nil
		}),
		"at": onArray(func(call *Call, array *Array) (interface{}, error) {
			index := int(ToNumber(call.Arg(0)))
			if index < 0 {
				index += len(array.Elements)
			}
			if index < 0 || index >= len(array.Elements) {
				return Undefined, nil
			}
			return array.Elements[index], nil
		}),
		"fill": onArray(func(call *Call, array *Array) (interface{}, error) {
			length := len(array.Elements)
			for index := toIndex(call.Arg(1), length, 0); index < toIndex(call.Arg(2), length, length); index++ {
				array.Elements[index] = call.Arg(0)
			}
			return array, nil
		}),
		"forEach": onArray(func(call *Call, array *Array) (interface{}, error) {
			return Undefined, iterateArray(call, array, func(int, interface{}, interface{}) (bool, error) {
				return false, nil
			})
		}),
		"map": onArray(func(call *Call, array *Array) (interface{}, error) {
			result := make([]interface{}, 0, len(array.Elements))
			err := iterateArray(call, array, func(_ int, _ interface{}, value interface{}) (bool, error) {
				result = append(result, value)
				return false, nil
			})
			return NewArray(result...), err
		}),
		"filter": onArray(func(call *Call, array *Array) (interface{}, error) {
			var result []interface{}
			err := iterateArray(call, array, func(_ int, element interface{}, value interface{}) (bool, error) {
				if ToBoolean(value) {
					result = append(result, element)
				}
				return false, nil
			})
			return NewArray(result...), err
		}),
		"find": onArray(func(call *Call, array *Array) (interface{}, error) {
			var found interface{} = Undefined
			err := iterateArray(call, array, func(_ int, element interface{}, value interface{}) (bool, error) {
				if ToBoolean(value) {
					found = element
					return true, nil
				}
				return false, nil
			})
			return found, err
		}),
		"findIndex": onArray(func(call *Call, array *Array) (interface{}, error) {
			found := -1.0
			err := iterateArray(call, array, func(index int, _ interface{}, value interface{}) (bool, error) {
				if ToBoolean(value) {
					found = float64(index)
					return true, nil
				}
				return false, nil
			})
			return found, err
		}),
		"findLast": onArray(func(call *Call, array *Array) (interface{}, error) {
			for index := len(array.Elements) - 1; index >= 0; index-- {
				value, err := call.invoke(call.Arg(0), array.Elements[index], float64(index), array)
				if err != nil {
					return nil, err
				}
				if ToBoolean(value) {
					return array.Elements[index], nil
				}
			}
			return Undefined, nil
		}),
		"some": onArray(func(call *Call, array *Array) (interface{}, error) {
			found := false
			err := iterateArray(call, array, func(_ int, _ interface{}, value interface{}) (bool, error) {
				found = ToBoolean(value)
				return found, nil
			})
			return found, err
		}),
		"every": onArray(func(call *Call, array *Array) (interface{}, error) {
			all := true
			err := iterateArray(call, array, func(_ int, _ interface{}, value interface{}) (bool, error) {
				all = ToBoolean(value)
				return !all, nil
			})
			return all, err
		}),
		"reduce": onArray(func(call *Call, array *Array) (interface{}, error) {
			return reduceArray(call, array, false)
		}),
		"reduceRight": onArray(func(call *Call, array *Array) (interface{}, error) {
			return reduceArray(call, array, true)
		}),
		"sort": onArray(sortArray),
		"flat": onArray(func(call *Call, array *Array) (interface{}, error) {
			depth := 1.0
			if arg := call.Arg(0); !IsUndefined(arg) {
				depth = ToNumber(arg)
			}
			return NewArray(flatten(array.Elements, depth)...), nil
		}),
		"flatMap": onArray(func(call *Call, array *Array) (interface{}, error) {
			var result []interface{}
			err := iterateArray(call, array, func(_ int, _ interface{}, value interface{}) (bool, error) {
				result = append(result, value)
				return false, nil
			})
			return NewArray(flatten(result, 1)...), err
		}),
	}

	stringMethods = map[string]NativeFunc{
		"charAt": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			index := int(ToNumber(call.Arg(0)))
			if index < 0 || index >= len(runes) {
				return "", nil
			}
			return string(runes[index]), nil
		}),
		"charCodeAt": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			index := int(ToNumber(call.Arg(0)))
			if index < 0 || index >= len(runes) {
				return math.NaN(), nil
			}
			return float64(runes[index]), nil
		}),
		"at": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			index := int(ToNumber(call.Arg(0)))
			if index < 0 {
				index += len(runes)
			}
			if index < 0 || index >= len(runes) {
				return Undefined, nil
			}
			return string(runes[index]), nil
		}),
		"indexOf": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			from := toIndex(call.Arg(1), len(runes), 0)
			rest := string(runes[from:])
			offset := strings.Index(rest, ToString(call.Arg(0)))
			if offset < 0 {
				return -1.0, nil
			}
			return float64(from) + runeIndex(rest, offset), nil
		}),
		"lastIndexOf": onString(func(call *Call, text string) (interface{}, error) {
			offset := strings.LastIndex(text, ToString(call.Arg(0)))
			if offset < 0 {
				return -1.0, nil
			}
			return runeIndex(text, offset), nil
		}),
		"includes": onString(func(call *Call, text string) (interface{}, error) {
			return strings.Contains(text, ToString(call.Arg(0))), nil
		}),
		"startsWith": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			from := toIndex(call.Arg(1), len(runes), 0)
			return strings.HasPrefix(string(runes[from:]), ToString(call.Arg(0))), nil
		}),
		"endsWith": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			end := toIndex(call.Arg(1), len(runes), len(runes))
			return strings.HasSuffix(string(runes[:end]), ToString(call.Arg(0))), nil
		}),
		"slice": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			start, end := toIndex(call.Arg(0), len(runes), 0), toIndex(call.Arg(1), len(runes), len(runes))
			if start >= end {
				return "", nil
			}
			return string(runes[start:end]), nil
		}),
		"substring": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			clamp := func(value interface{}, fallback int) int {
				if IsUndefined(value) {
					return fallback
				}
				number := ToNumber(value)
				if math.IsNaN(number) || number < 0 {
					return 0
				}
				return int(math.Min(number, float64(len(runes))))
			}
			start, end := clamp(call.Arg(0), 0), clamp(call.Arg(1), len(runes))
			if start > end {
				start, end = end, start
			}
			return string(runes[start:end]), nil
		}),
		"substr": onString(func(call *Call, text string) (interface{}, error) {
			runes := []rune(text)
			start := toIndex(call.Arg(0), len(runes), 0)
			count := len(runes) - start
			if arg := call.Arg(1); !IsUndefined(arg) {
				count = int(math.Max(0, math.Min(ToNumber(arg), float64(count))))
			}
			return string(runes[start : start+count]), nil
		}),
		"toUpperCase": onString(func(call *Call, text string) (interface{}, error) {
			return strings.ToUpper(text), nil
		}),
		"toLowerCase": onString(func(call *Call, text string) (interface{}, error) {
			return strings.ToLower(text), nil
		}),
		"trim": onString(func(call *Call, text string) (interface{}, error) {
			return strings.TrimSpace(text), nil
		}),
		"trimStart": onString(func(call *Call, text string) (interface{}, error) {
			return strings.TrimLeft(text, " \t\n\r\v\f"), nil
		}),
		"trimEnd": onString(func(call *Call, text string) (interface{}, error) {
			return strings.TrimRight(text, " \t\n\r\v\f"), nil
		}),
		"padStart": onString(func(call *Call, text string) (interface{}, error) {
			return pad(call, text, true)
		}),
		"padEnd": onString(func(call *Call, text string) (interface{}, error) {
			return pad(call, text, false)
		}),
		"repeat": onString(func(call *Call, text string) (interface{}, error) {
			count := ToNumber(call.Arg(0))
			if math.IsNaN(count) {
				count = 0
			}
			if count < 0 || math.IsInf(count, 0) {
				return nil, NewError(RangeError, "Invalid count value: %s", numberToString(count))
			}
			return strings.Repeat(text, int(count)), nil
		}),
		"split": onString(func(call *Call, text string) (interface{}, error) {
			var parts []string
			switch separator := call.Arg(0).(type) {
			case UndefinedValue:
				parts = []string{text}
			default:
				sep := ToString(separator)
				if sep == "" {
					for _, r := range text {
						parts = append(parts, string(r))
					}
				} else {
					parts = strings.Split(text, sep)
				}
			}
			if limit := call.Arg(1); !IsUndefined(limit) {
				if n := int(toUint32(limit)); n < len(parts) {
					parts = parts[:n]
				}
			}
			elements := make([]interface{}, len(parts))
			for index, part := range parts {
				elements[index] = part
			}
			return NewArray(elements...), nil
		}),
		"replace": onString(func(call *Call, text string) (interface{}, error) {
			return replace(call, text, false)
		}),
		"replaceAll": onString(func(call *Call, text string) (interface{}, error) {
			return replace(call, text, true)
		}),
		"concat": onString(func(call *Call, text string) (interface{}, error) {
			var builder strings.Builder
			builder.WriteString(text)
			for _, arg := range call.Args {
				builder.WriteString(ToString(arg))
			}
			return builder.String(), nil
		}),
		"localeCompare": onString(func(call *Call, text string) (interface{}, error) {
			return float64(strings.Compare(text, ToString(call.Arg(0)))), nil
		}),
		"toString": onString(func(call *Call, text string) (interface{}, error) {
			return text, nil
		}),
		"valueOf": onString(func(call *Call, text string) (interface{}, error) {
			return text, nil
		}),
	}

	numberMethods = map[string]NativeFunc{
		"toFixed": onNumber(func(call *Call, number float64) (interface{}, error) {
			digits := int(ToNumber(call.Arg(0)))
			if IsUndefined(call.Arg(0)) {
				digits = 0
			}
			if digits < 0 || digits > 100 {
				return nil, NewError(RangeError, "toFixed() digits argument must be between 0 and 100")
			}
			if math.Abs(number) >= 1e21 || math.IsNaN(number) || math.IsInf(number, 0) {
				return numberToString(number), nil
			}
			return strconv.FormatFloat(number, 'f', digits, 64), nil
		}),
		"toPrecision": onNumber(func(call *Call, number float64) (interface{}, error) {
			if IsUndefined(call.Arg(0)) || math.IsNaN(number) || math.IsInf(number, 0) {
				return numberToString(number), nil
			}
			precision := int(ToNumber(call.Arg(0)))
			if precision < 1 || precision > 100 {
				return nil, NewError(RangeError, "toPrecision() argument must be between 1 and 100")
			}
			if number == 0 {
				return strconv.FormatFloat(0, 'f', precision-1, 64), nil
			}
			exponent := int(math.Floor(math.Log10(math.Abs(number))))
			if exponent < -6 || exponent >= precision {
				return formatExponential(number, precision-1), nil
			}
			return strconv.FormatFloat(number, 'f', precision-1-exponent, 64), nil
		}),
		"toString": onNumber(func(call *Call, number float64) (interface{}, error) {
			radix := 10
			if arg := call.Arg(0); !IsUndefined(arg) {
				radix = int(ToNumber(arg))
			}
			if radix < 2 || radix > 36 {
				return nil, NewError(RangeError, "toString() radix must be between 2 and 36")
			}
			if radix == 10 || number != math.Trunc(number) || math.IsInf(number, 0) {
				return numberToString(number), nil
			}
			return strconv.FormatInt(int64(number), radix), nil
		}),
		"valueOf": onNumber(func(call *Call, number float64) (interface{}, error) {
			return number, nil
		}),
	}

	functionMethods = map[string]NativeFunc{
		"call": func(call *Call) (interface{}, error) {
			var args []interface{}
			if len(call.Args) > 1 {
				args = call.Args[1:]
			}
			return call.Interp.call(call.This, call.Arg(0), args)
		},
		"apply": func(call *Call) (interface{}, error) {
			var args []interface{}
			if list, ok := call.Arg(1).(*Array); ok {
				args = list.Elements
			}
			return call.Interp.call(call.This, call.Arg(0), args)
		},
		"bind": func(call *Call) (interface{}, error) {
			target := call.This
			if !IsCallable(target) {
				return nil, NewError(TypeError, "Bind must be called on a function")
			}
			this := call.Arg(0)
			var bound []interface{}
			if len(call.Args) > 1 {
				bound = append(bound, call.Args[1:]...)
			}
			return NewNative("bound "+CallableName(target), func(inner *Call) (interface{}, error) {
				args := append(append([]interface{}{}, bound...), inner.Args...)
				return inner.Interp.call(target, this, args)
			}), nil
		},
		"toString": func(call *Call) (interface{}, error) {
			return ToString(call.This), nil
		},
	}
}
