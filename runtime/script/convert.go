package script

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean applies truthiness rules
func ToBoolean(value interface{}) bool {
	switch actual := value.(type) {
	case nil, UndefinedValue:
		return false
	case bool:
		return actual
	case float64:
		return actual != 0 && !math.IsNaN(actual)
	case string:
		return actual != ""
	}
	return true
}

// ToNumber converts a value to a number
func ToNumber(value interface{}) float64 {
	switch actual := value.(type) {
	case nil:
		return 0
	case UndefinedValue:
		return math.NaN()
	case bool:
		if actual {
			return 1
		}
		return 0
	case float64:
		return actual
	case string:
		return stringToNumber(actual)
	case *Array:
		return stringToNumber(ToString(actual))
	}
	return math.NaN()
}

func stringToNumber(text string) float64 {
	text = strings.TrimSpace(text)
	switch text {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(text) > 2 && text[0] == '0' && strings.ContainsRune("xXbBoO", rune(text[1])) {
		value, err := parseNumber(text)
		if err != nil {
			return math.NaN()
		}
		return value
	}
	for _, c := range text {
		if !strings.ContainsRune("0123456789.eE+-", c) {
			return math.NaN()
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return value
		}
		return math.NaN()
	}
	return value
}

// ToString converts a value to its string form
func ToString(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return "null"
	case UndefinedValue:
		return "undefined"
	case bool:
		if actual {
			return "true"
		}
		return "false"
	case float64:
		return numberToString(actual)
	case string:
		return actual
	case *Array:
		return joinArray(actual, ",", map[*Array]bool{})
	case *Object:
		if actual.isError() {
			name, message := ToString(actual.Get("name")), ToString(actual.Get("message"))
			if message == "" {
				return name
			}
			return name + ": " + message
		}
		return "[object Object]"
	case *Function:
		return actual.Source()
	case *Native:
		return "function " + actual.Name + "() { [native code] }"
	case *Class:
		if actual.source != "" {
			return actual.source
		}
		return "class " + actual.Name + " { [native code] }"
	}
	return ""
}

func joinArray(array *Array, separator string, visited map[*Array]bool) string {
	if visited[array] {
		return ""
	}
	visited[array] = true
	defer delete(visited, array)
	parts := make([]string, len(array.Elements))
	for i, element := range array.Elements {
		switch actual := element.(type) {
		case nil, UndefinedValue:
		case *Array:
			parts[i] = joinArray(actual, ",", visited)
		default:
			parts[i] = ToString(element)
		}
	}
	return strings.Join(parts, separator)
}

// numberToString formats a number the way the language prints numbers
func numberToString(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	formatted := strconv.FormatFloat(value, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(formatted, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(exponent)
	n := exp + 1
	k := len(digits)
	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}
	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	expText := strconv.Itoa(abs(n - 1))
	if k == 1 {
		return sign + digits + "e" + expSign + expText
	}
	return sign + digits[:1] + "." + digits[1:] + "e" + expSign + expText
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

// TypeOf returns the typeof name of a value
func TypeOf(value interface{}) string {
	switch value.(type) {
	case UndefinedValue:
		return "undefined"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Function, *Native, *Class:
		return "function"
	}
	return "object"
}

// StrictEquals implements ===
func StrictEquals(left, right interface{}) bool {
	switch l := left.(type) {
	case nil:
		return right == nil
	case UndefinedValue:
		return IsUndefined(right)
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	}
	return left == right
}

// LooseEquals implements ==
func LooseEquals(left, right interface{}) bool {
	if isNullish(left) || isNullish(right) {
		return isNullish(left) && isNullish(right)
	}
	if TypeOf(left) == TypeOf(right) {
		return StrictEquals(left, right)
	}
	switch l := left.(type) {
	case bool:
		return LooseEquals(ToNumber(l), right)
	case float64:
		switch r := right.(type) {
		case string, bool:
			return l == ToNumber(r)
		case *Array, *Object:
			return LooseEquals(l, ToString(r))
		}
	case string:
		switch r := right.(type) {
		case float64, bool:
			return ToNumber(l) == ToNumber(r)
		case *Array, *Object:
			return l == ToString(r)
		}
	case *Array, *Object:
		switch right.(type) {
		case float64, string, bool:
			return LooseEquals(right, left)
		}
	}
	return false
}

func isNullish(value interface{}) bool {
	return value == nil || IsUndefined(value)
}

func toInt32(value interface{}) int32 {
	return int32(toUint32(value))
}

func toUint32(value interface{}) uint32 {
	number := ToNumber(value)
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0
	}
	number = math.Trunc(number)
	number = math.Mod(number, 4294967296)
	if number < 0 {
		number += 4294967296
	}
	return uint32(number)
}

// toIndex converts a relative index argument into [0, length]
func toIndex(value interface{}, length int, fallback int) int {
	if IsUndefined(value) {
		return fallback
	}
	number := ToNumber(value)
	if math.IsNaN(number) {
		return 0
	}
	index := int(math.Max(math.Min(math.Trunc(number), float64(length)), float64(-length)))
	if index < 0 {
		index += length
	}
	return index
}

// arrayIndex returns the integer index a property key denotes
func arrayIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	index, err := strconv.Atoi(key)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
