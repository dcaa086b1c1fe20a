package script

import "strings"

// DisplayIndent is the indentation of composite values in results and printed output
const DisplayIndent = "  "

// Display formats an evaluation result for the shell
func Display(value interface{}) (string, error) {
	if IsCallable(value) {
		return functionLabel(value), nil
	}
	return ConsoleText(value)
}

// ConsoleText formats one argument of a print call
func ConsoleText(value interface{}) (string, error) {
	switch actual := value.(type) {
	case *Object:
		if actual.isError() {
			return ToString(actual), nil
		}
		text, _, err := Stringify(actual, DisplayIndent)
		return text, err
	case *Array:
		text, _, err := Stringify(actual, DisplayIndent)
		return text, err
	}
	return ToString(value), nil
}

// Inspect renders a value for diagnostics; it never fails
func Inspect(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(actual, "'", "\\'") + "'"
	case *Function, *Native, *Class:
		return functionLabel(value)
	case *Object:
		if actual.isError() {
			return ToString(actual)
		}
		if text, ok, err := Stringify(actual, ""); err == nil && ok {
			return text
		}
		return "[Circular]"
	case *Array:
		if text, ok, err := Stringify(actual, ""); err == nil && ok {
			return text
		}
		return "[Circular]"
	}
	return ToString(value)
}

func functionLabel(value interface{}) string {
	name := CallableName(value)
	if name == "" {
		name = "anonymous"
	}
	return "[Function: " + name + "]"
}
