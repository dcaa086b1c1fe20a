package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

func (i *Interpreter) newJSON() *Object {
	return objectOf(
		"stringify", NewNative("stringify", func(call *Call) (interface{}, error) {
			text, ok, err := Stringify(call.Arg(0), indentOf(call.Arg(2)))
			if err != nil || !ok {
				return Undefined, err
			}
			return text, nil
		}),
		"parse", NewNative("parse", func(call *Call) (interface{}, error) {
			return ParseJSON(ToString(call.Arg(0)))
		}),
	)
}

func indentOf(space interface{}) string {
	switch actual := space.(type) {
	case float64:
		count := int(math.Max(0, math.Min(10, actual)))
		return strings.Repeat(" ", count)
	case string:
		if utf8.RuneCountInString(actual) > 10 {
			return string([]rune(actual)[:10])
		}
		return actual
	}
	return ""
}

// Stringify serialises value as JSON text; ok is false when value has no JSON form
func Stringify(value interface{}, indent string) (string, bool, error) {
	var buf bytes.Buffer
	s := &stringifier{indent: indent, visited: map[interface{}]bool{}}
	ok, err := s.write(&buf, value, "")
	if err != nil || !ok {
		return "", false, err
	}
	return buf.String(), true, nil
}

type stringifier struct {
	indent  string
	visited map[interface{}]bool
}

func (s *stringifier) write(buf *bytes.Buffer, value interface{}, prefix string) (bool, error) {
	switch actual := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if actual {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case float64:
		if math.IsNaN(actual) || math.IsInf(actual, 0) {
			buf.WriteString("null")
		} else {
			buf.WriteString(numberToString(actual))
		}
	case string:
		writeQuoted(buf, actual)
	case *Array:
		if s.visited[actual] {
			return false, NewError(TypeError, "Converting circular structure to JSON")
		}
		s.visited[actual] = true
		defer delete(s.visited, actual)
		if len(actual.Elements) == 0 {
			buf.WriteString("[]")
			return true, nil
		}
		inner := prefix + s.indent
		buf.WriteByte('[')
		for index, element := range actual.Elements {
			if index > 0 {
				buf.WriteByte(',')
			}
			s.newline(buf, inner)
			ok, err := s.write(buf, element, inner)
			if err != nil {
				return false, err
			}
			if !ok {
				buf.WriteString("null")
			}
		}
		s.newline(buf, prefix)
		buf.WriteByte(']')
	case *Object:
		if s.visited[actual] {
			return false, NewError(TypeError, "Converting circular structure to JSON")
		}
		s.visited[actual] = true
		defer delete(s.visited, actual)
		inner := prefix + s.indent
		buf.WriteByte('{')
		count := 0
		for _, key := range actual.keys {
			property := actual.values[key]
			if !hasJSONForm(property) {
				continue
			}
			if count > 0 {
				buf.WriteByte(',')
			}
			count++
			s.newline(buf, inner)
			writeQuoted(buf, key)
			buf.WriteByte(':')
			if s.indent != "" {
				buf.WriteByte(' ')
			}
			if _, err := s.write(buf, property, inner); err != nil {
				return false, err
			}
		}
		if count > 0 {
			s.newline(buf, prefix)
		}
		buf.WriteByte('}')
	default:
		return false, nil
	}
	return true, nil
}

func hasJSONForm(value interface{}) bool {
	switch value.(type) {
	case UndefinedValue, *Function, *Native, *Class:
		return false
	}
	return true
}

func (s *stringifier) newline(buf *bytes.Buffer, prefix string) {
	if s.indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
}

func writeQuoted(buf *bytes.Buffer, text string) {
	buf.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				buf.WriteString(strconv.FormatInt(int64(r)&0xF, 16))
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// ParseJSON decodes JSON text preserving object key order
func ParseJSON(text string) (interface{}, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	value, err := decodeJSON(decoder)
	if err != nil {
		return nil, jsonError(err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, NewError(SyntaxError, "Unexpected non-whitespace character after JSON at position %d", decoder.InputOffset())
	}
	return value, nil
}

func jsonError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return NewError(SyntaxError, "Unexpected token in JSON at position %d", syntaxErr.Offset)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return NewError(SyntaxError, "Unexpected end of JSON input")
	}
	var scriptErr *Error
	if errors.As(err, &scriptErr) {
		return err
	}
	return NewError(SyntaxError, "%v", err)
}

func decodeJSON(decoder *json.Decoder) (interface{}, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch actual := token.(type) {
	case json.Delim:
		switch actual {
		case '{':
			obj := NewObject()
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, NewError(SyntaxError, "Expected property name in JSON at position %d", decoder.InputOffset())
				}
				value, err := decodeJSON(decoder)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			array := NewArray()
			for decoder.More() {
				value, err := decodeJSON(decoder)
				if err != nil {
					return nil, err
				}
				array.Elements = append(array.Elements, value)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return array, nil
		}
		return nil, NewError(SyntaxError, "Unexpected token '%v' in JSON", actual)
	case json.Number:
		number, err := actual.Float64()
		if err != nil {
			return nil, NewError(SyntaxError, "Invalid number in JSON")
		}
		return number, nil
	case string, bool, nil:
		return actual, nil
	}
	return nil, NewError(SyntaxError, "Unexpected token in JSON")
}
