package script

import (
	"unicode"
	"unicode/utf8"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Kind classifies lexical tokens
type Kind int

const (
	EOF Kind = iota
	Identifier
	Keyword
	Number
	String
	Template
	Punctuator
)

// Token represents a lexical token
type Token struct {
	Kind          Kind
	Text          string
	Offset        int
	NewlineBefore bool
}

// Is returns true for a punctuator or keyword with the given text
func (t *Token) Is(text string) bool {
	return (t.Kind == Punctuator || t.Kind == Keyword) && t.Text == text
}

var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"default": true, "delete": true, "do": true, "else": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "in": true, "instanceof": true,
	"let": true, "new": true, "null": true, "return": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true, "var": true,
	"void": true, "while": true,
}

// IsKeyword returns true for reserved words
func IsKeyword(name string) bool {
	return keywords[name]
}

// parsly token codes start at 1, away from parsly's own EOF/invalid codes
const (
	whitespaceCode = iota + 1
	lineCommentCode
	blockCommentCode
	identifierCode
	numberCode
	stringCode
	templateCode
	punctuatorCode
)

var (
	whitespaceToken   = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	lineCommentToken  = parsly.NewToken(lineCommentCode, "LineComment", &lineCommentMatcher{})
	blockCommentToken = parsly.NewToken(blockCommentCode, "BlockComment", &blockCommentMatcher{})
	identifierToken   = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	numberToken       = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	stringToken       = parsly.NewToken(stringCode, "String", &stringMatcher{})
	templateToken     = parsly.NewToken(templateCode, "Template", &templateMatcher{})
	punctuatorToken   = parsly.NewToken(punctuatorCode, "Punctuator", &punctuatorMatcher{})
)

// punctuators ordered longest first
var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=", "*=", "/=", "%=",
	"&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", "<", ">", "+", "-", "*", "/", "%", "&", "|", "^",
	"!", "~", "?", ":", "=",
}

type lineCommentMatcher struct{}

func (m *lineCommentMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos+1 >= size || input[pos] != '/' || input[pos+1] != '/' {
		return 0
	}
	i := pos + 2
	for i < size && input[i] != '\n' {
		i++
	}
	return i - pos
}

type blockCommentMatcher struct{}

func (m *blockCommentMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos+1 >= size || input[pos] != '/' || input[pos+1] != '*' {
		return 0
	}
	for i := pos + 2; i+1 < size; i++ {
		if input[i] == '*' && input[i+1] == '/' {
			return i + 2 - pos
		}
	}
	return 0
}

type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	i := pos
	for i < size {
		r, width := utf8.DecodeRune(input[i:])
		if !(r == '_' || r == '$' || unicode.IsLetter(r) || (i > pos && unicode.IsDigit(r))) {
			break
		}
		i += width
	}
	return i - pos
}

type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size {
		return 0
	}
	i := pos
	if input[i] == '0' && i+1 < size {
		var isDigit func(c byte) bool
		switch input[i+1] {
		case 'x', 'X':
			isDigit = isHexDigit
		case 'b', 'B':
			isDigit = func(c byte) bool { return c == '0' || c == '1' }
		case 'o', 'O':
			isDigit = func(c byte) bool { return c >= '0' && c <= '7' }
		}
		if isDigit != nil {
			j := i + 2
			for j < size && isDigit(input[j]) {
				j++
			}
			if j == i+2 {
				return 0
			}
			return j - pos
		}
	}
	digits := 0
	for i < size && isDecimalDigit(input[i]) {
		i++
		digits++
	}
	if i < size && input[i] == '.' {
		j := i + 1
		fraction := 0
		for j < size && isDecimalDigit(input[j]) {
			j++
			fraction++
		}
		if digits > 0 || fraction > 0 {
			i = j
			digits += fraction
		}
	}
	if digits == 0 {
		return 0
	}
	if i < size && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < size && (input[j] == '+' || input[j] == '-') {
			j++
		}
		k := j
		for k < size && isDecimalDigit(input[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i - pos
}

type stringMatcher struct{}

func (m *stringMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || (input[pos] != '"' && input[pos] != '\'') {
		return 0
	}
	quote := input[pos]
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case '\n':
			return 0
		case quote:
			return i + 1 - pos
		}
	}
	return 0
}

type templateMatcher struct{}

func (m *templateMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	if pos >= size || input[pos] != '`' {
		return 0
	}
	end := scanTemplate(input, pos, size)
	if end < 0 {
		return 0
	}
	return end - pos
}

// scanTemplate returns the offset just past the closing backtick of the
// template starting at pos, or -1.
func scanTemplate(input []byte, pos, size int) int {
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case '`':
			return i + 1
		case '$':
			if i+1 < size && input[i+1] == '{' {
				end := scanSubstitution(input, i+2, size)
				if end < 0 {
					return -1
				}
				i = end - 1
			}
		}
	}
	return -1
}

// scanSubstitution returns the offset just past the '}' closing a ${ block
func scanSubstitution(input []byte, pos, size int) int {
	depth := 0
	for i := pos; i < size; i++ {
		switch c := input[i]; c {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i + 1
			}
			depth--
		case '\'', '"':
			for i++; i < size && input[i] != c; i++ {
				if input[i] == '\\' {
					i++
				}
			}
		case '`':
			end := scanTemplate(input, i, size)
			if end < 0 {
				return -1
			}
			i = end - 1
		}
	}
	return -1
}

type punctuatorMatcher struct{}

func (m *punctuatorMatcher) Match(cursor *parsly.Cursor) int {
	input, pos, size := cursor.Input, cursor.Pos, cursor.InputSize
	for _, candidate := range punctuators {
		end := pos + len(candidate)
		if end > size || string(input[pos:end]) != candidate {
			continue
		}
		if candidate == "?." && end < size && isDecimalDigit(input[end]) {
			continue
		}
		return len(candidate)
	}
	return 0
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
