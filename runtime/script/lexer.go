package script

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
)

// Tokenize splits source into tokens; the last token is always EOF.
func Tokenize(source string) ([]Token, error) {
	input := []byte(source)
	cursor := parsly.NewCursor("", input, 0)
	var tokens []Token
	newline := false
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(whitespaceToken, lineCommentToken, blockCommentToken)
		switch matched.Code {
		case whitespaceCode, lineCommentCode, blockCommentCode:
			if strings.ContainsAny(matched.Text(cursor), "\n\r") {
				newline = true
			}
			continue
		}
		offset := cursor.Pos
		if bytes.HasPrefix(input[offset:], []byte("/*")) {
			return nil, NewError(SyntaxError, "Invalid or unexpected token")
		}
		matched = cursor.MatchAny(identifierToken, numberToken, stringToken, templateToken, punctuatorToken)
		token := Token{Offset: offset, NewlineBefore: newline}
		switch matched.Code {
		case identifierCode:
			token.Kind = Identifier
			token.Text = matched.Text(cursor)
			if IsKeyword(token.Text) {
				token.Kind = Keyword
			}
		case numberCode:
			token.Kind = Number
			token.Text = matched.Text(cursor)
		case stringCode:
			token.Kind = String
			token.Text = matched.Text(cursor)
		case templateCode:
			token.Kind = Template
			token.Text = matched.Text(cursor)
		case punctuatorCode:
			token.Kind = Punctuator
			token.Text = matched.Text(cursor)
		default:
			if input[offset] == '`' {
				return nil, NewError(SyntaxError, "Unterminated template literal")
			}
			return nil, NewError(SyntaxError, "Invalid or unexpected token")
		}
		tokens = append(tokens, token)
		newline = false
	}
	tokens = append(tokens, Token{Kind: EOF, Offset: len(input), NewlineBefore: newline})
	return tokens, nil
}
