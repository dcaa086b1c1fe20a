package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expectKinds []Kind
		expectTexts []string
	}{
		{
			description: "declaration",
			source:      "let x = 10;",
			expectKinds: []Kind{Keyword, Identifier, Punctuator, Number, Punctuator, EOF},
			expectTexts: []string{"let", "x", "=", "10", ";", ""},
		},
		{
			description: "comments are skipped",
			source:      "a /* let b = 1 */ + // const c = 2\nb",
			expectKinds: []Kind{Identifier, Punctuator, Identifier, EOF},
			expectTexts: []string{"a", "+", "b", ""},
		},
		{
			description: "string keeps declaration text",
			source:      `"let y = 1"`,
			expectKinds: []Kind{String, EOF},
			expectTexts: []string{`"let y = 1"`, ""},
		},
		{
			description: "longest punctuator wins",
			source:      "a ?? b?.c === d >>>= 1",
			expectKinds: []Kind{Identifier, Punctuator, Identifier, Punctuator, Identifier, Punctuator, Identifier, Punctuator, Number, EOF},
			expectTexts: []string{"a", "??", "b", "?.", "c", "===", "d", ">>>=", "1", ""},
		},
		{
			description: "conditional with decimal",
			source:      "a?.5:1",
			expectKinds: []Kind{Identifier, Punctuator, Number, Punctuator, Number, EOF},
			expectTexts: []string{"a", "?", ".5", ":", "1", ""},
		},
		{
			description: "numbers",
			source:      "0xFF 1.5e3 .25 0b101",
			expectKinds: []Kind{Number, Number, Number, Number, EOF},
			expectTexts: []string{"0xFF", "1.5e3", ".25", "0b101", ""},
		},
		{
			description: "nested template",
			source:      "`a ${`b ${c}`} d`",
			expectKinds: []Kind{Template, EOF},
			expectTexts: []string{"`a ${`b ${c}`} d`", ""},
		},
	}
	for _, testCase := range testCases {
		tokens, err := Tokenize(testCase.source)
		require.NoError(t, err, testCase.description)
		var kinds []Kind
		var texts []string
		for _, token := range tokens {
			kinds = append(kinds, token.Kind)
			texts = append(texts, token.Text)
		}
		assert.Equal(t, testCase.expectKinds, kinds, testCase.description)
		assert.Equal(t, testCase.expectTexts, texts, testCase.description)
	}
}

func TestTokenize_NewlineBefore(t *testing.T) {
	tokens, err := Tokenize("a\nb c")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.False(t, tokens[0].NewlineBefore)
	assert.True(t, tokens[1].NewlineBefore)
	assert.False(t, tokens[2].NewlineBefore)
}

func TestTokenize_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      string
	}{
		{description: "unterminated string", source: `"abc`, expect: "SyntaxError: Invalid or unexpected token"},
		{description: "unterminated comment", source: "a /* b", expect: "SyntaxError: Invalid or unexpected token"},
		{description: "unterminated template", source: "`abc", expect: "SyntaxError: Unterminated template literal"},
		{description: "unknown character", source: "a # b", expect: "SyntaxError: Invalid or unexpected token"},
	}
	for _, testCase := range testCases {
		_, err := Tokenize(testCase.source)
		require.Error(t, err, testCase.description)
		assert.Equal(t, testCase.expect, err.Error(), testCase.description)
	}
}
