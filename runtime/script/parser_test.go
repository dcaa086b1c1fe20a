package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expectErr   string
	}{
		{description: "arithmetic", source: "1 + 2 * 3"},
		{description: "assignment", source: "x = 5"},
		{description: "object literal", source: "{a: 1}"},
		{description: "arrow", source: "(a, b = 2, ...rest) => a + b"},
		{description: "optional chain", source: "a?.b?.[0]?.(1)"},
		{description: "declaration", source: "let x = 1", expectErr: "SyntaxError: Unexpected token 'let'"},
		{description: "incomplete", source: "1 +", expectErr: "SyntaxError: Unexpected end of input"},
		{description: "trailing semicolon", source: "1;", expectErr: "SyntaxError: Unexpected token ';'"},
		{description: "two statements", source: "a\nb", expectErr: "SyntaxError: Unexpected identifier 'b'"},
		{description: "empty", source: "  ", expectErr: "SyntaxError: Unexpected end of input"},
		{description: "bad target", source: "1 = 2", expectErr: "SyntaxError: Invalid left-hand side in assignment"},
	}
	for _, testCase := range testCases {
		_, err := ParseExpression(testCase.source)
		if testCase.expectErr == "" {
			assert.NoError(t, err, testCase.description)
			continue
		}
		require.Error(t, err, testCase.description)
		assert.Equal(t, testCase.expectErr, err.Error(), testCase.description)
	}
}

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expectLen   int
		expectErr   string
	}{
		{description: "semicolon insertion", source: "let a = 1\nlet b = 2\na + b", expectLen: 3},
		{description: "class with fields", source: "class A extends B { x = 1; static y = 2; constructor() { super() } m() {} }", expectLen: 1},
		{description: "loops", source: "for (let i = 0; i < 3; i++) {}\nfor (const [k, v] of pairs) {}\nfor (k in obj) {}", expectLen: 3},
		{description: "top level return", source: "return 1", expectLen: 1},
		{description: "missing const initializer", source: "const a", expectErr: "SyntaxError: Missing initializer in const declaration"},
		{description: "unclosed block", source: "if (a) {", expectErr: "SyntaxError: Unexpected end of input"},
		{description: "missing semicolon", source: "let a = 1 let b = 2", expectErr: "SyntaxError: Unexpected token 'let'"},
		{description: "try without handler", source: "try {}", expectErr: "SyntaxError: Missing catch or finally after try"},
	}
	for _, testCase := range testCases {
		program, err := Parse(testCase.source)
		if testCase.expectErr != "" {
			require.Error(t, err, testCase.description)
			assert.Equal(t, testCase.expectErr, err.Error(), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Len(t, program.Body, testCase.expectLen, testCase.description)
	}
}

func TestParse_FunctionSource(t *testing.T) {
	program, err := Parse("function add(a, b) { return a + b }\nconst mul = (a, b) => a * b")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)
	declaration, ok := program.Body[0].(*FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "function add(a, b) { return a + b }", declaration.Function.Source)
	variable, ok := program.Body[1].(*VariableDeclaration)
	require.True(t, ok)
	arrow, ok := variable.Declarations[0].Init.(*FunctionLiteral)
	require.True(t, ok)
	assert.Equal(t, "(a, b) => a * b", arrow.Source)
}
