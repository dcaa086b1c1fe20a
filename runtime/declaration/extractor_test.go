package declaration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/runtime/script"
)

func TestScan(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      []string
	}{
		{description: "let const var", source: "let a = 1; const b = 2\nvar c = 3", expect: []string{"a", "b", "c"}},
		{description: "functions and classes", source: "function f() {}\nclass K {}", expect: []string{"f", "K"}},
		{description: "duplicate keeps first position", source: "let a = 1\nlet b = 2\nvar a = 3", expect: []string{"a", "b"}},
		{description: "string literal is ignored", source: `console.log("let fake = 1")`},
		{description: "comment is ignored", source: "// const hidden = 1\n1 + 1"},
		{description: "destructuring is not matched", source: "const [x, y] = [1, 2]"},
		{description: "declaration without initializer", source: "let pending"},
		{description: "anonymous function", source: "(function () {})()"},
		{description: "does not tokenize", source: `let s = "open`},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Scan(testCase.source), testCase.description)
	}
}

func TestExtract(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      map[string]interface{}
	}{
		{
			description: "final value wins",
			source:      "let total = 1\ntotal += 41",
			expect:      map[string]interface{}{"total": float64(42)},
		},
		{
			description: "nested block declaration is skipped",
			source:      "if (true) { let inner = 1 }\nconst outer = 2",
			expect:      map[string]interface{}{"outer": float64(2)},
		},
		{
			description: "var inside block is visible",
			source:      "{ var hoisted = 'h' }",
			expect:      map[string]interface{}{"hoisted": "h"},
		},
		{
			description: "failing snippet declares nothing",
			source:      "let a = 1\nthrow new Error('x')",
			expect:      map[string]interface{}{},
		},
	}
	for _, testCase := range testCases {
		program, err := script.Parse(testCase.source)
		require.NoError(t, err, testCase.description)
		run := func(ctx context.Context, program *script.Program) (interface{}, error) {
			return script.New(ctx).Run(program)
		}
		bindings := Extract(context.Background(), program, Scan(testCase.source), run)
		actual := map[string]interface{}{}
		for _, item := range bindings {
			actual[item.Name] = item.Value
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestExtract_Function(t *testing.T) {
	source := "function square(x) { return x * x }"
	program, err := script.Parse(source)
	require.NoError(t, err)
	interp := script.New(context.Background())
	bindings := Extract(context.Background(), program, Scan(source), func(ctx context.Context, program *script.Program) (interface{}, error) {
		return interp.Run(program)
	})
	require.Len(t, bindings, 1)
	value, err := interp.Call(bindings[0].Value, script.Undefined, float64(3))
	require.NoError(t, err)
	assert.Equal(t, float64(9), value)
}
