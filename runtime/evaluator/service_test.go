package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/runtime/binding"
	"github.com/viant/jsrepl/runtime/bridge"
	"github.com/viant/jsrepl/service/vfs"
)

func newFileSystem(t *testing.T) FileSystem {
	t.Helper()
	store, err := vfs.New()
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	return bridge.New(bridge.Spawn(store))
}

func TestService_Evaluate(t *testing.T) {
	var testCases = []struct {
		description string
		snippets    []string
		expect      string
		expectKind  Kind
		expectError bool
	}{
		{description: "reassignment persists", snippets: []string{"x = 5", "x"}, expect: "5", expectKind: Expression},
		{description: "reassignment in statements persists", snippets: []string{"x = 5;", "x"}, expect: "5", expectKind: Expression},
		{description: "several reassignments persist", snippets: []string{"a = 1; b = 2", "[a, b].join()"}, expect: "1,2", expectKind: Expression},
		{description: "one line recursive function", snippets: []string{"function fact(n) { return n <= 1 ? 1 : n * fact(n - 1) }", "fact(5)"}, expect: "120", expectKind: Expression},
		{description: "let persists", snippets: []string{"let y = [1, 2]", "y.length"}, expect: "2", expectKind: Expression},
		{description: "statement value", snippets: []string{"let z = 1"}, expect: "undefined", expectKind: Statement},
		{description: "function declaration persists", snippets: []string{"function sq(n) { return n * n }", "sq(7)"}, expect: "49", expectKind: Expression},
		{description: "named function expression persists", snippets: []string{"function cube(n) { return n ** 3 }", "cube(2)"}, expect: "8", expectKind: Expression},
		{description: "class persists", snippets: []string{"class P { constructor(n) { this.n = n } }\nconst p = new P(3)", "p.n"}, expect: "3", expectKind: Expression},
		{description: "output wins", snippets: []string{"console.log('hi')"}, expect: "hi", expectKind: Expression},
		{description: "output of statements", snippets: []string{"for (let i = 0; i < 2; i++) console.log(i, {i})"}, expect: "0 {\n  \"i\": 0\n}\n1 {\n  \"i\": 1\n}", expectKind: Statement},
		{description: "object display", snippets: []string{"({a: [1]})"}, expect: "{\n  \"a\": [\n    1\n  ]\n}", expectKind: Expression},
		{description: "function display", snippets: []string{"const f = () => 1", "f"}, expect: "[Function: f]", expectKind: Expression},
		{description: "string display", snippets: []string{"'text'"}, expect: "text", expectKind: Expression},
		{description: "null display", snippets: []string{"null"}, expect: "null", expectKind: Expression},
		{description: "runtime error", snippets: []string{"missing"}, expect: "Uncaught ReferenceError: missing is not defined", expectKind: Expression, expectError: true},
		{
			description: "statement failure reports expression parse error",
			snippets:    []string{"let a = 1; null.x"},
			expect:      "Uncaught SyntaxError: Unexpected token 'let'",
			expectKind:  Statement,
			expectError: true,
		},
		{description: "parse failure", snippets: []string{"let = ;"}, expect: "Uncaught SyntaxError: Unexpected token 'let'", expectKind: ParseFailure, expectError: true},
		{description: "read seed file", snippets: []string{"readFileSync('/hello.py').split('\\n')[0]"}, expect: "# Sample Python Program", expectKind: Expression},
		{
			description: "file round trip",
			snippets:    []string{"mkdirSync('/sub'); writeFileSync('/sub/f.txt', 'z')", "readFileSync('/sub/f.txt')"},
			expect:      "z",
			expectKind:  Expression,
		},
		{
			description: "directory not empty",
			snippets:    []string{"mkdirSync('/sub'); writeFileSync('/sub/f.txt', 'z')", "rmdirSync('/sub')"},
			expect:      "Uncaught Error: rmdir: failed to remove '/sub': Directory not empty",
			expectKind:  Expression,
			expectError: true,
		},
		{
			description: "file error can be caught",
			snippets:    []string{"let msg = ''; try { readFileSync('/nope') } catch (e) { msg = e.message }", "msg"},
			expect:      "cat: /nope: No such file or directory",
			expectKind:  Expression,
		},
		{description: "require fs", snippets: []string{"require('fs').existsSync('/README.md')"}, expect: "true", expectKind: Expression},
		{description: "readdir default", snippets: []string{"readdirSync().includes('demo.js')"}, expect: "true", expectKind: Expression},
		{description: "stat", snippets: []string{"statSync('/').isDirectory()"}, expect: "true", expectKind: Expression},
	}
	for _, testCase := range testCases {
		service := New(WithFileSystem(newFileSystem(t)))
		env := binding.New()
		var result *Result
		for _, snippet := range testCase.snippets {
			result = service.Evaluate(context.Background(), snippet, env)
		}
		assert.Equal(t, testCase.expect, result.Text, testCase.description)
		assert.Equal(t, testCase.expectKind, result.Kind, testCase.description)
		assert.Equal(t, testCase.expectError, result.IsError, testCase.description)
	}
}

func TestService_Evaluate_Environment(t *testing.T) {
	service := New()
	env := binding.New()

	result := service.Evaluate(context.Background(), "let a = 1\nconst b = a + 1\nif (true) { let hidden = 3 }", env)
	require.False(t, result.IsError, result.Text)
	assert.Equal(t, []string{"a", "b"}, result.Declared)
	assert.Equal(t, []string{"a", "b"}, env.Names())

	before := env.Clone()
	for _, snippet := range []string{"a + b", "console.log('let fake = 1')", "[a, b].map(v => v * 2)", "a == 5"} {
		service.Evaluate(context.Background(), snippet, env)
	}
	assert.Equal(t, before.Names(), env.Names())
	value, _ := env.Get("a")
	assert.Equal(t, float64(1), value)

	result = service.Evaluate(context.Background(), "let a = 10", env)
	require.False(t, result.IsError, result.Text)
	value, _ = env.Get("a")
	assert.Equal(t, float64(10), value, "shadowing overwrites")

	result = service.Evaluate(context.Background(), "throw new Error('stop')\nlet never = 1", env)
	assert.Equal(t, "Uncaught SyntaxError: Unexpected token 'throw'", result.Text)
	assert.False(t, env.Has("never"))
}

func TestService_Evaluate_Policy(t *testing.T) {
	var testCases = []struct {
		description string
		policy      *policy.Policy
		snippet     string
		expect      string
	}{
		{
			description: "deny hides console",
			policy:      &policy.Policy{Mode: policy.ModeDeny},
			snippet:     "typeof console + ',' + typeof readFileSync + ',' + typeof require",
			expect:      "undefined,undefined,undefined",
		},
		{
			description: "blocked write",
			policy:      &policy.Policy{BlockList: []string{policy.FSWrite}},
			snippet:     "typeof writeFileSync + ',' + typeof readFileSync",
			expect:      "undefined,function",
		},
		{
			description: "ask rejects",
			policy: &policy.Policy{Mode: policy.ModeAsk, Ask: func(ctx context.Context, capability, function string, args []interface{}, p *policy.Policy) bool {
				return capability == policy.FSRead
			}},
			snippet: "writeFileSync('/x.txt', 'x')",
			expect:  "Uncaught Error: writeFileSync: permission denied (fs.write)",
		},
	}
	for _, testCase := range testCases {
		service := New(WithFileSystem(newFileSystem(t)), WithPolicy(testCase.policy))
		result := service.Evaluate(context.Background(), testCase.snippet, binding.New())
		assert.Equal(t, testCase.expect, result.Text, testCase.description)
	}
}

func TestService_Evaluate_AskOnce(t *testing.T) {
	var asked []string
	p := &policy.Policy{Mode: policy.ModeAsk, Ask: func(ctx context.Context, capability, function string, args []interface{}, p *policy.Policy) bool {
		asked = append(asked, function)
		return true
	}}
	service := New(WithFileSystem(newFileSystem(t)), WithPolicy(p))
	env := binding.New()
	result := service.Evaluate(context.Background(), "const a = readFileSync('/README.md')\nconst b = existsSync('/demo.js')", env)
	require.False(t, result.IsError, result.Text)
	assert.Equal(t, []string{"a", "b"}, result.Declared)
	assert.Equal(t, []string{"readFileSync", "existsSync"}, asked)
	assert.Equal(t, policy.ModeAsk, p.Mode)
}

func TestService_Evaluate_Limits(t *testing.T) {
	service := New(WithMaxCallDepth(20))
	result := service.Evaluate(context.Background(), "function down(n) { return down(n + 1) }\nreturn down(0)", binding.New())
	assert.Equal(t, "Uncaught SyntaxError: Unexpected token 'return'", result.Text)

	result = service.Evaluate(context.Background(), "(function down(n) { return down(n + 1) })(0)", binding.New())
	assert.Equal(t, "Uncaught RangeError: Maximum call stack size exceeded", result.Text)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result = New().Evaluate(ctx, "while (true) {}", binding.New())
	assert.Equal(t, "Uncaught Error: Script execution interrupted", result.Text)
}
