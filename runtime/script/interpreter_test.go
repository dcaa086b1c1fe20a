package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines []string

func (l *lines) Print(line string) {
	*l = append(*l, line)
}

func evalExpression(t *testing.T, source string) (string, error) {
	expr, err := ParseExpression(source)
	require.NoError(t, err, source)
	value, err := New(context.Background()).Evaluate(expr)
	if err != nil {
		return "", err
	}
	return Display(value)
}

func runProgram(ctx context.Context, source string, options ...Option) (interface{}, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return New(ctx, options...).Run(program)
}

func TestInterpreter_Evaluate(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      string
	}{
		{description: "addition", source: "1 + 2", expect: "3"},
		{description: "named function expression recursion", source: "(function fact(n) { return n <= 1 ? 1 : n * fact(n - 1) })(5)", expect: "120"},
		{description: "method shorthand does not bind its name", source: "({ go() { return typeof go } }).go()", expect: "undefined"},
		{description: "floating point", source: "0.1 + 0.2", expect: "0.30000000000000004"},
		{description: "large number", source: "1e21", expect: "1e+21"},
		{description: "precedence", source: "2 + 3 * 4 ** 2", expect: "50"},
		{description: "string concat", source: "'a' + 1 + 2", expect: "a12"},
		{description: "array map", source: "[1, 2, 3].map(x => x * 2)", expect: "[\n  2,\n  4,\n  6\n]"},
		{description: "object", source: "({a: 1, b: 'x'})", expect: "{\n  \"a\": 1,\n  \"b\": \"x\"\n}"},
		{description: "empty array", source: "[]", expect: "[]"},
		{description: "anonymous function", source: "(() => {})", expect: "[Function: anonymous]"},
		{description: "template", source: "`sum: ${1 + 1}!`", expect: "sum: 2!"},
		{description: "nullish", source: "null ?? 'fallback'", expect: "fallback"},
		{description: "optional chain", source: "({a: null}).a?.b", expect: "undefined"},
		{description: "string methods", source: "'Hello'.toUpperCase().split('').reverse().join('-')", expect: "O-L-L-E-H"},
		{description: "math", source: "Math.max(1, 7, 3) + Math.floor(2.7)", expect: "9"},
		{description: "json stringify", source: "JSON.stringify({a: [1, 2], b: undefined})", expect: `{"a":[1,2]}`},
		{description: "json parse", source: "JSON.parse('{\"z\":1,\"a\":[true,null]}').a.length", expect: "2"},
		{description: "numeric sort", source: "[10, 1, 5].sort((a, b) => a - b).join()", expect: "1,5,10"},
		{description: "default sort", source: "[10, 1, 5].sort().join()", expect: "1,10,5"},
		{description: "to fixed", source: "(5).toFixed(2)", expect: "5.00"},
		{description: "loose equality", source: "[1 == '1', 1 === '1', null == undefined, NaN == NaN].join()", expect: "true,false,true,false"},
		{description: "spread", source: "[...[1, 2], ...'ab'].length", expect: "4"},
		{description: "object spread", source: "JSON.stringify({...{a: 1}, b: 2})", expect: `{"a":1,"b":2}`},
		{description: "typeof undeclared", source: "typeof nothing", expect: "undefined"},
		{description: "reduce", source: "[1, 2, 3, 4].reduce((acc, x) => acc + x, 0)", expect: "10"},
		{description: "division by zero", source: "1 / 0", expect: "Infinity"},
		{description: "conditional", source: "3 > 2 ? 'yes' : 'no'", expect: "yes"},
	}
	for _, testCase := range testCases {
		actual, err := evalExpression(t, testCase.source)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestInterpreter_Run(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      interface{}
	}{
		{
			description: "class inheritance",
			source: `class Animal {
  constructor(name) { this.name = name }
  speak() { return this.name + ' makes a sound' }
}
class Dog extends Animal {
  speak() { return super.speak() + ' (woof)' }
}
return new Dog('Rex').speak()`,
			expect: "Rex makes a sound (woof)",
		},
		{
			description: "let loop closures",
			source: `const fns = []
for (let i = 0; i < 3; i++) { fns.push(() => i) }
return fns.map(f => f()).join()`,
			expect: "0,1,2",
		},
		{
			description: "destructuring",
			source: `const [a, , b = 2] = [1, 9]
const {c, d: {e = 7} = {}, ...rest} = {c: 5, f: 1}
return [a, b, c, e, Object.keys(rest).length].join()`,
			expect: "1,2,5,7,1",
		},
		{
			description: "try catch",
			source: `try { null.x } catch (e) { return e instanceof TypeError ? e.message : 'other' }`,
			expect: "Cannot read properties of null (reading 'x')",
		},
		{
			description: "finally runs",
			source: `let log = ''
function f() { try { return 'a' } finally { log += 'f' } }
return f() + log`,
			expect: "af",
		},
		{
			description: "switch fallthrough",
			source: `const out = []
for (let n = 1; n <= 4; n++) {
  switch (n % 2) {
    case 1: out.push('odd'); break
    default: out.push('even')
  }
}
return out.join()`,
			expect: "odd,even,odd,even",
		},
		{
			description: "while with break and continue",
			source: `let i = 0, sum = 0
while (true) {
  i++
  if (i % 2 === 0) continue
  if (i > 7) break
  sum += i
}
return sum`,
			expect: float64(16),
		},
		{
			description: "function hoisting",
			source:      "return twice(4)\nfunction twice(x) { return x * 2 }",
			expect:      float64(8),
		},
		{
			description: "var hoisting",
			source:      "const before = typeof v\nvar v = 1\nreturn before + v",
			expect:      "undefined1",
		},
		{
			description: "closure counter",
			source: `function counter() { let n = 0; return { inc: () => ++n } }
const c = counter(); c.inc(); c.inc()
return c.inc()`,
			expect: float64(3),
		},
		{
			description: "for of and for in",
			source: `let keys = '', total = 0
for (const k in {x: 1, y: 2}) keys += k
for (const v of [1, 2, 3]) total += v
return keys + total`,
			expect: "xy6",
		},
		{
			description: "custom error",
			source: `class ValidationError extends Error {}
try { throw new ValidationError('bad') } catch (e) { return e.message + ':' + (e instanceof Error) }`,
			expect: "bad:true",
		},
		{
			description: "getter like method with default params",
			source:      "const greet = (name = 'world') => `hi ${name}`\nreturn greet() + '/' + greet('bob')",
			expect:      "hi world/hi bob",
		},
	}
	for _, testCase := range testCases {
		actual, err := runProgram(context.Background(), testCase.source)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestInterpreter_Uncaught(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		options     []Option
		expect      string
	}{
		{description: "thrown error", source: "throw new RangeError('too big')", expect: "Uncaught RangeError: too big"},
		{description: "thrown string", source: "throw 'boom'", expect: "Uncaught 'boom'"},
		{description: "undefined name", source: "missing + 1", expect: "Uncaught ReferenceError: missing is not defined"},
		{description: "not a function", source: "const o = {}\no.f()", expect: "Uncaught TypeError: o.f is not a function"},
		{description: "constant", source: "const a = 1\na = 2", expect: "Uncaught TypeError: Assignment to constant variable."},
		{description: "redeclaration", source: "let a = 1\nlet a = 2", expect: "Uncaught SyntaxError: Identifier 'a' has already been declared"},
		{
			description: "call depth",
			source:      "function f(n) { return f(n + 1) }\nf(0)",
			options:     []Option{WithMaxCallDepth(50)},
			expect:      "Uncaught RangeError: Maximum call stack size exceeded",
		},
	}
	for _, testCase := range testCases {
		_, err := runProgram(context.Background(), testCase.source, testCase.options...)
		require.Error(t, err, testCase.description)
		assert.Equal(t, testCase.expect, Uncaught(err), testCase.description)
	}
}

func TestInterpreter_Interrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runProgram(ctx, "function f() {}\nwhile (true) { f() }")
	require.Error(t, err)
	assert.Equal(t, "Uncaught Error: Script execution interrupted", Uncaught(err))

	_, err = runProgram(ctx, "function f() {}\ntry { while (true) { f() } } catch (e) { }\nreturn 1")
	require.Error(t, err, "interrupt cannot be caught")
}

func TestInterpreter_Console(t *testing.T) {
	var output lines
	_, err := runProgram(context.Background(), "console.log('a', 1, {x: 1})\nconsole.error([true])", WithConsole(&output))
	require.NoError(t, err)
	assert.Equal(t, lines{"a 1 {\n  \"x\": 1\n}", "[\n  true\n]"}, output)
}

func TestInterpreter_Bindings(t *testing.T) {
	interp := New(context.Background())
	interp.Define("base", float64(40))
	program, err := Parse("counter = base + 2\nreturn counter")
	require.NoError(t, err)
	value, err := interp.Run(program)
	require.NoError(t, err)
	assert.Equal(t, float64(42), value)
	global, ok := interp.Global("counter")
	assert.True(t, ok)
	assert.Equal(t, float64(42), global)

	expr, err := ParseExpression("base")
	require.NoError(t, err)
	value, err = interp.Evaluate(expr)
	require.NoError(t, err)
	assert.Equal(t, float64(40), value)

	program, err = Parse("base++\nlet local = 1\nlocal = 2\nother = 3")
	require.NoError(t, err)
	_, err = interp.Run(program)
	require.NoError(t, err)
	names, values := interp.Assigned()
	assert.Equal(t, []string{"counter", "base", "other"}, names)
	assert.Equal(t, []interface{}{float64(42), float64(41), float64(3)}, values)
}

func TestInterpreter_Call(t *testing.T) {
	interp := New(context.Background())
	expr, err := ParseExpression("(a, b) => a * b")
	require.NoError(t, err)
	fn, err := interp.Evaluate(expr)
	require.NoError(t, err)
	value, err := interp.Call(fn, Undefined, float64(6), float64(7))
	require.NoError(t, err)
	assert.Equal(t, float64(42), value)
}
