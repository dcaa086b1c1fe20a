package jsrepl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/jsrepl"
	"github.com/viant/jsrepl/policy"
)

func newService(t *testing.T, options ...jsrepl.Option) *jsrepl.Service {
	t.Helper()
	ctx := context.Background()
	srv, err := jsrepl.New(ctx, options...)
	require.NoError(t, err)
	require.NoError(t, srv.Start(ctx))
	t.Cleanup(srv.Shutdown)
	return srv
}

func TestShell_SubmitLine(t *testing.T) {
	type submission struct {
		action string
		text   string
	}
	var testCases = []struct {
		description  string
		submissions  []submission
		expect       string
		expectError  bool
		expectExit   bool
		expectRecord []string
	}{
		{
			description:  "binding survives across calls",
			submissions:  []submission{{text: "x = 5"}, {text: "x"}},
			expect:       "5",
			expectRecord: []string{"x = 5", "x"},
		},
		{
			description:  "one line recursive function",
			submissions:  []submission{{text: "function fact(n) { return n <= 1 ? 1 : n * fact(n - 1) }"}, {text: "fact(5)"}},
			expect:       "120",
			expectRecord: []string{"function fact(n) { return n <= 1 ? 1 : n * fact(n - 1) }", "fact(5)"},
		},
		{
			description:  "named function expression sees its name",
			submissions:  []submission{{text: "const f = function g(n) { return n <= 0 ? 0 : n + g(n - 1) }"}, {text: "f(3)"}},
			expect:       "6",
			expectRecord: []string{"const f = function g(n) { return n <= 0 ? 0 : n + g(n - 1) }", "f(3)"},
		},
		{
			description:  "reassignment with semicolon",
			submissions:  []submission{{text: "x = 5;"}, {text: "x"}},
			expect:       "5",
			expectRecord: []string{"x = 5;", "x"},
		},
		{
			description:  "several reassignments",
			submissions:  []submission{{text: "a = 1; b = 2"}, {text: "a + b"}},
			expect:       "3",
			expectRecord: []string{"a = 1; b = 2", "a + b"},
		},
		{
			description:  "update of a session binding in statements",
			submissions:  []submission{{text: "let n = 1"}, {text: "n++; n += 10;"}, {text: "n"}},
			expect:       "12",
			expectRecord: []string{"let n = 1", "n++; n += 10;", "n"},
		},
		{
			description:  "load without path",
			submissions:  []submission{{text: ".load"}},
			expect:       jsrepl.LoadUsage,
			expectError:  true,
			expectRecord: []string{".load"},
		},
		{
			description:  "console output",
			submissions:  []submission{{text: `console.log("hi")`}},
			expect:       "hi",
			expectRecord: []string{`console.log("hi")`},
		},
		{
			description: "multiline accumulation evaluates once",
			submissions: []submission{
				{action: "continue", text: "[1, 2, 3]"},
				{text: "  .map(n => n * 2)"},
				{text: ""},
			},
			expect:       "[\n  2,\n  4,\n  6\n]",
			expectRecord: []string{"[1, 2, 3]\n  .map(n => n * 2)"},
		},
		{
			description:  "blank input is ignored",
			submissions:  []submission{{text: "   "}},
			expect:       "",
			expectRecord: nil,
		},
		{
			description:  "help",
			submissions:  []submission{{text: " .help "}},
			expect:       jsrepl.HelpText,
			expectRecord: []string{".help"},
		},
		{
			description:  "exit",
			submissions:  []submission{{text: ".exit"}},
			expectExit:   true,
			expectRecord: nil,
		},
		{
			description:  "paste",
			submissions:  []submission{{action: "paste", text: "const p = 2\r\np * 21"}},
			expect:       "42",
			expectRecord: []string{"const p = 2\np * 21"},
		},
		{
			description:  "load from file system",
			submissions:  []submission{{text: "writeFileSync('/lib.js', 'function twice(n) { return n * 2 }')"}, {text: ".load /lib.js"}, {text: "twice(21)"}},
			expect:       "42",
			expectRecord: []string{"writeFileSync('/lib.js', 'function twice(n) { return n * 2 }')", "function twice(n) { return n * 2 }", "twice(21)"},
		},
		{
			description:  "protected file",
			submissions:  []submission{{text: "unlinkSync('/README.md')"}},
			expect:       "Uncaught Error: rm: cannot remove '/README.md': File is protected",
			expectError:  true,
			expectRecord: []string{"unlinkSync('/README.md')"},
		},
	}
	srv := newService(t)
	ctx := context.Background()
	for _, testCase := range testCases {
		shell := srv.NewShell()
		var reply *jsrepl.Reply
		for _, item := range testCase.submissions {
			switch item.action {
			case "continue":
				reply = shell.Continue(item.text)
			case "paste":
				reply = shell.Paste(ctx, item.text)
			default:
				reply = shell.SubmitLine(ctx, item.text)
			}
		}
		assert.Equal(t, testCase.expect, reply.Text, testCase.description)
		assert.Equal(t, testCase.expectError, reply.IsError, testCase.description)
		assert.Equal(t, testCase.expectExit, reply.Exit, testCase.description)
		if diff := cmp.Diff(testCase.expectRecord, shell.Session().History()); diff != "" {
			t.Errorf("%s: history mismatch (-want +got):\n%s", testCase.description, diff)
		}
	}
}

func TestShell_Pending(t *testing.T) {
	srv := newService(t)
	shell := srv.NewShell()
	ctx := context.Background()
	assert.True(t, shell.Continue("function f() {").Pending)
	assert.True(t, shell.SubmitLine(ctx, "  return 7").Pending)
	assert.True(t, shell.SubmitLine(ctx, "}").Pending)
	reply := shell.SubmitLine(ctx, "")
	assert.False(t, reply.Pending)
	assert.Equal(t, "[Function: f]", reply.Text)
	assert.Equal(t, "7", shell.SubmitLine(ctx, "f()").Text)
}

func TestService_SharedStore(t *testing.T) {
	srv := newService(t)
	ctx := context.Background()
	writer := srv.NewShell()
	reader := srv.NewShell()
	assert.Equal(t, "undefined", writer.SubmitLine(ctx, "writeFileSync('note.txt', 'shared')").Text)
	assert.Equal(t, "shared", reader.SubmitLine(ctx, "readFileSync('/note.txt')").Text)
	assert.Equal(t, "Uncaught ReferenceError: note is not defined", reader.SubmitLine(ctx, "note").Text)

	entries, err := srv.Runtime().Store().ReadDir(ctx, "/")
	require.NoError(t, err)
	var names []string
	for _, item := range entries {
		names = append(names, item.Name())
	}
	assert.Contains(t, names, "note.txt")
}

func TestService_Policy(t *testing.T) {
	srv := newService(t, jsrepl.WithPolicy(&policy.Policy{Mode: policy.ModeAuto, BlockList: []string{policy.FSWrite}}))
	shell := srv.NewShell()
	reply := shell.SubmitLine(context.Background(), "writeFileSync('/x', 'y')")
	assert.True(t, reply.IsError)
	assert.Equal(t, "Uncaught ReferenceError: writeFileSync is not defined", reply.Text)
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/jsrepl/config.yaml"
	t.Setenv("JSREPL_STORE", "mem://localhost/store")
	content := `shell:
  historyLimit: 10
store:
  url: ${env.JSREPL_STORE}/vfs
bridge:
  timeout: 500ms
policy:
  mode: auto
  block:
    - fs.write
logLevel: warning
`
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(content)))
	config, err := jsrepl.LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, 10, config.Shell.HistoryLimit)
	assert.Equal(t, "> ", config.Shell.Prompt)
	assert.Equal(t, 500*time.Millisecond, config.Bridge.Timeout)
	assert.Equal(t, []string{policy.FSWrite}, config.Policy.BlockList)
	assert.Equal(t, 2048, config.Evaluator.MaxCallDepth)
	assert.Equal(t, "mem://localhost/store/vfs", config.Store.URL)

	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader("policy:\n  mode: maybe\n")))
	_, err = jsrepl.LoadConfig(ctx, URL)
	assert.Error(t, err)
}
