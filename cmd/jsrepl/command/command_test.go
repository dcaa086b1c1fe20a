package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "script.js")
	require.NoError(t, os.WriteFile(local, []byte("1 + 1"), 0644))

	var testCases = []struct {
		description string
		location    string
		expect      string
		expectVFS   string
	}{
		{description: "local file", location: local, expect: "1 + 1"},
		{description: "virtual file", location: "vfs:/demo.js", expect: "from vfs", expectVFS: "/demo.js"},
	}
	for _, testCase := range testCases {
		var requested string
		actual, err := readSource(context.Background(), testCase.location, func(location string) (string, error) {
			requested = location
			return "from vfs", nil
		})
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
		assert.Equal(t, testCase.expectVFS, requested, testCase.description)
	}
}

func TestCommands(t *testing.T) {
	var testCases = []struct {
		description string
		args        []string
		expect      string
		expectError bool
	}{
		{description: "cat seed file", args: []string{"cat", "/README.md"}, expect: "# Snippet Shell"},
		{description: "ls root", args: []string{"ls"}, expect: "demo.js"},
		{description: "run virtual file", args: []string{"run", "vfs:/demo.js"}, expect: "Demo loaded!"},
		{description: "cat missing", args: []string{"cat", "/missing.txt"}, expectError: true},
	}
	for _, testCase := range testCases {
		root := New()
		output := new(bytes.Buffer)
		root.SetOut(output)
		root.SetErr(output)
		root.SetArgs(testCase.args)
		err := root.ExecuteContext(context.Background())
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Contains(t, output.String(), testCase.expect, testCase.description)
	}
}

func TestPromptFor(t *testing.T) {
	ctx := context.Background()
	srv, err := start(ctx, &flags{})
	require.NoError(t, err)
	defer srv.Shutdown()
	config := srv.Config().Shell
	shell := srv.NewShell()

	assert.Equal(t, "> ", promptFor(shell, config))
	shell.Continue("[1,")
	assert.Equal(t, "... ", promptFor(shell, config))
	reply := shell.SubmitLine(ctx, "2]")
	assert.True(t, reply.Pending)
	assert.Equal(t, "... ", promptFor(shell, config))
	reply = shell.SubmitLine(ctx, "")
	assert.Equal(t, "[\n  1,\n  2\n]", reply.Text)
	assert.Equal(t, "> ", promptFor(shell, config))
}
