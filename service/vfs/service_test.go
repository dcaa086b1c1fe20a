package vfs

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/internal/clock"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/dao/entry/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv, err := New(WithDAO(memory.New()))
	require.NoError(t, err)
	require.NoError(t, srv.Init(context.Background()))
	return srv
}

func names(entries []*entry.Entry) []string {
	var result []string
	for _, item := range entries {
		result = append(result, item.Name())
	}
	return result
}

func TestNormalizePath(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "root", input: "/", expect: "/"},
		{description: "relative", input: "a.txt", expect: "/a.txt"},
		{description: "trailing slash", input: "/docs/", expect: "/docs"},
		{description: "empty", input: "", expect: "/"},
		{description: "duplicate separators", input: "//docs//a.txt", expect: "/docs/a.txt"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, NormalizePath(testCase.input), testCase.description)
	}
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "/", ParentPath("/"))
	assert.Equal(t, "/", ParentPath("/a.txt"))
	assert.Equal(t, "/a/b", ParentPath("/a/b/c.txt"))
}

func TestService_Init(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	entries, err := srv.ReadDir(ctx, "/")
	require.NoError(t, err)
	expect := []string{"README.md", "contact.txt", "demo.js", "experience.md", "hello.py", "profile.json", "projects.js"}
	if diff := cmp.Diff(expect, names(entries)); diff != "" {
		t.Errorf("unexpected root listing (-want +got):\n%s", diff)
	}

	// user changes survive a second initialisation
	require.NoError(t, srv.WriteFile(ctx, "/notes.txt", "mine"))
	require.NoError(t, srv.Init(ctx))
	content, err := srv.ReadFile(ctx, "/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "mine", content)
}

func TestService_RoundTrip(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	var testCases = []struct {
		description string
		path        string
		content     string
	}{
		{description: "root file", path: "/a.txt", content: "hello"},
		{description: "relative path", path: "b.txt", content: "line1\nline2"},
		{description: "empty content", path: "/empty.txt", content: ""},
		{description: "unicode", path: "/u.txt", content: "zażółć"},
	}
	for _, testCase := range testCases {
		require.NoError(t, srv.WriteFile(ctx, testCase.path, testCase.content), testCase.description)
		actual, err := srv.ReadFile(ctx, testCase.path)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.content, actual, testCase.description)
	}
}

func TestService_Errors(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	require.NoError(t, srv.Mkdir(ctx, "/docs"))

	var testCases = []struct {
		description string
		run         func() error
		kind        error
		message     string
	}{
		{
			description: "read missing",
			run:         func() error { _, err := srv.ReadFile(ctx, "/nope.txt"); return err },
			kind:        ErrNotFound,
			message:     "cat: /nope.txt: No such file or directory",
		},
		{
			description: "read directory",
			run:         func() error { _, err := srv.ReadFile(ctx, "/docs"); return err },
			kind:        ErrIsDirectory,
			message:     "cat: /docs: Is a directory",
		},
		{
			description: "write without parent",
			run:         func() error { return srv.WriteFile(ctx, "/x/y.txt", "z") },
			kind:        ErrNoSuchParent,
			message:     "cannot create /x/y.txt: No such file or directory",
		},
		{
			description: "write protected",
			run:         func() error { return srv.WriteFile(ctx, "/README.md", "z") },
			kind:        ErrProtectedFile,
			message:     "cannot overwrite '/README.md': File is protected",
		},
		{
			description: "delete protected",
			run:         func() error { return srv.DeleteFile(ctx, "/demo.js") },
			kind:        ErrProtectedFile,
			message:     "rm: cannot remove '/demo.js': File is protected",
		},
		{
			description: "delete missing",
			run:         func() error { return srv.DeleteFile(ctx, "/ghost") },
			kind:        ErrNotFound,
			message:     "rm: cannot remove '/ghost': No such file or directory",
		},
		{
			description: "list missing",
			run:         func() error { _, err := srv.ReadDir(ctx, "/ghost"); return err },
			kind:        ErrNotFound,
			message:     "ls: cannot access '/ghost': No such file or directory",
		},
		{
			description: "mkdir existing",
			run:         func() error { return srv.Mkdir(ctx, "/docs") },
			kind:        ErrAlreadyExists,
			message:     "mkdir: cannot create directory '/docs': File exists",
		},
		{
			description: "mkdir without parent",
			run:         func() error { return srv.Mkdir(ctx, "/a/b") },
			kind:        ErrNoSuchParent,
			message:     "mkdir: cannot create directory '/a/b': No such file or directory",
		},
		{
			description: "stat missing",
			run:         func() error { _, err := srv.Stat(ctx, "/ghost"); return err },
			kind:        ErrNotFound,
			message:     "stat: cannot stat '/ghost': No such file or directory",
		},
		{
			description: "write over directory",
			run:         func() error { return srv.WriteFile(ctx, "/docs", "z") },
			kind:        ErrIsDirectory,
			message:     "cannot create /docs: Is a directory",
		},
	}
	for _, testCase := range testCases {
		err := testCase.run()
		require.Error(t, err, testCase.description)
		assert.ErrorIs(t, err, testCase.kind, testCase.description)
		assert.Equal(t, testCase.message, err.Error(), testCase.description)
	}
}

func TestService_ProtectedUnchanged(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	before, err := srv.ReadFile(ctx, "/profile.json")
	require.NoError(t, err)

	assert.ErrorIs(t, srv.WriteFile(ctx, "/profile.json", "{}"), ErrProtectedFile)
	assert.ErrorIs(t, srv.DeleteFile(ctx, "profile.json"), ErrProtectedFile)
	assert.ErrorIs(t, srv.Touch(ctx, "/profile.json"), ErrProtectedFile)

	after, err := srv.ReadFile(ctx, "/profile.json")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.True(t, srv.IsProtected("/profile.json/"))
}

func TestService_Directories(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, srv.Mkdir(ctx, "/sub"))
	require.NoError(t, srv.WriteFile(ctx, "/sub/f.txt", "z"))
	content, err := srv.ReadFile(ctx, "/sub/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "z", content)

	err = srv.Rmdir(ctx, "/sub")
	assert.ErrorIs(t, err, ErrDirectoryNotEmpty)
	assert.Equal(t, "rmdir: failed to remove '/sub': Directory not empty", err.Error())

	require.NoError(t, srv.Mkdir(ctx, "/sub/deeper"))
	require.NoError(t, srv.WriteFile(ctx, "/sub/deeper/g.txt", "g"))

	root, err := srv.ReadDir(ctx, "/")
	require.NoError(t, err)
	for _, item := range root {
		assert.Equal(t, "/", item.Parent(), item.Path)
	}
	assert.Contains(t, names(root), "sub")
	assert.NotContains(t, names(root), "f.txt")

	sub, err := srv.ReadDir(ctx, "/sub/")
	require.NoError(t, err)
	assert.Equal(t, []string{"deeper", "f.txt"}, names(sub))

	require.NoError(t, srv.DeleteFile(ctx, "/sub/deeper/g.txt"))
	require.NoError(t, srv.Rmdir(ctx, "/sub/deeper"))
	require.NoError(t, srv.DeleteFile(ctx, "/sub/f.txt"))
	require.NoError(t, srv.Rmdir(ctx, "/sub"))
	exists, err := srv.Exists(ctx, "/sub")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_TouchAndStat(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return now }
	defer func() { clock.NowFunc = time.Now }()

	require.NoError(t, srv.Touch(ctx, "/new.txt"))
	stat, err := srv.Stat(ctx, "/new.txt")
	require.NoError(t, err)
	assert.Equal(t, &entry.Stat{Path: "/new.txt", IsFile: true, Size: 0, Modified: now}, stat)

	require.NoError(t, srv.WriteFile(ctx, "/new.txt", "abc"))
	now = now.Add(time.Hour)
	require.NoError(t, srv.Touch(ctx, "/new.txt"))
	content, err := srv.ReadFile(ctx, "/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "abc", content)
	stat, err = srv.Stat(ctx, "/new.txt")
	require.NoError(t, err)
	assert.Equal(t, now, stat.Modified)
	assert.Equal(t, 3, stat.Size)

	rootStat, err := srv.Stat(ctx, "/")
	require.NoError(t, err)
	assert.True(t, rootStat.IsDirectory)
}

func TestService_Clear(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()
	require.NoError(t, srv.Clear(ctx))
	entries, err := srv.ReadDir(ctx, "/")
	require.NoError(t, err)
	assert.Empty(t, entries)
	exists, err := srv.Exists(ctx, "/")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_Execute(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	_, err := srv.Execute(ctx, operation.New("1", operation.WriteFile, "/e.txt", "data"))
	require.NoError(t, err)
	result, err := srv.Execute(ctx, operation.New("2", operation.ReadFile, "/e.txt", ""))
	require.NoError(t, err)
	assert.Equal(t, "data", result)
	result, err = srv.Execute(ctx, operation.New("3", operation.Exists, "/e.txt", ""))
	require.NoError(t, err)
	assert.Equal(t, true, result)
	_, err = srv.Execute(ctx, operation.New("4", operation.Name("chmod"), "/e.txt", ""))
	assert.Error(t, err)
}
