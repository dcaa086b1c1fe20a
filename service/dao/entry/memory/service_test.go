package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/service/dao"
)

func TestService_ParentIndex(t *testing.T) {
	ctx := context.Background()
	srv := New()
	now := time.Now()
	require.NoError(t, srv.Save(ctx, entry.NewDirectory("/", "", now)))
	require.NoError(t, srv.Save(ctx, entry.NewDirectory("/docs", "/", now)))
	require.NoError(t, srv.Save(ctx, entry.NewFile("/docs/b.txt", "/docs", "b", now)))
	require.NoError(t, srv.Save(ctx, entry.NewFile("/a.txt", "/", "a", now)))

	var testCases = []struct {
		description string
		parent      string
		expect      []string
	}{
		{description: "root children", parent: "/", expect: []string{"/a.txt", "/docs"}},
		{description: "nested children", parent: "/docs", expect: []string{"/docs/b.txt"}},
		{description: "no children", parent: "/a.txt", expect: nil},
	}
	for _, testCase := range testCases {
		items, err := srv.List(ctx, dao.NewParameter(ParentPathParameter, testCase.parent))
		require.NoError(t, err, testCase.description)
		var actual []string
		for _, item := range items {
			actual = append(actual, item.Path)
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	require.NoError(t, srv.Delete(ctx, "/docs/b.txt"))
	items, err := srv.List(ctx, dao.NewParameter(ParentPathParameter, "/docs"))
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = srv.Load(ctx, "/docs/b.txt")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.Equal(t, 3, srv.Len())
}
