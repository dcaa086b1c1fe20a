package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/messaging/memory"
	"github.com/viant/jsrepl/service/processor"
	"github.com/viant/jsrepl/service/vfs"
)

type blockingExecutor struct {
	release chan struct{}
}

func (b *blockingExecutor) Execute(ctx context.Context, op *operation.Operation) (interface{}, error) {
	<-b.release
	return "late", nil
}

func newStore(t *testing.T) *vfs.Service {
	t.Helper()
	store, err := vfs.New()
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestBridge_OverProcessor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newStore(t)
	workers, err := processor.New(
		processor.WithExecutor(store),
		processor.WithMessageQueue(memory.NewQueue[operation.Operation](memory.DefaultConfig())),
	)
	require.NoError(t, err)
	require.NoError(t, workers.Start(ctx))
	defer workers.Shutdown()

	aBridge := New(workers, WithTimeout(time.Second), WithSessionID("s1"))

	require.NoError(t, aBridge.Mkdir(ctx, "/sub"))
	require.NoError(t, aBridge.WriteFile(ctx, "/sub/f.txt", "z"))
	content, err := aBridge.ReadFile(ctx, "/sub/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "z", content)

	names, err := aBridge.ReadDir(ctx, "/sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, names)

	exists, err := aBridge.Exists(ctx, "/sub/f.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	stat, err := aBridge.Stat(ctx, "/sub/f.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, stat.Size)

	err = aBridge.Rmdir(ctx, "/sub")
	assert.ErrorIs(t, err, vfs.ErrDirectoryNotEmpty)

	require.NoError(t, aBridge.Unlink(ctx, "/sub/f.txt"))
	require.NoError(t, aBridge.Rmdir(ctx, "/sub"))

	_, err = aBridge.ReadFile(ctx, "/sub/f.txt")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestBridge_Spawn(t *testing.T) {
	ctx := context.Background()
	aBridge := New(Spawn(newStore(t)))
	require.NoError(t, aBridge.Touch(ctx, "/t.txt"))
	content, err := aBridge.ReadFile(ctx, "t.txt")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestBridge_Timeout(t *testing.T) {
	executor := &blockingExecutor{release: make(chan struct{})}
	defer close(executor.release)
	aBridge := New(Spawn(executor), WithTimeout(20*time.Millisecond))

	started := time.Now()
	_, err := aBridge.ReadFile(context.Background(), "/slow.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, vfs.ErrTimeout)
	assert.Equal(t, "cat: /slow.txt: Operation timed out", err.Error())
	assert.Less(t, time.Since(started), time.Second)
}

func TestBridge_ContextCancelled(t *testing.T) {
	executor := &blockingExecutor{release: make(chan struct{})}
	defer close(executor.release)
	aBridge := New(Spawn(executor), WithTimeout(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := aBridge.Call(ctx, operation.ReadFile, "/x", "")
	assert.ErrorIs(t, err, context.Canceled)
}
