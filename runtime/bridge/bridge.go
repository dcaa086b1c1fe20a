package bridge

import (
	"context"
	"fmt"
	"time"

	"fortio.org/log"
	"github.com/viant/jsrepl/internal/idgen"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/vfs"
	"github.com/viant/jsrepl/tracing"
)

// DefaultTimeout bounds every bridged call
const DefaultTimeout = 2 * time.Second

// Submitter starts an asynchronous operation and returns its pending call
type Submitter interface {
	Submit(ctx context.Context, op *operation.Operation) (*operation.Pending, error)
}

// Bridge turns asynchronous file store operations into blocking calls.
// The caller is suspended on the pending call's completion channel, bounded
// by a real timer and the caller's context.
type Bridge struct {
	submitter Submitter
	timeout   time.Duration
	sessionID string
}

// Call submits an operation and waits for its outcome
func (b *Bridge) Call(ctx context.Context, name operation.Name, location string, content string) (result interface{}, err error) {
	op := operation.New(idgen.NewWithPrefix("op"), name, location, content)
	op.SessionID = b.sessionID
	ctx, span := tracing.StartSpan(ctx, "bridge."+string(name), "PRODUCER")
	span.WithAttributes(map[string]string{"path": location, "session": b.sessionID})
	defer func() { tracing.EndSpan(span, err) }()
	pending, err := b.submitter.Submit(ctx, op)
	if err != nil {
		return nil, err
	}
	return b.Await(ctx, op, pending)
}

// Await blocks until pending is resolved, the timeout elapses or ctx is done
func (b *Bridge) Await(ctx context.Context, op *operation.Operation, pending *operation.Pending) (interface{}, error) {
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case <-pending.Done():
		return pending.Result()
	case <-timer.C:
		log.Warnf("%v %v timed out after %v", op.Name, op.Path, b.timeout)
		return nil, &vfs.Error{Op: string(op.Name), Path: vfs.NormalizePath(op.Path), Err: vfs.ErrTimeout}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReadFile returns file content
func (b *Bridge) ReadFile(ctx context.Context, location string) (string, error) {
	result, err := b.Call(ctx, operation.ReadFile, location, "")
	if err != nil {
		return "", err
	}
	content, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected readFile result: %T", result)
	}
	return content, nil
}

// WriteFile creates or overwrites a file
func (b *Bridge) WriteFile(ctx context.Context, location, content string) error {
	_, err := b.Call(ctx, operation.WriteFile, location, content)
	return err
}

// ReadDir returns names of the directory children
func (b *Bridge) ReadDir(ctx context.Context, location string) ([]string, error) {
	result, err := b.Call(ctx, operation.ReadDir, location, "")
	if err != nil {
		return nil, err
	}
	entries, ok := result.([]*entry.Entry)
	if !ok {
		return nil, fmt.Errorf("unexpected readdir result: %T", result)
	}
	names := make([]string, 0, len(entries))
	for _, item := range entries {
		names = append(names, item.Name())
	}
	return names, nil
}

// Exists returns true if an entry exists
func (b *Bridge) Exists(ctx context.Context, location string) (bool, error) {
	result, err := b.Call(ctx, operation.Exists, location, "")
	if err != nil {
		return false, err
	}
	exists, _ := result.(bool)
	return exists, nil
}

// Mkdir creates a directory
func (b *Bridge) Mkdir(ctx context.Context, location string) error {
	_, err := b.Call(ctx, operation.Mkdir, location, "")
	return err
}

// Rmdir removes an empty directory
func (b *Bridge) Rmdir(ctx context.Context, location string) error {
	_, err := b.Call(ctx, operation.Rmdir, location, "")
	return err
}

// Unlink removes a file
func (b *Bridge) Unlink(ctx context.Context, location string) error {
	_, err := b.Call(ctx, operation.DeleteFile, location, "")
	return err
}

// Touch creates or refreshes a file
func (b *Bridge) Touch(ctx context.Context, location string) error {
	_, err := b.Call(ctx, operation.Touch, location, "")
	return err
}

// Stat returns entry summary
func (b *Bridge) Stat(ctx context.Context, location string) (*entry.Stat, error) {
	result, err := b.Call(ctx, operation.Stat, location, "")
	if err != nil {
		return nil, err
	}
	stat, ok := result.(*entry.Stat)
	if !ok {
		return nil, fmt.Errorf("unexpected stat result: %T", result)
	}
	return stat, nil
}

// New creates a bridge
func New(submitter Submitter, options ...Option) *Bridge {
	ret := &Bridge{submitter: submitter, timeout: DefaultTimeout}
	for _, option := range options {
		option(ret)
	}
	return ret
}
