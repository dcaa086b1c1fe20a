package bridge

import (
	"context"

	"github.com/viant/jsrepl/model/operation"
)

// Executor runs an operation synchronously
type Executor interface {
	Execute(ctx context.Context, op *operation.Operation) (interface{}, error)
}

type spawner struct {
	executor Executor
}

// Submit runs the operation on its own goroutine
func (s *spawner) Submit(ctx context.Context, op *operation.Operation) (*operation.Pending, error) {
	if op.Pending == nil {
		op.Pending = operation.NewPending()
	}
	go func() {
		result, err := s.executor.Execute(ctx, op)
		op.Pending.Resolve(result, err)
	}()
	return op.Pending, nil
}

// Spawn returns a Submitter executing every operation on a dedicated
// goroutine, without a queue or worker pool.
func Spawn(executor Executor) Submitter {
	return &spawner{executor: executor}
}
