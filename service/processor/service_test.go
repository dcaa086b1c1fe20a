package processor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/messaging/memory"
)

type stubExecutor struct {
	calls    int32
	failures int32
	err      error
}

func (s *stubExecutor) Execute(ctx context.Context, op *operation.Operation) (interface{}, error) {
	call := atomic.AddInt32(&s.calls, 1)
	if call <= s.failures {
		return nil, s.err
	}
	return string(op.Name) + ":" + op.Path, nil
}

var errTransient = errors.New("transient")

func TestService_Submit(t *testing.T) {
	testCases := []struct {
		description string
		failures    int32
		retryable   bool
		expectErr   bool
		expectCalls int32
	}{
		{description: "success", expectCalls: 1},
		{description: "permanent failure", failures: 1, expectErr: true, expectCalls: 1},
		{description: "transient failure retried", failures: 2, retryable: true, expectCalls: 3},
		{description: "retries exhausted", failures: 5, retryable: true, expectErr: true, expectCalls: 3},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			executor := &stubExecutor{failures: testCase.failures, err: errTransient}
			srv, err := New(
				WithExecutor(executor),
				WithMessageQueue(memory.NewQueue[operation.Operation](memory.DefaultConfig())),
				WithWorkers(2),
				WithRetryable(func(err error) bool { return testCase.retryable && errors.Is(err, errTransient) }),
			)
			require.NoError(t, err)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			require.NoError(t, srv.Start(ctx))
			defer srv.Shutdown()

			pending, err := srv.Submit(ctx, &operation.Operation{Name: operation.ReadFile, Path: "/a.txt"})
			require.NoError(t, err)
			select {
			case <-pending.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("operation was not resolved")
			}
			result, err := pending.Result()
			if testCase.expectErr {
				assert.ErrorIs(t, err, errTransient)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "readFile:/a.txt", result)
			}
			assert.Equal(t, testCase.expectCalls, atomic.LoadInt32(&executor.calls))
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(WithMessageQueue(memory.NewQueue[operation.Operation](memory.DefaultConfig())))
	assert.Error(t, err)
	_, err = New(WithExecutor(&stubExecutor{}))
	assert.Error(t, err)
}
