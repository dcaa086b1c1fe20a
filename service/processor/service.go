package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fortio.org/log"
	"github.com/viant/jsrepl/internal/idgen"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/messaging"
	"github.com/viant/jsrepl/tracing"
)

// Executor runs a single file store operation
type Executor interface {
	Execute(ctx context.Context, op *operation.Operation) (interface{}, error)
}

// Config represents processor configuration
type Config struct {
	// WorkerCount is the number of workers consuming operations
	WorkerCount int `json:"workers" yaml:"workers"`

	// MaxRetries is the maximum number of retries for a retryable failure
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration `json:"retryDelay" yaml:"retryDelay"`
}

// DefaultConfig returns the default processor configuration
func DefaultConfig() Config {
	return Config{
		WorkerCount: 4,
		MaxRetries:  2,
		RetryDelay:  5 * time.Millisecond,
	}
}

// Service consumes queued operations with a pool of workers and resolves
// each operation's pending call with the executor's outcome.
type Service struct {
	config    Config
	queue     messaging.Queue[operation.Operation]
	executor  Executor
	retryable func(err error) bool

	mu       sync.Mutex
	started  bool
	workers  []*worker
	workerWg sync.WaitGroup
}

type worker struct {
	id       int
	service  *Service
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates a processor service
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(s)
	}
	if s.executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if s.queue == nil {
		return nil, fmt.Errorf("message queue is required")
	}
	if s.config.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be > 0")
	}
	if s.retryable == nil {
		s.retryable = func(err error) bool { return false }
	}
	return s, nil
}

// Start launches worker goroutines; calling it twice is a no-op
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true
	for i := 0; i < s.config.WorkerCount; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{id: i, service: s, ctx: workerCtx, cancelFn: cancel}
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run()
	}
	log.LogVf("processor started %d workers", s.config.WorkerCount)
	return nil
}

// Submit publishes an operation and returns its pending call
func (s *Service) Submit(ctx context.Context, op *operation.Operation) (*operation.Pending, error) {
	if op == nil {
		return nil, fmt.Errorf("operation was nil")
	}
	if op.ID == "" {
		op.ID = idgen.NewWithPrefix("op")
	}
	if op.Pending == nil {
		op.Pending = operation.NewPending()
	}
	if op.ScheduledAt.IsZero() {
		op.ScheduledAt = time.Now()
	}
	if err := s.queue.Publish(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to publish %v %v: %w", op.Name, op.Path, err)
	}
	return op.Pending, nil
}

// run processes messages from the queue
func (w *worker) run() {
	defer w.service.workerWg.Done()
	for {
		msg, err := w.service.queue.Consume(w.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if msg == nil {
			continue
		}
		if pErr := w.service.processMessage(w.ctx, msg); pErr != nil {
			log.Errf("worker %d: failed to process message %v: %v", w.id, msg.ID(), pErr)
		}
	}
}

// processMessage executes one operation, retrying retryable failures
func (s *Service) processMessage(ctx context.Context, message messaging.Message[operation.Operation]) (err error) {
	op := message.T()
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("processor.Execute %s", op.Name), "CONSUMER")
	span.WithAttributes(map[string]string{"operation.id": op.ID, "operation.path": op.Path})
	defer func() { tracing.EndSpan(span, err) }()

	var result interface{}
	for {
		result, err = s.executor.Execute(ctx, op)
		if err == nil || !s.retryable(err) || op.Attempts >= s.config.MaxRetries {
			break
		}
		op.Attempts++
		log.Warnf("retrying %v %v (attempt %d): %v", op.Name, op.Path, op.Attempts, err)
		select {
		case <-ctx.Done():
			if op.Pending != nil {
				op.Pending.Resolve(nil, ctx.Err())
			}
			return message.Nack(ctx.Err())
		case <-time.After(s.config.RetryDelay):
		}
	}
	log.LogVf("processed %v %v: err=%v", op.Name, op.Path, err)
	if op.Pending != nil {
		op.Pending.Resolve(result, err)
	}
	if ackErr := message.Ack(); ackErr != nil {
		return ackErr
	}
	return nil
}

// Shutdown stops all workers and waits for them to exit
func (s *Service) Shutdown() {
	s.mu.Lock()
	workers := s.workers
	s.workers = nil
	s.started = false
	s.mu.Unlock()
	for _, w := range workers {
		w.cancelFn()
	}
	s.workerWg.Wait()
}
