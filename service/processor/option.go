package processor

import (
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/messaging"
)

// Option customises the processor
type Option func(*Service)

// WithMessageQueue sets the message queue implementation
func WithMessageQueue(queue messaging.Queue[operation.Operation]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithExecutor sets the operation executor
func WithExecutor(executor Executor) Option {
	return func(s *Service) {
		s.executor = executor
	}
}

// WithWorkers sets the number of worker goroutines
func WithWorkers(count int) Option {
	return func(s *Service) {
		s.config.WorkerCount = count
	}
}

// WithRetryable sets the predicate deciding whether a failure is transient
func WithRetryable(fn func(err error) bool) Option {
	return func(s *Service) {
		s.retryable = fn
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
