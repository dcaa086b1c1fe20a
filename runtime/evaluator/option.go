package evaluator

import (
	"time"

	"github.com/viant/jsrepl/policy"
)

// Option customises an evaluator
type Option func(s *Service)

// WithFileSystem binds file operations into snippet scope
func WithFileSystem(fs FileSystem) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithPolicy sets the capability policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithMaxCallDepth bounds nested calls in snippets
func WithMaxCallDepth(depth int) Option {
	return func(s *Service) {
		s.maxCallDepth = depth
	}
}

// WithTimeout bounds the wall-clock time of one evaluation
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}
