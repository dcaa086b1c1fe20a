package bridge

import "time"

// Option customises a bridge
type Option func(b *Bridge)

// WithTimeout sets the wall-clock budget of every call
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithSessionID tags submitted operations with the owning session
func WithSessionID(id string) Option {
	return func(b *Bridge) {
		b.sessionID = id
	}
}
