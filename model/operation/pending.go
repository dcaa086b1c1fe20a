package operation

import (
	"sync"
)

// Pending tracks completion of an asynchronous operation. It is resolved
// exactly once; subsequent Resolve calls are ignored.
type Pending struct {
	mu     sync.RWMutex
	once   sync.Once
	done   chan struct{}
	result interface{}
	err    error
}

// Resolve completes the call with a result or an error
func (p *Pending) Resolve(result interface{}, err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.result = result
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

// Done returns a channel closed once the call has been resolved
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// IsDone returns true if the call has been resolved
func (p *Pending) IsDone() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns resolved value and error
func (p *Pending) Result() (interface{}, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result, p.err
}

// NewPending creates an unresolved pending call
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}
