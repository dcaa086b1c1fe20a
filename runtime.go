package jsrepl

import (
	"context"
	"fmt"
	"sync"

	"fortio.org/log"
	"github.com/viant/jsrepl/model/entry"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/service/dao"
	"github.com/viant/jsrepl/service/messaging"
	"github.com/viant/jsrepl/service/processor"
	"github.com/viant/jsrepl/service/vfs"
)

// Runtime owns the shared file store and the workers resolving its operations.
// Every shell of a service shares one runtime.
type Runtime struct {
	entryDAO  dao.Service[string, entry.Entry]
	queue     messaging.Queue[operation.Operation]
	store     *vfs.Service
	processor *processor.Service

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// Store returns the virtual file system
func (r *Runtime) Store() *vfs.Service {
	return r.store
}

// Processor returns the operation worker pool
func (r *Runtime) Processor() *processor.Service {
	return r.processor
}

// Start seeds the file system and starts the workers; it is idempotent
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	if r.store == nil || r.processor == nil {
		return fmt.Errorf("runtime not fully initialised – store or processor missing")
	}
	if err := r.store.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialise file store: %w", err)
	}
	workerCtx, cancel := context.WithCancel(context.Background())
	if err := r.processor.Start(workerCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start processor: %w", err)
	}
	r.cancel = cancel
	r.started = true
	log.Infof("runtime started")
	return nil
}

// Shutdown stops the workers
func (r *Runtime) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	r.processor.Shutdown()
	r.cancel()
	r.started = false
	log.Infof("runtime stopped")
}
