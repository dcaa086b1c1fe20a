package jsrepl

import (
	"context"
	"fmt"

	"fortio.org/log"
	"github.com/viant/jsrepl/internal/idgen"
	"github.com/viant/jsrepl/model/operation"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/runtime/bridge"
	"github.com/viant/jsrepl/runtime/evaluator"
	"github.com/viant/jsrepl/runtime/session"
	"github.com/viant/jsrepl/service/dao/entry/fs"
	"github.com/viant/jsrepl/service/dao/entry/memory"
	mmemory "github.com/viant/jsrepl/service/messaging/memory"
	"github.com/viant/jsrepl/service/processor"
	"github.com/viant/jsrepl/service/vfs"
)

// Service is the store owner: it wires the durable entry store, the file
// system, the operation queue and its workers, and creates shells over them.
type Service struct {
	config  *Config
	runtime *Runtime
	policy  *policy.Policy
	seed    []*vfs.SeedEntry
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Runtime returns the shared runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Policy returns the capability policy shared by shells, nil when every capability is granted
func (s *Service) Policy() *policy.Policy {
	return s.policy
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if level := s.config.LogLevel; level != "" {
		if err := log.SetLogLevelStr(level); err != nil {
			return fmt.Errorf("invalid log level %v: %w", level, err)
		}
	}
	if s.policy == nil && s.config.Policy != nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
	if err := s.ensureBaseSetup(ctx); err != nil {
		return err
	}
	var vfsOptions = []vfs.Option{vfs.WithDAO(s.runtime.entryDAO)}
	if s.seed != nil {
		vfsOptions = append(vfsOptions, vfs.WithSeed(s.seed...))
	}
	store, err := vfs.New(vfsOptions...)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}
	s.runtime.store = store
	s.runtime.processor, err = processor.New(
		processor.WithConfig(s.config.Processor),
		processor.WithExecutor(store),
		processor.WithMessageQueue(s.runtime.queue),
	)
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}
	return nil
}

func (s *Service) ensureBaseSetup(ctx context.Context) error {
	if s.runtime.entryDAO == nil {
		if URL := s.config.Store.URL; URL != "" {
			entryDAO, err := fs.New(ctx, URL)
			if err != nil {
				return err
			}
			s.runtime.entryDAO = entryDAO
		} else {
			s.runtime.entryDAO = memory.New()
		}
	}
	if s.runtime.queue == nil {
		s.runtime.queue = mmemory.NewQueue[operation.Operation](mmemory.DefaultConfig())
	}
	return nil
}

// Start seeds the file system and starts the workers
func (s *Service) Start(ctx context.Context) error {
	return s.runtime.Start(ctx)
}

// Shutdown stops the workers
func (s *Service) Shutdown() {
	s.runtime.Shutdown()
}

// NewShell creates a shell with a fresh session
func (s *Service) NewShell(options ...ShellOption) *Shell {
	aSession := session.New(idgen.NewWithPrefix("session"), session.WithHistoryLimit(s.config.Shell.HistoryLimit))
	aBridge := bridge.New(s.runtime.processor,
		bridge.WithTimeout(s.config.Bridge.Timeout),
		bridge.WithSessionID(aSession.ID))
	ret := &Shell{
		session: aSession,
		bridge:  aBridge,
		evaluator: evaluator.New(
			evaluator.WithFileSystem(aBridge),
			evaluator.WithPolicy(s.policy),
			evaluator.WithMaxCallDepth(s.config.Evaluator.MaxCallDepth),
			evaluator.WithTimeout(s.config.Evaluator.Timeout),
		),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// New creates a service
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig(), runtime: &Runtime{}}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
