package jsrepl

import (
	"context"
	"strings"

	"github.com/viant/jsrepl/runtime/bridge"
	"github.com/viant/jsrepl/runtime/evaluator"
	"github.com/viant/jsrepl/runtime/session"
)

// Shell sentinel commands handled before evaluation
const (
	ExitCommand = ".exit"
	HelpCommand = ".help"
	LoadCommand = ".load"
)

// HelpText is returned for the help command
const HelpText = `.exit    Exit the REPL
.help    Print this help message
.load    Load a file from the virtual file system into the session`

// LoadUsage is returned for the load command without a path
const LoadUsage = "Usage: .load <path>"

// Reply is what the shell hands back for one submission
type Reply struct {
	Text    string
	IsError bool
	// Exit is set when the session ended
	Exit bool
	// Pending is set while lines are being accumulated
	Pending bool
	// Result is the evaluation outcome; nil for sentinels and pending input
	Result *evaluator.Result
}

// ShellOption customises a shell
type ShellOption func(s *Shell)

// WithExitHandler registers a callback invoked on the exit command
func WithExitHandler(fn func(s *Shell)) ShellOption {
	return func(s *Shell) {
		s.onExit = fn
	}
}

// Shell implements the shell protocol over one session
type Shell struct {
	session   *session.Session
	bridge    *bridge.Bridge
	evaluator *evaluator.Service
	onExit    func(s *Shell)
	exited    bool
}

// Session returns the shell session
func (s *Shell) Session() *session.Session {
	return s.session
}

// Exited returns true once the exit command was submitted
func (s *Shell) Exited() bool {
	return s.exited
}

// Continue pushes line onto the multiline buffer
func (s *Shell) Continue(line string) *Reply {
	s.session.Machine().Continue(line)
	return &Reply{Pending: true}
}

// SubmitLine handles a plain submit; it always yields a reply, never an error
func (s *Shell) SubmitLine(ctx context.Context, text string) *Reply {
	snippet, ready := s.session.Machine().Submit(text)
	if !ready {
		return &Reply{Pending: true}
	}
	return s.submit(ctx, snippet)
}

// Paste evaluates a pasted block at once; blocks without newlines are plain submits
func (s *Shell) Paste(ctx context.Context, block string) *Reply {
	if !strings.ContainsAny(block, "\r\n") {
		return s.SubmitLine(ctx, block)
	}
	return s.submit(ctx, s.session.Machine().Paste(block))
}

func (s *Shell) submit(ctx context.Context, snippet string) *Reply {
	trimmed := strings.TrimSpace(snippet)
	if trimmed == "" {
		return &Reply{}
	}
	if reply, ok := s.sentinel(ctx, trimmed); ok {
		return reply
	}
	return s.evaluate(ctx, snippet)
}

func (s *Shell) evaluate(ctx context.Context, snippet string) *Reply {
	result := s.evaluator.Evaluate(ctx, snippet, s.session.Env())
	s.session.Record(snippet, result.Text, result.IsError)
	return &Reply{Text: result.Text, IsError: result.IsError, Result: result}
}

func (s *Shell) sentinel(ctx context.Context, command string) (*Reply, bool) {
	switch {
	case command == ExitCommand:
		s.exited = true
		s.session.Machine().Reset()
		if s.onExit != nil {
			s.onExit(s)
		}
		return &Reply{Exit: true}, true
	case command == HelpCommand:
		s.session.Record(command, HelpText, false)
		return &Reply{Text: HelpText}, true
	case command == LoadCommand:
		s.session.Record(command, LoadUsage, true)
		return &Reply{Text: LoadUsage, IsError: true}, true
	case strings.HasPrefix(command, LoadCommand+" "):
		location := strings.TrimSpace(strings.TrimPrefix(command, LoadCommand))
		content, err := s.bridge.ReadFile(ctx, location)
		if err != nil {
			s.session.Record(command, err.Error(), true)
			return &Reply{Text: err.Error(), IsError: true}, true
		}
		reply := s.evaluate(ctx, content)
		return reply, true
	}
	return nil, false
}
