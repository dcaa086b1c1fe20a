package evaluator

import (
	"context"
	"errors"
	"strings"
	"time"

	"fortio.org/log"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/runtime/binding"
	"github.com/viant/jsrepl/runtime/capture"
	"github.com/viant/jsrepl/runtime/declaration"
	"github.com/viant/jsrepl/runtime/script"
	"github.com/viant/jsrepl/tracing"
)

// Service evaluates snippets against a binding environment
type Service struct {
	fs           FileSystem
	policy       *policy.Policy
	maxCallDepth int
	timeout      time.Duration
}

// Evaluate runs one snippet. It tries the snippet as an expression first and
// falls back to a statement sequence when it does not parse as one; a failed
// fallback reports the expression parse error. New declarations and plain
// assignments to session or undeclared names are merged into env on success.
// Evaluate never returns a Go error: failures are rendered as "Uncaught <Kind>: <message>".
func (s *Service) Evaluate(ctx context.Context, snippet string, env *binding.Environment) *Result {
	ctx, span := tracing.StartSpan(ctx, "evaluator.Evaluate", "INTERNAL")
	result := s.evaluate(ctx, snippet, env)
	span.WithAttributes(map[string]string{"kind": result.Kind.String()})
	tracing.EndSpan(span, result.Err)
	log.LogVf("evaluated %v snippet (%d bytes): error=%v", result.Kind, len(snippet), result.IsError)
	return result
}

func (s *Service) evaluate(ctx context.Context, snippet string, env *binding.Environment) *Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	snippet = strings.TrimSpace(snippet)
	printer := capture.New()
	interp := s.interpreter(ctx, printer, env)

	result := &Result{Kind: ParseFailure, Value: script.Undefined}
	var program *script.Program
	var snapshot *binding.Environment
	var err error
	expr, exprErr := script.ParseExpression(snippet)
	if exprErr == nil {
		result.Kind = Expression
		result.Value, err = interp.Evaluate(expr)
	} else if program, err = script.Parse(snippet); err != nil {
		err = exprErr
	} else {
		result.Kind = Statement
		snapshot = env.Clone()
		if result.Value, err = interp.Run(program); err != nil && !isInterrupt(err) {
			err = exprErr
		}
	}
	result.Printed = printer.Has()
	result.Output = printer.Text()
	if err != nil {
		result.Value = script.Undefined
		return result.fail(err)
	}

	names, values := interp.Assigned()
	for index, name := range names {
		env.Set(name, values[index])
	}
	switch result.Kind {
	case Expression:
		if name, ok := namedLiteral(expr); ok {
			env.Set(name, result.Value)
			result.Declared = []string{name}
		}
	case Statement:
		result.Declared = s.merge(ctx, program, snapshot, env)
	}

	if result.Printed {
		result.Text = result.Output
		return result
	}
	if result.Text, err = script.Display(result.Value); err != nil {
		return result.fail(err)
	}
	return result
}

func isInterrupt(err error) bool {
	var interrupt *script.Interrupt
	return errors.As(err, &interrupt)
}

func (r *Result) fail(err error) *Result {
	r.Err = err
	r.IsError = true
	r.Text = script.Uncaught(err)
	return r
}

// merge re-derives declared names against snapshot, the bindings the program first ran with, and binds them into env
func (s *Service) merge(ctx context.Context, program *script.Program, snapshot, env *binding.Environment) []string {
	names := declaration.Scan(program.Source)
	if len(names) == 0 {
		return nil
	}
	ctx = policy.WithPolicy(ctx, replayPolicy(s.effectivePolicy(ctx)))
	run := func(ctx context.Context, derived *script.Program) (interface{}, error) {
		return s.interpreter(ctx, capture.Discard, snapshot).Run(derived)
	}
	var declared []string
	for _, item := range declaration.Extract(ctx, program, names, run) {
		env.Set(item.Name, item.Value)
		declared = append(declared, item.Name)
	}
	return declared
}

// namedLiteral returns the name of a snippet that is a named function or class
func namedLiteral(expr script.Expression) (string, bool) {
	switch actual := expr.(type) {
	case *script.FunctionLiteral:
		if !actual.Arrow && actual.Name != "" {
			return actual.Name, true
		}
	case *script.ClassLiteral:
		if actual.Name != "" {
			return actual.Name, true
		}
	}
	return "", false
}

// interpreter creates a fresh interpreter seeded with env and the host capabilities granted by the policy
func (s *Service) interpreter(ctx context.Context, console script.Console, env *binding.Environment) *script.Interpreter {
	p := s.effectivePolicy(ctx)
	var options []script.Option
	if s.maxCallDepth > 0 {
		options = append(options, script.WithMaxCallDepth(s.maxCallDepth))
	}
	if p.Grants(policy.Console) {
		options = append(options, script.WithConsole(console))
	}
	interp := script.New(ctx, options...)
	if s.fs != nil {
		(&host{ctx: ctx, fs: s.fs, policy: p}).install(interp)
	}
	env.Range(func(name string, value interface{}) bool {
		interp.Define(name, value)
		return true
	})
	return interp
}

func (s *Service) effectivePolicy(ctx context.Context) *policy.Policy {
	if embedded := policy.FromContext(ctx); embedded != nil {
		return embedded
	}
	return s.policy
}

// replayPolicy approves re-derivation host calls without asking again;
// the snippet already ran once under p
func replayPolicy(p *policy.Policy) *policy.Policy {
	if p == nil || p.Mode != policy.ModeAsk {
		return p
	}
	replay := *p
	replay.Mode = policy.ModeAuto
	replay.Ask = nil
	return &replay
}

// New creates an evaluator
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	return ret
}
