// Package declaration recovers the bindings a snippet introduces so they
// survive into the next evaluation.
package declaration

import (
	"context"

	"fortio.org/log"
	"github.com/viant/jsrepl/runtime/script"
)

// Binding is a re-derived name and its final value
type Binding struct {
	Name  string
	Value interface{}
}

// Runner executes a program against the current session bindings
type Runner func(ctx context.Context, program *script.Program) (interface{}, error)

// Names returns names introduced by top-level style declarations in token order:
// `let|const|var <name> =`, `function <name>` and `class <name>`.
// Each name is reported once, at its first appearance.
func Names(tokens []script.Token) []string {
	var result []string
	seen := map[string]bool{}
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		result = append(result, name)
	}
	for i := 0; i+1 < len(tokens); i++ {
		token := &tokens[i]
		if token.Kind != script.Keyword {
			continue
		}
		next := &tokens[i+1]
		if next.Kind != script.Identifier {
			continue
		}
		switch token.Text {
		case "let", "const", "var":
			if i+2 < len(tokens) && tokens[i+2].Is("=") {
				add(next.Text)
			}
		case "function", "class":
			add(next.Text)
		}
	}
	return result
}

// Scan tokenizes source and returns declared names; source that does not tokenize declares nothing
func Scan(source string) []string {
	tokens, err := script.Tokenize(source)
	if err != nil {
		return nil
	}
	return Names(tokens)
}

// Extract re-runs program once per name, followed by a synthetic `return <name>`,
// and returns the value each run produced. A name whose run fails is skipped.
func Extract(ctx context.Context, program *script.Program, names []string, run Runner) []*Binding {
	var result []*Binding
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result
		}
		derived := &script.Program{Source: program.Source}
		derived.Body = make([]script.Statement, 0, len(program.Body)+1)
		derived.Body = append(derived.Body, program.Body...)
		derived.Body = append(derived.Body, &script.ReturnStatement{Argument: &script.Ident{Name: name}})
		value, err := run(ctx, derived)
		if err != nil {
			log.LogVf("skipping %v: %v", name, err)
			continue
		}
		result = append(result, &Binding{Name: name, Value: value})
	}
	return result
}
