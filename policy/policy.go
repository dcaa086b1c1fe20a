package policy

import (
	"context"
	"strings"
)

// Execution modes recognised by the evaluator.
const (
	ModeAsk  = "ask"  // ask user before every host call
	ModeAuto = "auto" // grant allowed capabilities (default)
	ModeDeny = "deny" // bind nothing but pure builtins
)

// Host capabilities.
const (
	Console = "console"  // console.log and friends
	FSRead  = "fs.read"  // readFileSync, readdirSync, existsSync, statSync
	FSWrite = "fs.write" // writeFileSync, mkdirSync, rmdirSync, unlinkSync
)

// Capabilities lists every capability known to the sandbox
func Capabilities() []string {
	return []string{Console, FSRead, FSWrite}
}

// AskFunc is invoked when Mode==ask.  Returning true approves the call, false
// rejects it.  Implementations MAY mutate the policy (for example, switching to
// ModeAuto after the first approval).
type AskFunc func(
	ctx context.Context,
	capability string, // e.g. fs.write
	function string, // snippet visible function name, e.g. writeFileSync
	args []interface{}, // call arguments
	p *Policy,
) bool

// Policy represents the sandbox settings of a shell.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList filter capabilities regardless of Mode.
//   - Ask is only used when Mode==ask.
//
// A nil *Policy grants every capability.
type Policy struct {
	Mode      string   // ask / auto / deny      (default = auto)
	AllowList []string // whitelist (empty => all)
	BlockList []string // blacklist
	Ask       AskFunc  // used only when Mode==ask
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without
// AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList.  Both lists match by
// case-insensitive comparison of the capability name.
func (p *Policy) IsAllowed(capability string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(capability)
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Grants returns true when capability should be bound into snippet scope
func (p *Policy) Grants(capability string) bool {
	if p == nil {
		return true
	}
	if p.Mode == ModeDeny {
		return false
	}
	return p.IsAllowed(capability)
}

// Approve returns true when a single call of a granted capability may proceed
func (p *Policy) Approve(ctx context.Context, capability, function string, args []interface{}) bool {
	if !p.Grants(capability) {
		return false
	}
	if p == nil || p.Mode != ModeAsk {
		return true
	}
	if p.Ask == nil {
		return false
	}
	return p.Ask(ctx, capability, function, args, p)
}

// Validate checks the mode value
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Mode {
	case "", ModeAuto, ModeAsk, ModeDeny:
	default:
		return &ModeError{Mode: c.Mode}
	}
	return nil
}

// ModeError reports an unknown policy mode
type ModeError struct {
	Mode string
}

func (e *ModeError) Error() string {
	return "unsupported policy mode: " + e.Mode
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy embedded in ctx, or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
