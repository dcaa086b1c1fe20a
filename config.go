package jsrepl

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/jsrepl/internal/envexpr"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/service/processor"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the shell configuration. It can
// be populated from JSON or YAML. The zero-value of every nested section
// falls back to the package defaults.
type Config struct {
	Shell     ShellConfig      `json:"shell" yaml:"shell"`
	Evaluator EvaluatorConfig  `json:"evaluator" yaml:"evaluator"`
	Bridge    BridgeConfig     `json:"bridge" yaml:"bridge"`
	Processor processor.Config `json:"processor" yaml:"processor"`
	Store     StoreConfig      `json:"store" yaml:"store"`
	Policy    *policy.Config   `json:"policy,omitempty" yaml:"policy,omitempty"`
	LogLevel  string           `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

// ShellConfig controls the interactive shell
type ShellConfig struct {
	Prompt         string `json:"prompt" yaml:"prompt"`
	ContinuePrompt string `json:"continuePrompt" yaml:"continuePrompt"`
	HistoryLimit   int    `json:"historyLimit" yaml:"historyLimit"`
}

// EvaluatorConfig bounds snippet execution
type EvaluatorConfig struct {
	MaxCallDepth int           `json:"maxCallDepth" yaml:"maxCallDepth"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}

// BridgeConfig bounds blocking file calls made by snippets
type BridgeConfig struct {
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// StoreConfig selects the file store backing; an empty URL keeps entries in memory
type StoreConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:         "> ",
			ContinuePrompt: "... ",
			HistoryLimit:   1000,
		},
		Evaluator: EvaluatorConfig{
			MaxCallDepth: 2048,
			Timeout:      10 * time.Second,
		},
		Bridge: BridgeConfig{
			Timeout: 2 * time.Second,
		},
		Processor: processor.DefaultConfig(),
		LogLevel:  "info",
	}
}

// Validate returns error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Processor.WorkerCount <= 0 {
		return fmt.Errorf("processor.workers must be > 0")
	}
	if c.Bridge.Timeout <= 0 {
		return fmt.Errorf("bridge.timeout must be > 0")
	}
	if c.Evaluator.MaxCallDepth < 0 {
		return fmt.Errorf("evaluator.maxCallDepth must be >= 0")
	}
	if c.Shell.HistoryLimit < 0 {
		return fmt.Errorf("shell.historyLimit must be >= 0")
	}
	return c.Policy.Validate()
}

// LoadConfig reads YAML (or JSON) configuration from URL over DefaultConfig;
// ${env.KEY} references are expanded first
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal([]byte(envexpr.Expand(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
