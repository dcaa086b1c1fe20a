package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/jsrepl"
	"github.com/viant/jsrepl/policy"
)

const (
	appName    = "jsrepl"
	appVersion = "0.1.0"
)

// flags shared by every subcommand
type flags struct {
	config    string
	logLevel  string
	traceFile string
	mode      string
	store     string
}

// New creates the root command
func New() *cobra.Command {
	opts := &flags{}
	root := &cobra.Command{
		Use:          appName,
		Short:        "Evaluate JavaScript snippets against a persistent session and a virtual file system",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "configuration URL (yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override")
	root.PersistentFlags().StringVar(&opts.traceFile, "trace-file", "", "write spans to file")
	root.PersistentFlags().StringVar(&opts.mode, "mode", "", "policy mode: auto, ask or deny")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "file store URL, in memory when empty")

	root.AddCommand(newReplCommand(opts))
	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newListCommand(opts))
	root.AddCommand(newCatCommand(opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appVersion)
		},
	})
	return root
}

// start loads the configuration, applies flag overrides and starts the service
func start(ctx context.Context, opts *flags) (*jsrepl.Service, error) {
	config := jsrepl.DefaultConfig()
	if opts.config != "" {
		var err error
		if config, err = jsrepl.LoadConfig(ctx, opts.config); err != nil {
			return nil, err
		}
	}
	if opts.logLevel != "" {
		config.LogLevel = opts.logLevel
	}
	if opts.store != "" {
		config.Store.URL = opts.store
	}
	if opts.mode != "" {
		if config.Policy == nil {
			config.Policy = &policy.Config{}
		}
		config.Policy.Mode = opts.mode
	}
	options := []jsrepl.Option{jsrepl.WithConfig(config)}
	if opts.traceFile != "" {
		options = append(options, jsrepl.WithTracing(appName, appVersion, opts.traceFile))
	}
	srv, err := jsrepl.New(ctx, options...)
	if err != nil {
		return nil, err
	}
	if err = srv.Start(ctx); err != nil {
		return nil, err
	}
	return srv, nil
}
