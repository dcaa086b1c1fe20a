package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/viant/jsrepl"
	"github.com/viant/jsrepl/policy"
	"github.com/viant/jsrepl/runtime/multiline"
)

const (
	historyFile  = ".jsrepl_history"
	continueMark = `\`
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func newReplCommand(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context(), opts)
		},
	}
}

func runRepl(ctx context.Context, opts *flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srv, err := start(ctx, opts)
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if p := srv.Policy(); p != nil && p.Mode == policy.ModeAsk {
		p.Ask = askWith(ln)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			srv.Shutdown()
			os.Exit(130)
		}
	}()

	shell := srv.NewShell()
	fmt.Printf("%s %s\nType %s for more information.\n", appName, appVersion, jsrepl.HelpCommand)
	config := srv.Config().Shell
	for !shell.Exited() {
		line, err := ln.Prompt(promptFor(shell, config))
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			shell.Session().Machine().Reset()
			continue
		}
		if err != nil {
			return err
		}

		var reply *jsrepl.Reply
		if strings.HasSuffix(line, continueMark) {
			reply = shell.Continue(strings.TrimSuffix(line, continueMark))
		} else {
			reply = shell.SubmitLine(ctx, line)
		}
		if reply.Pending {
			continue
		}
		if reply.Result != nil {
			history := shell.Session().History()
			if len(history) > 0 {
				ln.AppendHistory(strings.ReplaceAll(history[len(history)-1], "\n", " "))
			}
		}
		if reply.Text == "" {
			continue
		}
		if reply.IsError {
			fmt.Fprintln(os.Stderr, red(reply.Text))
			continue
		}
		fmt.Println(reply.Text)
	}
	return nil
}

// promptFor returns the continuation prompt while lines are being accumulated
func promptFor(shell *jsrepl.Shell, config jsrepl.ShellConfig) string {
	if shell.Session().Machine().Mode() == multiline.Accumulating {
		return config.ContinuePrompt
	}
	return config.Prompt
}

// askWith prompts the terminal user to approve a host call
func askWith(ln *liner.State) policy.AskFunc {
	return func(ctx context.Context, capability, function string, args []interface{}, p *policy.Policy) bool {
		answer, err := ln.Prompt(fmt.Sprintf("allow %s (%s)? [y/N/a] ", function, capability))
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		case "a", "all":
			p.Mode = policy.ModeAuto
			return true
		}
		return false
	}
}
