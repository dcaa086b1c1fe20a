package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const vfsScheme = "vfs:"

func newRunCommand(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file|vfs:/path>",
		Short: "Evaluate a script as a single snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			srv, err := start(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Shutdown()

			source, err := readSource(ctx, args[0], func(location string) (string, error) {
				return srv.Runtime().Store().ReadFile(ctx, location)
			})
			if err != nil {
				return err
			}
			reply := srv.NewShell().Paste(ctx, source)
			if reply.Text != "" {
				if reply.IsError {
					fmt.Fprintln(cmd.ErrOrStderr(), reply.Text)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
				}
			}
			if reply.IsError {
				return fmt.Errorf("%v failed", args[0])
			}
			return nil
		},
	}
}

// readSource loads a script from the virtual file system (vfs: prefix) or from any afs URL
func readSource(ctx context.Context, location string, readVFS func(location string) (string, error)) (string, error) {
	if strings.HasPrefix(location, vfsScheme) {
		return readVFS(strings.TrimPrefix(location, vfsScheme))
	}
	URL := url.Normalize(location, "file")
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", location, err)
	}
	return string(data), nil
}
