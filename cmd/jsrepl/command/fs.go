package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a virtual file system directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			location := "/"
			if len(args) == 1 {
				location = args[0]
			}
			srv, err := start(ctx, opts)
			if err != nil {
				return err
			}
			defer srv.Shutdown()
			entries, err := srv.Runtime().Store().ReadDir(ctx, location)
			if err != nil {
				return err
			}
			for _, item := range entries {
				name := item.Name()
				if item.IsDir() {
					name += "/"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCatCommand(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a virtual file system file",
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
			content, err := srv.Runtime().Store().ReadFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}
