package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/kitefmt/pkg/ioctx"
)

// Config holds the application configuration
type Config struct {
	Debug  bool
	Write  bool
	List   bool
	Diff   bool
	Config string
}

func main() {
	ctx := context.Background()
	ctx = ioctx.StdinToContext(ctx, os.Stdin)
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "kitefmt [flags] [path...]",
		Short: "Format kite source files",
		Long: `Format kite source files according to the canonical style.

By default, kitefmt prints the formatted source to stdout.
With no paths, it formats stdin.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.
Use -d to print a diff of the changes.`,
		Example: `  # Format a file and print to stdout
  kitefmt main.kite

  # Format all .kite files under a directory in place
  kitefmt -w ./infra

  # List files that need formatting
  kitefmt -l ./infra

  # Show what would change
  kitefmt -d main.kite`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := newLogger(ioctx.StderrFromContext(cmd.Context()), cfg.Debug)
			slog.SetDefault(logger)
			cmd.SetContext(ioctx.LoggerToContext(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.Context(), cfg, args)
		},
	}

	cmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cfg.Config, "config", "", "Path to kitefmt.toml (discovered from each file's directory if not specified)")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "Write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&cfg.List, "list", "l", false, "List files whose formatting differs")
	cmd.Flags().BoolVarP(&cfg.Diff, "diff", "d", false, "Print diffs instead of rewriting files")

	cmd.AddCommand(blocksCmd(&cfg))
	cmd.AddCommand(lspCmd(&cfg))

	return cmd
}
