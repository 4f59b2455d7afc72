package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/vito/kitefmt/pkg/format"
	"github.com/vito/kitefmt/pkg/ioctx"
	"github.com/vito/kitefmt/pkg/syntax"
)

func blocksCmd(cfg *Config) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "blocks FILE",
		Short: "Print the block tree the formatter builds for a file",
		Long: `Print the block tree the formatter builds for a file: one line per
block with its indent, alignment padding and whether it is emitted verbatim.

Use --raw to dump the Go values instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd.Context(), *cfg, args[0], raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Dump the block tree as Go values")

	return cmd
}

func runBlocks(ctx context.Context, cfg Config, path string, raw bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	opts, err := newOptionsLoader(cfg.Config).forDir(filepath.Dir(path))
	if err != nil {
		return err
	}

	root := format.Build(syntax.Parse(string(source)), opts)

	stdout := ioctx.StdoutFromContext(ctx)
	if raw {
		_, err := fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(root))
		return err
	}
	dumpBlocks(stdout, root, 0)
	return nil
}

func dumpBlocks(w io.Writer, b *format.Block, depth int) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(b.Node.Kind.String())
	if !b.Node.Kind.IsComposite() {
		fmt.Fprintf(&sb, " %q", b.Node.Text)
	}
	fmt.Fprintf(&sb, " indent=%s", b.Indent)
	if b.Aligned {
		fmt.Fprintf(&sb, " pad=%d", b.Padding)
	}
	if b.Verbatim {
		sb.WriteString(" verbatim")
	}
	fmt.Fprintln(w, sb.String())

	for _, c := range b.Children {
		dumpBlocks(w, c, depth+1)
	}
}
