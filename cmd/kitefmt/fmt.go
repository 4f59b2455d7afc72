package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vito/kitefmt/pkg/format"
	"github.com/vito/kitefmt/pkg/ioctx"
)

const sourceExt = ".kite"

type fileResult struct {
	Path      string
	Source    string
	Formatted string
}

func (r fileResult) Changed() bool {
	return r.Source != r.Formatted
}

func runFmt(ctx context.Context, cfg Config, paths []string) error {
	logger := ioctx.LoggerFromContext(ctx)

	opts := newOptionsLoader(cfg.Config)

	if len(paths) == 0 {
		if cfg.Write {
			return errors.New("cannot use -w with stdin")
		}
		return formatStdin(ctx, cfg, opts)
	}

	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "formatting files", "count", len(files))

	results := make([]fileResult, len(files))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := formatPath(file, opts)
			if err != nil {
				return fmt.Errorf("formatting %s: %w", file, err)
			}
			if cfg.Write && res.Changed() {
				if err := writeFile(file, res.Formatted); err != nil {
					return err
				}
				logger.DebugContext(gctx, "wrote file", "path", file)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	stdout := ioctx.StdoutFromContext(ctx)
	for _, res := range results {
		if err := report(stdout, cfg, res); err != nil {
			return err
		}
	}
	return nil
}

func formatStdin(ctx context.Context, cfg Config, opts *optionsLoader) error {
	source, err := io.ReadAll(ioctx.StdinFromContext(ctx))
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	o, err := opts.forDir(cwd)
	if err != nil {
		return err
	}
	return report(ioctx.StdoutFromContext(ctx), cfg, fileResult{
		Path:      "<stdin>",
		Source:    string(source),
		Formatted: format.Format(source, o),
	})
}

// report prints the outcome for one file according to the output flags.
func report(w io.Writer, cfg Config, res fileResult) error {
	switch {
	case cfg.List:
		if res.Changed() {
			_, err := fmt.Fprintln(w, res.Path)
			return err
		}
		return nil
	case cfg.Diff:
		if !res.Changed() {
			return nil
		}
		diff, err := unifiedDiff(res.Path, res.Source, res.Formatted)
		if err != nil {
			return err
		}
		if isTerminalWriter(w) {
			diff = colorizeDiff(diff)
		}
		_, err = io.WriteString(w, diff)
		return err
	case cfg.Write:
		return nil
	default:
		_, err := io.WriteString(w, res.Formatted)
		return err
	}
}

func formatPath(path string, opts *optionsLoader) (fileResult, error) {
	o, err := opts.forDir(filepath.Dir(path))
	if err != nil {
		return fileResult{}, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, err
	}
	return fileResult{
		Path:      path,
		Source:    string(source),
		Formatted: format.Format(source, o),
	}, nil
}

func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

// collectFiles expands directories into the .kite files beneath them.
// Hidden directories are skipped. Files named explicitly are kept whatever
// their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), sourceExt) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
	}
	return files, nil
}

// optionsLoader resolves formatting options per directory, caching what it
// finds. With an explicit config path every directory gets the same options.
type optionsLoader struct {
	explicit string

	mu   sync.Mutex
	dirs map[string]format.Options
}

func newOptionsLoader(explicit string) *optionsLoader {
	return &optionsLoader{
		explicit: explicit,
		dirs:     map[string]format.Options{},
	}
}

func (l *optionsLoader) forDir(dir string) (format.Options, error) {
	key := dir
	if l.explicit != "" {
		key = ""
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if opts, ok := l.dirs[key]; ok {
		return opts, nil
	}

	var opts format.Options
	var err error
	if l.explicit != "" {
		opts, err = format.LoadConfig(l.explicit)
	} else {
		_, opts, err = format.FindConfig(dir)
	}
	if err != nil {
		return format.Options{}, err
	}
	l.dirs[key] = opts
	return opts, nil
}
