package format

import (
	"fmt"
	"os"

	"github.com/vito/kitefmt/pkg/syntax"
)

// Result is the outcome of formatting one source.
type Result struct {
	Content string
	Changed bool
}

// Format formats kite source. It never fails; input that does not parse
// cleanly is formatted on a best-effort basis.
func Format(source []byte, opts Options) string {
	opts = opts.normalized()
	src := string(source)
	tree := syntax.Parse(src)
	return Render(Build(tree, opts), src, opts)
}

// FormatWithResult formats source and reports whether anything changed.
func FormatWithResult(source []byte, opts Options) Result {
	out := Format(source, opts)
	return Result{
		Content: out,
		Changed: out != string(source),
	}
}

// FormatFile reads and formats the file at path.
func FormatFile(path string, opts Options) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Format(source, opts), nil
}
