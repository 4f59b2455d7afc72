package format

import (
	"strings"

	"github.com/vito/kitefmt/pkg/syntax"
)

// Render emits the text for a block tree built from source. Line breaks and
// spaces between leaves come from the spacing resolver, measured against the
// gaps in the original source.
func Render(root *Block, source string, opts Options) string {
	opts = opts.normalized()
	r := &renderer{
		src:     source,
		opts:    opts,
		spacing: NewSpacingResolver(opts),
	}
	r.walk(root, 0, Spacing{})

	out := trimTrailingWhitespace(r.buf.String())
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

type renderer struct {
	src     string
	opts    Options
	spacing *SpacingResolver

	buf strings.Builder

	// prev is the last leaf written.
	prev *syntax.Node
}

// walk renders b. sp is the spacing in front of b, decided by its parent.
func (r *renderer) walk(b *Block, indent int, sp Spacing) {
	indent += b.Indent.Width(r.opts.IndentSize)
	if b.IsLeaf() {
		r.emit(b.Node, indent, sp)
		return
	}
	for i, c := range b.Children {
		s := sp
		if i > 0 {
			s = r.spacing.Spacing(b, b.Children[i-1], c)
		}
		r.walk(c, indent, s)
	}
}

func (r *renderer) emit(n *syntax.Node, indent int, sp Spacing) {
	if r.prev == nil {
		r.buf.WriteString(strings.Repeat(" ", indent))
		r.buf.WriteString(n.Text)
		r.prev = n
		return
	}

	var gap string
	if start, end := r.prev.End(), n.Offset; start <= end && end <= len(r.src) {
		gap = r.src[start:end]
	}
	newlines := strings.Count(gap, "\n")

	lineFeeds := sp.MinLineFeeds
	if sp.KeepLineBreaks {
		lineFeeds = max(lineFeeds, min(newlines, sp.KeepBlankLines+1))
	}
	if r.prev.Kind == syntax.LineComment {
		lineFeeds = max(lineFeeds, 1)
	}

	if lineFeeds > 0 {
		r.buf.WriteString(strings.Repeat("\n", lineFeeds))
		r.buf.WriteString(strings.Repeat(" ", indent))
	} else {
		spaces := len(gap)
		if newlines > 0 {
			// joining lines; the gap is indentation, not spacing
			spaces = 1
		}
		spaces = min(max(spaces, sp.MinSpaces), sp.MaxSpaces)
		r.buf.WriteString(strings.Repeat(" ", spaces))
	}

	r.buf.WriteString(n.Text)
	r.prev = n
}

// trimTrailingWhitespace removes trailing whitespace from each line
func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}
