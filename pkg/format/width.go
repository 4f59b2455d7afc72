package format

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/vito/kitefmt/pkg/syntax"
)

// width is the display width of s in terminal cells.
func width(s string) int {
	return ansi.StringWidth(s)
}

// formattedWidth is the width the given nodes occupy once formatted onto a
// single line: the display width of every leaf plus the spaces the static
// spacing table puts between neighbours. Measuring the formatted text rather
// than the source keeps alignment stable across passes.
func formattedWidth(nodes ...*syntax.Node) int {
	var leaves []*syntax.Node
	for _, n := range nodes {
		leaves = appendLeaves(leaves, n)
	}
	w := 0
	for i, l := range leaves {
		if i > 0 {
			w += staticSpacing(leaves[i-1].Kind, l.Kind).MinSpaces
		}
		w += width(l.Text)
	}
	return w
}

func appendLeaves(out []*syntax.Node, n *syntax.Node) []*syntax.Node {
	if !n.Kind.IsComposite() {
		if n.Kind.IsTrivia() {
			return out
		}
		return append(out, n)
	}
	for _, c := range n.Children {
		out = appendLeaves(out, c)
	}
	return out
}
