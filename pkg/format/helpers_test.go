package format

import (
	"github.com/vito/kitefmt/pkg/syntax"
)

// findNode returns the nth (0-based) node of the given kind whose text is
// text, searching depth first. An empty text matches any node of the kind.
func findNode(tree *syntax.Node, kind syntax.Kind, text string, nth int) *syntax.Node {
	var found *syntax.Node
	tree.Walk(func(n *syntax.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind && (text == "" || n.Text == text) {
			if nth == 0 {
				found = n
				return false
			}
			nth--
		}
		return true
	})
	return found
}

// findBlock returns the block for node n.
func findBlock(root *Block, n *syntax.Node) *Block {
	if root.Node == n {
		return root
	}
	for _, c := range root.Children {
		if b := findBlock(c, n); b != nil {
			return b
		}
	}
	return nil
}

// absIndent returns the indent in spaces of the block for n, summed along
// the path from root.
func absIndent(root *Block, n *syntax.Node, indentSize int) (int, bool) {
	if root.Node == n {
		return root.Indent.Width(indentSize), true
	}
	for _, c := range root.Children {
		if w, ok := absIndent(c, n, indentSize); ok {
			return root.Indent.Width(indentSize) + w, true
		}
	}
	return 0, false
}
