package syntax

import (
	"fmt"
	"strings"
)

// Node is a concrete syntax tree node. Tokens have no children; composites
// cover the exact source span of their children, whitespace included.
type Node struct {
	Kind     Kind
	Text     string
	Offset   int
	Children []*Node
}

// End returns the byte offset just past the node's span.
func (n *Node) End() int {
	return n.Offset + len(n.Text)
}

// IsMultiline reports whether the node's source text spans more than one
// line.
func (n *Node) IsMultiline() bool {
	return strings.Contains(n.Text, "\n")
}

// FirstToken returns the first non-trivia leaf under n, or nil.
func (n *Node) FirstToken() *Node {
	if n == nil {
		return nil
	}
	if !n.Kind.IsComposite() {
		if n.Kind.IsTrivia() {
			return nil
		}
		return n
	}
	for _, c := range n.Children {
		if t := c.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last non-trivia leaf under n, or nil.
func (n *Node) LastToken() *Node {
	if n == nil {
		return nil
	}
	if !n.Kind.IsComposite() {
		if n.Kind.IsTrivia() {
			return nil
		}
		return n
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// FirstChild returns the first non-trivia direct child, or nil.
func (n *Node) FirstChild() *Node {
	for _, c := range n.Children {
		if !c.Kind.IsTrivia() {
			return c
		}
	}
	return nil
}

// LastChild returns the last non-trivia direct child, or nil.
func (n *Node) LastChild() *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if c := n.Children[i]; !c.Kind.IsTrivia() {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) String() string {
	if n.Kind.IsComposite() {
		return fmt.Sprintf("%s@%d[%d]", n.Kind, n.Offset, len(n.Children))
	}
	return fmt.Sprintf("%s@%d(%q)", n.Kind, n.Offset, n.Text)
}

// Dump renders the tree one node per line, indented by depth. It is meant
// for tests and debugging.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Kind.IsComposite() {
		sb.WriteString(n.Kind.String())
		sb.WriteString("\n")
		for _, c := range n.Children {
			dump(sb, c, depth+1)
		}
		return
	}
	fmt.Fprintf(sb, "%s %q\n", n.Kind, n.Text)
}
