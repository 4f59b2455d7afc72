package format

import "github.com/vito/kitefmt/pkg/syntax"

// Context is the structural nesting state at a position in a sibling list:
// everything opened before that position and not yet closed.
//
// Context is a value. Callers compute a child's layout from the context in
// effect before the child and only then Advance past it, so an opening brace
// sits at its parent's depth and the content after it one level deeper.
type Context struct {
	BraceDepth   int
	BracketDepth int
	ParenDepth   int
}

// InsideParens reports whether the position is inside any parentheses.
func (c Context) InsideParens() bool {
	return c.ParenDepth > 0
}

// Depth is the number of indentation units contributed by braces and
// brackets.
func (c Context) Depth() int {
	return c.BraceDepth + c.BracketDepth
}

// Advance returns the context after child. Composite children are opaque;
// unbalanced input simply leaves the counters where the scan puts them.
func (c Context) Advance(child *syntax.Node) Context {
	switch child.Kind {
	case syntax.LBrace:
		c.BraceDepth++
	case syntax.RBrace:
		c.BraceDepth--
	case syntax.LBracket:
		c.BracketDepth++
	case syntax.RBracket:
		c.BracketDepth--
	case syntax.LParen:
		c.ParenDepth++
	case syntax.RParen:
		c.ParenDepth--
	}
	return c
}

// ContextAt scans node's children up to (not including) pos.
func ContextAt(node *syntax.Node, pos int) Context {
	var c Context
	for i := 0; i < pos && i < len(node.Children); i++ {
		c = c.Advance(node.Children[i])
	}
	return c
}
