package format

import (
	"fmt"

	"github.com/vito/kitefmt/pkg/syntax"
)

// IndentType selects how an Indent is measured.
type IndentType int

const (
	IndentNone IndentType = iota
	IndentNormal
	IndentFixed
)

// Indent is applied before a block's content when the block starts a line.
// It is relative to the indent of the parent block.
type Indent struct {
	Type   IndentType
	Spaces int // for IndentFixed
}

var (
	NoIndent     = Indent{Type: IndentNone}
	NormalIndent = Indent{Type: IndentNormal}
)

// FixedIndent is an indent of exactly n spaces.
func FixedIndent(n int) Indent {
	return Indent{Type: IndentFixed, Spaces: n}
}

// Width returns the indent in spaces for the given indent size.
func (i Indent) Width(indentSize int) int {
	switch i.Type {
	case IndentNormal:
		return indentSize
	case IndentFixed:
		return i.Spaces
	default:
		return 0
	}
}

func (i Indent) String() string {
	switch i.Type {
	case IndentNormal:
		return "normal"
	case IndentFixed:
		return fmt.Sprintf("fixed(%d)", i.Spaces)
	default:
		return "none"
	}
}

// levelIndent converts a number of indent levels into an Indent.
func levelIndent(levels, indentSize int) Indent {
	switch {
	case levels <= 0:
		return NoIndent
	case levels == 1:
		return NormalIndent
	default:
		return FixedIndent(levels * indentSize)
	}
}

// Block maps one syntax node to its layout. Blocks are built once per
// formatting pass and never modified afterwards.
type Block struct {
	Node   *syntax.Node
	Indent Indent

	// Padding is the exact number of spaces to put before this block when
	// Aligned is set.
	Padding int
	Aligned bool

	// Verbatim blocks are emitted exactly as they appear in the source.
	Verbatim bool

	Children []*Block

	// level is the structural depth the block sits at within its container.
	level int
	// owner is the literal whose direct child this block was built from.
	owner *syntax.Node
}

// IsLeaf reports whether the renderer emits the block's text directly.
func (b *Block) IsLeaf() bool {
	return b.Verbatim || !b.Node.Kind.IsComposite()
}

// ChildIndent is the indent for a new line inserted into the block, e.g.
// when Enter is pressed between empty braces.
func (b *Block) ChildIndent() Indent {
	if b.Node.Kind.IsBlockDecl() || b.Node.Kind.IsLiteral() {
		return NormalIndent
	}
	return NoIndent
}

// Leaves returns the blocks the renderer emits text for, in order.
func (b *Block) Leaves() []*Block {
	if b.IsLeaf() {
		return []*Block{b}
	}
	var out []*Block
	for _, c := range b.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
