package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/kitefmt/pkg/syntax"
)

// pair builds src and returns the resolver's decision between the blocks
// for the given nodes, which must be adjacent children of one block.
func pair(t *testing.T, src string, pick func(tree *syntax.Node) (left, right *syntax.Node)) Spacing {
	t.Helper()
	tree := syntax.Parse(src)
	root := Build(tree, DefaultOptions())
	l, r := pick(tree)

	var parent *Block
	var find func(b *Block)
	find = func(b *Block) {
		for i := 1; i < len(b.Children); i++ {
			if b.Children[i-1].Node == l && b.Children[i].Node == r {
				parent = b
				return
			}
		}
		for _, c := range b.Children {
			find(c)
		}
	}
	find(root)
	require.NotNil(t, parent, "no parent with adjacent %s and %s", l, r)

	return NewSpacingResolver(DefaultOptions()).Spacing(parent, findBlock(parent, l), findBlock(parent, r))
}

func TestSpacingDeclarationKeywordBreaks(t *testing.T) {
	sp := pair(t, "resource A a {\n  x = 1 input string y\n}", func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		return findNode(tree, syntax.Number, "1", 0), findNode(tree, syntax.InputDecl, "", 0)
	})
	assert.Equal(t, 1, sp.MinLineFeeds)
	assert.True(t, sp.KeepLineBreaks)
	assert.Equal(t, 1, sp.KeepBlankLines)
}

func TestSpacingAfterStatementBrace(t *testing.T) {
	src := "component C c {\n  resource A a {} x = 1\n  resource B b {}\n}"
	sp := pair(t, src, func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		return findNode(tree, syntax.ResourceDecl, "", 0), findNode(tree, syntax.Identifier, "x", 0)
	})
	assert.Equal(t, 1, sp.MinLineFeeds)

	// closing brace followed by a closing brace is left to the body rules
	sp = pair(t, src, func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		decl := tree.Children[0]
		return findNode(tree, syntax.ResourceDecl, "", 1), decl.Children[len(decl.Children)-1]
	})
	assert.Equal(t, Spacing{MinLineFeeds: 1}, sp)
}

func TestSpacingMultiLineLiteral(t *testing.T) {
	src := "resource R r {\n  tag = { a: 1,\n  b: 2 }\n}"
	sp := pair(t, src, func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		lit := findNode(tree, syntax.ObjectLiteral, "", 0)
		return lit.Children[0], findNode(lit, syntax.Identifier, "a", 0)
	})
	assert.Equal(t, Spacing{MinLineFeeds: 1}, sp)

	sp = pair(t, src, func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		lit := findNode(tree, syntax.ObjectLiteral, "", 0)
		return findNode(lit, syntax.Number, "2", 0), lit.Children[len(lit.Children)-1]
	})
	assert.Equal(t, Spacing{MinLineFeeds: 1}, sp)
}

func TestSpacingSingleLineLiteral(t *testing.T) {
	sp := pair(t, "resource R r {\n  tag = {a: 1}\n}", func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		lit := findNode(tree, syntax.ObjectLiteral, "", 0)
		return lit.Children[0], findNode(lit, syntax.Identifier, "a", 0)
	})
	assert.Equal(t, 0, sp.MinLineFeeds)
	assert.Equal(t, 1, sp.MinSpaces)
}

func TestSpacingAlignmentPadding(t *testing.T) {
	sp := pair(t, "resource R r {\n  a = 1\n  bbbbb = 2\n}", func(tree *syntax.Node) (*syntax.Node, *syntax.Node) {
		return findNode(tree, syntax.Identifier, "a", 0), findNode(tree, syntax.Assign, "", 0)
	})
	assert.Equal(t, Spacing{MinSpaces: 5, MaxSpaces: 5}, sp)
}

func TestStaticSpacing(t *testing.T) {
	for _, tt := range []struct {
		left, right syntax.Kind
		min, max    int
	}{
		{syntax.Identifier, syntax.LParen, 0, 0},
		{syntax.LParen, syntax.Identifier, 0, 0},
		{syntax.Identifier, syntax.RParen, 0, 0},
		{syntax.LBracket, syntax.RBracket, 0, 0},
		{syntax.Identifier, syntax.LBracket, 0, 0},
		{syntax.KwIn, syntax.LBracket, 1, 1},
		{syntax.Identifier, syntax.Dot, 0, 0},
		{syntax.Dot, syntax.Identifier, 0, 0},
		{syntax.At, syntax.Identifier, 0, 0},
		{syntax.Identifier, syntax.Comma, 0, 0},
		{syntax.Comma, syntax.Identifier, 1, 1},
		{syntax.Identifier, syntax.Colon, 0, 0},
		{syntax.Colon, syntax.Identifier, 1, 1},
		{syntax.LBrace, syntax.RBrace, 0, 0},
		{syntax.LBrace, syntax.Identifier, 1, 1},
		{syntax.Identifier, syntax.LBrace, 1, 1},
		{syntax.Identifier, syntax.Plus, 1, 1},
		{syntax.EqEq, syntax.Identifier, 1, 1},
		{syntax.Bang, syntax.Identifier, 0, 0},
		{syntax.Minus, syntax.Number, 0, 1},
		{syntax.KwResource, syntax.Identifier, 1, 1},
		{syntax.Number, syntax.LineComment, 1, 1},
	} {
		sp := staticSpacing(tt.left, tt.right)
		assert.Equal(t, tt.min, sp.MinSpaces, "%s %s", tt.left, tt.right)
		assert.Equal(t, tt.max, sp.MaxSpaces, "%s %s", tt.left, tt.right)
	}

	assert.Equal(t, 1, staticSpacing(syntax.LineComment, syntax.Identifier).MinLineFeeds)
}
