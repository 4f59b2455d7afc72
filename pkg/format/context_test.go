package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/kitefmt/pkg/syntax"
)

func TestContextAt(t *testing.T) {
	tree := syntax.Parse(`resource R r { @tags(a, [1]) }`)
	decl := tree.Children[0]
	require.Equal(t, syntax.ResourceDecl, decl.Kind)

	indexOf := func(kind syntax.Kind) int {
		for i, c := range decl.Children {
			if c.Kind == kind {
				return i
			}
		}
		t.Fatalf("no %s in %s", kind, decl)
		return -1
	}

	t.Run("open brace sits at its parent's depth", func(t *testing.T) {
		ctx := ContextAt(decl, indexOf(syntax.LBrace))
		assert.Equal(t, Context{}, ctx)
	})

	t.Run("content after the brace is one deeper", func(t *testing.T) {
		ctx := ContextAt(decl, indexOf(syntax.At))
		assert.Equal(t, 1, ctx.BraceDepth)
		assert.False(t, ctx.InsideParens())
	})

	t.Run("inside parens", func(t *testing.T) {
		ctx := ContextAt(decl, indexOf(syntax.Comma))
		assert.True(t, ctx.InsideParens())
		assert.Equal(t, 1, ctx.Depth())
	})

	t.Run("brackets count toward depth", func(t *testing.T) {
		ctx := Context{}.Advance(&syntax.Node{Kind: syntax.LBracket})
		assert.Equal(t, 1, ctx.BracketDepth)
		assert.Equal(t, 1, ctx.Depth())
	})

	t.Run("closing brace is still inside", func(t *testing.T) {
		ctx := ContextAt(decl, indexOf(syntax.RBrace))
		assert.Equal(t, 1, ctx.BraceDepth)
		assert.Equal(t, 0, ContextAt(decl, len(decl.Children)).BraceDepth)
	})
}

func TestContextUnbalanced(t *testing.T) {
	var ctx Context
	for _, k := range []syntax.Kind{syntax.RBrace, syntax.RBrace, syntax.RParen, syntax.LBracket} {
		ctx = ctx.Advance(&syntax.Node{Kind: k})
	}
	assert.Equal(t, Context{BraceDepth: -2, BracketDepth: 1, ParenDepth: -1}, ctx)
	assert.False(t, ctx.InsideParens())

	// positions past the end just scan everything
	tree := syntax.Parse("{")
	assert.Equal(t, 1, ContextAt(tree.Children[0], 100).BraceDepth)
}
