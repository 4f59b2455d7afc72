package format

import (
	"strings"

	"github.com/vito/kitefmt/pkg/syntax"
)

// Build turns a syntax tree into a block tree. It never fails: malformed
// input produces some block tree, with alignment and indentation falling
// back to their defaults wherever structure is missing.
func Build(tree *syntax.Node, opts Options) *Block {
	b := &builder{
		opts:    opts.normalized(),
		padding: map[*syntax.Node]int{},
	}
	return b.build(tree, NoIndent)
}

type builder struct {
	opts Options

	// padding holds the alignment padding of every aligned token discovered
	// so far. Containers register their groups before building children.
	padding map[*syntax.Node]int
}

func (b *builder) build(n *syntax.Node, indent Indent) *Block {
	blk := &Block{Node: n, Indent: indent}
	if pad, ok := b.padding[n]; ok {
		blk.Padding = pad
		blk.Aligned = true
	}

	switch n.Kind {
	case syntax.ObjectLiteral, syntax.ArrayLiteral:
		b.inlineInto(&blk.Children, n, Context{})

	case syntax.ResourceDecl, syntax.ComponentDecl, syntax.SchemaDecl,
		syntax.FunctionDecl, syntax.ForStmt, syntax.WhileStmt:
		if n.Kind == syntax.SchemaDecl {
			b.alignSchema(n)
		} else {
			b.align(DiscoverDeclarations(n))
		}
		b.align(DiscoverParens(n))
		b.braced(&blk.Children, n, Context{}, nil)

	case syntax.File:
		b.align(DiscoverDeclarations(n))
		b.align(DiscoverParens(n))
		b.flat(&blk.Children, n)

	case syntax.InputDecl, syntax.OutputDecl, syntax.VarDecl,
		syntax.ImportStmt, syntax.ReturnStmt:
		b.align(DiscoverParens(n))
		b.flat(&blk.Children, n)

	default:
		// tokens
	}

	return blk
}

// align records the padding of every group the options enable.
func (b *builder) align(a *Alignment) {
	for _, g := range a.Groups {
		switch {
		case g.Token == syntax.Assign && !b.opts.AlignAssignments,
			g.Token == syntax.Colon && !b.opts.AlignColons:
			continue
		}
		for _, m := range g.Members {
			b.padding[m.Token] = g.Padding(m)
		}
	}
}

func (b *builder) alignSchema(n *syntax.Node) {
	if !b.opts.AlignSchemas {
		return
	}
	info := DiscoverSchema(n)
	for _, p := range info.Properties {
		b.padding[p.Name] = info.NamePadding(p)
		if pad, ok := info.AssignPadding(p); ok {
			b.padding[p.Assign] = pad
		}
	}
}

// inlineInto appends blocks for the children of lit to out, laid out at the
// depth given by ctx, and returns the context after the literal. It never
// creates a block for lit itself, so nested content is indented relative to
// the container that owns out rather than to wherever the literal's opening
// delimiter happens to sit.
func (b *builder) inlineInto(out *[]*Block, lit *syntax.Node, ctx Context) Context {
	b.align(DiscoverLiteral(lit))
	return b.braced(out, lit, ctx, lit)
}

// braced lays out the children of a block declaration or literal, indenting
// each by the brace and bracket depth in front of it. Literal children are
// inlined.
func (b *builder) braced(out *[]*Block, n *syntax.Node, ctx Context, owner *syntax.Node) Context {
	verbatim := false
	for i, c := range n.Children {
		if c.Kind.IsTrivia() {
			continue
		}

		if c.Kind.IsLiteral() && !verbatim {
			if hugsParen(n.Children, i) {
				inner := ctx
				inner.ParenDepth = 0
				after := b.inlineInto(out, c, inner)
				after.ParenDepth += ctx.ParenDepth
				ctx = after
			} else {
				ctx = b.inlineInto(out, c, ctx)
			}
			continue
		}

		*out = append(*out, b.place(c, braceLevel(ctx, c), owner, verbatim))
		verbatim = isNofmt(c)
		ctx = ctx.Advance(c)
	}
	return ctx
}

// flat lays out the children of a file or a statement. Only parentheses
// affect indentation here; literals get blocks of their own.
func (b *builder) flat(out *[]*Block, n *syntax.Node) {
	var ctx Context
	verbatim := false
	for i, c := range n.Children {
		if c.Kind.IsTrivia() {
			continue
		}

		level := 0
		if ctx.InsideParens() && c.Kind != syntax.LParen && c.Kind != syntax.RParen &&
			!(c.Kind.IsLiteral() && hugsParen(n.Children, i)) {
			level = 1
		}
		*out = append(*out, b.place(c, level, nil, verbatim))

		verbatim = isNofmt(c)
		ctx = ctx.Advance(c)
	}
}

// place builds the block for one child at the given level.
func (b *builder) place(n *syntax.Node, level int, owner *syntax.Node, verbatim bool) *Block {
	indent := levelIndent(level, b.opts.IndentSize)
	var blk *Block
	if verbatim && n.Kind.IsComposite() {
		blk = &Block{Node: n, Indent: indent, Verbatim: true}
	} else {
		blk = b.build(n, indent)
	}
	blk.level = level
	blk.owner = owner
	return blk
}

// braceLevel is the indent level of a child of a braced container. Closing
// delimiters sit one level out from the content they close; anything inside
// parentheses other than the parentheses themselves sits one level in.
func braceLevel(ctx Context, c *syntax.Node) int {
	level := ctx.Depth()
	if c.Kind == syntax.RBrace || c.Kind == syntax.RBracket {
		level--
	}
	if ctx.InsideParens() && c.Kind != syntax.LParen && c.Kind != syntax.RParen {
		level++
	}
	return max(level, 0)
}

// hugsParen reports whether kids[i] directly follows an opening parenthesis
// on the same line, as in `@tags({`.
func hugsParen(kids []*syntax.Node, i int) bool {
	prev := prevSignificant(kids, i)
	return prev != nil && prev.Kind == syntax.LParen
}

// isNofmt reports whether c is a `// nofmt` comment, which leaves the
// declaration that follows it untouched.
func isNofmt(c *syntax.Node) bool {
	if c.Kind != syntax.LineComment {
		return false
	}
	text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
	return text == "nofmt" || strings.HasPrefix(text, "nofmt ")
}
