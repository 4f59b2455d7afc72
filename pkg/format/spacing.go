package format

import (
	"fmt"

	"github.com/vito/kitefmt/pkg/syntax"
)

// Spacing is the decision for the gap between two adjacent blocks.
type Spacing struct {
	MinSpaces int
	MaxSpaces int

	// MinLineFeeds is the number of line breaks that must separate the
	// blocks.
	MinLineFeeds int

	// KeepLineBreaks preserves line breaks found in the source, up to
	// KeepBlankLines blank lines.
	KeepLineBreaks bool
	KeepBlankLines int
}

func (s Spacing) String() string {
	return fmt.Sprintf("spaces=%d..%d lf=%d keep=%v/%d",
		s.MinSpaces, s.MaxSpaces, s.MinLineFeeds, s.KeepLineBreaks, s.KeepBlankLines)
}

// SpacingResolver decides the spacing between sibling blocks.
type SpacingResolver struct {
	opts Options
}

func NewSpacingResolver(opts Options) *SpacingResolver {
	return &SpacingResolver{opts: opts.normalized()}
}

// Spacing returns the spacing between left and right, adjacent children of
// parent.
func (r *SpacingResolver) Spacing(parent, left, right *Block) Spacing {
	first := right.Node.FirstToken()
	last := left.Node.LastToken()
	if first == nil || last == nil {
		return r.keep(Spacing{MinSpaces: 1, MaxSpaces: 1})
	}

	// statement boundaries in declaration bodies
	if level, ok := statementLevel(parent.Node); ok {
		if right.level == level && first.Kind.StartsDeclaration() {
			return r.lineBreak()
		}
		if left.level == level && last.Kind == syntax.RBrace && !closesOrSeparates(first.Kind) {
			return r.lineBreak()
		}
	}

	// delimiters of multi-line bodies and literals
	if parent.Node.Kind.IsBlockDecl() && parent.Node.IsMultiline() {
		lbrace, rbrace := bodyDelims(parent.Node)
		if left.Node == lbrace && !first.Kind.IsComment() || rbrace != nil && right.Node == rbrace {
			return Spacing{MinLineFeeds: 1}
		}
	}
	if lit := left.owner; lit != nil && lit.IsMultiline() && left.Node == openDelim(lit) && !first.Kind.IsComment() {
		return Spacing{MinLineFeeds: 1}
	}
	if lit := right.owner; lit != nil && lit.IsMultiline() && right.Node == closeDelim(lit) {
		return Spacing{MinLineFeeds: 1}
	}

	if right.Aligned {
		switch right.Node.Kind {
		case syntax.Colon, syntax.Assign, syntax.Identifier:
			return Spacing{MinSpaces: right.Padding, MaxSpaces: right.Padding}
		}
	}

	return r.keep(staticSpacing(last.Kind, first.Kind))
}

func (r *SpacingResolver) lineBreak() Spacing {
	return Spacing{
		MinLineFeeds:   1,
		KeepLineBreaks: true,
		KeepBlankLines: min(r.opts.KeepBlankLines, 1),
	}
}

func (r *SpacingResolver) keep(s Spacing) Spacing {
	if s.KeepLineBreaks {
		s.KeepBlankLines = r.opts.KeepBlankLines
	}
	return s
}

// statementLevel returns the level at which a container's statements sit.
// Single-line declarations have no statement boundaries.
func statementLevel(n *syntax.Node) (int, bool) {
	switch {
	case n.Kind == syntax.File:
		return 0, true
	case n.Kind.IsBlockDecl() && n.IsMultiline():
		return 1, true
	}
	return 0, false
}

// bodyDelims returns the braces of a block declaration's body. Either may be
// nil for a declaration without a body or with an unterminated one.
func bodyDelims(decl *syntax.Node) (lbrace, rbrace *syntax.Node) {
	start := bodyStart(decl)
	if start < 0 {
		return nil, nil
	}
	lbrace = decl.Children[start-1]
	if last := decl.Children[len(decl.Children)-1]; last.Kind == syntax.RBrace && len(decl.Children)-1 >= start {
		rbrace = last
	}
	return lbrace, rbrace
}

// bodyStart returns the index of the first child after a block declaration's
// opening brace, or -1 if it has none. Braces inside the header's
// parentheses do not count.
func bodyStart(decl *syntax.Node) int {
	var ctx Context
	for i, c := range decl.Children {
		if c.Kind == syntax.LBrace && !ctx.InsideParens() {
			return i + 1
		}
		ctx = ctx.Advance(c)
	}
	return -1
}

func closesOrSeparates(k syntax.Kind) bool {
	switch k {
	case syntax.RBrace, syntax.RBracket, syntax.RParen, syntax.Comma,
		syntax.Semicolon, syntax.Dot, syntax.LineComment, syntax.BlockComment:
		return true
	}
	return false
}

func openDelim(lit *syntax.Node) *syntax.Node {
	if len(lit.Children) == 0 {
		return nil
	}
	return lit.Children[0]
}

// closeDelim returns the literal's closing delimiter, or nil when the literal
// is unterminated.
func closeDelim(lit *syntax.Node) *syntax.Node {
	if len(lit.Children) < 2 {
		return nil
	}
	last := lit.Children[len(lit.Children)-1]
	switch {
	case lit.Kind == syntax.ObjectLiteral && last.Kind == syntax.RBrace,
		lit.Kind == syntax.ArrayLiteral && last.Kind == syntax.RBracket:
		return last
	}
	return nil
}

type kindMatcher func(syntax.Kind) bool

func is(kinds ...syntax.Kind) kindMatcher {
	return func(k syntax.Kind) bool {
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

func anyKind(syntax.Kind) bool { return true }

type spacingRule struct {
	left, right kindMatcher
	spacing     Spacing
}

func spaces(lo, hi int) Spacing {
	return Spacing{MinSpaces: lo, MaxSpaces: hi}
}

func keeping(s Spacing) Spacing {
	s.KeepLineBreaks = true
	return s
}

// spacingTable is consulted top to bottom; the first rule matching the last
// token of the left block and the first token of the right block wins.
var spacingTable = []spacingRule{
	{is(syntax.LineComment), anyKind, Spacing{MinLineFeeds: 1, KeepLineBreaks: true}},
	{anyKind, syntax.Kind.IsComment, keeping(spaces(1, 1))},
	{is(syntax.BlockComment), anyKind, keeping(spaces(1, 1))},

	{is(syntax.At), anyKind, spaces(0, 0)},
	{is(syntax.Dot), anyKind, spaces(0, 0)},
	{anyKind, is(syntax.Dot), keeping(spaces(0, 0))},

	{is(syntax.LParen, syntax.LBracket), anyKind, keeping(spaces(0, 0))},
	{anyKind, is(syntax.RParen, syntax.RBracket), keeping(spaces(0, 0))},
	{is(syntax.Identifier, syntax.RParen, syntax.RBracket), is(syntax.LParen), spaces(0, 0)},
	{is(syntax.Identifier, syntax.RBracket, syntax.KwAny), is(syntax.LBracket), spaces(0, 0)},

	{anyKind, is(syntax.Comma, syntax.Semicolon), spaces(0, 0)},
	{is(syntax.Comma, syntax.Semicolon), anyKind, keeping(spaces(1, 1))},
	{anyKind, is(syntax.Colon), spaces(0, 0)},
	{is(syntax.Colon), anyKind, keeping(spaces(1, 1))},

	{is(syntax.LBrace), is(syntax.RBrace), keeping(spaces(0, 0))},
	{is(syntax.LBrace), anyKind, keeping(spaces(1, 1))},
	{anyKind, is(syntax.RBrace), keeping(spaces(1, 1))},
	{anyKind, is(syntax.LBrace), spaces(1, 1)},

	{is(syntax.Bang), anyKind, spaces(0, 0)},
	{is(syntax.Minus), anyKind, keeping(spaces(0, 1))},
	{syntax.Kind.IsBinaryOperator, anyKind, keeping(spaces(1, 1))},
	{anyKind, syntax.Kind.IsBinaryOperator, keeping(spaces(1, 1))},

	{anyKind, anyKind, keeping(spaces(1, 1))},
}

// staticSpacing looks up the table. KeepBlankLines is left for the resolver
// to fill in from the options.
func staticSpacing(left, right syntax.Kind) Spacing {
	for _, rule := range spacingTable {
		if rule.left(left) && rule.right(right) {
			return rule.spacing
		}
	}
	return spaces(1, 1)
}
