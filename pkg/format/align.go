package format

import (
	"github.com/vito/kitefmt/pkg/syntax"
)

// Member is one key in an alignment group.
type Member struct {
	// Key is the first token of the key: the declaration keyword for typed
	// declarations, the identifier for raw properties.
	Key *syntax.Node
	// Token is the `=` or `:` that lines up.
	Token *syntax.Node
	// Width is the formatted width of the key.
	Width int
}

// Group is a run of keys whose alignment tokens share a column.
type Group struct {
	// Token is the kind of the aligned token, syntax.Assign or syntax.Colon.
	Token        syntax.Kind
	MaxKeyLength int
	Members      []Member
}

func (g *Group) add(m Member) {
	g.Members = append(g.Members, m)
	if m.Width > g.MaxKeyLength {
		g.MaxKeyLength = m.Width
	}
}

// Padding is the number of spaces to put before the member's token.
func (g *Group) Padding(m Member) int {
	extra := 0
	if g.Token == syntax.Assign {
		extra = 1
	}
	return g.MaxKeyLength - m.Width + extra
}

// Alignment is the set of groups found in one container.
type Alignment struct {
	Groups []*Group

	members map[*syntax.Node]groupMember
}

type groupMember struct {
	group  *Group
	member Member
}

func newAlignment() *Alignment {
	return &Alignment{members: map[*syntax.Node]groupMember{}}
}

func (a *Alignment) add(g *Group) {
	if g == nil || len(g.Members) == 0 {
		return
	}
	a.Groups = append(a.Groups, g)
	for _, m := range g.Members {
		a.members[m.Token] = groupMember{g, m}
	}
}

// GroupOf returns the group an alignment token belongs to.
func (a *Alignment) GroupOf(tok *syntax.Node) (*Group, bool) {
	gm, ok := a.members[tok]
	return gm.group, ok
}

// Padding returns the padding for an alignment token, if it is in a group.
func (a *Alignment) Padding(tok *syntax.Node) (int, bool) {
	gm, ok := a.members[tok]
	if !ok {
		return 0, false
	}
	return gm.group.Padding(gm.member), true
}

// DiscoverDeclarations groups the statements of a block declaration body, or
// of a file, for `=` alignment.
//
// Consecutive lines of the same kind (input, output, var or raw property)
// form a group. A blank line, a comment on its own line, or any other
// statement ends it. Decorator lines are skipped without ending the group,
// and a declaration without `=` stays in its group without counting.
func DiscoverDeclarations(node *syntax.Node) *Alignment {
	a := newAlignment()

	kids := node.Children
	start := 0
	if node.Kind.IsBlockDecl() {
		start = bodyStart(node)
		if start < 0 {
			return a
		}
	}

	var group *Group
	var groupKind syntax.Kind
	flush := func() {
		a.add(group)
		group = nil
	}
	join := func(kind syntax.Kind) {
		if group == nil || groupKind != kind {
			flush()
			group = &Group{Token: syntax.Assign}
			groupKind = kind
		}
	}

	var ctx Context
	lineStart := true
	afterNofmt := false
	for i := start; i < len(kids); i++ {
		c := kids[i]
		top := ctx == Context{}
		switch {
		case !top, c.Kind == syntax.Whitespace:
		case c.Kind == syntax.Newline:
			if lineStart {
				// blank line
				flush()
			}
			lineStart = true
		case !lineStart:
		default:
			lineStart = false
			nofmt := afterNofmt
			afterNofmt = false
			switch {
			case c.Kind.IsComment():
				flush()
				afterNofmt = isNofmt(c)
			case c.Kind == syntax.At:
			case nofmt:
				flush()
			case c.Kind.IsTypedDecl():
				join(c.Kind)
				if m, ok := typedMember(c); ok {
					group.add(m)
				}
			case c.Kind == syntax.Identifier:
				eq := nextSignificant(kids, i)
				if eq == nil || eq.Kind != syntax.Assign {
					flush()
					break
				}
				join(syntax.Identifier)
				group.add(Member{Key: c, Token: eq, Width: width(c.Text)})
			default:
				flush()
			}
		}
		ctx = ctx.Advance(c)
	}
	flush()
	return a
}

// typedMember measures the key of a typed declaration: every token before
// its `=`.
func typedMember(decl *syntax.Node) (Member, bool) {
	var key []*syntax.Node
	var ctx Context
	for _, c := range decl.Children {
		if c.Kind == syntax.Assign && ctx == (Context{}) {
			if len(key) == 0 {
				return Member{}, false
			}
			return Member{Key: key[0], Token: c, Width: formattedWidth(key...)}, true
		}
		if !c.Kind.IsTrivia() {
			key = append(key, c)
		}
		ctx = ctx.Advance(c)
	}
	return Member{}, false
}

// DiscoverLiteral groups the keys of a multi-line object literal: one group
// for `key: value` entries and one for `key = value` entries. Only keys that
// start a line count. Single-line literals and arrays have no groups.
func DiscoverLiteral(lit *syntax.Node) *Alignment {
	a := newAlignment()
	if lit.Kind != syntax.ObjectLiteral || !lit.IsMultiline() {
		return a
	}

	colons := &Group{Token: syntax.Colon}
	assigns := &Group{Token: syntax.Assign}

	kids := lit.Children
	var ctx Context
	for i, c := range kids {
		if c.Kind.IsComposite() || c.Kind.IsTrivia() || ctx.Depth() != 1 || ctx.InsideParens() {
			ctx = ctx.Advance(c)
			continue
		}
		if prev := prevSignificant(kids, i); prev == nil || prev == kids[0] {
			addKey(kids, i, colons, assigns)
		}
		ctx = ctx.Advance(c)
	}

	a.add(colons)
	a.add(assigns)
	return a
}

// DiscoverParens groups named arguments, `name: value`, in each top-level
// parenthesised list of node's children. Only names that start a line count,
// so single-line argument lists have no groups.
func DiscoverParens(node *syntax.Node) *Alignment {
	a := newAlignment()

	kids := node.Children
	var ctx Context
	var group *Group
	for i, c := range kids {
		switch {
		case c.Kind == syntax.LParen && ctx.ParenDepth == 0:
			group = &Group{Token: syntax.Colon}
		case c.Kind == syntax.RParen && ctx.ParenDepth == 1:
			a.add(group)
			group = nil
		case group != nil && ctx.ParenDepth == 1 && prevSignificant(kids, i) == nil:
			addKey(kids, i, group)
		}
		ctx = ctx.Advance(c)
	}
	return a
}

// addKey adds kids[i] to whichever group matches the token that follows it.
func addKey(kids []*syntax.Node, i int, groups ...*Group) {
	key := kids[i]
	if key.Kind != syntax.Identifier && key.Kind != syntax.String {
		return
	}
	tok := nextSignificant(kids, i)
	if tok == nil {
		return
	}
	for _, g := range groups {
		if g.Token == tok.Kind {
			g.add(Member{Key: key, Token: tok, Width: width(key.Text)})
			return
		}
	}
}

// nextSignificant returns the next sibling after kids[i] on the same line,
// skipping whitespace.
func nextSignificant(kids []*syntax.Node, i int) *syntax.Node {
	for j := i + 1; j < len(kids); j++ {
		switch kids[j].Kind {
		case syntax.Whitespace:
			continue
		case syntax.Newline:
			return nil
		}
		return kids[j]
	}
	return nil
}

// prevSignificant returns the previous sibling before kids[i] on the same
// line, skipping whitespace.
func prevSignificant(kids []*syntax.Node, i int) *syntax.Node {
	for j := i - 1; j >= 0; j-- {
		switch kids[j].Kind {
		case syntax.Whitespace:
			continue
		case syntax.Newline:
			return nil
		}
		return kids[j]
	}
	return nil
}
