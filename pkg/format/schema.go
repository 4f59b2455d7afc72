package format

import (
	"github.com/vito/kitefmt/pkg/syntax"
)

// SchemaProperty is one `type name [= default]` entry of a schema body.
type SchemaProperty struct {
	// Type holds the type's tokens: the type name, any `.`-qualified parts
	// and an array suffix.
	Type []*syntax.Node
	Name *syntax.Node
	// Assign is the `=` before the default, or nil.
	Assign *syntax.Node

	TypeWidth int
	NameWidth int
}

func (p SchemaProperty) HasDefault() bool {
	return p.Assign != nil
}

// SchemaInfo holds the two alignment columns of a schema body.
type SchemaInfo struct {
	MaxTypeLength     int
	MaxPropertyLength int
	Properties        []SchemaProperty
}

// NamePadding is the number of spaces between a property's type and its
// name.
func (s *SchemaInfo) NamePadding(p SchemaProperty) int {
	return s.MaxTypeLength - p.TypeWidth + 1
}

// AssignPadding is the number of spaces between a property's name and its
// `=`. Properties without a default have none.
func (s *SchemaInfo) AssignPadding(p SchemaProperty) (int, bool) {
	if !p.HasDefault() {
		return 0, false
	}
	return s.MaxPropertyLength - p.NameWidth + 1, true
}

// DiscoverSchema pairs up types and names in a schema body.
//
// The body is flattened into a token stream. The first identifier seen
// becomes the pending type and the next one completes the pair. `=`, a
// newline or `;` resets the pending type, so partial entries are dropped
// rather than guessed at.
//
// A property without a default reserves one column in the `=` column, so
// `string host` and `number port = 8080` render as:
//
//	string host
//	number port  = 8080
func DiscoverSchema(node *syntax.Node) *SchemaInfo {
	info := &SchemaInfo{}
	start := bodyStart(node)
	if start < 0 {
		return info
	}

	var toks []*syntax.Node
	for _, c := range node.Children[start:] {
		toks = flattenBody(toks, c)
	}

	var pending []*syntax.Node
	last := -1
	inDefault := false
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == syntax.Newline, t.Kind == syntax.Semicolon:
			pending = nil
			last = -1
			inDefault = false
		case inDefault, t.Kind == syntax.Whitespace, t.Kind.IsComment():
		case t.Kind == syntax.At:
			i = skipDecorator(toks, i)
		case t.Kind == syntax.Assign:
			if pending == nil && last >= 0 && info.Properties[last].Assign == nil {
				info.Properties[last].Assign = t
			}
			pending = nil
			inDefault = true
		case t.Kind == syntax.Identifier, t.Kind == syntax.KwAny:
			if pending == nil {
				pending = []*syntax.Node{t}
				break
			}
			info.Properties = append(info.Properties, SchemaProperty{
				Type:      pending,
				Name:      t,
				TypeWidth: formattedWidth(pending...),
				NameWidth: width(t.Text),
			})
			last = len(info.Properties) - 1
			pending = nil
		case t.Kind == syntax.ArrayLiteral && pending != nil:
			pending = append(pending, t)
		case t.Kind == syntax.Dot && pending != nil && i+1 < len(toks) && toks[i+1].Kind == syntax.Identifier:
			pending = append(pending, t, toks[i+1])
			i++
		default:
			pending = nil
			last = -1
		}
	}

	for _, p := range info.Properties {
		info.MaxTypeLength = max(info.MaxTypeLength, p.TypeWidth)
		w := p.NameWidth
		if !p.HasDefault() {
			w++
		}
		info.MaxPropertyLength = max(info.MaxPropertyLength, w)
	}
	return info
}

// flattenBody appends n's tokens depth first. Literals stay whole: an array
// literal is a type suffix or part of a default, an object literal always a
// default.
func flattenBody(out []*syntax.Node, n *syntax.Node) []*syntax.Node {
	if !n.Kind.IsComposite() || n.Kind.IsLiteral() {
		return append(out, n)
	}
	for _, c := range n.Children {
		out = flattenBody(out, c)
	}
	return out
}

// skipDecorator returns the index of the last token of the decorator
// application starting at toks[i]: `@name`, `@a.b` or `@name(...)`.
func skipDecorator(toks []*syntax.Node, i int) int {
	j := i + 1
	if j < len(toks) && toks[j].Kind == syntax.Identifier {
		for j+2 < len(toks) && toks[j+1].Kind == syntax.Dot && toks[j+2].Kind == syntax.Identifier {
			j += 2
		}
	} else {
		return i
	}
	if j+1 >= len(toks) || toks[j+1].Kind != syntax.LParen {
		return j
	}
	depth := 0
	for k := j + 1; k < len(toks); k++ {
		switch toks[k].Kind {
		case syntax.LParen:
			depth++
		case syntax.RParen:
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return len(toks) - 1
}
