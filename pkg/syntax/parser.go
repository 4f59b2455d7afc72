package syntax

// Parse builds a concrete syntax tree for source. Parsing is best effort and
// never fails: stray tokens stay where they are as plain children, and
// unterminated bodies and literals end at the end of input.
//
// The tree is intentionally flat. Block declarations hold their header,
// braces and body items as direct children; raw properties and decorator
// applications are plain token runs; only literals, declarations and a few
// statements become composites.
func Parse(source string) *Node {
	p := &parser{src: source, toks: Lex(source)}
	kids := p.items(false)
	return &Node{Kind: File, Text: source, Offset: 0, Children: kids}
}

type parser struct {
	src  string
	toks []*Node
	pos  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() *Node {
	return p.toks[p.pos]
}

func (p *parser) advance() *Node {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// composite builds a node spanning kids. Trailing trivia is handed back to
// the token stream so that it belongs to the enclosing container.
func (p *parser) composite(kind Kind, kids []*Node) *Node {
	for len(kids) > 1 && kids[len(kids)-1].Kind.IsTrivia() {
		kids = kids[:len(kids)-1]
		p.pos--
	}
	n := &Node{Kind: kind, Children: kids}
	if len(kids) > 0 {
		n.Offset = kids[0].Offset
		n.Text = p.src[n.Offset:kids[len(kids)-1].End()]
	} else if !p.eof() {
		n.Offset = p.peek().Offset
	} else {
		n.Offset = len(p.src)
	}
	return n
}

// items parses a sequence of body items. In a body it stops before the
// closing brace; at file level a stray closing brace is kept as a token.
func (p *parser) items(inBody bool) []*Node {
	var out []*Node
	for !p.eof() {
		t := p.peek()
		switch t.Kind {
		case KwResource:
			out = append(out, p.blockDecl(ResourceDecl))
		case KwComponent:
			out = append(out, p.blockDecl(ComponentDecl))
		case KwSchema:
			out = append(out, p.blockDecl(SchemaDecl))
		case KwFun:
			out = append(out, p.blockDecl(FunctionDecl))
		case KwFor:
			out = append(out, p.blockDecl(ForStmt))
		case KwWhile:
			out = append(out, p.blockDecl(WhileStmt))
		case KwInput:
			out = append(out, p.statement(InputDecl))
		case KwOutput:
			out = append(out, p.statement(OutputDecl))
		case KwVar:
			out = append(out, p.statement(VarDecl))
		case KwImport:
			out = append(out, p.statement(ImportStmt))
		case KwReturn:
			out = append(out, p.statement(ReturnStmt))
		case LBrace:
			out = append(out, p.object())
		case LBracket:
			out = append(out, p.array())
		case RBrace:
			if inBody {
				return out
			}
			out = append(out, p.advance())
		default:
			out = append(out, p.advance())
		}
	}
	return out
}

// blockDecl parses keyword, header and an optional braced body. A newline
// outside parentheses before any brace ends the header; the declaration
// then has no body.
func (p *parser) blockDecl(kind Kind) *Node {
	kids := []*Node{p.advance()}
	parens := 0
	for !p.eof() {
		t := p.peek()
		switch {
		case t.Kind == LBrace && parens <= 0:
			kids = append(kids, p.advance())
			kids = append(kids, p.items(true)...)
			if !p.eof() && p.peek().Kind == RBrace {
				kids = append(kids, p.advance())
			}
			return p.composite(kind, kids)
		case t.Kind == Newline && parens <= 0, t.Kind == RBrace:
			return p.composite(kind, kids)
		case t.Kind == LBracket:
			kids = append(kids, p.array())
		case t.Kind == LParen:
			parens++
			kids = append(kids, p.advance())
		case t.Kind == RParen:
			parens--
			kids = append(kids, p.advance())
		default:
			kids = append(kids, p.advance())
		}
	}
	return p.composite(kind, kids)
}

// statement parses a single-line declaration or statement. It ends before a
// newline outside parentheses, a closing brace or a line comment, and
// swallows a terminating semicolon.
func (p *parser) statement(kind Kind) *Node {
	kids := []*Node{p.advance()}
	parens := 0
loop:
	for !p.eof() {
		t := p.peek()
		switch {
		case t.Kind == Newline && parens <= 0, t.Kind == RBrace, t.Kind == LineComment:
			break loop
		case t.Kind == Semicolon:
			kids = append(kids, p.advance())
			break loop
		case t.Kind == LBrace:
			kids = append(kids, p.object())
		case t.Kind == LBracket:
			kids = append(kids, p.array())
		case t.Kind == LParen:
			parens++
			kids = append(kids, p.advance())
		case t.Kind == RParen:
			parens--
			kids = append(kids, p.advance())
		default:
			kids = append(kids, p.advance())
		}
	}
	return p.composite(kind, kids)
}

func (p *parser) object() *Node {
	kids := []*Node{p.advance()}
	for !p.eof() {
		t := p.peek()
		switch t.Kind {
		case RBrace:
			kids = append(kids, p.advance())
			return p.composite(ObjectLiteral, kids)
		case LBrace:
			kids = append(kids, p.object())
		case LBracket:
			kids = append(kids, p.array())
		default:
			kids = append(kids, p.advance())
		}
	}
	return p.composite(ObjectLiteral, kids)
}

// array parses a bracketed literal. A closing brace ends an unterminated
// array so that the enclosing body can still be closed.
func (p *parser) array() *Node {
	kids := []*Node{p.advance()}
	for !p.eof() {
		t := p.peek()
		switch t.Kind {
		case RBracket:
			kids = append(kids, p.advance())
			return p.composite(ArrayLiteral, kids)
		case RBrace:
			return p.composite(ArrayLiteral, kids)
		case LBrace:
			kids = append(kids, p.object())
		case LBracket:
			kids = append(kids, p.array())
		default:
			kids = append(kids, p.advance())
		}
	}
	return p.composite(ArrayLiteral, kids)
}
