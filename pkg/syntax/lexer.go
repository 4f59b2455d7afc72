package syntax

import (
	"unicode"
	"unicode/utf8"
)

// Lex splits source into tokens. It never fails: anything it does not
// recognise becomes a BadCharacter token, and unterminated strings and
// comments end at the end of the line or file.
func Lex(source string) []*Node {
	l := &lexer{src: source}
	var toks []*Node
	for l.pos < len(l.src) {
		toks = append(toks, l.next())
	}
	return toks
}

type lexer struct {
	src string
	pos int
}

var twoCharTokens = map[string]Kind{
	"==": EqEq,
	"!=": NotEq,
	"<=": Le,
	">=": Ge,
	"&&": AndAnd,
	"||": OrOr,
}

var oneCharTokens = map[byte]Kind{
	'=': Assign,
	':': Colon,
	'{': LBrace,
	'}': RBrace,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semicolon,
	'.': Dot,
	'@': At,
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'!': Bang,
	'<': Lt,
	'>': Gt,
}

func (l *lexer) token(kind Kind, start int) *Node {
	return &Node{Kind: kind, Text: l.src[start:l.pos], Offset: start}
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) next() *Node {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '\n':
		l.pos++
		return l.token(Newline, start)

	case isSpace(c):
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		return l.token(Whitespace, start)

	case c == '/' && l.peek(1) == '/':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.token(LineComment, start)

	case c == '/' && l.peek(1) == '*':
		l.pos += 2
		for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peek(1) == '/') {
			l.pos++
		}
		if l.pos < len(l.src) {
			l.pos += 2
		}
		return l.token(BlockComment, start)

	case c == '"' || c == '\'':
		l.lexString(c)
		return l.token(String, start)

	case c >= '0' && c <= '9':
		l.lexNumber()
		return l.token(Number, start)
	}

	if r, size := utf8.DecodeRuneInString(l.src[l.pos:]); isIdentStart(r) {
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		tok := l.token(Identifier, start)
		if kw, ok := Keyword(tok.Text); ok {
			tok.Kind = kw
		}
		return tok
	}

	if l.pos+2 <= len(l.src) {
		if kind, ok := twoCharTokens[l.src[l.pos:l.pos+2]]; ok {
			l.pos += 2
			return l.token(kind, start)
		}
	}
	if kind, ok := oneCharTokens[c]; ok {
		l.pos++
		return l.token(kind, start)
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return l.token(BadCharacter, start)
}

// lexString consumes a quoted string. Double-quoted strings may contain
// ${...} interpolations, which can themselves contain braces.
func (l *lexer) lexString(quote byte) {
	l.pos++
	depth := 0
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			return
		case c == '\\':
			l.pos += 2
			continue
		case quote == '"' && c == '$' && l.peek(1) == '{':
			depth++
			l.pos += 2
			continue
		case depth > 0 && c == '{':
			depth++
		case depth > 0 && c == '}':
			depth--
		case depth == 0 && c == quote:
			l.pos++
			return
		}
		l.pos++
	}
	if l.pos > len(l.src) {
		l.pos = len(l.src)
	}
}

func (l *lexer) lexNumber() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
