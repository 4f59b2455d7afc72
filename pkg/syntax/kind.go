package syntax

// Kind tags a syntax tree node. The set is closed: tokens, keywords and
// composites are all enumerated here.
type Kind int

const (
	Invalid Kind = iota

	// trivia
	Whitespace
	Newline
	LineComment
	BlockComment

	// literals and names
	Identifier
	Number
	String
	BadCharacter

	// keywords
	KwResource
	KwComponent
	KwSchema
	KwFun
	KwFor
	KwWhile
	KwIn
	KwInput
	KwOutput
	KwVar
	KwImport
	KwFrom
	KwReturn
	KwAny
	KwTrue
	KwFalse
	KwNull

	// punctuation
	Assign
	Colon
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
	At
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	EqEq
	NotEq
	Lt
	Le
	Gt
	Ge
	AndAnd
	OrOr

	// composites
	File
	ResourceDecl
	ComponentDecl
	SchemaDecl
	FunctionDecl
	ForStmt
	WhileStmt
	InputDecl
	OutputDecl
	VarDecl
	ImportStmt
	ReturnStmt
	ObjectLiteral
	ArrayLiteral

	numKinds
)

var kindNames = [numKinds]string{
	Invalid:       "Invalid",
	Whitespace:    "Whitespace",
	Newline:       "Newline",
	LineComment:   "LineComment",
	BlockComment:  "BlockComment",
	Identifier:    "Identifier",
	Number:        "Number",
	String:        "String",
	BadCharacter:  "BadCharacter",
	KwResource:    "resource",
	KwComponent:   "component",
	KwSchema:      "schema",
	KwFun:         "fun",
	KwFor:         "for",
	KwWhile:       "while",
	KwIn:          "in",
	KwInput:       "input",
	KwOutput:      "output",
	KwVar:         "var",
	KwImport:      "import",
	KwFrom:        "from",
	KwReturn:      "return",
	KwAny:         "any",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNull:        "null",
	Assign:        "=",
	Colon:         ":",
	LBrace:        "{",
	RBrace:        "}",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semicolon:     ";",
	Dot:           ".",
	At:            "@",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Bang:          "!",
	EqEq:          "==",
	NotEq:         "!=",
	Lt:            "<",
	Le:            "<=",
	Gt:            ">",
	Ge:            ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	File:          "File",
	ResourceDecl:  "ResourceDecl",
	ComponentDecl: "ComponentDecl",
	SchemaDecl:    "SchemaDecl",
	FunctionDecl:  "FunctionDecl",
	ForStmt:       "ForStmt",
	WhileStmt:     "WhileStmt",
	InputDecl:     "InputDecl",
	OutputDecl:    "OutputDecl",
	VarDecl:       "VarDecl",
	ImportStmt:    "ImportStmt",
	ReturnStmt:    "ReturnStmt",
	ObjectLiteral: "ObjectLiteral",
	ArrayLiteral:  "ArrayLiteral",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(?)"
	}
	return kindNames[k]
}

var keywords = map[string]Kind{
	"resource":  KwResource,
	"component": KwComponent,
	"schema":    KwSchema,
	"fun":       KwFun,
	"for":       KwFor,
	"while":     KwWhile,
	"in":        KwIn,
	"input":     KwInput,
	"output":    KwOutput,
	"var":       KwVar,
	"import":    KwImport,
	"from":      KwFrom,
	"return":    KwReturn,
	"any":       KwAny,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
}

// Keyword returns the keyword kind for word, if it is one.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// IsComposite reports whether nodes of this kind have children.
func (k Kind) IsComposite() bool {
	return k >= File && k < numKinds
}

// IsToken reports whether nodes of this kind are leaves.
func (k Kind) IsToken() bool {
	return k > Invalid && k < File
}

// IsTrivia reports whether the kind is whitespace or a newline.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Newline
}

func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

func (k Kind) IsKeyword() bool {
	return k >= KwResource && k <= KwNull
}

// IsBlockDecl reports whether the kind is a declaration with a braced body.
func (k Kind) IsBlockDecl() bool {
	switch k {
	case ResourceDecl, ComponentDecl, SchemaDecl, FunctionDecl, ForStmt, WhileStmt:
		return true
	}
	return false
}

// IsTypedDecl reports whether the kind is a keyword + type + name declaration.
func (k Kind) IsTypedDecl() bool {
	switch k {
	case InputDecl, OutputDecl, VarDecl:
		return true
	}
	return false
}

func (k Kind) IsLiteral() bool {
	return k == ObjectLiteral || k == ArrayLiteral
}

// StartsDeclaration reports whether a token of this kind begins a new
// declaration or statement at body level.
func (k Kind) StartsDeclaration() bool {
	switch k {
	case KwResource, KwComponent, KwSchema, KwFun, KwFor, KwWhile,
		KwInput, KwOutput, KwVar, KwImport:
		return true
	}
	return false
}

// IsOpen reports whether the kind opens a brace, bracket or paren.
func (k Kind) IsOpen() bool {
	return k == LBrace || k == LBracket || k == LParen
}

// IsClose reports whether the kind closes a brace, bracket or paren.
func (k Kind) IsClose() bool {
	return k == RBrace || k == RBracket || k == RParen
}

// IsBinaryOperator reports whether the kind is an infix operator.
func (k Kind) IsBinaryOperator() bool {
	switch k {
	case Plus, Minus, Star, Slash, Percent, EqEq, NotEq, Lt, Le, Gt, Ge, AndAnd, OrOr:
		return true
	}
	return false
}
