// Package token defines the typed token kinds the scanner produces,
// per spec.md §3.2. Kinds group tokens by the category the parser
// dispatches on; the literal spelling (operator, keyword, builtin name)
// lives in the token's Lexeme, not in a finer-grained Kind, mirroring
// the teacher's Binary/UnaryExpr nodes which carry an operator string
// rather than a per-operator node type.
package token

// Kind is the category tag of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	WHITESPACE
	NEWLINE
	LINE_COMMENT
	BLOCK_COMMENT_OPEN
	BLOCK_COMMENT_CLOSE

	INT_LIT
	FLOAT_LIT
	COLOUR_LIT
	BOOLEAN_LIT
	IDENTIFIER
	VAR_TYPE // int, float, bool, colour

	MULT_OP // * / % and
	ADD_OP  // + - or
	REL_OP  // == != < <= > >=
	UNARY_OP // not
	ASSIGNMENT // =

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE

	SEMICOLON
	COLON
	COMMA
	ARROW // ->

	BUILTIN // __width, __height, __read, __clear, __random_int, __print, __delay, __write, __write_box

	// Keywords that are not promoted to an operational category.
	KW_LET
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_FOR
	KW_RETURN
	KW_AS
	KW_FUN
)

var names = map[Kind]string{
	ILLEGAL:             "ILLEGAL",
	EOF:                 "EOF",
	WHITESPACE:          "WHITESPACE",
	NEWLINE:             "NEWLINE",
	LINE_COMMENT:        "LINE_COMMENT",
	BLOCK_COMMENT_OPEN:  "BLOCK_COMMENT_OPEN",
	BLOCK_COMMENT_CLOSE: "BLOCK_COMMENT_CLOSE",
	INT_LIT:             "INT_LIT",
	FLOAT_LIT:           "FLOAT_LIT",
	COLOUR_LIT:          "COLOUR_LIT",
	BOOLEAN_LIT:         "BOOLEAN_LIT",
	IDENTIFIER:          "IDENTIFIER",
	VAR_TYPE:            "VAR_TYPE",
	MULT_OP:             "MULT_OP",
	ADD_OP:              "ADD_OP",
	REL_OP:              "REL_OP",
	UNARY_OP:            "UNARY_OP",
	ASSIGNMENT:          "ASSIGNMENT",
	LPAREN:              "LPAREN",
	RPAREN:              "RPAREN",
	LBRACKET:            "LBRACKET",
	RBRACKET:            "RBRACKET",
	LBRACE:              "LBRACE",
	RBRACE:              "RBRACE",
	SEMICOLON:           "SEMICOLON",
	COLON:               "COLON",
	COMMA:               "COMMA",
	ARROW:               "ARROW",
	BUILTIN:             "BUILTIN",
	KW_LET:              "KW_LET",
	KW_IF:               "KW_IF",
	KW_ELSE:             "KW_ELSE",
	KW_WHILE:            "KW_WHILE",
	KW_FOR:              "KW_FOR",
	KW_RETURN:           "KW_RETURN",
	KW_AS:               "KW_AS",
	KW_FUN:              "KW_FUN",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is one lexeme produced by the scanner: a kind tag, the source
// slice it covers, and its position for diagnostics.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  int
	Length int
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Lexeme
}

// operationalKeywords maps reserved-word spellings to their promoted
// token kind, per spec.md §4.1 "Keyword promotion". Words not listed
// here that are nonetheless reserved (let, if, else, for, while,
// return, as, fun) are handled by ClassifyIdentifier via the
// keywordTags map below.
var operationalKeywords = map[string]Kind{
	"and":    MULT_OP,
	"or":     ADD_OP,
	"not":    UNARY_OP,
	"true":   BOOLEAN_LIT,
	"false":  BOOLEAN_LIT,
	"int":    VAR_TYPE,
	"float":  VAR_TYPE,
	"bool":   VAR_TYPE,
	"colour": VAR_TYPE,
}

var keywordTags = map[string]Kind{
	"let":    KW_LET,
	"if":     KW_IF,
	"else":   KW_ELSE,
	"for":    KW_FOR,
	"while":  KW_WHILE,
	"return": KW_RETURN,
	"as":     KW_AS,
	"fun":    KW_FUN,
}

// Builtins lists the builtin spellings recognized after a leading `__`.
var Builtins = map[string]bool{
	"__width":      true,
	"__height":     true,
	"__read":       true,
	"__clear":      true,
	"__random_int": true,
	"__print":      true,
	"__delay":      true,
	"__write":      true,
	"__write_box":  true,
}

// ClassifyIdentifier returns the token kind an identifier-shaped lexeme
// should be reported as, applying keyword promotion first and the
// plain keyword tag second. Returns IDENTIFIER if the lexeme is not
// reserved.
func ClassifyIdentifier(lexeme string) Kind {
	if k, ok := operationalKeywords[lexeme]; ok {
		return k
	}
	if k, ok := keywordTags[lexeme]; ok {
		return k
	}
	return IDENTIFIER
}
