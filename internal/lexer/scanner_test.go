package lexer

import (
	"testing"

	"github.com/parl-lang/parlc/internal/token"
)

func TestNext_RoundTripLexemeLength(t *testing.T) {
	sources := []string{
		`let x: int = 5 + 3 * (2 - 1);`,
		"let c: colour = #ff00aa;\n// a comment\nlet y: float = 1.5;",
		"/* block */ fun f(x: int) -> int { return x; }",
		"let __b: bool = true and false or not __b;",
	}
	for _, src := range sources {
		s := New(src)
		total := 0
		for offset := 0; offset < len(src); {
			tok := s.Next(offset)
			if tok.Length == 0 {
				t.Fatalf("scanner made no progress at offset %d in %q", offset, src)
			}
			total += tok.Length
			offset += tok.Length
		}
		if total != len(src) {
			t.Errorf("sum of token lengths = %d, want %d for %q", total, len(src), src)
		}
	}
}

func TestNext_KeywordPromotion(t *testing.T) {
	cases := map[string]token.Kind{
		"and":    token.MULT_OP,
		"or":     token.ADD_OP,
		"not":    token.UNARY_OP,
		"true":   token.BOOLEAN_LIT,
		"false":  token.BOOLEAN_LIT,
		"int":    token.VAR_TYPE,
		"colour": token.VAR_TYPE,
		"let":    token.KW_LET,
		"fun":    token.KW_FUN,
		"foo":    token.IDENTIFIER,
	}
	s := New("")
	for lexeme, want := range cases {
		sc := New(lexeme)
		_ = s
		tok := sc.Next(0)
		if tok.Kind != want {
			t.Errorf("Next(%q).Kind = %v, want %v", lexeme, tok.Kind, want)
		}
		if tok.Length != len(lexeme) {
			t.Errorf("Next(%q).Length = %d, want %d", lexeme, tok.Length, len(lexeme))
		}
	}
}

func TestNext_Builtin(t *testing.T) {
	sc := New("__width")
	tok := sc.Next(0)
	if tok.Kind != token.BUILTIN {
		t.Fatalf("Kind = %v, want BUILTIN", tok.Kind)
	}
	if tok.Lexeme != "__width" {
		t.Fatalf("Lexeme = %q", tok.Lexeme)
	}
}

func TestNext_ColourLiteral(t *testing.T) {
	sc := New("#1a2b3c;")
	tok := sc.Next(0)
	if tok.Kind != token.COLOUR_LIT {
		t.Fatalf("Kind = %v, want COLOUR_LIT", tok.Kind)
	}
	if tok.Lexeme != "#1a2b3c" {
		t.Fatalf("Lexeme = %q, want #1a2b3c", tok.Lexeme)
	}
}

func TestNext_ColourLiteralTooShort(t *testing.T) {
	sc := New("#1a2;")
	tok := sc.Next(0)
	if tok.Kind != token.ILLEGAL {
		t.Fatalf("Kind = %v, want ILLEGAL for a short colour literal", tok.Kind)
	}
	if tok.Length != 1 {
		t.Fatalf("Length = %d, want 1 (caller must always advance)", tok.Length)
	}
}

func TestNext_TwoCharOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"->": token.ARROW,
		"==": token.REL_OP,
		"!=": token.REL_OP,
		"<=": token.REL_OP,
		">=": token.REL_OP,
		"<":  token.REL_OP,
		">":  token.REL_OP,
		"=":  token.ASSIGNMENT,
	}
	for lexeme, want := range cases {
		sc := New(lexeme + " rest")
		tok := sc.Next(0)
		if tok.Kind != want || tok.Lexeme != lexeme {
			t.Errorf("Next(%q) = (%v, %q), want (%v, %q)", lexeme, tok.Kind, tok.Lexeme, want, lexeme)
		}
	}
}

func TestNext_IllegalByteAdvancesByOne(t *testing.T) {
	sc := New("@foo")
	tok := sc.Next(0)
	if tok.Kind != token.ILLEGAL || tok.Length != 1 {
		t.Fatalf("Next(%q) = %+v, want a length-1 ILLEGAL token", "@foo", tok)
	}
}

func TestNextSkip_SkipsWhitespaceAndComments(t *testing.T) {
	src := "  // leading comment\n  let x: int = 1;"
	s := New(src)
	tok, next := s.NextSkip(0, true, true)
	if tok.Kind != token.KW_LET {
		t.Fatalf("NextSkip first significant token = %v, want KW_LET", tok.Kind)
	}
	tok2, _ := s.NextSkip(next, true, true)
	if tok2.Kind != token.IDENTIFIER || tok2.Lexeme != "x" {
		t.Fatalf("NextSkip second token = %+v, want identifier x", tok2)
	}
}

func TestNextSkip_BlockCommentSpansToClose(t *testing.T) {
	src := "/* a /* nested-looking */ let"
	s := New(src)
	tok, _ := s.NextSkip(0, true, true)
	if tok.Kind != token.KW_LET {
		t.Fatalf("NextSkip across block comment = %v, want KW_LET", tok.Kind)
	}
}

func TestLineCol(t *testing.T) {
	src := "let x = 1;\nlet y = 2;\n"
	line, col := LineCol(src, 0)
	if line != 1 || col != 1 {
		t.Fatalf("LineCol(0) = (%d,%d), want (1,1)", line, col)
	}
	secondLineStart := len("let x = 1;\n")
	line, col = LineCol(src, secondLineStart)
	if line != 2 || col != 1 {
		t.Fatalf("LineCol(%d) = (%d,%d), want (2,1)", secondLineStart, line, col)
	}
}
