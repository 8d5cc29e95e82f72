package lexer

import (
	"strings"
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, tokens []Token, want ...TokenKind) {
	t.Helper()
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestScanPunctuationAndMaximalMunch(t *testing.T) {
	tokens, errs := Scan("(){},.-+;/*% ! != = == > >= < <=")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens,
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot, Minus, Plus, Semicolon, Slash, Star, Percent,
		Bang, BangEqual, Equal, EqualEqual, Greater, GreaterEqual, Less, LessEqual, EOF)
}

func TestScanAdjacentOperatorsWithoutSpaces(t *testing.T) {
	tokens, errs := Scan("a<=b!=!c==d")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, Identifier, LessEqual, Identifier, BangEqual, Bang, Identifier, EqualEqual, Identifier, EOF)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, errs := Scan("and break continue else false for if nil or print true var while orchid _x9")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, And, Break, Continue, Else, False, For, If, Nil, Or, Print, True, Var, While, Identifier, Identifier, EOF)
	if tokens[13].Lexeme != "orchid" {
		t.Fatalf("expected identifier lexeme orchid, got %q", tokens[13].Lexeme)
	}
	for _, tok := range tokens[:13] {
		if !tok.Kind.IsKeyword() {
			t.Fatalf("expected %s to be a keyword", tok.Kind)
		}
	}
	if tokens[14].Kind.IsKeyword() {
		t.Fatalf("identifier reported as keyword")
	}
}

func TestScanNumbers(t *testing.T) {
	tokens, errs := Scan("123 4.5 0.25")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, Number, Number, Number, EOF)
	if tokens[1].Lexeme != "4.5" {
		t.Fatalf("expected lexeme 4.5, got %q", tokens[1].Lexeme)
	}
}

func TestScanMalformedNumbersAreRecoverable(t *testing.T) {
	tokens, errs := Scan("1. .5 1.2.3 7")
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	for _, err := range errs {
		if err.Kind != ErrMalformedNumber {
			t.Fatalf("expected malformed number, got %s (%s)", err.Kind, err.Message)
		}
	}
	if !strings.Contains(errs[0].Message, "trailing") || !strings.Contains(errs[1].Message, "leading") {
		t.Fatalf("unexpected messages: %q, %q", errs[0].Message, errs[1].Message)
	}
	expectKinds(t, tokens, Number, EOF)
	if tokens[0].Lexeme != "7" {
		t.Fatalf("expected the well-formed number to survive, got %q", tokens[0].Lexeme)
	}
}

func TestScanBareDotIsDotToken(t *testing.T) {
	tokens, errs := Scan("a.b")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, Identifier, Dot, Identifier, EOF)
}

func TestScanStringsSpanLines(t *testing.T) {
	tokens, errs := Scan("\"one\ntwo\" x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, String, Identifier, EOF)
	if tokens[0].StringValue() != "one\ntwo" {
		t.Fatalf("expected string contents, got %q", tokens[0].StringValue())
	}
	if tokens[0].Line != 1 || tokens[1].Line != 2 {
		t.Fatalf("expected lines 1 and 2, got %d and %d", tokens[0].Line, tokens[1].Line)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tokens, errs := Scan("print \"oops\n")
	if len(errs) != 1 || errs[0].Kind != ErrUnterminatedString {
		t.Fatalf("expected one unterminated string error, got %v", errs)
	}
	if errs[0].Line != 1 {
		t.Fatalf("expected error on line 1, got %d", errs[0].Line)
	}
	expectKinds(t, tokens, Print, EOF)
}

func TestScanCommentsAndLines(t *testing.T) {
	tokens, errs := Scan("var a; // comment ( ) \"\n\nprint a;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	expectKinds(t, tokens, Var, Identifier, Semicolon, Print, Identifier, Semicolon, EOF)
	if tokens[3].Line != 3 {
		t.Fatalf("expected print on line 3, got %d", tokens[3].Line)
	}
	if tokens[len(tokens)-1].Line != 3 {
		t.Fatalf("expected EOF on line 3, got %d", tokens[len(tokens)-1].Line)
	}
}

func TestScanContinuesAfterUnexpectedCharacters(t *testing.T) {
	tokens, errs := Scan("var a = 1 @;\nvar b # = 2;")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Char != '@' || errs[0].Line != 1 || errs[1].Char != '#' || errs[1].Line != 2 {
		t.Fatalf("unexpected errors: %#v %#v", errs[0], errs[1])
	}
	if got, want := errs[0].Error(), "[line 1] Error: Unexpected character: @"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	expectKinds(t, tokens, Var, Identifier, Equal, Number, Semicolon, Var, Identifier, Equal, Number, Semicolon, EOF)
}

func TestScanEmitsExactlyOneEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "// only a comment", "\"unterminated", "$"} {
		tokens, _ := Scan(src)
		count := 0
		for _, tok := range tokens {
			if tok.Kind == EOF {
				count++
			}
		}
		if count != 1 || tokens[len(tokens)-1].Kind != EOF {
			t.Fatalf("source %q: expected one trailing EOF, got %v", src, tokens)
		}
	}
}

func TestScanFromOffsetsLines(t *testing.T) {
	tokens, _ := ScanFrom("a\nb", 10)
	if tokens[0].Line != 10 || tokens[1].Line != 11 {
		t.Fatalf("expected lines 10 and 11, got %d and %d", tokens[0].Line, tokens[1].Line)
	}
}

func TestScanIsIdempotentOverLexemes(t *testing.T) {
	src := "var x = 10 + 2 * (3 - 1);\nif (x >= 14 and !false) { print \"ok\"; } else x = x % 3;"
	first, errs := Scan(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	lexemes := make([]string, 0, len(first))
	for _, tok := range first {
		lexemes = append(lexemes, tok.Lexeme)
	}
	second, errs := Scan(strings.Join(lexemes, " "))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on rescan: %v", errs)
	}
	if len(first) != len(second) {
		t.Fatalf("expected %d tokens, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Lexeme != second[i].Lexeme {
			t.Fatalf("token %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: GreaterEqual, Lexeme: ">=", Line: 4}
	if got, want := tok.String(), "GREATER_EQUAL >= 4"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
