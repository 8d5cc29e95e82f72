package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

// Source is one unit of input: a whole file or a single REPL chunk.
type Source struct {
	Name      string
	Text      string
	StartLine int
}

// Program is a successfully parsed source unit.
type Program struct {
	Source Source
	Tokens []lexer.Token
	AST    *ast.Program
}

// LoadFile reads path into a Source starting at line 1.
func LoadFile(path string) (Source, error) {
	if path == "" {
		return Source{}, fmt.Errorf("driver: empty source path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("driver: read %s: %w", path, err)
	}
	return Source{Name: filepath.Clean(path), Text: string(data), StartLine: 1}, nil
}

func (s Source) startLine() int {
	if s.StartLine < 1 {
		return 1
	}
	return s.StartLine
}

// Tokenize scans src, reporting lexical errors as diagnostics.
func Tokenize(src Source) ([]lexer.Token, []Diagnostic) {
	tokens, lexErrs := lexer.ScanFrom(src.Text, src.startLine())
	var diags []Diagnostic
	for _, err := range lexErrs {
		diags = append(diags, lexDiagnostic(src.Name, err))
	}
	return tokens, diags
}

// Parse lexes and parses src. Lexical diagnostics come first, then syntax
// diagnostics, each in source order. The parser runs even when lexing failed
// so every static error is reported in one pass; a Program is returned only
// when there are no diagnostics at all.
func Parse(src Source) (*Program, []Diagnostic) {
	tokens, tree, diags := parseSource(src)
	if len(diags) > 0 {
		return nil, diags
	}
	return &Program{Source: src, Tokens: tokens, AST: tree}, nil
}

// ParseTree is like Parse but also returns the partial tree when there are
// diagnostics, for inspection tooling.
func ParseTree(src Source) (*ast.Program, []Diagnostic) {
	_, tree, diags := parseSource(src)
	return tree, diags
}

func parseSource(src Source) ([]lexer.Token, *ast.Program, []Diagnostic) {
	tokens, diags := Tokenize(src)
	tree, parseErrs := parser.Parse(tokens)
	for _, err := range parseErrs {
		diags = append(diags, parseDiagnostic(src.Name, err))
	}
	return tokens, tree, diags
}
