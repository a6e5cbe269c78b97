package main

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/kjhall/parsekit/driver"
	"github.com/kjhall/parsekit/grammar"
)

// tokenLexer scans raw REPL input into driver.Tokens by matching each of a
// grammar's terminal names as a literal pattern — the same DFA-compiling
// lexmachine.Lexer gorgo's lr/scanner/lexmach adapter wraps, used directly
// here since :parse's input alphabet is exactly a grammar's own terminal
// set, not a programming-language token set needing gorgo's Tokenizer
// abstraction on top.
type tokenLexer struct {
	lexer *lexmachine.Lexer
}

type lexedToken struct {
	terminal string
	text     string
}

// newTokenLexer compiles one literal-match rule per terminal name in g
// (single-character names escaped rune-by-rune, the way gorgo's adapter
// escapes single-character operator literals; longer names, such as "id"
// or a keyword, added as a plain byte pattern) plus a whitespace-skip rule.
func newTokenLexer(g *grammar.Grammar) (*tokenLexer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(" +"), skipWhitespace)
	for _, term := range g.Terminals {
		if term.Name == grammar.EndOfInput.Name {
			continue
		}
		name := term.Name
		lx.Add([]byte(literalPattern(name)), makeTokenAction(name))
	}
	if err := lx.Compile(); err != nil {
		return nil, fmt.Errorf("lexer: compiling DFA: %w", err)
	}
	return &tokenLexer{lexer: lx}, nil
}

// Tokenize scans input to completion and returns the matched tokens in
// order. An unmatched run of input is skipped (and reported via onError, if
// non-nil) rather than aborting the whole scan, mirroring lexmach's
// UnconsumedInput recovery.
func (tl *tokenLexer) Tokenize(input string, onError func(error)) ([]driver.Token, error) {
	scanner, err := tl.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("lexer: starting scan: %w", err)
	}
	var out []driver.Token
	for {
		tok, err, eof := scanner.Next()
		if eof {
			return out, nil
		}
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				if onError != nil {
					onError(err)
				}
				scanner.TC = ui.FailTC
				continue
			}
			return out, fmt.Errorf("lexer: %w", err)
		}
		if tok == nil {
			continue // whitespace: the skip action yields a nil match
		}
		lt := tok.(lexedToken)
		out = append(out, driver.Token{Terminal: lt.terminal, Text: lt.text})
	}
}

func literalPattern(name string) string {
	if len(name) == 1 {
		return "\\" + name
	}
	return name
}

func makeTokenAction(name string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return lexedToken{terminal: name, text: string(m.Bytes)}, nil
	}
}

func skipWhitespace(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return nil, nil
}
