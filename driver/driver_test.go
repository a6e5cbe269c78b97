package driver

import (
	"errors"
	"testing"

	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/internal/xerrors"
	"github.com/kjhall/parsekit/table"
	"github.com/kjhall/parsekit/transform"
)

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.ParseString(text)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func tokenize(ids ...string) []Token {
	out := make([]Token, len(ids))
	for i, id := range ids {
		out[i] = Token{Terminal: id, Text: id}
	}
	return out
}

func TestParseLRAcceptsValidExpression(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	for name, build := range map[string]func(*grammar.Grammar) *table.LRTable{
		"SLR":  table.BuildSLR1,
		"CLR":  table.BuildCLR1,
		"LALR": table.BuildLALR1,
	} {
		tbl := build(g)
		res, err := ParseLR(tbl, tokenize("id", "+", "id", "*", "id"), Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !res.Accepted {
			t.Fatalf("%s: expected acceptance, trace: %+v", name, res.Trace)
		}
		if res.Tree == nil || res.Tree.Symbol != "E" {
			t.Fatalf("%s: expected a tree rooted at E, got %+v", name, res.Tree)
		}
	}
}

func TestParseLRRejectsInvalidExpression(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	tbl := table.BuildSLR1(g)
	res, err := ParseLR(tbl, tokenize("id", "+", "+"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("expected rejection of 'id + +'")
	}
	last := res.Trace[len(res.Trace)-1]
	if last.Kind != StepError {
		t.Fatalf("expected trace to end in an error step, got %v", last.Kind)
	}
}

func TestParseLRTreeShapeMatchesDerivation(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> id
	`)
	tbl := table.BuildLALR1(g)
	res, err := ParseLR(tbl, tokenize("id", "+", "id"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatalf("expected acceptance, trace: %+v", res.Trace)
	}
	root := res.Tree
	if root.Symbol != "E" || len(root.Children) != 3 {
		t.Fatalf("expected E -> E + T (3 children), got %s with %d children", root.Symbol, len(root.Children))
	}
	if root.Children[1].Symbol != "+" || !root.Children[1].Terminal {
		t.Fatalf("expected middle child to be the '+' terminal, got %+v", root.Children[1])
	}
}

func TestParseLL1AcceptsValidExpression(t *testing.T) {
	g := mustGrammar(t, `
		E -> T X
		X -> + T X | ε
		T -> F Y
		Y -> * F Y | ε
		F -> ( E ) | id
	`)
	tbl := table.BuildLL1(g)
	if !tbl.IsLL1() {
		t.Fatalf("expected an LL(1) grammar, got conflicts: %v", tbl.Conflicts)
	}
	res, err := ParseLL1(tbl, tokenize("id", "+", "id", "*", "id"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted {
		t.Fatalf("expected acceptance, trace: %+v", res.Trace)
	}
	if res.Tree == nil || res.Tree.Symbol != "E" {
		t.Fatalf("expected a tree rooted at E, got %+v", res.Tree)
	}
}

func TestParseLL1RejectsInvalidExpression(t *testing.T) {
	g := mustGrammar(t, `
		E -> T X
		X -> + T X | ε
		T -> F Y
		Y -> * F Y | ε
		F -> ( E ) | id
	`)
	tbl := table.BuildLL1(g)
	res, err := ParseLL1(tbl, tokenize("id", "+"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted {
		t.Fatal("expected rejection of 'id +' (truncated input)")
	}
}

func TestParseLL1AfterTransformProducesSameLanguageAsLR(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	res, err := transform.ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	tbl := table.BuildLL1(res.Transformed)
	if !tbl.IsLL1() {
		t.Fatalf("expected the transformed grammar to be LL(1), got conflicts: %v", tbl.Conflicts)
	}
	parse, err := ParseLL1(tbl, tokenize("id", "+", "id", "*", "id"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !parse.Accepted {
		t.Fatalf("expected acceptance, trace: %+v", parse.Trace)
	}
}

func TestParseLRRejectsTokenOutsideTerminalSet(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> id
	`)
	tbl := table.BuildSLR1(g)
	_, err := ParseLR(tbl, tokenize("id", "?"), Options{})
	var terr *xerrors.TokenError
	if !errors.As(err, &terr) {
		t.Fatalf("expected a *xerrors.TokenError, got %v", err)
	}
	if terr.Token != "?" {
		t.Fatalf("expected the offending token to be %q, got %q", "?", terr.Token)
	}
}

func TestParseLL1RejectsTokenOutsideTerminalSet(t *testing.T) {
	g := mustGrammar(t, `
		E -> T X
		X -> + T X | ε
		T -> id
	`)
	tbl := table.BuildLL1(g)
	_, err := ParseLL1(tbl, tokenize("id", "?"), Options{})
	var terr *xerrors.TokenError
	if !errors.As(err, &terr) {
		t.Fatalf("expected a *xerrors.TokenError, got %v", err)
	}
}

func TestParseLRTraceRecordsRemainingInput(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> id
	`)
	tbl := table.BuildSLR1(g)
	res, err := ParseLR(tbl, tokenize("id", "+", "id"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	first := res.Trace[0]
	want := []string{"id", "+", "id", "$"}
	if len(first.Remaining) != len(want) {
		t.Fatalf("expected remaining input %v at step 0, got %v", want, first.Remaining)
	}
	for i, sym := range want {
		if first.Remaining[i] != sym {
			t.Fatalf("expected remaining input %v at step 0, got %v", want, first.Remaining)
		}
	}
}

func TestMaxStepsGuardsAgainstRunaway(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> id
	`)
	tbl := table.BuildLALR1(g)
	res, err := ParseLR(tbl, tokenize("id", "+", "id", "+", "id"), Options{MaxSteps: 1})
	var perr *xerrors.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *xerrors.ParseError, got %v", err)
	}
	if res.Accepted {
		t.Fatal("expected the tiny step budget to prevent acceptance")
	}
	if res.Trace[len(res.Trace)-1].Detail != "step budget exceeded" {
		t.Fatalf("expected a step-budget error, got %+v", res.Trace[len(res.Trace)-1])
	}
}
