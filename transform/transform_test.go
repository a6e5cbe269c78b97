package transform

import (
	"testing"

	"github.com/kjhall/parsekit/grammar"
)

func noDirectLeftRecursion(t *testing.T, g *grammar.Grammar) {
	t.Helper()
	for _, p := range g.Productions {
		if len(p.RHS) > 0 && p.RHS[0].Name == p.LHS.Name {
			t.Fatalf("production %s retains direct left recursion", p)
		}
	}
}

func TestEliminatesDirectLeftRecursion(t *testing.T) {
	g, _, err := grammar.ParseString(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.LeftRecursionRemoved {
		t.Fatal("expected LeftRecursionRemoved = true")
	}
	noDirectLeftRecursion(t, res.Transformed)
	if res.Transformed.Start.Name != "E" {
		t.Fatalf("start symbol changed to %q, want E", res.Transformed.Start.Name)
	}
	if len(res.NewNonterminals) == 0 {
		t.Fatal("expected at least one new nonterminal")
	}
}

func TestEliminatesIndirectLeftRecursion(t *testing.T) {
	g, _, err := grammar.ParseString(`
		S -> A a | b
		A -> S d | e
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.LeftRecursionRemoved {
		t.Fatal("expected indirect left recursion to be detected and removed")
	}
	noDirectLeftRecursion(t, res.Transformed)
}

func TestNoTransformationNeeded(t *testing.T) {
	g, _, err := grammar.ParseString(`
		S -> a b
		S -> c
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	if res.LeftRecursionRemoved || res.LeftFactored {
		t.Fatalf("no transformation expected, got recursion=%v factored=%v",
			res.LeftRecursionRemoved, res.LeftFactored)
	}
	if len(res.Transformed.Productions) != len(g.Productions) {
		t.Fatal("production count should be unchanged when nothing needed transforming")
	}
}

func TestLeftFactoring(t *testing.T) {
	g, _, err := grammar.ParseString(`
		S -> if expr then S else S
		S -> if expr then S
		S -> other
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.LeftFactored {
		t.Fatal("expected LeftFactored = true")
	}

	sProds := res.Transformed.ProductionsFor(res.Transformed.Start)
	for _, group := range groupByFirstSymbol(sProds) {
		if len(group) > 1 {
			t.Fatalf("productions for S still share a common first symbol after factoring: %v", group)
		}
	}
}

func groupByFirstSymbol(prods []grammar.Production) map[string][]grammar.Production {
	groups := make(map[string][]grammar.Production)
	for _, p := range prods {
		if len(p.RHS) == 0 {
			continue
		}
		groups[p.RHS[0].Name] = append(groups[p.RHS[0].Name], p)
	}
	return groups
}

func TestLeftFactoringFixedPoint(t *testing.T) {
	g, _, err := grammar.ParseString(`
		S -> a b c
		S -> a b d
		S -> a e
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	if !res.LeftFactored {
		t.Fatal("expected LeftFactored = true")
	}
	sProds := res.Transformed.ProductionsFor(res.Transformed.Start)
	for _, group := range groupByFirstSymbol(sProds) {
		if len(group) > 1 {
			t.Fatalf("expected no remaining shared prefixes directly on S, got %v", group)
		}
	}
}

func TestFreshNonterminalsAvoidCollision(t *testing.T) {
	g, _, err := grammar.ParseString(`
		S -> S a | b
		S' -> x
	`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ForLL1(g)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, nt := range res.Transformed.Nonterminals {
		if seen[nt.Name] {
			t.Fatalf("duplicate nonterminal name %q after transformation", nt.Name)
		}
		seen[nt.Name] = true
	}
	for _, n := range res.NewNonterminals {
		if n == "S'" {
			t.Fatal("fresh nonterminal collided with a pre-existing S'")
		}
	}
}
