package items

import (
	"testing"

	"github.com/kjhall/parsekit/firstfollow"
	"github.com/kjhall/parsekit/grammar"
)

func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.ParseString(`
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	if err != nil {
		t.Fatal(err)
	}
	return g.Augmented()
}

func TestClosure0StartState(t *testing.T) {
	ag := exprGrammar(t)
	seed := NewSet()
	seed.Add(StartItem0())
	c0 := Closure0(ag, seed)

	// The augmented grammar's closure(0) must contain the start item plus
	// the dot-zero item of every production reachable through E, T, F.
	if c0.Size() != len(ag.Productions) {
		t.Fatalf("closure(0) size = %d, want %d (one dot-0 item per production)",
			c0.Size(), len(ag.Productions))
	}
	if !c0.Contains(StartItem0()) {
		t.Fatal("closure(0) must contain the start item")
	}
}

func TestGoto0AdvancesDot(t *testing.T) {
	ag := exprGrammar(t)
	seed := NewSet()
	seed.Add(StartItem0())
	c0 := Closure0(ag, seed)

	e, _ := ag.Symbol("E")
	afterE := Goto0(ag, c0, e)
	if afterE.Size() == 0 {
		t.Fatal("goto(closure(0), E) must be non-empty")
	}
	if !afterE.Contains(StartItem0().Advance()) {
		t.Fatal("goto(closure(0), E) must contain the advanced start item [E' -> E ., $]-core")
	}
}

func TestGoto0OnAbsentSymbolIsEmpty(t *testing.T) {
	ag := exprGrammar(t)
	seed := NewSet()
	seed.Add(StartItem0())
	c0 := Closure0(ag, seed)

	// "+" never immediately follows a dot in closure(0): every item there
	// has its dot at position 0, and no production starts with "+".
	plus, _ := ag.Symbol("+")
	afterPlus := Goto0(ag, c0, plus)
	if afterPlus.Size() != 0 {
		t.Fatalf("goto(closure(0), +) should be empty, got %v", afterPlus.Values())
	}
}

func TestClosure1WithLookaheads(t *testing.T) {
	g, _, err := grammar.ParseString("S -> A a\nA -> b")
	if err != nil {
		t.Fatal(err)
	}
	ag := g.Augmented()
	ff := firstfollow.Compute(ag)

	seed := NewSet()
	seed.Add(StartItem1())
	c0 := Closure1(ag, ff, seed)

	aProd := ag.ProductionsFor(mustSymbol(t, ag, "A"))[0]
	found := false
	for _, x := range c0.Values() {
		it := x.(Item1)
		if it.Core.ProdID == aProd.ID && it.Core.Dot == 0 && it.Lookahead == "a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("closure(1) must contain [A -> . b, a] (lookahead a from FIRST(a $) in S -> A a), got %v", dumpItem1(c0))
	}
}

func mustSymbol(t *testing.T, g *grammar.Grammar, name string) grammar.Symbol {
	t.Helper()
	sym, ok := g.Symbol(name)
	if !ok {
		t.Fatalf("symbol %q not found", name)
	}
	return sym
}

func dumpItem1(s *Set) []string {
	out := make([]string, 0, s.Size())
	for _, x := range s.Values() {
		out = append(out, x.(Item1).String())
	}
	return out
}

func TestSetEqualsAndDifference(t *testing.T) {
	s1 := NewSet()
	s1.Add(Item0{ProdID: 0, Dot: 0})
	s1.Add(Item0{ProdID: 1, Dot: 0})

	s2 := NewSet()
	s2.Add(Item0{ProdID: 1, Dot: 0})
	s2.Add(Item0{ProdID: 0, Dot: 0})

	if !s1.Equals(s2) {
		t.Fatal("sets with the same members in different insertion order must be equal")
	}

	s3 := NewSet()
	s3.Add(Item0{ProdID: 0, Dot: 0})
	diff := s1.Difference(s3)
	if diff.Size() != 1 || !diff.Contains(Item0{ProdID: 1, Dot: 0}) {
		t.Fatalf("difference should contain just {1.0}, got %v", diff.Values())
	}
}
