package automaton

import (
	"testing"

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
	return g
}

func TestBuildLR0ProducesConnectedAutomaton(t *testing.T) {
	g := exprGrammar(t)
	cfsm := BuildLR0(g)
	if cfsm.S0 == nil {
		t.Fatal("S0 must be set")
	}
	if len(cfsm.States()) == 0 {
		t.Fatal("automaton must have at least one state")
	}
	// Every state but the start state must be reachable via some transition.
	reached := map[int]bool{cfsm.S0.ID: true}
	for _, s := range cfsm.States() {
		for _, to := range cfsm.Transitions(s.ID) {
			reached[to] = true
		}
	}
	for _, s := range cfsm.States() {
		if !reached[s.ID] {
			t.Fatalf("state %d is unreachable", s.ID)
		}
	}
}

func TestBuildLR1HasAtLeastAsManyStatesAsLR0(t *testing.T) {
	g := exprGrammar(t)
	lr0 := BuildLR0(g)
	clr, _ := BuildLR1(g)
	if len(clr.States()) < len(lr0.States()) {
		t.Fatalf("CLR(1) states (%d) must be >= LR(0) states (%d)",
			len(clr.States()), len(lr0.States()))
	}
}

func TestMergeLALRMatchesLR0StateCount(t *testing.T) {
	g := exprGrammar(t)
	lr0 := BuildLR0(g)
	clr, _ := BuildLR1(g)
	lalr := MergeLALR(clr)

	if len(lalr.States()) != len(lr0.States()) {
		t.Fatalf("LALR(1) states = %d, want %d (same as LR(0), per the core-merge theorem)",
			len(lalr.States()), len(lr0.States()))
	}
	if lalr.S0 == nil {
		t.Fatal("merged automaton must have a start state")
	}
}

func TestMergeLALRPreservesTransitionDeterminism(t *testing.T) {
	g := exprGrammar(t)
	clr, _ := BuildLR1(g)
	lalr := MergeLALR(clr)

	for _, s := range lalr.States() {
		seen := make(map[grammar.Symbol]int)
		it := lalr.transitions.Iterator()
		for it.Next() {
			tr := it.Value().(transition)
			if tr.from != s.ID {
				continue
			}
			if other, ok := seen[tr.label]; ok && other != tr.to {
				t.Fatalf("state %d has two distinct GOTO targets for %s: %d and %d",
					s.ID, tr.label, other, tr.to)
			}
			seen[tr.label] = tr.to
		}
	}
}
