package table

import (
	"testing"

	"github.com/kjhall/parsekit/grammar"
)

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.ParseString(text)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestExprGrammarIsConflictFreeAtEveryLRLevel(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	for name, build := range map[string]func(*grammar.Grammar) *LRTable{
		"SLR":  BuildSLR1,
		"CLR":  BuildCLR1,
		"LALR": BuildLALR1,
	} {
		tbl := build(g)
		if tbl.HasConflicts() {
			t.Errorf("%s: unexpected conflicts: %v", name, tbl.Conflicts)
		}
	}
}

// The classic Aho/Ullman example of a grammar that is LALR(1) but not
// SLR(1): S -> L = R | R; L -> * R | id; R -> L. SLR(1) reduces R -> L on
// FOLLOW(R), which includes "=" (R ends L -> * R, and L is followed by "="
// in S -> L = R), colliding with the shift on "=" after L; LALR(1)'s item-specific
// lookahead does not make that mistake.
func TestSLRHasConflictLALRDoesNot(t *testing.T) {
	g := mustGrammar(t, `
		S -> L = R | R
		L -> * R | id
		R -> L
	`)
	slr := BuildSLR1(g)
	if !slr.HasConflicts() {
		t.Fatal("expected SLR(1) to have a shift/reduce conflict on this grammar")
	}
	lalr := BuildLALR1(g)
	if lalr.HasConflicts() {
		t.Fatalf("expected LALR(1) to be conflict-free, got %v", lalr.Conflicts)
	}
	clr := BuildCLR1(g)
	if clr.HasConflicts() {
		t.Fatalf("expected CLR(1) to be conflict-free, got %v", clr.Conflicts)
	}
	if len(clr.Conflicts) > len(lalr.Conflicts) || len(lalr.Conflicts) > len(slr.Conflicts) {
		t.Fatalf("conflict counts must satisfy CLR <= LALR <= SLR, got CLR=%d LALR=%d SLR=%d",
			len(clr.Conflicts), len(lalr.Conflicts), len(slr.Conflicts))
	}
}

func TestResolveTieBreak(t *testing.T) {
	shift := Action{Kind: Shift, Target: 5}
	reduce2 := Action{Kind: Reduce, Target: 2}
	reduce7 := Action{Kind: Reduce, Target: 7}

	got, ok := Resolve([]Action{reduce2, shift})
	if !ok || got != shift {
		t.Fatalf("shift must win over reduce, got %v", got)
	}
	got, ok = Resolve([]Action{reduce7, reduce2})
	if !ok || got != reduce2 {
		t.Fatalf("lower production id must win reduce/reduce, got %v", got)
	}
}

func TestAcceptOnAugmentedStartProduction(t *testing.T) {
	g := mustGrammar(t, "S -> a")
	tbl := BuildSLR1(g)
	found := false
	dollar, _ := tbl.Grammar.Symbol("$")
	for _, s := range tbl.CFSM.States() {
		for _, a := range tbl.Action.Get(s.ID, dollar.Value) {
			if a.Kind == Accept {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected an Accept action on $ somewhere in the table")
	}
}
