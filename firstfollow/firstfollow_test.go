package firstfollow

import (
	"sort"
	"testing"

	"github.com/kjhall/parsekit/grammar"
)

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func mustGrammar(t *testing.T, text string) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.ParseString(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return g
}

func TestFirstFollowClassicExpressionGrammar(t *testing.T) {
	g := mustGrammar(t, `
		E -> E + T | T
		T -> T * F | F
		F -> ( E ) | id
	`)
	sets := Compute(g)

	E, _ := g.Symbol("E")
	T, _ := g.Symbol("T")
	F, _ := g.Symbol("F")

	for _, tc := range []struct {
		sym  grammar.Symbol
		want []string
	}{
		{E, []string{"(", "id"}},
		{T, []string{"(", "id"}},
		{F, []string{"(", "id"}},
	} {
		got := sorted(sets.First(tc.sym))
		if !equalStrs(got, sorted(tc.want)) {
			t.Errorf("FIRST(%s) = %v, want %v", tc.sym, got, tc.want)
		}
	}

	for _, tc := range []struct {
		sym  grammar.Symbol
		want []string
	}{
		{E, []string{"$", ")", "+"}},
		{T, []string{"$", ")", "+", "*"}},
		{F, []string{"$", ")", "+", "*"}},
	} {
		got := sorted(sets.Follow(tc.sym))
		if !equalStrs(got, sorted(tc.want)) {
			t.Errorf("FOLLOW(%s) = %v, want %v", tc.sym, got, tc.want)
		}
	}
}

func TestFirstNullable(t *testing.T) {
	g := mustGrammar(t, `
		S -> A b
		A -> a
		A ->
	`)
	sets := Compute(g)
	A, _ := g.Symbol("A")
	first := sets.First(A)
	if !containsStr(first, "ε") || !containsStr(first, "a") {
		t.Fatalf("FIRST(A) = %v, want to contain a and ε", first)
	}

	S, _ := g.Symbol("S")
	firstS := sets.First(S)
	if !containsStr(firstS, "a") || !containsStr(firstS, "b") {
		t.Fatalf("FIRST(S) = %v, want to contain a and b (A nullable)", firstS)
	}
}

func TestFirstFollowFixedPointStable(t *testing.T) {
	g := mustGrammar(t, "S -> a S | a")
	s1 := Compute(g)
	s2 := Compute(g)
	S, _ := g.Symbol("S")
	if !equalStrs(sorted(s1.First(S)), sorted(s2.First(S))) {
		t.Fatal("re-running FIRST computation must be stable")
	}
	if !equalStrs(sorted(s1.Follow(S)), sorted(s2.Follow(S))) {
		t.Fatal("re-running FOLLOW computation must be stable")
	}
}

func equalStrs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsStr(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
