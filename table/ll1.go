package table

import (
	"github.com/kjhall/parsekit/firstfollow"
	"github.com/kjhall/parsekit/grammar"
)

// LL1Table is the predictive parsing table: one row per nonterminal, one
// column per terminal, each cell holding the production(s) to use. It is
// built directly over g (not an augmented grammar) so that driving it
// yields a parse tree rooted at g's own start symbol.
type LL1Table struct {
	Grammar   *grammar.Grammar
	Table     *Sparse
	FF        *firstfollow.Sets
	Conflicts []Conflict
}

// IsLL1 reports whether the grammar produced no FIRST+ conflicts.
func (t *LL1Table) IsLL1() bool { return len(t.Conflicts) == 0 }

// BuildLL1 builds the LL(1) predictive table via FIRST+: a production
// A -> alpha is entered at (A, a) for every terminal a in FIRST+(A -> alpha),
// where FIRST+ is FIRST(alpha), extended with FOLLOW(A) whenever alpha is
// nullable (including when alpha is itself epsilon).
func BuildLL1(g *grammar.Grammar) *LL1Table {
	ff := firstfollow.Compute(g)
	tbl := NewSparse(len(g.Nonterminals), len(g.Terminals))

	termIndex := make(map[string]int, len(g.Terminals))
	for _, t := range g.Terminals {
		termIndex[t.Name] = t.Value
	}

	for _, p := range g.Productions {
		for _, term := range firstPlus(p, ff) {
			col, ok := termIndex[term]
			if !ok {
				continue
			}
			tbl.Add(p.LHS.Value, col, Action{Kind: Reduce, Target: p.ID})
		}
	}

	var conflicts []Conflict
	for _, nt := range g.Nonterminals {
		for _, term := range g.Terminals {
			entries := tbl.Get(nt.Value, term.Value)
			if len(entries) < 2 {
				continue
			}
			resolved, _ := Resolve(entries)
			conflicts = append(conflicts, Conflict{
				StateID:    nt.Value,
				Symbol:     term.Name,
				Actions:    entries,
				Resolution: resolved,
			})
		}
	}

	tracer().Debugf("LL(1): %d productions, %d conflicts", len(g.Productions), len(conflicts))
	return &LL1Table{Grammar: g, Table: tbl, FF: ff, Conflicts: conflicts}
}

const epsilon = "ε"

// firstPlus computes FIRST+(p): FIRST(RHS), extended with FOLLOW(LHS)
// whenever RHS is nullable (an epsilon production is trivially nullable).
func firstPlus(p grammar.Production, ff *firstfollow.Sets) []string {
	if p.IsEpsilon() {
		return ff.Follow(p.LHS)
	}
	firstRHS := ff.FirstString(p.RHS)
	nullable := false
	out := make([]string, 0, len(firstRHS))
	for _, s := range firstRHS {
		if s == epsilon {
			nullable = true
			continue
		}
		out = append(out, s)
	}
	if nullable {
		out = append(out, ff.Follow(p.LHS)...)
	}
	return out
}
