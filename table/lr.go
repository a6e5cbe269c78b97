package table

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/automaton"
	"github.com/kjhall/parsekit/firstfollow"
	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/items"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.table") }

// LRTable is an ACTION/GOTO table pair built over one CFSM, plus every
// conflict encountered while building it. The table is always complete and
// usable: conflicting cells keep every competing action, with Resolve
// supplying the one a driver should take.
type LRTable struct {
	Grammar   *grammar.Grammar // the augmented grammar the CFSM was built for
	CFSM      *automaton.CFSM
	Action    *Sparse
	GotoTable *Sparse
	Conflicts []Conflict
}

// HasConflicts reports whether building the table recorded any conflict.
func (t *LRTable) HasConflicts() bool { return len(t.Conflicts) > 0 }

// BuildSLR1 builds the SLR(1) ACTION/GOTO tables from the grammar's plain
// LR(0) automaton, using FOLLOW(A) as the lookahead set for every reduce by
// a production with LHS A.
func BuildSLR1(g *grammar.Grammar) *LRTable {
	cfsm := automaton.BuildLR0(g)
	ag := cfsm.G
	ff := firstfollow.Compute(ag)

	lookaheadsFor := func(prodID int) []string {
		return ff.Follow(ag.Rule(prodID).LHS)
	}
	t := buildTable(cfsm, ag, lookaheadsFor, asItem0)
	tracer().Debugf("SLR(1): %d states, %d conflicts", len(cfsm.States()), len(t.Conflicts))
	return t
}

// BuildCLR1 builds the CLR(1) (canonical LR(1)) ACTION/GOTO tables: every
// reduce is restricted to the single lookahead carried by its LR(1) item.
func BuildCLR1(g *grammar.Grammar) *LRTable {
	cfsm, _ := automaton.BuildLR1(g)
	ag := cfsm.G
	t := buildTable(cfsm, ag, nil, asItem1)
	tracer().Debugf("CLR(1): %d states, %d conflicts", len(cfsm.States()), len(t.Conflicts))
	return t
}

// BuildLALR1 builds the LALR(1) ACTION/GOTO tables over the automaton
// obtained by merging CLR(1) states sharing an LR(0) core.
func BuildLALR1(g *grammar.Grammar) *LRTable {
	clr, _ := automaton.BuildLR1(g)
	merged := automaton.MergeLALR(clr)
	ag := merged.G
	t := buildTable(merged, ag, nil, asItem1)
	tracer().Debugf("LALR(1): %d states, %d conflicts", len(merged.States()), len(t.Conflicts))
	return t
}

// reduceEntry is what buildTable needs to know about one completed item,
// abstracted over Item0 (SLR, lookaheads via FOLLOW) and Item1 (CLR/LALR,
// lookahead carried on the item itself).
type reduceEntry struct {
	prodID      int
	lookaheads  []string // nil for Item0 entries; lookaheadsFor(prodID) supplies FOLLOW then
}

func asItem0(x interface{}) (reduceEntry, bool, bool) {
	it, ok := x.(items.Item0)
	if !ok {
		return reduceEntry{}, false, false
	}
	return reduceEntry{prodID: it.ProdID}, true, false
}

func asItem1(x interface{}) (reduceEntry, bool, bool) {
	it, ok := x.(items.Item1)
	if !ok {
		return reduceEntry{}, false, false
	}
	return reduceEntry{prodID: it.Core.ProdID, lookaheads: []string{it.Lookahead}}, true, true
}

// buildTable iterates every CFSM state and item, producing shift entries
// from the CFSM's own transitions (already deterministic by construction)
// and reduce/accept entries from completed items. toReduceEntry adapts the
// two item representations (LR(0) core vs LR(1) item-with-lookahead) to a
// common shape; ownLookahead indicates the entry already carries its
// lookahead (true for Item1) versus needing lookaheadsFor (true for Item0,
// used only by SLR).
func buildTable(
	cfsm *automaton.CFSM,
	ag *grammar.Grammar,
	lookaheadsFor func(prodID int) []string,
	toReduceEntry func(interface{}) (reduceEntry, bool, bool),
) *LRTable {
	rows := len(cfsm.States())
	action := NewSparse(rows, len(ag.Terminals))
	gotoTable := NewSparse(rows, len(ag.Nonterminals))

	termIndex := func(name string) int {
		for _, t := range ag.Terminals {
			if t.Name == name {
				return t.Value
			}
		}
		return -1
	}

	for _, s := range cfsm.States() {
		for sym, target := range cfsm.Transitions(s.ID) {
			if sym.IsTerminal() {
				action.Add(s.ID, sym.Value, Action{Kind: Shift, Target: target})
			} else {
				gotoTable.Add(s.ID, sym.Value, Action{Kind: Goto, Target: target})
			}
		}
		for _, x := range s.Items.Values() {
			entry, ok, ownLookahead := toReduceEntry(x)
			if !ok {
				continue
			}
			atEnd := itemAtEnd(x, ag)
			if !atEnd {
				continue
			}
			if entry.prodID == 0 {
				action.Add(s.ID, termIndex(grammar.EndOfInput.Name), Action{Kind: Accept})
				continue
			}
			las := entry.lookaheads
			if !ownLookahead {
				las = lookaheadsFor(entry.prodID)
			}
			for _, la := range las {
				col := termIndex(la)
				if col < 0 {
					continue
				}
				action.Add(s.ID, col, Action{Kind: Reduce, Target: entry.prodID})
			}
		}
	}

	conflicts := collectConflicts(cfsm, ag, action)
	return &LRTable{Grammar: ag, CFSM: cfsm, Action: action, GotoTable: gotoTable, Conflicts: conflicts}
}

func itemAtEnd(x interface{}, ag *grammar.Grammar) bool {
	switch it := x.(type) {
	case items.Item0:
		return it.AtEnd(ag)
	case items.Item1:
		return it.AtEnd(ag)
	}
	return false
}

func collectConflicts(cfsm *automaton.CFSM, ag *grammar.Grammar, action *Sparse) []Conflict {
	var conflicts []Conflict
	for _, s := range cfsm.States() {
		for _, term := range ag.Terminals {
			entries := action.Get(s.ID, term.Value)
			if len(entries) < 2 {
				continue
			}
			resolved, _ := Resolve(entries)
			conflicts = append(conflicts, Conflict{
				StateID:    s.ID,
				Symbol:     term.Name,
				Actions:    entries,
				Resolution: resolved,
			})
		}
	}
	return conflicts
}
