// Package automaton builds the canonical collection of LR states (the
// characteristic finite state machine, or CFSM) for a grammar, in three
// flavors: plain LR(0) (used by SLR(1)), LR(1) (used by CLR(1)), and the
// LALR(1) automaton obtained by merging LR(1) states that share a core.
package automaton

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/firstfollow"
	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/items"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.automaton") }

// State is one node of a CFSM: a stable numeric id and the item set it
// represents (either Item0 or Item1 values, uniform within one automaton).
type State struct {
	ID    int
	Items *items.Set
}

func (s *State) String() string { return fmt.Sprintf("state %d (|items|=%d)", s.ID, s.Items.Size()) }

func stateComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*State).ID, b.(*State).ID)
}

// transition is one labeled edge between two states.
type transition struct {
	from  int
	to    int
	label grammar.Symbol
}

// CFSM is the characteristic finite state machine for a grammar: a set of
// states plus labeled transitions between them, rooted at S0.
type CFSM struct {
	G           *grammar.Grammar // the augmented grammar this CFSM was built for
	S0          *State
	states      *treeset.Set
	transitions *arraylist.List
}

func emptyCFSM(g *grammar.Grammar) *CFSM {
	return &CFSM{
		G:           g,
		states:      treeset.NewWith(stateComparator),
		transitions: arraylist.New(),
	}
}

// States returns every state, ordered by id.
func (c *CFSM) States() []*State {
	vals := c.states.Values()
	out := make([]*State, len(vals))
	for i, v := range vals {
		out[i] = v.(*State)
	}
	return out
}

// Goto returns the destination state id for (state, symbol), or (-1, false)
// if there is no such transition.
func (c *CFSM) Goto(stateID int, sym grammar.Symbol) (int, bool) {
	it := c.transitions.Iterator()
	for it.Next() {
		tr := it.Value().(transition)
		if tr.from == stateID && tr.label == sym {
			return tr.to, true
		}
	}
	return -1, false
}

// Transitions returns every outgoing (symbol, toStateID) pair of a state.
func (c *CFSM) Transitions(stateID int) map[grammar.Symbol]int {
	out := make(map[grammar.Symbol]int)
	it := c.transitions.Iterator()
	for it.Next() {
		tr := it.Value().(transition)
		if tr.from == stateID {
			out[tr.label] = tr.to
		}
	}
	return out
}

func (c *CFSM) addState(iset *items.Set, findByItems func(*items.Set) (*State, bool)) *State {
	if s, ok := findByItems(iset); ok {
		return s
	}
	s := &State{ID: c.states.Size(), Items: iset}
	c.states.Add(s)
	return s
}

func (c *CFSM) findByItems(iset *items.Set) (*State, bool) {
	for _, x := range c.states.Values() {
		s := x.(*State)
		if s.Items.Equals(iset) {
			return s, true
		}
	}
	return nil, false
}

// BuildLR0 constructs the LR(0) canonical collection for g's augmented
// grammar: the automaton SLR(1) tables are built from.
func BuildLR0(g *grammar.Grammar) *CFSM {
	ag := g.Augmented()
	cfsm := emptyCFSM(ag)

	seed := items.NewSet()
	seed.Add(items.StartItem0())
	start := Closure0State(ag, seed)
	cfsm.S0 = cfsm.addState(start, cfsm.findByItems)

	worklist := []*State{cfsm.S0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		var symbols []grammar.Symbol
		ag.EachSymbol(func(sym grammar.Symbol) { symbols = append(symbols, sym) })
		for _, sym := range symbols {
			gotoSet := items.Goto0(ag, s.Items, sym)
			if gotoSet.Size() == 0 {
				continue
			}
			dest, existed := cfsm.findByItems(gotoSet)
			if !existed {
				dest = cfsm.addState(gotoSet, cfsm.findByItems)
				worklist = append(worklist, dest)
			}
			cfsm.transitions.Add(transition{from: s.ID, to: dest.ID, label: sym})
		}
	}
	tracer().Debugf("LR(0) CFSM: %d states", cfsm.states.Size())
	return cfsm
}

// BuildLR1 constructs the LR(1) canonical collection for g's augmented
// grammar: the automaton CLR(1) tables are built from, and the automaton
// LALR(1) merging starts from.
func BuildLR1(g *grammar.Grammar) (*CFSM, *firstfollow.Sets) {
	ag := g.Augmented()
	ff := firstfollow.Compute(ag)
	cfsm := emptyCFSM(ag)

	seed := items.NewSet()
	seed.Add(items.StartItem1())
	start := items.Closure1(ag, ff, seed)
	cfsm.S0 = cfsm.addState(start, cfsm.findByItems)

	worklist := []*State{cfsm.S0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		var symbols []grammar.Symbol
		ag.EachSymbol(func(sym grammar.Symbol) { symbols = append(symbols, sym) })
		for _, sym := range symbols {
			gotoSet := items.Goto1(ag, ff, s.Items, sym)
			if gotoSet.Size() == 0 {
				continue
			}
			dest, existed := cfsm.findByItems(gotoSet)
			if !existed {
				dest = cfsm.addState(gotoSet, cfsm.findByItems)
				worklist = append(worklist, dest)
			}
			cfsm.transitions.Add(transition{from: s.ID, to: dest.ID, label: sym})
		}
	}
	tracer().Debugf("LR(1) CFSM: %d states", cfsm.states.Size())
	return cfsm, ff
}

// Closure0State is items.Closure0 specialized to return the closure of a
// single seed set, exported for callers that build their own LR(0) states
// (notably BuildLR0's start state).
func Closure0State(g *grammar.Grammar, seed *items.Set) *items.Set {
	return items.Closure0(g, seed)
}

// core is the (prodID, dot) pair identifying an item's position, ignoring
// lookahead — the LALR merge key.
type core struct {
	prodID int
	dot    int
}

func coreOf(it items.Item1) core { return core{prodID: it.Core.ProdID, dot: it.Core.Dot} }

func coreKey(s *items.Set) string {
	cores := make([]core, 0, s.Size())
	for _, x := range s.Values() {
		cores = append(cores, coreOf(x.(items.Item1)))
	}
	slices.SortFunc(cores, func(a, b core) int {
		if a.prodID != b.prodID {
			return a.prodID - b.prodID
		}
		return a.dot - b.dot
	})
	cores = slices.CompactFunc(cores, func(a, b core) bool { return a == b })
	return fmt.Sprintf("%v", cores)
}

// MergeLALR merges the states of an LR(1) CFSM that share the same core
// (same set of (prodID, dot) pairs, lookaheads discarded), producing the
// LALR(1) automaton. Merged states carry the union of the lookaheads of
// every LR(1) state folded into them, which is exactly the information
// CLR(1)'s construction would have propagated had it started from the
// merged core directly — this is how LALR(1) achieves state counts equal to
// LR(0) while still carrying lookahead-sensitive reduce actions.
func MergeLALR(clr *CFSM) *CFSM {
	merged := emptyCFSM(clr.G)

	keyToMergedID := make(map[string]int)
	var mergedOrder []string
	mergedItems := make(map[string]*items.Set)

	for _, s := range clr.States() {
		key := coreKey(s.Items)
		if _, ok := mergedItems[key]; !ok {
			mergedItems[key] = items.NewSet()
			mergedOrder = append(mergedOrder, key)
		}
		mergedItems[key].Union(s.Items)
	}

	sort.Strings(mergedOrder) // deterministic id assignment, independent of CLR's own id order
	for _, key := range mergedOrder {
		st := &State{ID: merged.states.Size(), Items: mergedItems[key]}
		merged.states.Add(st)
		keyToMergedID[key] = st.ID
	}

	clrKeyByID := make(map[int]string)
	for _, s := range clr.States() {
		clrKeyByID[s.ID] = coreKey(s.Items)
	}

	seenTransition := make(map[string]bool)
	it := clr.transitions.Iterator()
	for it.Next() {
		tr := it.Value().(transition)
		fromKey := clrKeyByID[tr.from]
		toKey := clrKeyByID[tr.to]
		fromID := keyToMergedID[fromKey]
		toID := keyToMergedID[toKey]
		tkey := fmt.Sprintf("%d-%s-%d", fromID, tr.label, toID)
		if seenTransition[tkey] {
			continue
		}
		seenTransition[tkey] = true
		merged.transitions.Add(transition{from: fromID, to: toID, label: tr.label})
	}

	s0Key := clrKeyByID[clr.S0.ID]
	for _, s := range merged.States() {
		if coreKey(s.Items) == s0Key {
			merged.S0 = s
			break
		}
	}
	tracer().Debugf("LALR(1) CFSM: %d states (merged from %d LR(1) states)",
		merged.states.Size(), clr.states.Size())
	return merged
}
