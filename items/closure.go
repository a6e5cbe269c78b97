package items

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/firstfollow"
	"github.com/kjhall/parsekit/grammar"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.items") }

// StartItem0 is the seed item for an augmented grammar's CFSM: the
// augmented start production (always id 0) with the dot at position 0.
func StartItem0() Item0 { return Item0{ProdID: 0, Dot: 0} }

// StartItem1 is the LR(1) seed item, lookahead fixed at end-of-input.
func StartItem1() Item1 {
	return Item1{Core: StartItem0(), Lookahead: grammar.EndOfInput.Name}
}

// Closure0 computes the LR(0) closure of a seed set: for every item
// A -> α . B β in the set, add B -> . γ for every production of B, until
// no more items can be added.
func Closure0(g *grammar.Grammar, seed *Set) *Set {
	c := seed.Copy()
	worklist := append([]Item0(nil), asItem0Slice(seed.Values())...)

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		sym, ok := it.NextSymbol(g)
		if !ok || sym.IsTerminal() {
			continue
		}
		for _, p := range g.ProductionsFor(sym) {
			ni := Item0{ProdID: p.ID, Dot: 0}
			if !c.Contains(ni) {
				c.Add(ni)
				worklist = append(worklist, ni)
			}
		}
	}
	return c
}

// Goto0 computes GOTO(C, sym) for an LR(0) state: advance every item whose
// next symbol is sym, then take the closure of the result.
func Goto0(g *grammar.Grammar, c *Set, sym grammar.Symbol) *Set {
	moved := NewSet()
	for _, x := range c.Values() {
		it := x.(Item0)
		if next, ok := it.NextSymbol(g); ok && next == sym {
			moved.Add(it.Advance())
		}
	}
	result := Closure0(g, moved)
	tracer().Debugf("goto0(|C|=%d, %s) -> |C'|=%d", c.Size(), sym, result.Size())
	return result
}

// Closure1 computes the LR(1) closure of a seed set: for every item
// [A -> α . B β, a], add [B -> . γ, b] for every production of B and every
// b in FIRST(βa), until no more items can be added. ff must have been
// computed over the same grammar g (so every lookahead symbol, including
// end-of-input, already has a FIRST entry).
func Closure1(g *grammar.Grammar, ff *firstfollow.Sets, seed *Set) *Set {
	c := seed.Copy()
	worklist := append([]Item1(nil), asItem1Slice(seed.Values())...)

	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		sym, ok := it.NextSymbol(g)
		if !ok || sym.IsTerminal() {
			continue
		}
		prod := g.Rule(it.Core.ProdID)
		beta := prod.RHS[it.Core.Dot+1:]
		lookaheadSym := grammar.Symbol{Name: it.Lookahead, Kind: grammar.Terminal}
		seq := append(append([]grammar.Symbol(nil), beta...), lookaheadSym)
		firsts := ff.FirstString(seq)

		for _, p := range g.ProductionsFor(sym) {
			for _, b := range firsts {
				if b == epsilonMarker {
					continue
				}
				ni := Item1{Core: Item0{ProdID: p.ID, Dot: 0}, Lookahead: b}
				if !c.Contains(ni) {
					c.Add(ni)
					worklist = append(worklist, ni)
				}
			}
		}
	}
	return c
}

// Goto1 computes GOTO(C, sym) for an LR(1) state.
func Goto1(g *grammar.Grammar, ff *firstfollow.Sets, c *Set, sym grammar.Symbol) *Set {
	moved := NewSet()
	for _, x := range c.Values() {
		it := x.(Item1)
		if next, ok := it.NextSymbol(g); ok && next == sym {
			moved.Add(it.Advance())
		}
	}
	return Closure1(g, ff, moved)
}

const epsilonMarker = "ε"

func asItem0Slice(vs []interface{}) []Item0 {
	out := make([]Item0, len(vs))
	for i, v := range vs {
		out[i] = v.(Item0)
	}
	return out
}

func asItem1Slice(vs []interface{}) []Item1 {
	out := make([]Item1, len(vs))
	for i, v := range vs {
		out[i] = v.(Item1)
	}
	return out
}
