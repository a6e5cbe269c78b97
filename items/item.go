package items

import (
	"fmt"

	"github.com/kjhall/parsekit/grammar"
)

// Item0 is an LR(0) item: a production together with a dot position,
// A -> α . β. The pair (ProdID, Dot) is the item's identity — no symbol
// lookup is needed to tell two items apart.
type Item0 struct {
	ProdID int
	Dot    int
}

// NextSymbol returns the symbol immediately after the dot, or false if the
// dot is at the end of the production.
func (i Item0) NextSymbol(g *grammar.Grammar) (grammar.Symbol, bool) {
	rhs := g.Rule(i.ProdID).RHS
	if i.Dot >= len(rhs) {
		return grammar.Symbol{}, false
	}
	return rhs[i.Dot], true
}

// AtEnd reports whether the dot has moved past the entire right-hand side.
func (i Item0) AtEnd(g *grammar.Grammar) bool {
	return i.Dot >= len(g.Rule(i.ProdID).RHS)
}

// Advance returns the item with the dot moved one position to the right.
func (i Item0) Advance() Item0 {
	return Item0{ProdID: i.ProdID, Dot: i.Dot + 1}
}

// String is the item's set-membership key (prod id and dot position),
// independent of any particular grammar.
func (i Item0) String() string {
	return fmt.Sprintf("%d.%d", i.ProdID, i.Dot)
}

// Display renders the item against g in the conventional A -> α . β form.
func (i Item0) Display(g *grammar.Grammar) string {
	return displayDotted(g, i.ProdID, i.Dot)
}

// Item1 is an LR(1) item: an Item0 core plus a single lookahead terminal,
// [A -> α . β, a].
type Item1 struct {
	Core      Item0
	Lookahead string
}

// NextSymbol returns the symbol after the dot, delegating to the core item.
func (i Item1) NextSymbol(g *grammar.Grammar) (grammar.Symbol, bool) {
	return i.Core.NextSymbol(g)
}

// AtEnd reports whether the core item's dot is at the end of the RHS.
func (i Item1) AtEnd(g *grammar.Grammar) bool {
	return i.Core.AtEnd(g)
}

// Advance returns the item with the dot moved one position right, carrying
// the lookahead forward unchanged.
func (i Item1) Advance() Item1 {
	return Item1{Core: i.Core.Advance(), Lookahead: i.Lookahead}
}

// String is the item's set-membership key: core plus lookahead.
func (i Item1) String() string {
	return fmt.Sprintf("%d.%d/%s", i.Core.ProdID, i.Core.Dot, i.Lookahead)
}

// Display renders the item against g as [A -> α . β, a].
func (i Item1) Display(g *grammar.Grammar) string {
	return fmt.Sprintf("[%s, %s]", displayDotted(g, i.Core.ProdID, i.Core.Dot), i.Lookahead)
}

func displayDotted(g *grammar.Grammar, prodID, dot int) string {
	p := g.Rule(prodID)
	out := p.LHS.Name + " ->"
	if p.IsEpsilon() {
		return out + " ." // dot immediately before ε
	}
	for idx, sym := range p.RHS {
		if idx == dot {
			out += " ."
		}
		out += " " + sym.Name
	}
	if dot == len(p.RHS) {
		out += " ."
	}
	return out
}
