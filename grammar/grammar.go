package grammar

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// Grammar is an ordered set of productions together with derived terminal
// and nonterminal sets and a designated start symbol. Grammars are created
// once and never mutated; Augmented and every transform.Result produce
// fresh Grammar values with their own dense production-id space.
type Grammar struct {
	Productions  []Production
	Start        Symbol
	Terminals    []Symbol // first-appearance order, EndOfInput always last
	Nonterminals []Symbol // first-appearance order

	byLHS map[string][]int
}

// Warning records a non-fatal condition noticed while building a grammar
// (currently: a RHS symbol that looks like it was meant to be a
// nonterminal — capitalized, by the classical convention — but is never
// defined as an LHS, and so is demoted to a terminal).
type Warning struct {
	Symbol string
	Reason string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Symbol, w.Reason) }

// New builds a Grammar from an ordered list of (lhs, rhs...) rules. The LHS
// of the first rule is the start symbol. It is the building block both
// ParseString and the transform package use to materialize a fresh,
// densely-numbered Grammar.
func New(rules []RawRule) (*Grammar, []Warning, error) {
	if len(rules) == 0 {
		return nil, nil, fmt.Errorf("grammar: no productions given")
	}

	ntNames := make(map[string]bool)
	for _, r := range rules {
		ntNames[r.LHS] = true
	}

	g := &Grammar{
		Start: Symbol{Name: rules[0].LHS, Kind: Nonterminal},
		byLHS: make(map[string][]int),
	}

	var warnings []Warning
	termVal := make(map[string]int)
	ntVal := make(map[string]int)
	internSym := func(name string) Symbol {
		if ntNames[name] {
			v, ok := ntVal[name]
			if !ok {
				v = len(g.Nonterminals)
				ntVal[name] = v
				sym := Symbol{Name: name, Kind: Nonterminal, Value: v}
				g.Nonterminals = append(g.Nonterminals, sym)
				return sym
			}
			return g.Nonterminals[v]
		}
		v, ok := termVal[name]
		if !ok {
			v = len(g.Terminals)
			termVal[name] = v
			sym := Symbol{Name: name, Kind: Terminal, Value: v}
			g.Terminals = append(g.Terminals, sym)
			if looksLikeNonterminal(name) {
				warnings = append(warnings, Warning{
					Symbol: name,
					Reason: "referenced but never defined as a left-hand side; demoted to terminal",
				})
			}
			return sym
		}
		return g.Terminals[v]
	}

	for i, r := range rules {
		lhs := internSym(r.LHS)
		rhs := make([]Symbol, 0, len(r.RHS))
		for _, s := range r.RHS {
			rhs = append(rhs, internSym(s))
		}
		g.Productions = append(g.Productions, Production{ID: i, LHS: lhs, RHS: rhs})
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], i)
	}

	endMarker := EndOfInput
	endMarker.Value = len(g.Terminals)
	g.Terminals = append(g.Terminals, endMarker)

	tracer().Debugf("built grammar: %d productions, %d terminals, %d nonterminals",
		len(g.Productions), len(g.Terminals), len(g.Nonterminals))

	return g, warnings, nil
}

// looksLikeNonterminal applies the classical capitalized-identifier
// convention to decide whether an undefined reference is worth warning
// about (every terminal is, after all, a "reference that never appears as
// LHS" — the warning exists to flag the subset that was plausibly meant to
// be something else).
func looksLikeNonterminal(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// RawRule is the intermediate representation consumed by New: one
// alternative of one production, LHS paired with its RHS symbol names. An
// empty RHS denotes ε.
type RawRule struct {
	LHS string
	RHS []string
}

// ProductionsFor returns the productions with the given nonterminal as LHS,
// in source/id order.
func (g *Grammar) ProductionsFor(nt Symbol) []Production {
	ids := g.byLHS[nt.Name]
	out := make([]Production, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.Productions[id])
	}
	return out
}

// Symbol looks up a symbol by name, trying nonterminals then terminals.
func (g *Grammar) Symbol(name string) (Symbol, bool) {
	for _, nt := range g.Nonterminals {
		if nt.Name == name {
			return nt, true
		}
	}
	for _, t := range g.Terminals {
		if t.Name == name {
			return t, true
		}
	}
	return Symbol{}, false
}

// IsNonterminal reports whether name is classified as a nonterminal.
func (g *Grammar) IsNonterminal(name string) bool {
	_, ok := g.byLHS[name]
	return ok
}

// EachSymbol calls fn for every terminal (including EndOfInput), then every
// nonterminal, mirroring gorgo's Grammar.EachSymbol iteration order used for
// table column/row generation.
func (g *Grammar) EachSymbol(fn func(Symbol)) {
	for _, t := range g.Terminals {
		fn(t)
	}
	for _, nt := range g.Nonterminals {
		fn(nt)
	}
}

// Rule returns the production with the given id.
func (g *Grammar) Rule(id int) Production { return g.Productions[id] }

// Augmented returns a fresh Grammar with a new start symbol S' (priming S
// until the name no longer collides) and production `S' -> S` placed at id
// 0; every other production is copied, in original order, with ids shifted
// by one. The receiver is unaffected.
func (g *Grammar) Augmented() *Grammar {
	primed := g.Start.Name + "'"
	for {
		if _, taken := g.Symbol(primed); !taken {
			break
		}
		primed += "'"
	}

	rules := make([]RawRule, 0, len(g.Productions)+1)
	rules = append(rules, RawRule{LHS: primed, RHS: []string{g.Start.Name}})
	for _, p := range g.Productions {
		rhsNames := make([]string, len(p.RHS))
		for i, s := range p.RHS {
			rhsNames[i] = s.Name
		}
		rules = append(rules, RawRule{LHS: p.LHS.Name, RHS: rhsNames})
	}

	ag, _, err := New(rules)
	if err != nil {
		// unreachable: rules were derived from an already-valid grammar
		panic(fmt.Sprintf("grammar: augmentation produced invalid grammar: %v", err))
	}
	return ag
}

// Dump pretty-prints every production, numbered by id.
func (g *Grammar) Dump(w io.Writer) {
	fmt.Fprintf(w, "Grammar(start=%s)\n", g.Start.Name)
	for _, p := range g.Productions {
		fmt.Fprintf(w, "  %3d: %s\n", p.ID, p)
	}
}

func (g *Grammar) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Grammar(start=%s)", g.Start.Name))
	for _, p := range g.Productions {
		b.WriteByte('\n')
		b.WriteString(fmt.Sprintf("  %3d: %s", p.ID, p))
	}
	return b.String()
}

// Hash returns a deterministic content hash of the grammar (start symbol
// plus the production strings sorted lexicographically), suitable for
// callers that want to cache derived artifacts (tables, automata) keyed by
// grammar content rather than pointer identity.
func (g *Grammar) Hash() string {
	type hashable struct {
		Start string
		Prods []string
	}
	prods := make([]string, len(g.Productions))
	for i, p := range g.Productions {
		prods[i] = p.String()
	}
	sort.Strings(prods) // id order is already deterministic; sort defends against future callers reordering Productions
	h, err := structhash.Hash(hashable{Start: g.Start.Name, Prods: prods}, 1)
	if err != nil {
		// structhash only fails on unhashable types; hashable above is not.
		panic(fmt.Sprintf("grammar: hash: %v", err))
	}
	return h
}
