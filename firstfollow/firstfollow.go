// Package firstfollow computes FIRST and FOLLOW sets for a context-free
// grammar by fixed-point iteration, per the classical algorithm: FIRST is
// defined per symbol and extended to strings; FOLLOW(start) seeds with the
// end marker and propagates across production right-hand sides.
package firstfollow

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/grammar"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.firstfollow") }

// epsilonName is the set member used to mark nullability (grammar.Epsilon.Name
// == "ε"). The text format reads an alternative consisting of "ε" alone as an
// empty RHS; an "ε" inside a longer alternative is not rejected and becomes a
// terminal, which these sets cannot tell apart from nullability.
const epsilonName = "ε"

// Sets holds the FIRST set of every symbol (terminals trivially, each
// nonterminal by fixed point) and the FOLLOW set of every nonterminal, for
// one grammar.
type Sets struct {
	g      *grammar.Grammar
	first  map[string]*hashset.Set
	follow map[string]*hashset.Set
}

// Compute runs the fixed-point FIRST and FOLLOW computation over g.
// Re-running on the same grammar always yields identical sets.
func Compute(g *grammar.Grammar) *Sets {
	s := &Sets{
		g:      g,
		first:  make(map[string]*hashset.Set),
		follow: make(map[string]*hashset.Set),
	}
	s.computeFirst()
	s.computeFollow()
	return s
}

func (s *Sets) setFor(m map[string]*hashset.Set, name string) *hashset.Set {
	set, ok := m[name]
	if !ok {
		set = hashset.New()
		m[name] = set
	}
	return set
}

func (s *Sets) computeFirst() {
	for _, t := range s.g.Terminals {
		s.setFor(s.first, t.Name).Add(t.Name)
	}
	for _, nt := range s.g.Nonterminals {
		s.setFor(s.first, nt.Name) // ensure an (initially empty) entry exists
	}

	changed := true
	for changed {
		changed = false
		for _, p := range s.g.Productions {
			lhsSet := s.setFor(s.first, p.LHS.Name)
			before := lhsSet.Size()

			nullable := true
			for _, sym := range p.RHS {
				symSet := s.setFor(s.first, sym.Name)
				for _, v := range symSet.Values() {
					if v != epsilonName {
						lhsSet.Add(v)
					}
				}
				if !symSet.Contains(epsilonName) {
					nullable = false
					break
				}
			}
			if nullable {
				lhsSet.Add(epsilonName)
			}
			if lhsSet.Size() != before {
				changed = true
			}
		}
	}
	tracer().Debugf("computed FIRST sets for %d symbols", len(s.first))
}

func (s *Sets) computeFollow() {
	for _, nt := range s.g.Nonterminals {
		s.setFor(s.follow, nt.Name)
	}
	s.setFor(s.follow, s.g.Start.Name).Add(grammar.EndOfInput.Name)

	changed := true
	for changed {
		changed = false
		for _, p := range s.g.Productions {
			for i, sym := range p.RHS {
				if sym.Kind != grammar.Nonterminal {
					continue
				}
				symFollow := s.setFor(s.follow, sym.Name)
				before := symFollow.Size()

				beta := p.RHS[i+1:]
				firstBeta := s.firstOfSequence(beta)
				for _, v := range firstBeta.Values() {
					if v != epsilonName {
						symFollow.Add(v)
					}
				}
				if len(beta) == 0 || firstBeta.Contains(epsilonName) {
					lhsFollow := s.setFor(s.follow, p.LHS.Name)
					for _, v := range lhsFollow.Values() {
						symFollow.Add(v)
					}
				}
				if symFollow.Size() != before {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("computed FOLLOW sets for %d nonterminals", len(s.follow))
}

// firstOfSequence computes FIRST(X1...Xk) for an RHS suffix; FIRST of the
// empty sequence is {ε}.
func (s *Sets) firstOfSequence(seq []grammar.Symbol) *hashset.Set {
	result := hashset.New()
	if len(seq) == 0 {
		result.Add(epsilonName)
		return result
	}
	for _, sym := range seq {
		symSet := s.setFor(s.first, sym.Name)
		for _, v := range symSet.Values() {
			if v != epsilonName {
				result.Add(v)
			}
		}
		if !symSet.Contains(epsilonName) {
			return result
		}
	}
	result.Add(epsilonName)
	return result
}

// First returns the FIRST set (terminal names, plus "ε" if the symbol is
// nullable) of a single symbol.
func (s *Sets) First(sym grammar.Symbol) []string {
	return stringValues(s.setFor(s.first, sym.Name))
}

// FirstString returns FIRST(X1...Xk) for a sequence of symbols.
func (s *Sets) FirstString(seq []grammar.Symbol) []string {
	return stringValues(s.firstOfSequence(seq))
}

// Follow returns the FOLLOW set (terminal names) of a nonterminal.
func (s *Sets) Follow(nt grammar.Symbol) []string {
	return stringValues(s.setFor(s.follow, nt.Name))
}

func stringValues(set *hashset.Set) []string {
	vals := set.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}
