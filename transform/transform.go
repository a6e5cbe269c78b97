// Package transform rewrites a grammar into a form suitable for LL(1)
// parsing: left recursion (direct and indirect) is eliminated, then
// remaining nondeterminism from shared prefixes is removed by left
// factoring. Both steps run to a fixed point and every fresh nonterminal
// they introduce is named by priming (A -> A') until the name no longer
// collides with an existing or previously-introduced one.
package transform

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/grammar"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.transform") }

// Result records a transformed grammar alongside a description of what was
// done to produce it, for callers (and tests) that want to verify or
// display the transformation rather than just consume its output.
type Result struct {
	Original             *grammar.Grammar
	Transformed           *grammar.Grammar
	Applied               []string
	LeftRecursionRemoved  bool
	LeftFactored          bool
	NewNonterminals       []string
	Details               map[string]string
}

type transformer struct {
	g            *grammar.Grammar
	counter      int
	existing     map[string]bool
	fresh        map[string]bool
	freshOrder   []string
	applied      []string
	details      map[string]string
}

// ForLL1 applies left-recursion elimination followed by left factoring and
// returns the resulting grammar together with a record of what changed. g
// itself is never modified.
func ForLL1(g *grammar.Grammar) (*Result, error) {
	t := &transformer{
		g:        g,
		existing: make(map[string]bool),
		fresh:    make(map[string]bool),
		details:  make(map[string]string),
	}
	for _, nt := range g.Nonterminals {
		t.existing[nt.Name] = true
	}

	afterRecursion := t.eliminateLeftRecursion()
	leftRecursionRemoved := len(t.applied) > 0

	afterFactoring := t.applyLeftFactoring(afterRecursion)
	leftFactored := false
	for _, a := range t.applied {
		if strings.HasPrefix(a, "left factored") {
			leftFactored = true
			break
		}
	}

	rules := reorderStartFirst(afterFactoring, g.Start.Name)
	tg, _, err := grammar.New(rules)
	if err != nil {
		return nil, fmt.Errorf("transform: rebuilding grammar: %w", err)
	}
	tracer().Debugf("ForLL1: %d transformations applied, %d new nonterminals",
		len(t.applied), len(t.freshOrder))

	return &Result{
		Original:             g,
		Transformed:          tg,
		Applied:              t.applied,
		LeftRecursionRemoved: leftRecursionRemoved,
		LeftFactored:         leftFactored,
		NewNonterminals:      t.freshOrder,
		Details:              t.details,
	}, nil
}

func (t *transformer) freshNonterminal(base string) string {
	t.counter++
	name := base + "'"
	for t.existing[name] || t.fresh[name] {
		name += "'"
	}
	t.fresh[name] = true
	t.freshOrder = append(t.freshOrder, name)
	return name
}

// eliminateLeftRecursion runs the ordered-substitution algorithm (Aho,
// Sethi, Ullman) over the nonterminals in the grammar's own nonterminal
// order (first appearance in the source, on either side of a rule): for
// each A_i, substitute away any leading reference to an earlier
// A_j, then eliminate whatever direct left recursion remains on A_i.
func (t *transformer) eliminateLeftRecursion() []grammar.RawRule {
	names := make([]string, len(t.g.Nonterminals))
	for i, nt := range t.g.Nonterminals {
		names[i] = nt.Name
	}

	byLHS := make(map[string][]grammar.RawRule)
	order := make([]string, 0, len(t.g.Nonterminals))
	for _, nt := range t.g.Nonterminals {
		if _, ok := byLHS[nt.Name]; !ok {
			order = append(order, nt.Name)
		}
	}
	for _, p := range t.g.Productions {
		byLHS[p.LHS.Name] = append(byLHS[p.LHS.Name], rawRuleOf(p))
	}

	for i, ai := range names {
		current, ok := byLHS[ai]
		if !ok {
			continue
		}
		current = append([]grammar.RawRule(nil), current...)

		for j := 0; j < i; j++ {
			aj := names[j]
			ajProds, ok := byLHS[aj]
			if !ok {
				continue
			}
			var remaining, substituted []grammar.RawRule
			for _, prod := range current {
				if len(prod.RHS) > 0 && prod.RHS[0] == aj {
					gamma := prod.RHS[1:]
					for _, ajProd := range ajProds {
						newRHS := append(append([]string(nil), ajProd.RHS...), gamma...)
						substituted = append(substituted, grammar.RawRule{LHS: ai, RHS: newRHS})
					}
				} else {
					remaining = append(remaining, prod)
				}
			}
			if len(substituted) > 0 {
				current = append(remaining, substituted...)
				t.record(fmt.Sprintf("substituted %s in %s productions", aj, ai))
			}
		}

		current = t.eliminateDirectLeftRecursion(ai, current)
		byLHS[ai] = current
	}

	var out []grammar.RawRule
	for _, nt := range order {
		out = append(out, byLHS[nt]...)
	}
	return out
}

// eliminateDirectLeftRecursion rewrites A -> A a1 | ... | A am | b1 | ... | bn
// into A -> b1 A' | ... | bn A' and A' -> a1 A' | ... | am A' | ε. It
// returns productions unchanged if A carries no direct left recursion.
func (t *transformer) eliminateDirectLeftRecursion(nt string, prods []grammar.RawRule) []grammar.RawRule {
	var recursive, nonRecursive []grammar.RawRule
	for _, p := range prods {
		if len(p.RHS) > 0 && p.RHS[0] == nt {
			recursive = append(recursive, p)
		} else {
			nonRecursive = append(nonRecursive, p)
		}
	}
	if len(recursive) == 0 {
		return prods
	}
	if len(nonRecursive) == 0 {
		nonRecursive = []grammar.RawRule{{LHS: nt, RHS: nil}}
	}

	newNT := t.freshNonterminal(nt)
	var out []grammar.RawRule
	for _, p := range nonRecursive {
		out = append(out, grammar.RawRule{LHS: nt, RHS: append(append([]string(nil), p.RHS...), newNT)})
	}
	for _, p := range recursive {
		alpha := p.RHS[1:]
		out = append(out, grammar.RawRule{LHS: newNT, RHS: append(append([]string(nil), alpha...), newNT)})
	}
	out = append(out, grammar.RawRule{LHS: newNT, RHS: nil})

	t.record(fmt.Sprintf("eliminated direct left recursion in %s, introduced %s", nt, newNT))
	t.details[nt] = fmt.Sprintf("direct left recursion -> %s", newNT)
	return out
}

// applyLeftFactoring groups rules (in first-appearance LHS order) and
// factors out common prefixes within each group. Factoring a nonterminal
// can expose a new shared prefix one level down (A -> a b c | a b d | a e
// needs two rounds: first on A, then on the nonterminal that replaces the
// "b c | b d | e" remainder) — so every nonterminal introduced by one round is
// queued and factored again in its own right, never folded back into its
// parent's group.
func (t *transformer) applyLeftFactoring(rules []grammar.RawRule) []grammar.RawRule {
	order, byLHS := groupByLHS(rules)

	result := make(map[string][]grammar.RawRule)
	queue := append([]string(nil), order...)
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]

		factored, changed := t.factorOnce(nt, byLHS[nt])
		if !changed {
			result[nt] = byLHS[nt]
			continue
		}

		childOrder, byChild := groupByLHS(factored)
		result[nt] = byChild[nt]
		for _, child := range childOrder {
			if child == nt {
				continue
			}
			byLHS[child] = byChild[child]
			queue = append(queue, child)
			order = append(order, child)
		}
	}

	var out []grammar.RawRule
	for _, nt := range order {
		out = append(out, result[nt]...)
	}
	return out
}

// groupByLHS partitions rules by LHS, preserving first-appearance order.
func groupByLHS(rules []grammar.RawRule) ([]string, map[string][]grammar.RawRule) {
	var order []string
	byLHS := make(map[string][]grammar.RawRule)
	for _, r := range rules {
		if _, ok := byLHS[r.LHS]; !ok {
			order = append(order, r.LHS)
		}
		byLHS[r.LHS] = append(byLHS[r.LHS], r)
	}
	return order, byLHS
}

func (t *transformer) factorOnce(nt string, prods []grammar.RawRule) ([]grammar.RawRule, bool) {
	var prefixOrder []string
	groups := make(map[string][]int)
	for i, p := range prods {
		if len(p.RHS) == 0 {
			continue
		}
		prefix := p.RHS[0]
		if _, ok := groups[prefix]; !ok {
			prefixOrder = append(prefixOrder, prefix)
		}
		groups[prefix] = append(groups[prefix], i)
	}

	factoredIdx := make(map[int]bool)
	var out []grammar.RawRule
	changed := false
	for _, prefix := range prefixOrder {
		idxs := groups[prefix]
		if len(idxs) < 2 {
			continue
		}
		changed = true
		common := prods[idxs[0]].RHS
		for _, idx := range idxs[1:] {
			rhs := prods[idx].RHS
			k := 0
			for k < len(common) && k < len(rhs) && common[k] == rhs[k] {
				k++
			}
			common = common[:k]
		}
		newNT := t.freshNonterminal(nt)
		out = append(out, grammar.RawRule{LHS: nt, RHS: append(append([]string(nil), common...), newNT)})
		for _, idx := range idxs {
			suffix := prods[idx].RHS[len(common):]
			out = append(out, grammar.RawRule{LHS: newNT, RHS: append([]string(nil), suffix...)})
			factoredIdx[idx] = true
		}
		t.record(fmt.Sprintf("left factored %s with prefix %q, introduced %s", nt, strings.Join(common, " "), newNT))
	}
	if !changed {
		return prods, false
	}
	for i, p := range prods {
		if !factoredIdx[i] {
			out = append(out, p)
		}
	}
	return out, true
}

func (t *transformer) record(msg string) {
	t.applied = append(t.applied, msg)
}

func rawRuleOf(p grammar.Production) grammar.RawRule {
	rhs := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		rhs[i] = s.Name
	}
	return grammar.RawRule{LHS: p.LHS.Name, RHS: rhs}
}

// reorderStartFirst moves every rule whose LHS is start ahead of the rest,
// preserving relative order within each partition, so grammar.New infers
// the same start symbol the input grammar had.
func reorderStartFirst(rules []grammar.RawRule, start string) []grammar.RawRule {
	out := make([]grammar.RawRule, 0, len(rules))
	for _, r := range rules {
		if r.LHS == start {
			out = append(out, r)
		}
	}
	for _, r := range rules {
		if r.LHS != start {
			out = append(out, r)
		}
	}
	return out
}
