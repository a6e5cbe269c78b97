// Package compare builds all four parsing-table flavors for one grammar
// concurrently and summarizes them side by side, so a caller can see at a
// glance which disciplines the grammar is suitable for and which one a
// configurable Policy would pick.
package compare

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/table"
	"github.com/kjhall/parsekit/transform"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.compare") }

// Flavor names one of the four parsing disciplines this package builds.
type Flavor string

const (
	LL1  Flavor = "LL(1)"
	SLR  Flavor = "SLR(1)"
	CLR  Flavor = "CLR(1)"
	LALR Flavor = "LALR(1)"
)

// Summary is the size/conflict snapshot of one flavor's table.
type Summary struct {
	Flavor        Flavor
	ConflictFree  bool
	ConflictCount int
	States        int // 0 for LL(1), which has no automaton
	TableEntries  int
}

func (s Summary) String() string {
	status := "has conflicts"
	if s.ConflictFree {
		status = "conflict-free"
	}
	if s.States > 0 {
		return fmt.Sprintf("%s: %s (%d states, %d table entries, %d conflicts)",
			s.Flavor, status, s.States, s.TableEntries, s.ConflictCount)
	}
	return fmt.Sprintf("%s: %s (%d table entries, %d conflicts)", s.Flavor, status, s.TableEntries, s.ConflictCount)
}

// Policy orders flavor preference: CompareAll walks Order and recommends the
// first flavor whose table came back conflict-free.
type Policy struct {
	Order []Flavor
}

// DefaultPolicy prefers LALR(1) first (broadest conflict-free coverage for
// the table size of a deterministic bottom-up parser), then SLR(1) (an
// automaton of the same size as LALR(1)'s, reducing on FOLLOW sets instead
// of item lookaheads), then CLR(1) (always conflict-free if
// any LR(k<=1) discipline is, at the cost of the largest automaton), and
// LL(1) last (simplest driver, but the narrowest grammar class and the only
// one of the four that requires rewriting the grammar to reach).
func DefaultPolicy() Policy {
	return Policy{Order: []Flavor{LALR, SLR, CLR, LL1}}
}

// Report is the result of comparing every flavor for one grammar.
type Report struct {
	Grammar         *grammar.Grammar
	TransformResult *transform.Result // nil only if transform.ForLL1 failed; Applied is empty when nothing changed
	Summaries       map[Flavor]Summary
	LRTables        map[Flavor]*table.LRTable
	LL1Table        *table.LL1Table
	Recommended     Flavor
	HasRecommended  bool
	Recommendation  string
}

// CompareAll builds SLR(1), CLR(1), and LALR(1) from g directly, and LL(1)
// from g transformed via transform.ForLL1 (left recursion eliminated, then
// left-factored) — the same split the original grammar/transformed grammar
// treatment in the original_source comparator makes, since LR tables
// tolerate left recursion natively while the predictive table does not.
// All four builds run concurrently; CompareAll blocks until every one
// completes.
func CompareAll(g *grammar.Grammar, policy Policy) *Report {
	if len(policy.Order) == 0 {
		policy = DefaultPolicy()
	}

	var (
		wg                       sync.WaitGroup
		slrTbl, clrTbl, lalrTbl  *table.LRTable
		ll1Tbl                   *table.LL1Table
		transformResult          *transform.Result
	)

	wg.Add(4)
	go func() { defer wg.Done(); slrTbl = table.BuildSLR1(g) }()
	go func() { defer wg.Done(); clrTbl = table.BuildCLR1(g) }()
	go func() { defer wg.Done(); lalrTbl = table.BuildLALR1(g) }()
	go func() {
		defer wg.Done()
		res, err := transform.ForLL1(g)
		if err != nil {
			tracer().Errorf("compare: transform.ForLL1 failed: %v", err)
			ll1Tbl = table.BuildLL1(g)
			return
		}
		transformResult = res
		ll1Tbl = table.BuildLL1(res.Transformed)
	}()
	wg.Wait()

	summaries := map[Flavor]Summary{
		SLR:  lrSummary(SLR, slrTbl),
		CLR:  lrSummary(CLR, clrTbl),
		LALR: lrSummary(LALR, lalrTbl),
		LL1:  ll1Summary(ll1Tbl),
	}

	lrTables := map[Flavor]*table.LRTable{SLR: slrTbl, CLR: clrTbl, LALR: lalrTbl}

	report := &Report{
		Grammar:         g,
		TransformResult: transformResult,
		Summaries:       summaries,
		LRTables:        lrTables,
		LL1Table:        ll1Tbl,
	}
	report.Recommended, report.HasRecommended = recommend(summaries, policy)
	report.Recommendation = explain(report)

	tracer().Debugf("compared 4 flavors, recommended=%v (found=%v)", report.Recommended, report.HasRecommended)
	return report
}

func lrSummary(f Flavor, t *table.LRTable) Summary {
	return Summary{
		Flavor:        f,
		ConflictFree:  !t.HasConflicts(),
		ConflictCount: len(t.Conflicts),
		States:        len(t.CFSM.States()),
		TableEntries:  t.Action.ValueCount() + t.GotoTable.ValueCount(),
	}
}

func ll1Summary(t *table.LL1Table) Summary {
	return Summary{
		Flavor:        LL1,
		ConflictFree:  t.IsLL1(),
		ConflictCount: len(t.Conflicts),
		TableEntries:  t.Table.ValueCount(),
	}
}

func recommend(summaries map[Flavor]Summary, policy Policy) (Flavor, bool) {
	for _, f := range policy.Order {
		if s, ok := summaries[f]; ok && s.ConflictFree {
			return f, true
		}
	}
	return "", false
}

func explain(r *Report) string {
	if !r.HasRecommended {
		return "no flavor is conflict-free; the grammar needs rewriting to remove its ambiguity"
	}
	return fmt.Sprintf("recommend %s: %s", r.Recommended, r.Summaries[r.Recommended])
}
