package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/kjhall/parsekit/compare"
	"github.com/kjhall/parsekit/driver"
	"github.com/kjhall/parsekit/table"
)

func renderLRTable(t *table.LRTable) {
	rows := pterm.TableData{{"state", "symbol", "action"}}
	for _, st := range t.CFSM.States() {
		for _, term := range t.Grammar.Terminals {
			for _, a := range t.Action.Get(st.ID, term.Value) {
				rows = append(rows, []string{fmt.Sprint(st.ID), term.Name, a.String()})
			}
		}
		for _, nt := range t.Grammar.Nonterminals {
			for _, a := range t.GotoTable.Get(st.ID, nt.Value) {
				rows = append(rows, []string{fmt.Sprint(st.ID), nt.Name, a.String()})
			}
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	if len(t.Conflicts) > 0 {
		pterm.Warning.Printf("%d conflict(s)\n", len(t.Conflicts))
		for _, c := range t.Conflicts {
			pterm.Warning.Printf("  state %d, %q: %v (resolved to %v)\n", c.StateID, c.Symbol, c.Actions, c.Resolution)
		}
	}
}

func renderLL1Table(t *table.LL1Table) {
	rows := pterm.TableData{{"nonterminal", "terminal", "production"}}
	for _, nt := range t.Grammar.Nonterminals {
		for _, term := range t.Grammar.Terminals {
			for _, a := range t.Table.Get(nt.Value, term.Value) {
				rows = append(rows, []string{nt.Name, term.Name, t.Grammar.Rule(a.Target).String()})
			}
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	if len(t.Conflicts) > 0 {
		pterm.Warning.Printf("%d conflict(s)\n", len(t.Conflicts))
		for _, c := range t.Conflicts {
			pterm.Warning.Printf("  %s / %q: %v\n", t.Grammar.Nonterminals[c.StateID].Name, c.Symbol, c.Actions)
		}
	}
}

func renderCompareTable(r *compare.Report) {
	rows := pterm.TableData{{"flavor", "conflict-free", "conflicts", "states", "table entries"}}
	for _, f := range []compare.Flavor{compare.LL1, compare.SLR, compare.CLR, compare.LALR} {
		s := r.Summaries[f]
		rows = append(rows, []string{
			string(f),
			fmt.Sprint(s.ConflictFree),
			fmt.Sprint(s.ConflictCount),
			fmt.Sprint(s.States),
			fmt.Sprint(s.TableEntries),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func renderTrace(res *driver.Result) {
	rows := pterm.TableData{{"#", "kind", "stack", "lookahead", "remaining", "detail"}}
	for _, step := range res.Trace {
		rows = append(rows, []string{
			fmt.Sprint(step.Number), step.Kind.String(),
			strings.Join(step.Stack, " "), step.Lookahead, strings.Join(step.Remaining, " "),
			step.Detail,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func renderTree(root *driver.Node) {
	if root == nil {
		return
	}
	pterm.DefaultTree.WithRoot(nodeToTreeNode(root)).Render()
}

func nodeToTreeNode(n *driver.Node) pterm.TreeNode {
	label := n.Symbol
	if n.Terminal && n.Text != "" && n.Text != n.Symbol {
		label = fmt.Sprintf("%s (%s)", n.Symbol, n.Text)
	}
	tn := pterm.TreeNode{Text: label}
	for _, c := range n.Children {
		tn.Children = append(tn.Children, nodeToTreeNode(c))
	}
	return tn
}
