package driver

import (
	"fmt"

	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/internal/xerrors"
	"github.com/kjhall/parsekit/table"
)

// ll1frame is one predictive-stack entry: the symbol it stands for and the
// tree node it will fill in (a terminal fills in Text when matched; a
// nonterminal fills in Children and ProdID when expanded).
type ll1frame struct {
	sym  grammar.Symbol
	node *Node
}

// ParseLL1 drives a predictive (LL(1)) table top-down: a nonterminal on
// top of the stack is replaced by its RHS (predicted from the current
// lookahead), each RHS symbol getting its own placeholder child node wired
// into the parent immediately, before that child is itself matched or
// expanded — the same eager placeholder-child shape used by the RHS-push
// loop in original_source/parser/ll1_parser.py's parse(), translated from
// a bare symbol stack into a stack of (symbol, tree node) pairs so a tree
// falls out of the same traversal instead of a separate pass.
func ParseLL1(tbl *table.LL1Table, tokens []Token, opts Options) (*Result, error) {
	if tbl == nil || tbl.Grammar == nil {
		return nil, fmt.Errorf("driver: table not initialized")
	}
	g := tbl.Grammar
	endSym, ok := g.Symbol(grammar.EndOfInput.Name)
	if !ok {
		return nil, fmt.Errorf("driver: grammar has no end-of-input symbol")
	}

	root := &Node{Symbol: g.Start.Name}
	stack := []ll1frame{
		{sym: endSym},
		{sym: g.Start, node: root},
	}
	pos := 0
	var steps []Step
	maxSteps := opts.maxSteps()

	lookahead := func() (grammar.Symbol, string, bool) {
		if pos < len(tokens) {
			sym, ok := g.Symbol(tokens[pos].Terminal)
			return sym, tokens[pos].Text, ok
		}
		return endSym, "", true
	}

	stackSymbols := func() []string {
		out := make([]string, 0, len(stack))
		for _, f := range stack {
			out = append(out, f.sym.Name)
		}
		return out
	}

	remaining := func() []string {
		out := make([]string, 0, len(tokens)-pos+1)
		for i := pos; i < len(tokens); i++ {
			out = append(out, tokens[i].Terminal)
		}
		out = append(out, grammar.EndOfInput.Name)
		return out
	}

	for step := 0; len(stack) > 0; step++ {
		if step >= maxSteps {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Remaining: remaining(),
				Detail: "step budget exceeded"})
			return &Result{Accepted: false, Trace: steps}, &xerrors.ParseError{Reason: "step budget exceeded"}
		}
		la, text, ok := lookahead()
		if !ok {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(),
				Detail: fmt.Sprintf("unrecognized terminal %q", tokens[pos].Terminal)})
			return &Result{Accepted: false, Trace: steps},
				&xerrors.TokenError{Token: tokens[pos].Terminal, Reason: "not a terminal of this grammar"}
		}

		top := stack[len(stack)-1]

		if top.sym == endSym {
			if la == endSym {
				steps = append(steps, Step{Number: step, Kind: StepAccept, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining()})
				return &Result{Accepted: true, Trace: steps, Tree: root}, nil
			}
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("unexpected input %q after end of parse", la.Name)})
			return &Result{Accepted: false, Trace: steps}, nil
		}

		if top.sym.Kind == grammar.Terminal {
			if top.sym != la {
				steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining(),
					Detail: fmt.Sprintf("expected %q, got %q", top.sym.Name, la.Name)})
				return &Result{Accepted: false, Trace: steps}, nil
			}
			top.node.Terminal = true
			top.node.Text = text
			top.node.ProdID = -1
			stack = stack[:len(stack)-1]
			steps = append(steps, Step{Number: step, Kind: StepShift, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("match %s", top.sym.Name)})
			pos++
			continue
		}

		entries := tbl.Table.Get(top.sym.Value, la.Value)
		action, ok := table.Resolve(entries)
		if !ok {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("no entry for (%s, %s)", top.sym.Name, la.Name)})
			return &Result{Accepted: false, Trace: steps}, nil
		}
		prod := g.Rule(action.Target)
		stack = stack[:len(stack)-1]

		top.node.ProdID = prod.ID
		if !prod.IsEpsilon() {
			children := make([]*Node, len(prod.RHS))
			for i, sym := range prod.RHS {
				children[i] = &Node{Symbol: sym.Name}
			}
			top.node.Children = children
			for i := len(prod.RHS) - 1; i >= 0; i-- {
				stack = append(stack, ll1frame{sym: prod.RHS[i], node: children[i]})
			}
		}
		steps = append(steps, Step{Number: step, Kind: StepExpand, Stack: stackSymbols(), Lookahead: la.Name, Remaining: remaining(),
			ProdID: prod.ID, Detail: fmt.Sprintf("expand by %s", prod)})
	}

	steps = append(steps, Step{Number: len(steps), Kind: StepError, Detail: "stack emptied without reaching end of input"})
	return &Result{Accepted: false, Trace: steps}, nil
}
