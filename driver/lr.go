package driver

import (
	"fmt"

	"github.com/kjhall/parsekit/grammar"
	"github.com/kjhall/parsekit/internal/xerrors"
	"github.com/kjhall/parsekit/table"
)

// frame is one parse-stack entry: the CFSM state it represents, and (for
// every entry but the bottom sentinel) the tree node built for the symbol
// that caused the push.
type frame struct {
	state int
	node  *Node
}

// ParseLR drives any of the three shift-reduce tables (SLR(1), CLR(1),
// LALR(1)) over tokens, building a bottom-up parse tree as it goes: a
// reduce pops the RHS's already-built nodes off the stack and becomes the
// new interior node's Children, in left-to-right order. This is the same
// shape as gorgo's slr.Parser.Parse/reduce, generalized to work off any
// table.LRTable rather than one built specifically for SLR(1).
func ParseLR(tbl *table.LRTable, tokens []Token, opts Options) (*Result, error) {
	if tbl == nil || tbl.CFSM == nil || tbl.CFSM.S0 == nil {
		return nil, fmt.Errorf("driver: table not initialized")
	}
	ag := tbl.Grammar
	endSym, ok := ag.Symbol(grammar.EndOfInput.Name)
	if !ok {
		return nil, fmt.Errorf("driver: grammar has no end-of-input symbol")
	}

	stack := []frame{{state: tbl.CFSM.S0.ID}}
	pos := 0
	var steps []Step
	maxSteps := opts.maxSteps()

	lookahead := func() (grammar.Symbol, string, bool) {
		if pos < len(tokens) {
			sym, ok := ag.Symbol(tokens[pos].Terminal)
			return sym, tokens[pos].Text, ok
		}
		return endSym, "", true
	}

	stackSymbols := func() []string {
		out := make([]string, 0, len(stack))
		for _, f := range stack {
			if f.node != nil {
				out = append(out, f.node.Symbol)
			}
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

	for step := 0; ; step++ {
		if step >= maxSteps {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Remaining: remaining(),
				Detail: "step budget exceeded"})
			return &Result{Accepted: false, Trace: steps}, &xerrors.ParseError{Reason: "step budget exceeded"}
		}
		sym, text, ok := lookahead()
		if !ok {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(),
				Detail: fmt.Sprintf("unrecognized terminal %q", tokens[pos].Terminal)})
			return &Result{Accepted: false, Trace: steps},
				&xerrors.TokenError{Token: tokens[pos].Terminal, Reason: "not a terminal of this grammar"}
		}

		top := stack[len(stack)-1]
		action, ok := table.Resolve(tbl.Action.Get(top.state, sym.Value))
		if !ok {
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Lookahead: sym.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("no action for state %d on %q", top.state, sym.Name)})
			return &Result{Accepted: false, Trace: steps}, nil
		}

		switch action.Kind {
		case table.Shift:
			node := &Node{Symbol: sym.Name, Terminal: true, Text: text, ProdID: -1}
			stack = append(stack, frame{state: action.Target, node: node})
			steps = append(steps, Step{Number: step, Kind: StepShift, Stack: stackSymbols(), Lookahead: sym.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("shift %s, goto state %d", sym.Name, action.Target)})
			pos++

		case table.Accept:
			steps = append(steps, Step{Number: step, Kind: StepAccept, Stack: stackSymbols(), Lookahead: sym.Name, Remaining: remaining()})
			return &Result{Accepted: true, Trace: steps, Tree: top.node}, nil

		case table.Reduce:
			prod := ag.Rule(action.Target)
			n := len(prod.RHS)
			children := make([]*Node, n)
			for i := n - 1; i >= 0; i-- {
				children[i] = stack[len(stack)-1].node
				stack = stack[:len(stack)-1]
			}
			under := stack[len(stack)-1]
			gotoAction, ok := table.Resolve(tbl.GotoTable.Get(under.state, prod.LHS.Value))
			if !ok {
				steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Remaining: remaining(),
					Detail: fmt.Sprintf("no goto for state %d on %q after reducing by %s", under.state, prod.LHS.Name, prod)})
				return &Result{Accepted: false, Trace: steps}, nil
			}
			node := &Node{Symbol: prod.LHS.Name, ProdID: prod.ID, Children: children}
			stack = append(stack, frame{state: gotoAction.Target, node: node})
			steps = append(steps, Step{Number: step, Kind: StepReduce, Stack: stackSymbols(), Lookahead: sym.Name, Remaining: remaining(),
				ProdID: prod.ID, Detail: fmt.Sprintf("reduce by %s", prod)})

		default:
			steps = append(steps, Step{Number: step, Kind: StepError, Stack: stackSymbols(), Lookahead: sym.Name, Remaining: remaining(),
				Detail: fmt.Sprintf("unexpected action kind %v", action.Kind)})
			return &Result{Accepted: false, Trace: steps}, nil
		}
	}
}
