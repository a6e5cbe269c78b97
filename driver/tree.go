// Package driver runs a built parsing table (LL(1) predictive, or any of the
// SLR(1)/CLR(1)/LALR(1) shift-reduce tables) over a token stream, producing a
// step-by-step trace and a parse tree. Both drivers share the same Token and
// Node shapes so callers can compare flavors over identical input.
package driver

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("parsekit.driver") }

// Token is one unit of input: Terminal names a grammar terminal by its
// symbol name, Text carries the matched lexeme (often equal to Terminal for
// grammars without a separate scanner, e.g. "id" tokens that also stand for
// themselves).
type Token struct {
	Terminal string
	Text     string
}

// Node is one parse-tree node: a terminal leaf (Text set, no Children) or a
// nonterminal interior node produced by one production (ProdID set,
// Children in left-to-right RHS order).
type Node struct {
	Symbol   string
	Terminal bool
	Text     string
	ProdID   int // production used to produce this node; -1 for terminal leaves
	Children []*Node
}

// Dump renders the tree as an indented outline, for trace output.
func (n *Node) Dump(indent int) string {
	var b strings.Builder
	n.dump(&b, indent)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if n.Terminal {
		b.WriteString(n.Symbol)
		if n.Text != "" && n.Text != n.Symbol {
			b.WriteString(" (")
			b.WriteString(n.Text)
			b.WriteString(")")
		}
		b.WriteByte('\n')
		return
	}
	b.WriteString(n.Symbol)
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.dump(b, indent+1)
	}
}

// Options bounds a drive, guarding against a malformed table or an input
// that would otherwise loop forever (e.g. a cyclic epsilon-only grammar).
type Options struct {
	MaxSteps int // 0 means DefaultMaxSteps
}

// DefaultMaxSteps is used when Options.MaxSteps is left at zero.
const DefaultMaxSteps = 100000

func (o Options) maxSteps() int {
	if o.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return o.MaxSteps
}

// StepKind classifies one entry of a Trace.
type StepKind int

const (
	StepShift StepKind = iota
	StepReduce
	StepAccept
	StepExpand // LL(1) only: a nonterminal was expanded by a production
	StepError
)

func (k StepKind) String() string {
	switch k {
	case StepShift:
		return "shift"
	case StepReduce:
		return "reduce"
	case StepAccept:
		return "accept"
	case StepExpand:
		return "expand"
	case StepError:
		return "error"
	}
	return "?"
}

// Step is one row of a human-readable parse trace: stack snapshot, remaining
// input snapshot, and the action taken, plus an optional semantic note.
type Step struct {
	Number    int
	Kind      StepKind
	Stack     []string // symbol names, bottom to top, at the time of this step
	Lookahead string
	Remaining []string // terminal names still unconsumed, lookahead first
	ProdID    int       // meaningful for StepReduce/StepExpand
	Detail    string
}

// Result is what a drive produces: whether the input was accepted, the full
// step trace, and (on acceptance) the parse tree.
type Result struct {
	Accepted bool
	Trace    []Step
	Tree     *Node
}
