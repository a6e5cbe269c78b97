// Package table builds ACTION/GOTO parsing tables for the three LR
// disciplines (SLR(1), CLR(1), LALR(1)) from a grammar's CFSM, and the
// predictive parsing table for LL(1) from FIRST/FOLLOW sets. Every builder
// detects and records conflicts rather than rejecting the grammar — the
// resulting table is always usable by a driver, per a documented tie-break.
package table

import (
	"fmt"
)

// Kind distinguishes the four action forms an ACTION-table cell can hold.
type Kind int

const (
	Shift Kind = iota
	Reduce
	Accept
	Goto
)

func (k Kind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	case Goto:
		return "goto"
	}
	return "?"
}

// Action is one entry of a parsing table cell: a shift or goto to another
// state, a reduce by a given production, or accept.
type Action struct {
	Kind   Kind
	Target int // state id for Shift/Goto, production id for Reduce, unused for Accept
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Goto:
		return fmt.Sprintf("g%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Target)
	case Accept:
		return "acc"
	}
	return "?"
}

type cellKey struct{ row, col int }

// Sparse is a sparse triplet-encoded matrix of Action values, each cell
// holding zero or more entries — more than one means a shift/reduce or
// reduce/reduce conflict (or, for LL(1), more than one production
// competing for the same (nonterminal, terminal) cell). This generalizes
// gorgo's lr/sparse.IntMatrix (one or two int32 values per cell) to an
// arbitrary-length, richly-typed cell, since an LL(1) table cell is not
// bounded at two competing productions the way an LR cell's shift/reduce
// pairing is.
type Sparse struct {
	rows, cols int
	cells      map[cellKey][]Action
}

// NewSparse allocates an empty rows x cols table.
func NewSparse(rows, cols int) *Sparse {
	return &Sparse{rows: rows, cols: cols, cells: make(map[cellKey][]Action)}
}

// Rows reports the row count the table was sized for.
func (s *Sparse) Rows() int { return s.rows }

// Cols reports the column count the table was sized for.
func (s *Sparse) Cols() int { return s.cols }

// Add appends an action to a cell. A cell with more than one entry after
// all actions are added is a conflict.
func (s *Sparse) Add(row, col int, a Action) {
	key := cellKey{row, col}
	s.cells[key] = append(s.cells[key], a)
}

// Get returns every action recorded at (row, col), in insertion order.
func (s *Sparse) Get(row, col int) []Action {
	return s.cells[cellKey{row, col}]
}

// ValueCount returns the number of non-empty cells.
func (s *Sparse) ValueCount() int { return len(s.cells) }

// Resolve applies the deterministic conflict tie-break to a cell's entries
// and returns the single effective action a driver should take: a Shift (or
// Accept) always wins over any Reduce; among multiple Reduce entries, the
// lowest production id wins. Returns ok=false for an empty cell.
func Resolve(actions []Action) (Action, bool) {
	if len(actions) == 0 {
		return Action{}, false
	}
	best := actions[0]
	for _, a := range actions[1:] {
		best = tieBreak(best, a)
	}
	return best, true
}

func tieBreak(a, b Action) Action {
	rank := func(a Action) int {
		switch a.Kind {
		case Shift, Accept, Goto:
			return 0
		default:
			return 1
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return a
		}
		return b
	}
	if a.Kind == Reduce && b.Kind == Reduce {
		if a.Target <= b.Target {
			return a
		}
		return b
	}
	return a // both shift/accept/goto: keep the first seen
}

// Conflict records one ACTION-table cell that received more than one
// action, together with the resolution the table uses.
type Conflict struct {
	StateID    int
	Symbol     string
	Actions    []Action
	Resolution Action
}
