package grammar

import "strings"

// Production is an immutable record (LHS, RHS, stable id). An empty RHS
// denotes an ε-production.
type Production struct {
	ID  int
	LHS Symbol
	RHS []Symbol
}

// IsEpsilon reports whether this production's RHS is empty.
func (p Production) IsEpsilon() bool { return len(p.RHS) == 0 }

func (p Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" -> ")
	if p.IsEpsilon() {
		b.WriteString("ε")
		return b.String()
	}
	for i, s := range p.RHS {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Name)
	}
	return b.String()
}

// Copy returns a shallow copy of p with its own RHS backing array, so
// callers that rewrite a production's id or RHS in place never alias the
// original.
func (p Production) Copy() Production {
	rhs := make([]Symbol, len(p.RHS))
	copy(rhs, p.RHS)
	return Production{ID: p.ID, LHS: p.LHS, RHS: rhs}
}
