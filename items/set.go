// Package items implements LR(0) and LR(1) items and the closure/goto
// operations used to build the characteristic finite state machine (CFSM)
// for a grammar.
package items

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

type stringer interface {
	String() string
}

func itemComparator(a, b interface{}) int {
	return utils.StringComparator(a.(stringer).String(), b.(stringer).String())
}

// Set is an ordered, deduplicating collection of items (Item0 or Item1,
// never mixed within one Set). It mirrors the operations gorgo's CFSM
// construction performs on its iteratable item sets: Add, Copy, Union,
// Difference, Equals, Values, Size.
type Set struct {
	ts *treeset.Set
}

// NewSet returns an empty item set.
func NewSet() *Set {
	return &Set{ts: treeset.NewWith(itemComparator)}
}

// Add inserts an item, a no-op if already present.
func (s *Set) Add(it stringer) { s.ts.Add(it) }

// Contains reports whether it is already a member.
func (s *Set) Contains(it stringer) bool { return s.ts.Contains(it) }

// Values returns every member, in deterministic (string-key) order.
func (s *Set) Values() []interface{} { return s.ts.Values() }

// Size returns the number of members.
func (s *Set) Size() int { return s.ts.Size() }

// Copy returns an independent set with the same members.
func (s *Set) Copy() *Set {
	cp := NewSet()
	cp.ts.Add(s.ts.Values()...)
	return cp
}

// Union adds every member of other into s.
func (s *Set) Union(other *Set) {
	s.ts.Add(other.ts.Values()...)
}

// Difference returns the members of s not present in other.
func (s *Set) Difference(other *Set) *Set {
	diff := NewSet()
	for _, v := range s.ts.Values() {
		if !other.ts.Contains(v) {
			diff.ts.Add(v)
		}
	}
	return diff
}

// Equals reports whether s and other hold exactly the same members.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, v := range s.ts.Values() {
		if !other.ts.Contains(v) {
			return false
		}
	}
	return true
}
