// Package namespace models wiki namespace ids and ordered sets of them.
package namespace

import (
	"fmt"
	"strconv"
)

// Main is the id of the main (article) namespace.
const Main = 0

// Set is an ordered set of unique namespace ids.
// Iteration order is insertion order; duplicates are dropped on Add.
type Set struct {
	ids  []int
	seen map[int]struct{}
}

// NewSet builds a Set from ids, keeping first occurrences.
// Negative ids are rejected.
func NewSet(ids ...int) (Set, error) {
	var s Set
	for _, id := range ids {
		if id < 0 {
			return Set{}, fmt.Errorf("namespace id must be non-negative, got %d", id)
		}
		s.add(id)
	}
	return s, nil
}

// MustSet is NewSet that panics on invalid ids. Intended for constants and tests.
func MustSet(ids ...int) Set {
	s, err := NewSet(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) add(id int) {
	if s.seen == nil {
		s.seen = make(map[int]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// IDs returns a copy of the ids in iteration order.
func (s Set) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IsEmpty reports whether the set has no ids.
func (s Set) IsEmpty() bool { return len(s.ids) == 0 }

// Contains reports whether id is in the set.
func (s Set) Contains(id int) bool {
	_, ok := s.seen[id]
	return ok
}

// ParamName returns the request parameter that selects namespace id, e.g. "ns14".
func ParamName(id int) string {
	return "ns" + strconv.Itoa(id)
}
