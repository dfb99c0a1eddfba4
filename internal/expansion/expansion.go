// Package expansion tracks which search hits are shown in full.
package expansion

import "sort"

// Set is an immutable set of hit indices. The zero value is empty and ready
// to use. Toggle returns a new Set, so a view holding an older Set keeps
// seeing the membership it rendered with.
type Set struct {
	members map[int]struct{}
}

// Toggle returns a copy of s with the membership of index flipped.
func (s Set) Toggle(index int) Set {
	next := make(map[int]struct{}, len(s.members)+1)
	for k := range s.members {
		next[k] = struct{}{}
	}
	if _, ok := next[index]; ok {
		delete(next, index)
	} else {
		next[index] = struct{}{}
	}
	return Set{members: next}
}

// IsExpanded reports whether index is in the set.
func (s Set) IsExpanded(index int) bool {
	_, ok := s.members[index]
	return ok
}

// Len returns the number of expanded indices.
func (s Set) Len() int {
	return len(s.members)
}

// Indices returns the expanded indices in ascending order.
func (s Set) Indices() []int {
	out := make([]int, 0, len(s.members))
	for k := range s.members {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
