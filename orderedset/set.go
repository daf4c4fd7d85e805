package orderedset

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"
)

// ErrDuplicate is returned by SetAt when the value already sits at another position.
var ErrDuplicate = errors.New("value is already present in the set")

// Set is an insertion-ordered collection of unique elements.
// Add preserves first-seen order; Discard maintains relative order.
//
// Elements are compared with ==, so pointers (and interfaces holding pointers)
// are members by identity, not by content. A nil *Set reads as empty.
type Set[T comparable] struct {
	index map[T]struct{}
	items []T
}

// New creates a set holding vals in order, dropping repeated values.
func New[T comparable](vals ...T) *Set[T] {
	s := &Set[T]{
		index: make(map[T]struct{}, len(vals)),
		items: make([]T, 0, len(vals)),
	}
	for _, v := range vals {
		s.Add(v)
	}

	return s
}

func (s *Set[T]) init() {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
}

// Add appends v unless it is already present. It reports whether v was added.
func (s *Set[T]) Add(v T) bool {
	s.init()

	if _, ok := s.index[v]; ok {
		return false
	}

	s.index[v] = struct{}{}
	s.items = append(s.items, v)

	return true
}

// Append is Add under its sequence name.
func (s *Set[T]) Append(v T) bool {
	return s.Add(v)
}

// Insert places v at position i. Negative positions count from the end and
// out of range positions are clamped, like list insertion.
// Nothing happens when v is already present.
func (s *Set[T]) Insert(i int, v T) bool {
	s.init()

	if _, ok := s.index[v]; ok {
		return false
	}

	n := len(s.items)
	if i < 0 {
		i += n
	}

	i = max(0, min(i, n))

	s.items = append(s.items, v)
	copy(s.items[i+1:], s.items[i:n])
	s.items[i] = v
	s.index[v] = struct{}{}

	return true
}

// Extend adds every value of seq in order.
func (s *Set[T]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		s.Add(v)
	}
}

// ExtendSet adds every member of other in order.
func (s *Set[T]) ExtendSet(other *Set[T]) {
	if other == nil || other == s {
		return
	}

	for _, v := range other.items {
		s.Add(v)
	}
}

// Discard removes v if present. It reports whether v was removed.
func (s *Set[T]) Discard(v T) bool {
	if !s.Has(v) {
		return false
	}

	delete(s.index, v)

	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	return true
}

// Has reports whether v is a member.
func (s *Set[T]) Has(v T) bool {
	if s == nil {
		return false
	}

	_, ok := s.index[v]
	return ok
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// IndexOf returns the position of v, or -1.
func (s *Set[T]) IndexOf(v T) int {
	if !s.Has(v) {
		return -1
	}

	for i, item := range s.items {
		if item == v {
			return i
		}
	}

	return -1
}

// At returns the member at position i. Negative positions count from the end.
// It panics when i is out of range, like slice indexing.
func (s *Set[T]) At(i int) T {
	return s.items[s.position(i)]
}

// SetAt replaces the member at position i with v.
// Replacing a member with itself is a no-op; v present elsewhere yields ErrDuplicate.
func (s *Set[T]) SetAt(i int, v T) error {
	p := s.position(i)

	old := s.items[p]
	if old == v {
		return nil
	}

	if s.Has(v) {
		return errors.Wrapf(ErrDuplicate, "set position %d", i)
	}

	delete(s.index, old)
	s.index[v] = struct{}{}
	s.items[p] = v

	return nil
}

// All iterates members front to back.
func (s *Set[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s == nil {
			return
		}

		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward iterates members back to front, yielding their positions.
func (s *Set[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s == nil {
			return
		}

		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}

// Values returns a copy of the members in order, nil for a nil set.
func (s *Set[T]) Values() []T {
	if s == nil {
		return nil
	}

	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

// Clone returns an independent copy of the set.
func (s *Set[T]) Clone() *Set[T] {
	if s == nil {
		return New[T]()
	}

	return New(s.items...)
}

// String formats the members in order.
func (s *Set[T]) String() string {
	if s == nil {
		return "[]"
	}

	return fmt.Sprintf("%v", s.items)
}

func (s *Set[T]) position(i int) int {
	n := len(s.items)

	p := i
	if p < 0 {
		p += n
	}

	if p < 0 || p >= n {
		panic(fmt.Sprintf("orderedset: index %d out of range [0:%d]", i, n))
	}

	return p
}
