package util

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Stack is a LIFO history without duplicates. The zero value is ready to use.
type Stack[T comparable] struct {
	items []T
}

// Push appends item. If item is already on the stack, everything from it upwards is dropped first.
func (s *Stack[T]) Push(item T) {
	if _, idx, ok := lo.FindIndexOf(s.items, func(v T) bool { return v == item }); ok {
		s.items = s.items[:idx]
	}

	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() mo.Option[T] {
	if len(s.items) == 0 {
		return mo.None[T]()
	}

	last := len(s.items) - 1
	item := s.items[last]
	s.items = s.items[:last]
	return mo.Some(item)
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
