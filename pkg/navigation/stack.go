package navigation

import (
	"github.com/readerapp/reader/pkg/route"
	"github.com/readerapp/reader/pkg/screens"
)

// Entry is one visited screen: the route it was reached by and the
// controller that serves it.
type Entry struct {
	Route  route.Route
	Screen screens.Screen
}

// Stack is the LIFO history that PopBackStack walks back through.
type Stack struct {
	entries []Entry
}

func NewStack() *Stack {
	return &Stack{
		entries: make([]Entry, 0),
	}
}

// Push adds a new entry to the stack.
func (s *Stack) Push(entry Entry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
