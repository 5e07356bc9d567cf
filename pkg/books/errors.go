package books

import (
	"fmt"
)

// PersistenceError is returned when the book store couldn't complete a write
// or read. Nothing retries it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s book: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
