package store

import "fmt"

// ValidationError rejects bad input on create and title updates.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an id that does not exist in the store, either never
// assigned or already deleted.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %d", e.ID)
}
