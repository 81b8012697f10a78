package service

import "fmt"

// ValidationError reports a create request missing required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// NotFoundError reports an unknown recipe id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipe %q not found", e.ID)
}
