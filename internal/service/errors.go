package service

import "fmt"

// NotFoundError reports a taxonomy reference that resolved to nothing,
// naming the taxonomy type and the identifier the client sent.
type NotFoundError struct {
	Type       string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Type, e.Identifier)
}

// InvalidAssociationError reports a source that is not attached to the
// requested medium.
type InvalidAssociationError struct {
	Medium string
	Source string
}

func (e *InvalidAssociationError) Error() string {
	return fmt.Sprintf("source %q is not attached to medium %q", e.Source, e.Medium)
}

// ValidationError reports malformed input rejected before any store
// access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
