package shared

import "fmt"

// DomainError represents a domain-level error. Entity and Field identify
// the offending row and column for integrity violations; they are empty
// for errors that are not tied to a single field.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Entity != "" && e.Field != "" {
		return fmt.Sprintf("%s (%s.%s)", e.Message, e.Entity, e.Field)
	}
	return e.Message
}

// Is matches domain errors by code so that errors.Is works for
// per-instance errors carrying entity/field context.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewMissingReference reports a foreign key pointing at a nonexistent row
func NewMissingReference(entity, field string) *DomainError {
	return &DomainError{
		Code:    "MISSING_REFERENCE",
		Message: "Referenced row does not exist",
		Entity:  entity,
		Field:   field,
	}
}

// NewReferentialConflict reports a restrict-delete violation: the row is
// still referenced by child rows that do not cascade.
func NewReferentialConflict(entity, field string) *DomainError {
	return &DomainError{
		Code:    "REFERENTIAL_CONFLICT",
		Message: "Row is still referenced by dependent rows",
		Entity:  entity,
		Field:   field,
	}
}

// NewDomainRange reports a field value outside its allowed domain
func NewDomainRange(entity, field, message string) *DomainError {
	return &DomainError{
		Code:    "DOMAIN_RANGE",
		Message: message,
		Entity:  entity,
		Field:   field,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrStaleWrite          = NewDomainError("STALE_WRITE", "Resource was modified by another process")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrTimeout             = NewDomainError("TIMEOUT", "Operation exceeded its time budget")
	ErrInvalidOperation    = NewDomainError("INVALID_OPERATION", "Malformed business operation input")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAlreadyCancelled    = NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	ErrMissingReference    = NewDomainError("MISSING_REFERENCE", "Referenced row does not exist")
	ErrReferentialConflict = NewDomainError("REFERENTIAL_CONFLICT", "Row is still referenced by dependent rows")
	ErrDomainRange         = NewDomainError("DOMAIN_RANGE", "Field value outside allowed domain")
)
