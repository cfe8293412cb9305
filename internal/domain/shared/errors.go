package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")

	// ErrIsolationViolation signals that a statement was about to run against
	// tenant-partitioned data without a tenant predicate. Fatal for the request,
	// logged at error level, never retried.
	ErrIsolationViolation = NewDomainError("ISOLATION_VIOLATION", "Tenant isolation invariant violated")

	// ErrMixedCurrency signals that an aggregation spans more than one currency.
	// The ambiguity is surfaced, never silently resolved.
	ErrMixedCurrency = NewDomainError("MIXED_CURRENCY", "Reservations span more than one currency")

	// ErrStorage wraps storage backend failures. Surfaced to clients as a
	// generic failure so nothing about other tenants' data leaks.
	ErrStorage = NewDomainError("STORAGE_ERROR", "Storage backend failure")
)
