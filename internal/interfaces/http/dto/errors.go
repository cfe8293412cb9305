package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes directly;
// the boundary only maps them to HTTP status.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
//
// ISOLATION_VIOLATION deliberately maps to 500, not 403: the violation is a
// server-side bug, and the response must not reveal that the requested id
// exists under another tenant. MIXED_CURRENCY maps to 422: the request was
// well-formed but the data cannot be aggregated into one number.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	"ALREADY_EXISTS":      http.StatusConflict,
	"UNAUTHENTICATED":     http.StatusUnauthorized,
	"TENANT_SUSPENDED":    http.StatusForbidden,
	"MIXED_CURRENCY":      http.StatusUnprocessableEntity,
	"ISOLATION_VIOLATION": http.StatusInternalServerError,
	"STORAGE_ERROR":       http.StatusInternalServerError,

	"INVALID_TENANT":        http.StatusBadRequest,
	"INVALID_TENANT_NAME":   http.StatusBadRequest,
	"INVALID_PROPERTY":      http.StatusBadRequest,
	"INVALID_PROPERTY_NAME": http.StatusBadRequest,
	"INVALID_TIMEZONE":      http.StatusBadRequest,
	"INVALID_DATES":         http.StatusBadRequest,
	"INVALID_AMOUNT":        http.StatusBadRequest,
	"INVALID_PERIOD":        http.StatusBadRequest,
	"INVALID_CACHE_KEY":     http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500 so nothing new leaks by accident.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
