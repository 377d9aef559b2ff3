package dto

import "net/http"

// Error codes returned in the response envelope. Domain errors carry
// these codes directly; the handlers translate them to HTTP statuses.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeOrderCreateFailed = "ORDER_CREATE_FAILED"

	ErrCodeExternalAuth     = "EXTERNAL_AUTH"
	ErrCodeExternalAPI      = "EXTERNAL_API"
	ErrCodeExternalNotFound = "EXTERNAL_NOT_FOUND"
	ErrCodeMediaFetchFailed = "MEDIA_FETCH_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. External
// record misses surface as 404 so a stale catalog link behaves like a
// missing resource, while other upstream failures are gateway errors.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInsufficientStock: http.StatusBadRequest,
	ErrCodeOrderCreateFailed: http.StatusInternalServerError,

	ErrCodeExternalAuth:     http.StatusBadGateway,
	ErrCodeExternalAPI:      http.StatusBadGateway,
	ErrCodeExternalNotFound: http.StatusNotFound,
	ErrCodeMediaFetchFailed: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
