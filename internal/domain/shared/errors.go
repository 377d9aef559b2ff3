package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so
// errors.Is matches a detailed error against its sentinel.
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

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrOrderCreation    = NewDomainError("ORDER_CREATE_FAILED", "Order could not be written to the ledger")
	ErrExternalAuth     = NewDomainError("EXTERNAL_AUTH", "External service authentication failed")
	ErrExternalAPI      = NewDomainError("EXTERNAL_API", "External service request failed")
	ErrExternalNotFound = NewDomainError("EXTERNAL_NOT_FOUND", "External record not found")
	ErrMediaFetch       = NewDomainError("MEDIA_FETCH_FAILED", "Media could not be fetched from the external service")
)

// InsufficientStockError is returned when an order requests more units than
// the live product row currently holds. It carries enough detail for the
// caller to report which product failed and by how much.
type InsufficientStockError struct {
	Product   string
	Current   int64
	Requested int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested", e.Product, e.Current, e.Requested)
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(product string, current, requested int64) *InsufficientStockError {
	return &InsufficientStockError{
		Product:   product,
		Current:   current,
		Requested: requested,
	}
}
