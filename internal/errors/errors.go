package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryInUse is returned when deleting a category that products still reference.
	ErrCategoryInUse = errors.New("category has products")
	// ErrHandleTaken is returned when a login handle is already registered.
	ErrHandleTaken = errors.New("username already in use")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidQuantity is returned when a cart quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidPrice is returned when a product price is negative or not a number.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidCredentials is returned when the handle or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
	// ErrForbidden is returned when a visitor may not change the catalog.
	ErrForbidden = errors.New("forbidden")
)

// QueryError wraps a storage failure with the operation that produced it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return "query " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err, or returns nil when err is nil.
func NewQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

// ValidationError reports rejected form input. Field names the offending input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// IsNotFound reports whether err means an entity is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsQuery reports whether err carries a storage failure.
func IsQuery(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// IsValidation reports whether err is a rejected input rather than a failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrHandleTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrCategoryInUse)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case IsValidation(err):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
