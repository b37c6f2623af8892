package model

// ErrorKind classifies domain errors so the transport layer can map them to
// status codes without string matching.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindAuth
	KindConflict
	KindDependency
)

// DomainError is a business-rule failure with a user-visible message.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a validation failure.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates a not-found failure.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// Common domain errors
var (
	ErrProductNotFound      = NewNotFoundError("product not found")
	ErrOrderNotFound        = NewNotFoundError("order not found")
	ErrNotificationNotFound = NewNotFoundError("notification not found")
	ErrCartItemNotFound     = NewNotFoundError("item not found in cart")
	ErrEmptyCart            = NewValidationError("cart is empty or items missing for guest checkout")
	ErrMissingStatus        = NewValidationError("new status required")
	ErrUserExists           = &DomainError{Kind: KindConflict, Message: "user already exists with this email"}
	ErrAdminExists          = &DomainError{Kind: KindConflict, Message: "only one admin account is allowed"}
	ErrInvalidCredentials   = &DomainError{Kind: KindAuth, Message: "invalid email or password"}
	ErrUnauthorized         = &DomainError{Kind: KindAuth, Message: "authentication required"}
)
