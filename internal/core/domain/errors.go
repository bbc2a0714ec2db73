package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("user role not valid")
	ErrSelfUpdate         = errors.New("updating own data is not allowed")
	ErrSelfDelete         = errors.New("can't delete own data")
	ErrEmptyOrder         = errors.New("no items in order")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a message that is safe to return to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError wraps msg as a *ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsNotFound reports whether err is one of the entity not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
