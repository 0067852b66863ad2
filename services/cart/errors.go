package cart

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by mutating calls without a user id; the
// cart requires authentication.
var ErrNotAuthenticated = errors.New("cart requires an authenticated user")

// PreconditionError reports a cart line rejected before persistence.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("invalid cart line: %s (%s)", e.Message, e.Field)
}

func newPreconditionError(field, msg string) error {
	return &PreconditionError{Field: field, Message: msg}
}
