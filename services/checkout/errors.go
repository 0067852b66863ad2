package checkout

import "fmt"

// AttemptError reports a checkout attempt rejected before submission.
type AttemptError struct {
	Code    string
	Message string
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewEmptyCartError() error {
	return &AttemptError{
		Code:    "emptyCart",
		Message: "the cart has no lines to check out",
	}
}

func NewDuplicateAttemptError(attemptID string) error {
	return &AttemptError{
		Code:    "duplicateAttempt",
		Message: fmt.Sprintf("checkout attempt %s was already submitted", attemptID),
	}
}

func NewNotAuthenticatedError() error {
	return &AttemptError{
		Code:    "notAuthenticated",
		Message: "checkout requires an authenticated user",
	}
}
