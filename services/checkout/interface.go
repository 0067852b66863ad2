package checkout

import (
	"context"

	"masarra/models"
)

// CheckoutService reconciles the cart against fresh availability and turns a
// reconciled cart into booking-creation requests.
type CheckoutService interface {
	// Reconcile re-validates every cart line's chosen slot. Any flagged line
	// blocks checkout entirely; there is no partial checkout.
	Reconcile(ctx context.Context, userID string) (models.ReconcileResult, error)
	// Checkout runs one attempt end to end: reconcile, partition into
	// booking requests, submit each independently, and clear the cart only
	// when every request succeeded. There is no automatic retry; a failed
	// attempt leaves the cart intact and must be re-triggered by the user.
	Checkout(ctx context.Context, userID, token string, req models.CheckoutRequest) (models.CheckoutResult, error)
}

// IdempotencyGuard reserves checkout attempt ids so a replayed attempt is
// refused locally before any upstream call.
type IdempotencyGuard interface {
	// Reserve returns false when the attempt id was already used.
	Reserve(ctx context.Context, attemptID string) (bool, error)
}
