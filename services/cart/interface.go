package cart

import (
	"context"
	"time"

	"masarra/models"
)

// CartService owns the per-user cart: durable CRUD over cart lines with an
// in-memory cache, and change notifications on every mutation.
type CartService interface {
	// Get returns the user's cart lines. An empty user id denotes an
	// anonymous caller, whose cart is defined to be empty and non-persisted.
	Get(ctx context.Context, userID string) ([]models.CartLine, error)
	// Add appends a line, or merges quantities when an existing line matches
	// on (service, date, slot). Returns the stored line.
	Add(ctx context.Context, userID string, line models.CartLine) (models.CartLine, error)
	// Remove deletes the line with the given id. Removing an absent line is
	// a no-op, not an error.
	Remove(ctx context.Context, userID, lineID string) error
	// UpdateQuantity sets a line's quantity, recomputing its total price.
	// A quantity of zero or less removes the line.
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	// Clear erases the user's persisted cart and cache entry.
	Clear(ctx context.Context, userID string) error
	// Subscribe registers a change listener and returns its unsubscribe func.
	Subscribe(fn func(userID string)) func()
	// SweepPast removes lines whose selected date is strictly before now
	// (day granularity) across all active carts.
	SweepPast(ctx context.Context, now time.Time) error
}

// Persister is the durable storage behind the cart service.
type Persister interface {
	Load(ctx context.Context, userID string) ([]models.CartLine, error)
	Save(ctx context.Context, userID string, lines []models.CartLine) error
	Delete(ctx context.Context, userID string) error
	// ActiveUsers lists user ids with a persisted cart, for the sweeper.
	ActiveUsers(ctx context.Context) ([]string, error)
}
