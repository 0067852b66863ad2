package gateway

import (
	"context"

	"masarra/models"
)

// Client talks to the upstream Masarra booking backend.
type Client interface {
	// AvailableTimeslots fetches the raw slot list for one (service, vendor, date).
	AvailableTimeslots(ctx context.Context, serviceID, vendorID, date string) (models.AvailableTimeslotsResponse, error)
	// CreateBooking submits one booking-creation request. The idempotency key
	// is forwarded so a duplicate retry cannot create a duplicate booking.
	CreateBooking(ctx context.Context, token string, req models.BookingRequest, idempotencyKey string) (*models.UpstreamBooking, error)
}
