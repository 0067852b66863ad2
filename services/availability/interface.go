package availability

import (
	"context"

	"masarra/models"
)

// AvailabilityService normalizes upstream slot availability for one
// (service, vendor, date) into display-ready, comparable time slots.
type AvailabilityService interface {
	// DayAvailability returns the normalized slots for the given day.
	// Transport or decode failures yield an empty slice, never an error:
	// callers treat "no slots" and "upstream unreachable" identically so a
	// transient outage does not hard-block browsing.
	DayAvailability(ctx context.Context, serviceID, vendorID, date string) []models.TimeSlot
}
