package models

import (
	"fmt"
	"time"
)

// SlotKey is the canonical identity of a bookable time window: its start and
// end instants. All internal slot comparisons use the key normalized to UTC;
// the formatted label is a display derivative only.
type SlotKey struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Normalize returns the key with both instants converted to UTC.
func (k SlotKey) Normalize() SlotKey {
	return SlotKey{Start: k.Start.UTC(), End: k.End.UTC()}
}

// Equal compares two keys by instant, ignoring timezone representation.
func (k SlotKey) Equal(other SlotKey) bool {
	return k.Start.Equal(other.Start) && k.End.Equal(other.End)
}

// IsComplete reports whether both boundaries are set.
func (k SlotKey) IsComplete() bool {
	return !k.Start.IsZero() && !k.End.IsZero()
}

// Label renders the key as "HH:MM - HH:MM" in the given display location.
func (k SlotKey) Label(loc *time.Location) string {
	return fmt.Sprintf("%s - %s", k.Start.In(loc).Format("15:04"), k.End.In(loc).Format("15:04"))
}

// TimeSlot is a normalized bookable window for a (service, vendor, date),
// as derived from the upstream availability response.
type TimeSlot struct {
	Key               SlotKey `json:"key"`
	Label             string  `json:"label"`
	IsBookable        bool    `json:"isBookable"`
	BookedCount       int     `json:"bookedCount"`
	AvailableCapacity int     `json:"availableCapacity,omitempty"`
	TotalCapacity     int     `json:"totalCapacity,omitempty"`
}

// UpstreamSlot is one raw slot as returned by the booking backend.
type UpstreamSlot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	IsAvailable    bool      `json:"isAvailable"`
	AvailableSpots int       `json:"availableSpots"`
	TotalSpots     int       `json:"totalSpots"`
}

// AvailableTimeslotsResponse is the upstream availability payload.
type AvailableTimeslotsResponse struct {
	AllSlots []UpstreamSlot `json:"allSlots"`
}
