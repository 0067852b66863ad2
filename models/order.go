package models

import "time"

// OrderReceipt is the local journal entry for one booking this service
// created upstream. The backend remains authoritative for booking state;
// receipts exist so users can list their order history without a round trip.
type OrderReceipt struct {
	ID          string                `bson:"id" json:"id"`
	UserID      string                `bson:"user_id" json:"user_id"`
	BookingID   string                `bson:"booking_id" json:"booking_id"`
	Disposition string                `bson:"disposition" json:"disposition"`
	EventDate   string                `bson:"event_date" json:"event_date"`
	EventTime   string                `bson:"event_time" json:"event_time"`
	Services    []BookingServiceEntry `bson:"services" json:"services"`
	TotalPrice  float64               `bson:"total_price" json:"total_price"`
	CouponShare float64               `bson:"coupon_share,omitempty" json:"coupon_share,omitempty"`
	AttemptID   string                `bson:"attempt_id" json:"attempt_id"`
	CreatedAt   time.Time             `bson:"created_at" json:"created_at"`
}
