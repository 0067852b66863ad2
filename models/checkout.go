package models

// Reconciliation failure reasons, surfaced to the user verbatim.
const (
	ReasonDateInPast = "date in the past"
	ReasonSlotGone   = "slot no longer offered"
	ReasonSlotFull   = "slot fully booked"
)

// Booking dispositions.
const (
	DispositionCombined   = "combined"   // all available_now lines merged into one booking
	DispositionIndividual = "individual" // one booking per pending_confirmation line
)

// Coupon is a discount supplied at checkout. The discount is distributed
// proportionally: each booking's share is
// (bookingSubtotal / OriginalPrice) x DiscountAmount.
type Coupon struct {
	Code           string  `json:"code"`
	OriginalPrice  float64 `json:"originalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
}

// CheckoutRequest is the payload for a checkout attempt. AttemptID is the
// caller-supplied idempotency token for the attempt; when absent one is
// minted server-side. Replaying a used attempt id is refused before any
// upstream call.
type CheckoutRequest struct {
	Address   string  `json:"address" binding:"required"`
	Notes     string  `json:"notes,omitempty"`
	Coupon    *Coupon `json:"coupon,omitempty"`
	AttemptID string  `json:"attemptId,omitempty"`
}

// LineIssue flags one cart line that failed reconciliation.
type LineIssue struct {
	Line   CartLine `json:"line"`
	Reason string   `json:"reason"`
}

// ReconcileResult is the outcome of re-validating every cart line against
// fresh availability. Any issue blocks checkout entirely.
type ReconcileResult struct {
	Available bool        `json:"available"`
	Issues    []LineIssue `json:"issues,omitempty"`
}

// BookingServiceEntry is one service inside a booking-creation request.
// CustomInputs are serialized as {label: [values...]} for multi-select
// add-ons and {label: value} otherwise.
type BookingServiceEntry struct {
	Service      string                 `json:"service"`
	Vendor       string                 `json:"vendor"`
	Price        float64                `json:"price"`
	Quantity     int                    `json:"quantity"`
	Notes        string                 `json:"notes,omitempty"`
	CustomInputs map[string]interface{} `json:"customInputs,omitempty"`
}

// BookingRequest is one booking-creation call to the upstream backend.
type BookingRequest struct {
	EventDate  string                `json:"eventDate"`
	EventTime  string                `json:"eventTime"`
	TimeSlot   SlotKey               `json:"timeSlot"`
	Address    string                `json:"address"`
	Notes      string                `json:"notes,omitempty"`
	TotalPrice float64               `json:"totalPrice"`
	Services   []BookingServiceEntry `json:"services"`
	Coupon     string                `json:"coupon,omitempty"`
}

// UpstreamBooking is the created booking object returned by the backend.
type UpstreamBooking struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
}

// SubmittedBooking records one successful booking-creation call.
type SubmittedBooking struct {
	BookingID   string         `json:"bookingId"`
	Disposition string         `json:"disposition"`
	CouponShare float64        `json:"couponShare,omitempty"`
	Request     BookingRequest `json:"request"`
}

// CheckoutError attributes one failed booking-creation call to a cart line.
// A failed combined request yields one entry per line it carried.
type CheckoutError struct {
	Line  CartLine `json:"line"`
	Error string   `json:"error"`
}

// CheckoutResult is the outcome of one checkout attempt. Success requires
// zero errors; on any failure the cart is left intact and succeeded bookings
// are not rolled back.
type CheckoutResult struct {
	Success     bool               `json:"success"`
	Unavailable []LineIssue        `json:"unavailable,omitempty"` // set when blocked at reconciliation
	Bookings    []SubmittedBooking `json:"bookings,omitempty"`
	Errors      []CheckoutError    `json:"errors,omitempty"`
	AttemptID   string             `json:"attemptId,omitempty"`
}
