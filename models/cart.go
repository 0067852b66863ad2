package models

import "time"

// Availability status of a cart line, mirroring the vendor's payment policy.
const (
	AvailabilityAvailableNow        = "available_now"
	AvailabilityPendingConfirmation = "pending_confirmation"
)

// UnlimitedCapacity marks a service without a per-slot booking cap.
// Only unlimited-capacity services carry a delivery fee.
const UnlimitedCapacity = -1

// CustomInputOption is one selected choice of a multi-select add-on.
type CustomInputOption struct {
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

// CustomInput is a selected service add-on. Single-select, text and number
// add-ons carry Value/Price; multi-select add-ons carry Options.
type CustomInput struct {
	Label   string              `json:"label"`
	Type    string              `json:"type,omitempty"` // e.g. "text", "number", "select", "multi-select"
	Value   string              `json:"value,omitempty"`
	Price   float64             `json:"price,omitempty"`
	Options []CustomInputOption `json:"options,omitempty"`
}

// IsMultiSelect reports whether this add-on holds a list of selected options.
func (ci CustomInput) IsMultiSelect() bool {
	return len(ci.Options) > 0 || ci.Type == "multi-select"
}

// PriceSum returns the total add-on price contribution of this input.
func (ci CustomInput) PriceSum() float64 {
	if ci.IsMultiSelect() {
		total := 0.0
		for _, opt := range ci.Options {
			total += opt.Price
		}
		return total
	}
	return ci.Price
}

// CartLine represents one prospective booking held in a user's cart.
type CartLine struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"serviceId"`
	VendorID     string  `json:"vendorId"`
	SelectedDate string  `json:"selectedDate"` // "YYYY-MM-DD"
	SelectedTime string  `json:"selectedTime"` // display label, e.g. "14:00 - 16:00"
	TimeSlot     SlotKey `json:"timeSlot"`

	Price        float64       `json:"price"`                // per-unit price
	TotalPrice   float64       `json:"totalPrice,omitempty"` // quantity x (unit + add-ons), when computed
	Quantity     int           `json:"quantity"`
	CustomInputs []CustomInput `json:"customInputs,omitempty"`
	Notes        string        `json:"notes,omitempty"`

	AvailabilityStatus string `json:"availabilityStatus,omitempty"`
	MaxBookingsPerSlot int    `json:"maxBookingsPerSlot"`

	// Package lines validate capacity against the main service, not the
	// package's own id.
	IsPackage     bool   `json:"isPackage,omitempty"`
	MainServiceID string `json:"mainServiceId,omitempty"`

	AddedAt time.Time `json:"addedAt"`
}

// AddOnTotal sums the selected add-on prices across all custom inputs.
func (l CartLine) AddOnTotal() float64 {
	total := 0.0
	for _, ci := range l.CustomInputs {
		total += ci.PriceSum()
	}
	return total
}

// ChargeableSubtotal is the amount billed for this line before delivery fees:
// the precomputed total when present, else the unit price.
func (l CartLine) ChargeableSubtotal() float64 {
	if l.TotalPrice > 0 {
		return l.TotalPrice
	}
	return l.Price
}

// AvailabilityServiceID returns the service id availability must be checked
// against: the main service for package lines, else the line's own service.
func (l CartLine) AvailabilityServiceID() string {
	if l.IsPackage && l.MainServiceID != "" {
		return l.MainServiceID
	}
	return l.ServiceID
}

// PayNow reports whether the line is charged at checkout (merged into the
// combined booking) rather than billed after vendor confirmation.
func (l CartLine) PayNow() bool {
	return l.AvailabilityStatus == "" || l.AvailabilityStatus == AvailabilityAvailableNow
}

// HasDeliveryFee reports whether the flat delivery fee applies to this line.
func (l CartLine) HasDeliveryFee() bool {
	return l.MaxBookingsPerSlot == UnlimitedCapacity
}
