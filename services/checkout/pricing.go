package checkout

import "masarra/models"

// deliveryFee returns the flat per-service delivery fee for a line. Only
// unlimited-capacity services carry delivery; the fee is never multiplied
// by quantity.
func (s *DefaultCheckoutService) deliveryFee(line models.CartLine) float64 {
	if line.HasDeliveryFee() {
		return s.DeliveryFee
	}
	return 0
}

// chargeableTotal is the amount a line contributes to its booking's
// subtotal: the line's chargeable subtotal plus its delivery fee.
func (s *DefaultCheckoutService) chargeableTotal(line models.CartLine) float64 {
	return line.ChargeableSubtotal() + s.deliveryFee(line)
}

// couponShare distributes the coupon discount proportionally: the share for
// a booking is (bookingSubtotal / couponOriginalPrice) x discountAmount,
// computed independently against each booking's own subtotal.
func couponShare(subtotal float64, coupon *models.Coupon) float64 {
	if coupon == nil || coupon.OriginalPrice <= 0 || coupon.DiscountAmount <= 0 {
		return 0
	}
	return subtotal / coupon.OriginalPrice * coupon.DiscountAmount
}

// serializeCustomInputs flattens selected add-ons for transmission:
// multi-select add-ons become {label: [values...]}, everything else
// {label: value}.
func serializeCustomInputs(inputs []models.CustomInput) map[string]interface{} {
	if len(inputs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(inputs))
	for _, ci := range inputs {
		if ci.IsMultiSelect() {
			values := make([]string, 0, len(ci.Options))
			for _, opt := range ci.Options {
				values = append(values, opt.Value)
			}
			out[ci.Label] = values
			continue
		}
		out[ci.Label] = ci.Value
	}
	return out
}

// serviceEntry converts a cart line into the service element of a booking
// request. The entry price excludes delivery; delivery and coupon shares are
// applied at the booking level.
func serviceEntry(line models.CartLine) models.BookingServiceEntry {
	return models.BookingServiceEntry{
		Service:      line.ServiceID,
		Vendor:       line.VendorID,
		Price:        line.ChargeableSubtotal(),
		Quantity:     line.Quantity,
		Notes:        line.Notes,
		CustomInputs: serializeCustomInputs(line.CustomInputs),
	}
}
