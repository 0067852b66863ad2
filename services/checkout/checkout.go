package checkout

import (
	"context"
	"fmt"
	"time"

	"masarra/config"
	orderRepo "masarra/database/repository/order"
	"masarra/models"
	"masarra/services/availability"
	"masarra/services/cart"
	"masarra/services/gateway"
	"masarra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Cart         cart.CartService
	Availability availability.AvailabilityService
	Gateway      gateway.Client
	Orders       orderRepo.OrderReceiptRepository
	Idem         IdempotencyGuard
	// Location is the display timezone used for day-granularity date checks.
	Location *time.Location
	// DeliveryFee is the flat per-service fee for unlimited-capacity lines.
	DeliveryFee float64
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewDefaultCheckoutService wires a checkout service from AppConfig.
func NewDefaultCheckoutService(
	cartSvc cart.CartService,
	availSvc availability.AvailabilityService,
	gw gateway.Client,
	orders orderRepo.OrderReceiptRepository,
	idem IdempotencyGuard,
) *DefaultCheckoutService {
	return &DefaultCheckoutService{
		Cart:         cartSvc,
		Availability: availSvc,
		Gateway:      gw,
		Orders:       orders,
		Idem:         idem,
		Location:     availability.DisplayLocation(),
		DeliveryFee:  config.AppConfig.DeliveryFee,
	}
}

func (s *DefaultCheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCheckoutService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// bookingGroup pairs one booking-creation request with the cart lines it
// carries, so submission failures keep line-level attribution.
type bookingGroup struct {
	request     models.BookingRequest
	lines       []models.CartLine
	disposition string
	couponShare float64
}

// Checkout runs one attempt: Reconciling -> Splitting+Submitting ->
// (AllSucceeded -> CartCleared | Failure -> ErrorsReported, cart intact).
func (s *DefaultCheckoutService) Checkout(ctx context.Context, userID, token string, req models.CheckoutRequest) (models.CheckoutResult, error) {
	logger := utils.GetLogger()

	if userID == "" {
		return models.CheckoutResult{}, NewNotAuthenticatedError()
	}

	lines, err := s.Cart.Get(ctx, userID)
	if err != nil {
		return models.CheckoutResult{}, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return models.CheckoutResult{}, NewEmptyCartError()
	}

	rec := s.reconcileLines(ctx, lines)
	if !rec.Available {
		logger.Info("Checkout blocked by reconciliation",
			zap.String("userID", userID),
			zap.Int("flagged", len(rec.Issues)))
		return models.CheckoutResult{
			Success:     false,
			Unavailable: rec.Issues,
		}, nil
	}

	attemptID := req.AttemptID
	if attemptID == "" {
		attemptID = uuid.New().String()
	}
	if s.Idem != nil {
		ok, err := s.Idem.Reserve(ctx, attemptID)
		if err != nil {
			return models.CheckoutResult{}, fmt.Errorf("failed to reserve checkout attempt: %w", err)
		}
		if !ok {
			return models.CheckoutResult{}, NewDuplicateAttemptError(attemptID)
		}
	}

	groups := s.split(lines, req)

	result := models.CheckoutResult{AttemptID: attemptID}
	for i, group := range groups {
		idemKey := fmt.Sprintf("%s:%d", attemptID, i)
		created, err := s.Gateway.CreateBooking(ctx, token, group.request, idemKey)
		if err != nil {
			logger.Warn("Checkout: booking submission failed",
				zap.String("userID", userID),
				zap.String("idempotencyKey", idemKey),
				zap.Error(err))
			for _, line := range group.lines {
				result.Errors = append(result.Errors, models.CheckoutError{
					Line:  line,
					Error: err.Error(),
				})
			}
			continue
		}

		submitted := models.SubmittedBooking{
			BookingID:   created.ID,
			Disposition: group.disposition,
			CouponShare: group.couponShare,
			Request:     group.request,
		}
		result.Bookings = append(result.Bookings, submitted)
		s.journal(ctx, userID, attemptID, submitted)
	}

	if len(result.Errors) == 0 {
		result.Success = true
		if err := s.Cart.Clear(ctx, userID); err != nil {
			// The bookings exist upstream; a failed clear only leaves stale
			// lines for the sweeper or the next reconciliation to catch.
			logger.Warn("Checkout: failed to clear cart after success",
				zap.String("userID", userID), zap.Error(err))
		}
	}
	return result, nil
}

// split partitions reconciled lines into booking requests: all pay-now lines
// merge into exactly one combined request; every pending-confirmation line
// becomes its own request, billed once the vendor confirms.
func (s *DefaultCheckoutService) split(lines []models.CartLine, req models.CheckoutRequest) []bookingGroup {
	var payNow []models.CartLine
	var pending []models.CartLine
	for _, line := range lines {
		if line.PayNow() {
			payNow = append(payNow, line)
		} else {
			pending = append(pending, line)
		}
	}

	var groups []bookingGroup

	if len(payNow) > 0 {
		subtotal := 0.0
		entries := make([]models.BookingServiceEntry, 0, len(payNow))
		for _, line := range payNow {
			subtotal += s.chargeableTotal(line)
			entries = append(entries, serviceEntry(line))
		}
		share := couponShare(subtotal, req.Coupon)

		groups = append(groups, bookingGroup{
			request: models.BookingRequest{
				EventDate:  payNow[0].SelectedDate,
				EventTime:  payNow[0].SelectedTime,
				TimeSlot:   payNow[0].TimeSlot,
				Address:    req.Address,
				Notes:      req.Notes,
				TotalPrice: subtotal - share,
				Services:   entries,
				Coupon:     couponCode(req.Coupon),
			},
			lines:       payNow,
			disposition: models.DispositionCombined,
			couponShare: share,
		})
	}

	for _, line := range pending {
		subtotal := s.chargeableTotal(line)
		share := couponShare(subtotal, req.Coupon)

		groups = append(groups, bookingGroup{
			request: models.BookingRequest{
				EventDate:  line.SelectedDate,
				EventTime:  line.SelectedTime,
				TimeSlot:   line.TimeSlot,
				Address:    req.Address,
				Notes:      req.Notes,
				TotalPrice: subtotal - share,
				Services:   []models.BookingServiceEntry{serviceEntry(line)},
				Coupon:     couponCode(req.Coupon),
			},
			lines:       []models.CartLine{line},
			disposition: models.DispositionIndividual,
			couponShare: share,
		})
	}

	return groups
}

// journal persists an order receipt for a created booking. Receipts are a
// local convenience; a journaling failure never fails the checkout.
func (s *DefaultCheckoutService) journal(ctx context.Context, userID, attemptID string, b models.SubmittedBooking) {
	if s.Orders == nil {
		return
	}
	receipt := models.OrderReceipt{
		UserID:      userID,
		BookingID:   b.BookingID,
		Disposition: b.Disposition,
		EventDate:   b.Request.EventDate,
		EventTime:   b.Request.EventTime,
		Services:    b.Request.Services,
		TotalPrice:  b.Request.TotalPrice,
		CouponShare: b.CouponShare,
		AttemptID:   attemptID,
	}
	if _, err := s.Orders.Create(ctx, receipt); err != nil {
		utils.GetLogger().Warn("Checkout: failed to journal order receipt",
			zap.String("userID", userID),
			zap.String("bookingID", b.BookingID),
			zap.Error(err))
	}
}

func couponCode(c *models.Coupon) string {
	if c == nil {
		return ""
	}
	return c.Code
}
