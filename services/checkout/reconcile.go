package checkout

import (
	"context"
	"fmt"
	"time"

	"masarra/models"
	"masarra/utils"

	"go.uber.org/zap"
)

// Reconcile re-validates every line of the user's cart against fresh
// availability.
func (s *DefaultCheckoutService) Reconcile(ctx context.Context, userID string) (models.ReconcileResult, error) {
	if userID == "" {
		return models.ReconcileResult{}, NewNotAuthenticatedError()
	}
	lines, err := s.Cart.Get(ctx, userID)
	if err != nil {
		return models.ReconcileResult{}, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.reconcileLines(ctx, lines), nil
}

// reconcileLines checks each line in turn: past dates are rejected without a
// network call; otherwise the line's slot must still exist in the fresh
// availability (matched by UTC-normalized slot key) and be bookable. Slots
// for the same (service, vendor, date) triple are fetched once per pass.
func (s *DefaultCheckoutService) reconcileLines(ctx context.Context, lines []models.CartLine) models.ReconcileResult {
	logger := utils.GetLogger()
	now := s.now()

	fetched := make(map[string][]models.TimeSlot)
	var issues []models.LineIssue

	for _, line := range lines {
		if s.dateInPast(line.SelectedDate, now) {
			issues = append(issues, models.LineIssue{Line: line, Reason: models.ReasonDateInPast})
			continue
		}

		serviceID := line.AvailabilityServiceID()
		memoKey := serviceID + "|" + line.VendorID + "|" + line.SelectedDate
		slots, ok := fetched[memoKey]
		if !ok {
			slots = s.Availability.DayAvailability(ctx, serviceID, line.VendorID, line.SelectedDate)
			fetched[memoKey] = slots
		}

		slot, found := findSlot(slots, line.TimeSlot)
		if !found {
			logger.Info("Reconcile: cart line slot no longer offered",
				zap.String("lineID", line.ID),
				zap.String("serviceID", serviceID),
				zap.String("date", line.SelectedDate))
			issues = append(issues, models.LineIssue{Line: line, Reason: models.ReasonSlotGone})
			continue
		}
		if !slot.IsBookable {
			issues = append(issues, models.LineIssue{Line: line, Reason: models.ReasonSlotFull})
		}
	}

	return models.ReconcileResult{
		Available: len(issues) == 0,
		Issues:    issues,
	}
}

// dateInPast reports whether dateStr falls strictly before now's calendar
// day in the display timezone. An unparseable date counts as past so a
// malformed selection can never slip through to submission.
func (s *DefaultCheckoutService) dateInPast(dateStr string, now time.Time) bool {
	loc := s.loc()
	d, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return true
	}
	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return d.Before(today)
}

func findSlot(slots []models.TimeSlot, key models.SlotKey) (models.TimeSlot, bool) {
	want := key.Normalize()
	for _, slot := range slots {
		if slot.Key.Equal(want) {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}
