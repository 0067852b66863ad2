package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"masarra/models"
	"masarra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLineNotFound is returned when a quantity update targets an absent line.
var ErrLineNotFound = errors.New("cart line not found")

// DefaultCartService implements CartService on a Persister with a
// single-entry in-memory cache. The cache is valid only while cachedUserID
// matches the requesting user; any mismatch forces a reload from storage.
type DefaultCartService struct {
	Persister Persister
	Bus       *ChangeBus
	// Location is the day boundary used for past-date sweeping.
	Location *time.Location

	mu           sync.Mutex
	cached       []models.CartLine
	cachedUserID string
	cacheValid   bool
}

// NewDefaultCartService wires a cart service over the given persister.
func NewDefaultCartService(p Persister, loc *time.Location) *DefaultCartService {
	return &DefaultCartService{
		Persister: p,
		Bus:       NewChangeBus(),
		Location:  loc,
	}
}

// Subscribe registers a change listener on the service's bus.
func (s *DefaultCartService) Subscribe(fn func(userID string)) func() {
	return s.Bus.Subscribe(fn)
}

// Get returns the user's cart lines. Anonymous users have an empty cart.
func (s *DefaultCartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	if userID == "" {
		return []models.CartLine{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, userID)
}

// loadLocked returns a copy of the user's lines, serving from the cache only
// when it is tagged with the same user id.
func (s *DefaultCartService) loadLocked(ctx context.Context, userID string) ([]models.CartLine, error) {
	if s.cacheValid && s.cachedUserID == userID {
		return copyLines(s.cached), nil
	}

	lines, err := s.Persister.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cached = copyLines(lines)
	s.cachedUserID = userID
	s.cacheValid = true
	return lines, nil
}

// saveLocked persists the full list, refreshes the cache and notifies.
func (s *DefaultCartService) saveLocked(ctx context.Context, userID string, lines []models.CartLine) error {
	if err := s.Persister.Save(ctx, userID, lines); err != nil {
		return err
	}
	s.cached = copyLines(lines)
	s.cachedUserID = userID
	s.cacheValid = true
	s.Bus.Notify(userID)
	return nil
}

// Add validates and stores a line, merging quantities into an existing line
// that matches on (service, date, slot).
func (s *DefaultCartService) Add(ctx context.Context, userID string, line models.CartLine) (models.CartLine, error) {
	if userID == "" {
		return models.CartLine{}, ErrNotAuthenticated
	}
	if line.ServiceID == "" {
		return models.CartLine{}, newPreconditionError("serviceId", "service is required")
	}
	if line.SelectedDate == "" {
		return models.CartLine{}, newPreconditionError("selectedDate", "a date must be selected")
	}
	if line.SelectedTime == "" {
		return models.CartLine{}, newPreconditionError("selectedTime", "a time must be selected")
	}
	if !line.TimeSlot.IsComplete() {
		return models.CartLine{}, newPreconditionError("timeSlot", "both slot boundaries are required")
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	line.TimeSlot = line.TimeSlot.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, userID)
	if err != nil {
		return models.CartLine{}, err
	}

	for i := range lines {
		if lines[i].ServiceID == line.ServiceID &&
			lines[i].SelectedDate == line.SelectedDate &&
			lines[i].TimeSlot.Equal(line.TimeSlot) {
			lines[i].Quantity += line.Quantity
			recomputeTotal(&lines[i])
			if err := s.saveLocked(ctx, userID, lines); err != nil {
				return models.CartLine{}, err
			}
			return lines[i], nil
		}
	}

	line.ID = uuid.New().String()
	line.AddedAt = time.Now()
	lines = append(lines, line)
	if err := s.saveLocked(ctx, userID, lines); err != nil {
		return models.CartLine{}, err
	}
	return line, nil
}

// Remove deletes the line with the given id; absent lines are a no-op.
func (s *DefaultCartService) Remove(ctx context.Context, userID, lineID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, userID)
	if err != nil {
		return err
	}

	kept := lines[:0:0]
	for _, l := range lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return s.saveLocked(ctx, userID, kept)
}

// UpdateQuantity sets a line's quantity and recomputes its total price.
// Quantities of zero or less remove the line.
func (s *DefaultCartService) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if quantity <= 0 {
		return s.Remove(ctx, userID, lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, userID)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			recomputeTotal(&lines[i])
			return s.saveLocked(ctx, userID, lines)
		}
	}
	return ErrLineNotFound
}

// Clear erases the user's persisted cart and invalidates the cache entry.
func (s *DefaultCartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Persister.Delete(ctx, userID); err != nil {
		return err
	}
	if s.cachedUserID == userID {
		s.cached = nil
		s.cacheValid = false
	}
	s.Bus.Notify(userID)
	return nil
}

// SweepPast prunes lines whose selected date is strictly before now across
// all active carts. Users whose cart changed are notified.
func (s *DefaultCartService) SweepPast(ctx context.Context, now time.Time) error {
	logger := utils.GetLogger()

	users, err := s.Persister.ActiveUsers(ctx)
	if err != nil {
		return err
	}

	for _, userID := range users {
		s.mu.Lock()
		lines, err := s.loadLocked(ctx, userID)
		if err != nil {
			s.mu.Unlock()
			logger.Warn("SweepPast: failed to load cart", zap.String("userID", userID), zap.Error(err))
			continue
		}

		kept := lines[:0:0]
		for _, l := range lines {
			if dateBefore(l.SelectedDate, now, s.Location) {
				logger.Info("SweepPast: pruning stale cart line",
					zap.String("userID", userID),
					zap.String("lineID", l.ID),
					zap.String("date", l.SelectedDate))
				continue
			}
			kept = append(kept, l)
		}

		if len(kept) != len(lines) {
			if err := s.saveLocked(ctx, userID, kept); err != nil {
				logger.Warn("SweepPast: failed to save cart", zap.String("userID", userID), zap.Error(err))
			}
		}
		s.mu.Unlock()
	}
	return nil
}

// dateBefore reports whether dateStr ("YYYY-MM-DD") falls strictly before
// now's calendar day in loc. Unparseable dates are kept for reconciliation
// to flag rather than silently dropped.
func dateBefore(dateStr string, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return false
	}
	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return d.Before(today)
}

func recomputeTotal(l *models.CartLine) {
	l.TotalPrice = float64(l.Quantity) * (l.Price + l.AddOnTotal())
}

func copyLines(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}
