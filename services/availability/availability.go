package availability

import (
	"context"
	"fmt"
	"time"

	"masarra/config"
	"masarra/models"
	"masarra/services/gateway"
	"masarra/utils"

	"go.uber.org/zap"
)

// DefaultAvailabilityService implements AvailabilityService against the
// upstream gateway.
type DefaultAvailabilityService struct {
	Gateway gateway.Client
	// Location is the display timezone for slot labels. Labels are display
	// derivatives only; slot identity is the UTC-normalized SlotKey.
	Location *time.Location
}

// DisplayLocation builds the configured fixed display offset.
func DisplayLocation() *time.Location {
	offsetMin := config.AppConfig.DisplayTZOffsetMin
	name := fmt.Sprintf("UTC%+d", offsetMin/60)
	return time.FixedZone(name, offsetMin*60)
}

// NewDefaultAvailabilityService wires the service from AppConfig.
func NewDefaultAvailabilityService(gw gateway.Client) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Gateway:  gw,
		Location: DisplayLocation(),
	}
}

func (s *DefaultAvailabilityService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return DisplayLocation()
}

// DayAvailability fetches and normalizes the upstream slots for one day.
func (s *DefaultAvailabilityService) DayAvailability(ctx context.Context, serviceID, vendorID, date string) []models.TimeSlot {
	logger := utils.GetLogger()

	resp, err := s.Gateway.AvailableTimeslots(ctx, serviceID, vendorID, date)
	if err != nil {
		logger.Warn("DayAvailability: upstream fetch failed, treating day as unavailable",
			zap.String("serviceID", serviceID),
			zap.String("date", date),
			zap.Error(err))
		return []models.TimeSlot{}
	}

	loc := s.loc()
	slots := make([]models.TimeSlot, 0, len(resp.AllSlots))
	for _, raw := range resp.AllSlots {
		key := models.SlotKey{Start: raw.Start, End: raw.End}.Normalize()
		if !key.IsComplete() {
			logger.Warn("DayAvailability: skipping slot with incomplete boundaries",
				zap.String("serviceID", serviceID), zap.String("date", date))
			continue
		}

		booked := 0
		if raw.TotalSpots > 0 {
			booked = raw.TotalSpots - raw.AvailableSpots
			if booked < 0 {
				booked = 0
			}
		}

		slots = append(slots, models.TimeSlot{
			Key:               key,
			Label:             key.Label(loc),
			IsBookable:        raw.IsAvailable,
			BookedCount:       booked,
			AvailableCapacity: raw.AvailableSpots,
			TotalCapacity:     raw.TotalSpots,
		})
	}
	return slots
}
