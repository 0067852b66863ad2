package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"masarra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	response models.AvailableTimeslotsResponse
	err      error
	calls    int
}

func (f *fakeGateway) AvailableTimeslots(ctx context.Context, serviceID, vendorID, date string) (models.AvailableTimeslotsResponse, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeGateway) CreateBooking(ctx context.Context, token string, req models.BookingRequest, idempotencyKey string) (*models.UpstreamBooking, error) {
	return nil, errors.New("not implemented")
}

func displayPlus3() *time.Location {
	return time.FixedZone("UTC+3", 3*60*60)
}

func TestDayAvailability_NormalizesSlotsIntoDisplayOffset(t *testing.T) {
	gw := &fakeGateway{
		response: models.AvailableTimeslotsResponse{
			AllSlots: []models.UpstreamSlot{
				{
					Start:          time.Date(2030, 6, 15, 8, 0, 0, 0, time.UTC),
					End:            time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC),
					IsAvailable:    true,
					AvailableSpots: 2,
					TotalSpots:     5,
				},
				{
					Start:          time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC),
					End:            time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC),
					IsAvailable:    false,
					AvailableSpots: 0,
					TotalSpots:     5,
				},
			},
		},
	}
	svc := &DefaultAvailabilityService{Gateway: gw, Location: displayPlus3()}

	slots := svc.DayAvailability(context.Background(), "svc-1", "vendor-1", "2030-06-15")

	require.Len(t, slots, 2)
	// 08:00 UTC renders as 11:00 in the UTC+3 display offset.
	assert.Equal(t, "11:00 - 13:00", slots[0].Label)
	assert.True(t, slots[0].IsBookable)
	assert.Equal(t, 3, slots[0].BookedCount)
	assert.Equal(t, 2, slots[0].AvailableCapacity)
	assert.Equal(t, 5, slots[0].TotalCapacity)

	assert.Equal(t, "13:00 - 15:00", slots[1].Label)
	assert.False(t, slots[1].IsBookable)
	assert.Equal(t, 5, slots[1].BookedCount)

	// Slot identity stays in UTC regardless of display offset.
	assert.True(t, slots[0].Key.Start.Equal(time.Date(2030, 6, 15, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, slots[0].Key.Start.Location())
}

func TestDayAvailability_ConfigurableOffsetChangesLabelsOnly(t *testing.T) {
	raw := models.UpstreamSlot{
		Start:       time.Date(2030, 6, 15, 8, 0, 0, 0, time.UTC),
		End:         time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC),
		IsAvailable: true,
	}
	gw := &fakeGateway{response: models.AvailableTimeslotsResponse{AllSlots: []models.UpstreamSlot{raw}}}

	plus3 := &DefaultAvailabilityService{Gateway: gw, Location: displayPlus3()}
	utc := &DefaultAvailabilityService{Gateway: gw, Location: time.UTC}

	withOffset := plus3.DayAvailability(context.Background(), "svc-1", "", "2030-06-15")
	withoutOffset := utc.DayAvailability(context.Background(), "svc-1", "", "2030-06-15")

	require.Len(t, withOffset, 1)
	require.Len(t, withoutOffset, 1)
	assert.Equal(t, "11:00 - 13:00", withOffset[0].Label)
	assert.Equal(t, "08:00 - 10:00", withoutOffset[0].Label)
	assert.True(t, withOffset[0].Key.Equal(withoutOffset[0].Key))
}

func TestDayAvailability_FailsOpenOnUpstreamError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	svc := &DefaultAvailabilityService{Gateway: gw, Location: displayPlus3()}

	slots := svc.DayAvailability(context.Background(), "svc-1", "vendor-1", "2030-06-15")

	assert.NotNil(t, slots)
	assert.Empty(t, slots)
	assert.Equal(t, 1, gw.calls)
}

func TestDayAvailability_SkipsIncompleteSlots(t *testing.T) {
	gw := &fakeGateway{
		response: models.AvailableTimeslotsResponse{
			AllSlots: []models.UpstreamSlot{
				{Start: time.Date(2030, 6, 15, 8, 0, 0, 0, time.UTC)}, // missing end
				{
					Start:       time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC),
					End:         time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC),
					IsAvailable: true,
				},
			},
		},
	}
	svc := &DefaultAvailabilityService{Gateway: gw, Location: time.UTC}

	slots := svc.DayAvailability(context.Background(), "svc-1", "", "2030-06-15")

	require.Len(t, slots, 1)
	assert.Equal(t, "10:00 - 12:00", slots[0].Label)
}
