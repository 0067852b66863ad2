package cart

import (
	"context"
	"testing"
	"time"

	"masarra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryPersister is an in-memory Persister that counts storage reads so
// cache behavior is observable.
type memoryPersister struct {
	carts map[string][]models.CartLine
	loads int
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{carts: make(map[string][]models.CartLine)}
}

func (p *memoryPersister) Load(ctx context.Context, userID string) ([]models.CartLine, error) {
	p.loads++
	lines := make([]models.CartLine, len(p.carts[userID]))
	copy(lines, p.carts[userID])
	return lines, nil
}

func (p *memoryPersister) Save(ctx context.Context, userID string, lines []models.CartLine) error {
	stored := make([]models.CartLine, len(lines))
	copy(stored, lines)
	p.carts[userID] = stored
	return nil
}

func (p *memoryPersister) Delete(ctx context.Context, userID string) error {
	delete(p.carts, userID)
	return nil
}

func (p *memoryPersister) ActiveUsers(ctx context.Context) ([]string, error) {
	users := make([]string, 0, len(p.carts))
	for u := range p.carts {
		users = append(users, u)
	}
	return users, nil
}

func newTestService() (*DefaultCartService, *memoryPersister) {
	p := newMemoryPersister()
	return NewDefaultCartService(p, time.UTC), p
}

func slotAt(hour int) models.SlotKey {
	day := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
	return models.SlotKey{
		Start: day.Add(time.Duration(hour) * time.Hour),
		End:   day.Add(time.Duration(hour+2) * time.Hour),
	}
}

func newLine(serviceID string, qty int) models.CartLine {
	return models.CartLine{
		ServiceID:    serviceID,
		VendorID:     "vendor-1",
		SelectedDate: "2030-06-15",
		SelectedTime: "11:00 - 13:00",
		TimeSlot:     slotAt(8),
		Price:        10,
		Quantity:     qty,
	}
}

func TestAdd_MergesLinesMatchingOnServiceDateAndSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-a", newLine("svc-1", 2))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-a", newLine("svc-1", 3))
	require.NoError(t, err)

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 50.0, lines[0].TotalPrice)
}

func TestAdd_DifferentSlotsStayAsSeparateLines(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := newLine("svc-1", 1)
	second := newLine("svc-1", 1)
	second.TimeSlot = slotAt(14)
	second.SelectedTime = "17:00 - 19:00"

	_, err := svc.Add(ctx, "user-a", first)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-a", second)
	require.NoError(t, err)

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
}

func TestAdd_RequiresAuthentication(t *testing.T) {
	svc, p := newTestService()

	_, err := svc.Add(context.Background(), "", newLine("svc-1", 1))

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, p.carts)
}

func TestAdd_RejectsIncompleteLines(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	missingService := newLine("", 1)
	_, err := svc.Add(ctx, "user-a", missingService)
	var precond *PreconditionError
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, "serviceId", precond.Field)

	missingSlot := newLine("svc-1", 1)
	missingSlot.TimeSlot.End = time.Time{}
	_, err = svc.Add(ctx, "user-a", missingSlot)
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, "timeSlot", precond.Field)

	missingDate := newLine("svc-1", 1)
	missingDate.SelectedDate = ""
	_, err = svc.Add(ctx, "user-a", missingDate)
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, "selectedDate", precond.Field)
}

func TestGet_AnonymousCartIsEmpty(t *testing.T) {
	svc, p := newTestService()

	lines, err := svc.Get(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, p.loads)
}

func TestGet_CacheRevalidatedAcrossUsers(t *testing.T) {
	svc, p := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-a", newLine("svc-1", 2))
	require.NoError(t, err)

	// Same user is served from cache: no further storage reads.
	loadsBefore := p.loads
	_, err = svc.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, loadsBefore, p.loads)

	// A different user forces a storage re-read and must never see user A's lines.
	linesB, err := svc.Get(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, linesB)
	assert.Greater(t, p.loads, loadsBefore)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	for _, startQty := range []int{1, 2, 7} {
		svc, _ := newTestService()
		ctx := context.Background()

		stored, err := svc.Add(ctx, "user-a", newLine("svc-1", startQty))
		require.NoError(t, err)

		require.NoError(t, svc.UpdateQuantity(ctx, "user-a", stored.ID, 0))

		lines, err := svc.Get(ctx, "user-a")
		require.NoError(t, err)
		assert.Empty(t, lines, "starting quantity %d", startQty)
	}
}

func TestUpdateQuantity_RecomputesTotalWithAddOns(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	line := newLine("svc-1", 1)
	line.CustomInputs = []models.CustomInput{
		{Label: "Cake flavor", Type: "select", Value: "chocolate", Price: 3},
		{Label: "Extras", Type: "multi-select", Options: []models.CustomInputOption{
			{Value: "candles", Price: 1},
			{Value: "balloons", Price: 2},
		}},
	}
	stored, err := svc.Add(ctx, "user-a", line)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, "user-a", stored.ID, 4))

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	// 4 x (10 + 3 + 1 + 2)
	assert.Equal(t, 64.0, lines[0].TotalPrice)
}

func TestUpdateQuantity_UnknownLine(t *testing.T) {
	svc, _ := newTestService()

	err := svc.UpdateQuantity(context.Background(), "user-a", "nope", 2)

	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemove_AbsentLineIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-a", newLine("svc-1", 1))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "user-a", "does-not-exist"))

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestClear_ErasesCartAndNotifies(t *testing.T) {
	svc, p := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-a", newLine("svc-1", 1))
	require.NoError(t, err)

	notified := 0
	unsubscribe := svc.Subscribe(func(userID string) {
		if userID == "user-a" {
			notified++
		}
	})
	defer unsubscribe()

	require.NoError(t, svc.Clear(ctx, "user-a"))

	assert.Equal(t, 1, notified)
	assert.NotContains(t, p.carts, "user-a")

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSweepPast_PrunesStaleLines(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	past := newLine("svc-old", 1)
	past.SelectedDate = "2030-06-10"
	future := newLine("svc-new", 1)
	future.SelectedDate = "2030-06-20"

	_, err := svc.Add(ctx, "user-a", past)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-a", future)
	require.NoError(t, err)

	now := time.Date(2030, 6, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SweepPast(ctx, now))

	lines, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "svc-new", lines[0].ServiceID)
}
