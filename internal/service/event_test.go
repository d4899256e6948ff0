package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/ticketing-api/internal/domain"
)

func newEventService() (*EventService, *memStore) {
	store := newMemStore()
	return NewEventService(&fakeEventRepo{store: store}), store
}

func TestCreateEvent_SplitsCapacityAcrossPools(t *testing.T) {
	svc, _ := newEventService()

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Name:         "Startup Pitch Night",
		LocationName: "Innovation Hub",
		Date:         time.Now().AddDate(0, 1, 0),
		Price:        3300,
		MaxCapacity:  120,
		Passes: []domain.PassTier{
			{Name: "Investor Pass", Price: 5000, InitialAllocation: 20},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, created.Availability)
	require.Len(t, created.Passes, 1)
	assert.Equal(t, 20, created.Passes[0].Available)
}

func TestCreateEvent_Invalid(t *testing.T) {
	svc, _ := newEventService()

	tests := []struct {
		name  string
		event domain.Event
	}{
		{
			name:  "zero capacity",
			event: domain.Event{Name: "X", MaxCapacity: 0},
		},
		{
			name: "allocations exceed capacity",
			event: domain.Event{
				Name:        "X",
				MaxCapacity: 10,
				Passes: []domain.PassTier{
					{Name: "VIP", InitialAllocation: 11},
				},
			},
		},
		{
			name: "duplicate tier name",
			event: domain.Event{
				Name:        "X",
				MaxCapacity: 10,
				Passes: []domain.PassTier{
					{Name: "VIP", InitialAllocation: 2},
					{Name: "VIP", InitialAllocation: 2},
				},
			},
		},
		{
			name: "unnamed tier",
			event: domain.Event{
				Name:        "X",
				MaxCapacity: 10,
				Passes: []domain.PassTier{
					{Name: "", InitialAllocation: 2},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), tt.event)
			require.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestSeedDemoEvents_Idempotent(t *testing.T) {
	svc, _ := newEventService()

	first, err := svc.SeedDemoEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.SeedDemoEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 3)

	all, err := svc.GetEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
