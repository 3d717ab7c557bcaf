package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tracker/models"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan GameEndedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypeGameEnded, func(ctx context.Context, event Event) {
		defer wg.Done()
		if ended, ok := event.(GameEndedEvent); ok {
			select {
			case eventReceived <- ended:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected GameEndedEvent, got %T", event)
		}
	})

	testEvent := GameEndedEvent{
		SessionID: "1700000000000",
		End: models.GameEnd{
			Reason:     models.EndReasonStopLoss,
			FinalPnL:   -103,
			GameNo:     4,
			Series:     models.SeriesA,
			NextSeries: models.SeriesB,
		},
	}

	transactionalBus.Publish(testEvent)

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan RoundRecordedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeRoundRecorded, func(ctx context.Context, event Event) {
		defer wg.Done()
		if recorded, ok := event.(RoundRecordedEvent); ok {
			eventsReceived <- recorded
		}
	})

	for idx := 1; idx <= 3; idx++ {
		transactionalBus.Publish(RoundRecordedEvent{
			SessionID: "s1",
			Entry:     models.LogEntry{Idx: idx, Result: models.ResultWin},
		})
	}

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	wg.Wait()

	// order may vary due to goroutines
	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		select {
		case event := <-eventsReceived:
			seen[event.Entry.Idx] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(seen))
		}
	}

	assert.True(t, seen[1])
	assert.True(t, seen[2])
	assert.True(t, seen[3])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeSessionReset, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(SessionResetEvent{PreviousSessionID: "old", SessionID: "new", Kind: ResetKindFull})

	// simulating transaction rollback
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBusRecoversFromPanickingHandler(t *testing.T) {
	bus := NewBus()

	delivered := make(chan struct{}, 1)
	bus.Subscribe(EventTypeRoundRecorded, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeRoundRecorded, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	bus.Emit(context.Background(), RoundRecordedEvent{SessionID: "s1"})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}
