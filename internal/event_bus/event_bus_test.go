package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishesToSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []Event
	bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
		received = append(received, e)
		return nil
	})

	payload := SubmissionAccepted{UserMail: "jane@pixeltruth.com", Department: "SEO", Date: "2026-08-31", Minutes: 90}
	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, payload))

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, payload, received[0].Data)
}

func TestEventBus_IgnoresOtherEventTypes(t *testing.T) {
	bus := NewEventBus()

	called := false
	bus.Subscribe(TaskAssignedEvent, func(e Event) error {
		called = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, nil))

	require.NoError(t, err)
	assert.False(t, called)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	called := false
	unsubscribe := bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
		called = true
		return nil
	})
	unsubscribe()

	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, nil))

	require.NoError(t, err)
	assert.False(t, called)
}

func TestEventBus_RunsHandlersInRegistrationOrder(t *testing.T) {
	bus := NewEventBus()

	var order []int
	for i := 0; i < 10; i++ {
		n := i
		bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
			order = append(order, n)
			return nil
		})
	}

	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, nil))

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestEventBus_CollectsHandlerErrors(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
		return errors.New("first failure")
	})
	reached := false
	bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, nil))

	assert.Error(t, err)
	assert.True(t, reached)
}

func TestEventBus_RecoversHandlerPanics(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe(SubmissionAcceptedEvent, func(e Event) error {
		panic("boom")
	})

	err := bus.Publish(NewEvent(context.Background(), SubmissionAcceptedEvent, nil))

	assert.Error(t, err)
}

func TestEventBus_RefusesCancelledContext(t *testing.T) {
	bus := NewEventBus()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, SubmissionAcceptedEvent, nil))

	assert.Error(t, err)
}
