package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserLoggedIn, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventUserLoggedOut, func(ctx context.Context, e Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventUserLoggedIn})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventUserRegistered, func(ctx context.Context, e Event) error {
		return errors.New("first handler fails")
	})
	d.Subscribe(EventUserRegistered, func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered})
	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestEvent_AuditAction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user.register", string(Event{Type: EventUserRegistered}.AuditAction()))
	assert.Equal(t, "user.login", string(Event{Type: EventUserLoggedIn}.AuditAction()))
	assert.Equal(t, "user.login_failed", string(Event{Type: EventUserLoginFailed}.AuditAction()))
	assert.Equal(t, "user.logout", string(Event{Type: EventUserLoggedOut}.AuditAction()))
}
