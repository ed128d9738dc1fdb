package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelgrip/internal/domain"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New()

	var got []domain.NotificationEvent
	b.Subscribe(EventNotification, func(e DomainEvent) {
		got = append(got, e.(domain.NotificationEvent))
	})

	b.Publish(domain.NotificationEvent{Message: "no models", Severity: domain.SeverityWarning})

	require.Len(t, got, 1)
	assert.Equal(t, "no models", got[0].Message)
	assert.Equal(t, domain.SeverityWarning, got[0].Severity)
}

func TestPublishIsSynchronous(t *testing.T) {
	b := New()

	delivered := false
	b.Subscribe(EventModelChanged, func(DomainEvent) {
		delivered = true
	})

	b.Publish(domain.ModelChangedEvent{})
	assert.True(t, delivered, "handler should run within Publish")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	count := 0
	unsub := b.Subscribe(EventNotification, func(DomainEvent) { count++ })

	b.Publish(domain.NotificationEvent{Message: "one"})
	unsub()
	b.Publish(domain.NotificationEvent{Message: "two"})

	assert.Equal(t, 1, count)
}

func TestHandlerPanicDoesNotEscape(t *testing.T) {
	b := New()

	b.Subscribe(EventNotification, func(DomainEvent) { panic("boom") })

	reached := false
	b.Subscribe(EventNotification, func(DomainEvent) { reached = true })

	assert.NotPanics(t, func() {
		b.Publish(domain.NotificationEvent{Message: "x"})
	})
	assert.True(t, reached, "later handlers still run after a panic")
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.Publish(domain.ConfigSavedEvent{})
	})
}
