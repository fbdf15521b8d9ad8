package waitlist

import (
	"context"
	"sync"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

var _ Notifier = &notifierMock{}

// notifierMock records events; nil Func fields mean "accept silently",
// which keeps tests that don't care about notification concise.
type notifierMock struct {
	NotifyWelcomeFunc         func(ctx context.Context, ev domain.WelcomeEvent) error
	NotifyEnteredTop50Func    func(ctx context.Context, ev domain.EnteredTop50Event) error
	NotifyPositionUpdatedFunc func(ctx context.Context, ev domain.PositionUpdatedEvent) error

	calls struct {
		Welcome         []domain.WelcomeEvent
		EnteredTop50    []domain.EnteredTop50Event
		PositionUpdated []domain.PositionUpdatedEvent
	}
	mu sync.RWMutex
}

func (mock *notifierMock) NotifyWelcome(ctx context.Context, ev domain.WelcomeEvent) error {
	mock.mu.Lock()
	mock.calls.Welcome = append(mock.calls.Welcome, ev)
	mock.mu.Unlock()
	if mock.NotifyWelcomeFunc == nil {
		return nil
	}
	return mock.NotifyWelcomeFunc(ctx, ev)
}

func (mock *notifierMock) NotifyEnteredTop50(ctx context.Context, ev domain.EnteredTop50Event) error {
	mock.mu.Lock()
	mock.calls.EnteredTop50 = append(mock.calls.EnteredTop50, ev)
	mock.mu.Unlock()
	if mock.NotifyEnteredTop50Func == nil {
		return nil
	}
	return mock.NotifyEnteredTop50Func(ctx, ev)
}

func (mock *notifierMock) NotifyPositionUpdated(ctx context.Context, ev domain.PositionUpdatedEvent) error {
	mock.mu.Lock()
	mock.calls.PositionUpdated = append(mock.calls.PositionUpdated, ev)
	mock.mu.Unlock()
	if mock.NotifyPositionUpdatedFunc == nil {
		return nil
	}
	return mock.NotifyPositionUpdatedFunc(ctx, ev)
}

func (mock *notifierMock) WelcomeCalls() []domain.WelcomeEvent {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Welcome
}

func (mock *notifierMock) EnteredTop50Calls() []domain.EnteredTop50Event {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.EnteredTop50
}

func (mock *notifierMock) PositionUpdatedCalls() []domain.PositionUpdatedEvent {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.PositionUpdated
}
