// Package waitlist implements the ranking core: position allocation,
// referral crediting, leaderboard recalculation, and the signup
// orchestration that composes them into one transaction.
package waitlist

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/waitlist-backend/internal/config"
	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// entryRepo defines the store interface needed by the ranking core.
// Every method is individually atomic; composing them atomically is the
// orchestrator's job (RunInTx + LockRanking).
type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WaitlistEntry, error)
	GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.WaitlistEntry, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	IncrementReferralCount(ctx context.Context, id uuid.UUID) (int, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	ShiftPositions(ctx context.Context, from, to int) (int64, error)
	ListByReferralRank(ctx context.Context) ([]domain.WaitlistEntry, error)
	ListAll(ctx context.Context) ([]domain.WaitlistEntry, error)
	ClearTop50(ctx context.Context) error
	SetTop50(ctx context.Context, slots []domain.RankSlot) error
	SetSubscribed(ctx context.Context, email string, subscribed bool) error
	LockRanking(ctx context.Context) error
}

// txManager defines the transaction manager interface needed by the core.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier is the delivery collaborator consuming ranking events.
// Exported so the composition root can pick an implementation (email, log).
// Implementations may fail; the core logs and moves on.
type Notifier interface {
	NotifyWelcome(ctx context.Context, ev domain.WelcomeEvent) error
	NotifyEnteredTop50(ctx context.Context, ev domain.EnteredTop50Event) error
	NotifyPositionUpdated(ctx context.Context, ev domain.PositionUpdatedEvent) error
}

// Service implements the waitlist ranking operations.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	tx      txManager
	notify  Notifier
	cfg     config.WaitlistConfig
}

// NewService creates a new waitlist service instance.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	tx txManager,
	notify Notifier,
	cfg config.WaitlistConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "waitlist"),
		entries: entries,
		tx:      tx,
		notify:  notify,
		cfg:     cfg,
	}
}
