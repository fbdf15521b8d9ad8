package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// Signup runs one signup transaction: validate, allocate a position and
// referral code, credit the referrer, recompute the leaderboard, then emit
// notification events.
//
// Steps up to and including the recomputation run in a single database
// transaction serialized by the ranking lock; any failure there rolls the
// whole signup back. A duplicate email or invalid input is a declined
// result, not an error. Notification happens after commit and can never
// fail the signup.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.ReferralCode = strings.TrimSpace(input.ReferralCode)

	// Validating.
	if err := input.Validate(); err != nil {
		s.log.InfoContext(ctx, "signup rejected", slog.String("reason", ReasonInvalid))
		return declined(ReasonInvalid), nil
	}

	existing, err := s.entries.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("waitlist.Signup: check email: %w", err)
	}
	if existing != nil {
		s.log.InfoContext(ctx, "signup rejected", slog.String("reason", ReasonDuplicate))
		return declined(ReasonDuplicate), nil
	}

	var (
		entry     *domain.WaitlistEntry
		outcome   domain.ReferralOutcome
		slots     []domain.RankSlot
		duplicate bool
	)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// All position mutations in this transaction happen under the
		// ranking lock; concurrent signups serialize here.
		if err := s.entries.LockRanking(txCtx); err != nil {
			return err
		}

		// Allocating.
		created, err := s.insertEntry(txCtx, input)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				// Lost a race for the same email after the pre-check.
				duplicate = true
				return err
			}
			return err
		}

		// Crediting.
		outcome, err = s.applyReferral(txCtx, input.ReferralCode)
		if err != nil {
			return err
		}

		// Recomputing. A signup whose ranking cannot be recomputed must
		// not be left half-ranked, so this aborts the transaction too.
		slots, err = s.recompute(txCtx)
		if err != nil {
			return err
		}

		entry = created
		return nil
	})
	if err != nil {
		if duplicate {
			s.log.InfoContext(ctx, "signup rejected", slog.String("reason", ReasonDuplicate))
			return declined(ReasonDuplicate), nil
		}
		return nil, fmt.Errorf("waitlist.Signup: %w", err)
	}

	entry.TopRank = rankOf(slots, entry.ID)
	entry.InTop50 = entry.TopRank != nil

	// Notifying. Fire-and-forget: a failed delivery is logged, never
	// escalated into a signup failure.
	s.emitSignupEvents(ctx, entry, outcome, slots)

	s.log.InfoContext(ctx, "signup accepted",
		slog.String("entry_id", entry.ID.String()),
		slog.Int("position", entry.Position),
		slog.Bool("referred", outcome.Credited()),
	)

	return &SignupResult{
		Accepted:     true,
		Position:     entry.Position,
		ReferralCode: entry.ReferralCode,
		TopRank:      entry.TopRank,
	}, nil
}

// insertEntry allocates a position and a unique referral code and inserts
// the new entry. A referral-code collision is retried with a fresh code up
// to the configured attempt limit; running out of attempts is an allocation
// error, not a rejection.
func (s *Service) insertEntry(ctx context.Context, input SignupInput) (*domain.WaitlistEntry, error) {
	position, err := s.allocateInitialPosition(ctx)
	if err != nil {
		return nil, err
	}

	var referredBy *string
	if input.ReferralCode != "" {
		referredBy = &input.ReferralCode
	}

	for attempt := 1; ; attempt++ {
		code, err := newReferralCode(s.cfg.CodeLength)
		if err != nil {
			return nil, err
		}

		entry, err := s.entries.Insert(ctx, &domain.WaitlistEntry{
			ID:           uuid.New(),
			Email:        input.Email,
			ReferralCode: code,
			ReferredBy:   referredBy,
			Position:     position,
			Subscribed:   true,
			CreatedAt:    time.Now().UTC(),
		})
		if err == nil {
			return entry, nil
		}

		if !errors.Is(err, domain.ErrConflict) || attempt >= s.cfg.CodeMaxAttempts {
			return nil, fmt.Errorf("insert entry: %w", err)
		}

		s.log.WarnContext(ctx, "referral code collision, retrying",
			slog.Int("attempt", attempt),
		)
	}
}

// emitSignupEvents delivers the post-commit events in order: welcome to the
// entrant, top-50 entry if it ranked, and a position update to a credited
// referrer.
func (s *Service) emitSignupEvents(ctx context.Context, entry *domain.WaitlistEntry, outcome domain.ReferralOutcome, slots []domain.RankSlot) {
	if err := s.notify.NotifyWelcome(ctx, domain.WelcomeEvent{
		Email:        entry.Email,
		Position:     entry.Position,
		TopRank:      entry.TopRank,
		ReferralCode: entry.ReferralCode,
		Subscribed:   entry.Subscribed,
	}); err != nil {
		s.log.WarnContext(ctx, "welcome notification failed",
			slog.String("entry_id", entry.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	if entry.TopRank != nil {
		if err := s.notify.NotifyEnteredTop50(ctx, domain.EnteredTop50Event{
			Email:      entry.Email,
			Rank:       *entry.TopRank,
			Position:   entry.Position,
			Subscribed: entry.Subscribed,
		}); err != nil {
			s.log.WarnContext(ctx, "top-50 notification failed",
				slog.String("entry_id", entry.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if outcome.Credited() {
		referrer := outcome.Referrer
		if err := s.notify.NotifyPositionUpdated(ctx, domain.PositionUpdatedEvent{
			Email:      referrer.Email,
			Position:   outcome.NewPosition,
			TopRank:    rankOf(slots, referrer.ID),
			Subscribed: referrer.Subscribed,
		}); err != nil {
			s.log.WarnContext(ctx, "position update notification failed",
				slog.String("entry_id", referrer.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
