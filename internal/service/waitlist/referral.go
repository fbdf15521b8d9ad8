package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// applyReferral credits the entry owning the given referral code and
// advances its position. An empty or unresolvable code yields an empty
// outcome — the signup proceeds, nobody gets credit. That covers codes that
// were mistyped, revoked, or never existed.
//
// The credit itself is a single atomic increment at the store, so two
// concurrent referrals of the same referrer are both counted. Must run
// inside the signup transaction with the ranking lock held.
func (s *Service) applyReferral(ctx context.Context, code string) (domain.ReferralOutcome, error) {
	if code == "" {
		return domain.ReferralOutcome{}, nil
	}

	referrer, err := s.entries.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(ctx, "referral code did not resolve", slog.String("code", code))
			return domain.ReferralOutcome{}, nil
		}
		return domain.ReferralOutcome{}, fmt.Errorf("apply referral: %w", err)
	}

	newCount, err := s.entries.IncrementReferralCount(ctx, referrer.ID)
	if err != nil {
		return domain.ReferralOutcome{}, fmt.Errorf("apply referral: credit referrer: %w", err)
	}
	referrer.ReferralCount = newCount

	newPos, err := s.advance(ctx, referrer.ID, s.cfg.AdvanceDelta)
	if err != nil {
		return domain.ReferralOutcome{}, fmt.Errorf("apply referral: %w", err)
	}
	referrer.Position = newPos

	s.log.InfoContext(ctx, "referral credited",
		slog.String("referrer_id", referrer.ID.String()),
		slog.Int("referral_count", newCount),
		slog.Int("position", newPos),
	)

	return domain.ReferralOutcome{Referrer: referrer, NewPosition: newPos}, nil
}
