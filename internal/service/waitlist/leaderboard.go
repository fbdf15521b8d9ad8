package waitlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// recompute rebuilds the referral leaderboard and returns the assigned
// slots ordered by rank. Ordering is referral count descending with ties
// broken by position ascending; the first min(N, TopSize) entries get
// ranks 1..K.
//
// The update is a two-phase replace-all: clear every flag, then set the
// selected subset. Partial patching would leave a stale rank on an entry
// that just fell off the board. Runs once per signup transaction; reading
// and sorting all N rows per signup is acceptable at waitlist scale and is
// the known limit before an incremental top-K structure is needed.
func (s *Service) recompute(ctx context.Context) ([]domain.RankSlot, error) {
	ranked, err := s.entries.ListByReferralRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("recompute leaderboard: %w", err)
	}

	top := len(ranked)
	if top > s.cfg.TopSize {
		top = s.cfg.TopSize
	}

	slots := make([]domain.RankSlot, top)
	for i := 0; i < top; i++ {
		slots[i] = domain.RankSlot{EntryID: ranked[i].ID, Rank: i + 1}
	}

	if err := s.entries.ClearTop50(ctx); err != nil {
		return nil, fmt.Errorf("recompute leaderboard: clear: %w", err)
	}
	if err := s.entries.SetTop50(ctx, slots); err != nil {
		return nil, fmt.Errorf("recompute leaderboard: set: %w", err)
	}

	return slots, nil
}

// rankOf returns the rank assigned to the given entry, or nil.
func rankOf(slots []domain.RankSlot, entryID uuid.UUID) *int {
	for _, slot := range slots {
		if slot.EntryID == entryID {
			rank := slot.Rank
			return &rank
		}
	}
	return nil
}
