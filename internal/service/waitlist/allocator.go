package waitlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// allocateInitialPosition returns the position for a new entrant: the
// authoritative entry count plus one. Must be called inside the signup
// transaction with the ranking lock held, so two signups cannot observe
// the same count.
func (s *Service) allocateInitialPosition(ctx context.Context) (int, error) {
	count, err := s.entries.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("allocate position: %w", err)
	}
	return count + 1, nil
}

// advance moves an entry toward the front by delta positions, clamped at 1,
// and returns its new position. Every entry in the vacated band
// [newPos, oldPos-1] is pushed back by one, which keeps the positions a
// dense permutation: one entry fills the vacated slot, each displaced entry
// moves down exactly one.
//
// An entry already at position 1 (or a delta that would not move it) is a
// no-op. Must run inside the signup transaction with the ranking lock held.
func (s *Service) advance(ctx context.Context, entryID uuid.UUID, delta int) (int, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return 0, fmt.Errorf("advance: read entry: %w", err)
	}

	current := entry.Position
	if current <= 1 {
		return current, nil
	}

	newPos := current - delta
	if newPos < 1 {
		newPos = 1
	}
	if newPos == current {
		return current, nil
	}

	shifted, err := s.entries.ShiftPositions(ctx, newPos, current-1)
	if err != nil {
		return 0, fmt.Errorf("advance: shift band [%d,%d]: %w", newPos, current-1, err)
	}
	if want := int64(current - newPos); shifted != want {
		return 0, fmt.Errorf("advance: shifted %d entries in band [%d,%d], want %d", shifted, newPos, current-1, want)
	}

	if err := s.entries.UpdatePosition(ctx, entryID, newPos); err != nil {
		return 0, fmt.Errorf("advance: move entry: %w", err)
	}

	s.log.DebugContext(ctx, "entry advanced",
		slog.String("entry_id", entryID.String()),
		slog.Int("from", current),
		slog.Int("to", newPos),
	)

	return newPos, nil
}
