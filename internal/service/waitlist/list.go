package waitlist

import (
	"context"
	"fmt"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// ListEntries returns every waitlist entry ordered by signup time,
// as shown on the admin listing.
func (s *Service) ListEntries(ctx context.Context) ([]domain.WaitlistEntry, error) {
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("waitlist.ListEntries: %w", err)
	}
	return entries, nil
}
