package waitlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Unsubscribe opts the given email out of notification events. The entry
// keeps its position and ranks; only delivery stops. Returns
// domain.ErrNotFound for an unknown email.
func (s *Service) Unsubscribe(ctx context.Context, input UnsubscribeInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	email := strings.TrimSpace(input.Email)
	if err := s.entries.SetSubscribed(ctx, email, false); err != nil {
		return fmt.Errorf("waitlist.Unsubscribe: %w", err)
	}

	s.log.InfoContext(ctx, "entry unsubscribed", slog.String("email", email))
	return nil
}
