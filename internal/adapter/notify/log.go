package notify

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// LogNotifier writes ranking events to the log instead of sending email.
// Used when delivery is disabled (development, tests, missing API key).
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.With("adapter", "notify")}
}

func (n *LogNotifier) NotifyWelcome(ctx context.Context, ev domain.WelcomeEvent) error {
	n.log.InfoContext(ctx, "welcome event",
		slog.String("email", ev.Email),
		slog.Int("position", ev.Position),
	)
	return nil
}

func (n *LogNotifier) NotifyEnteredTop50(ctx context.Context, ev domain.EnteredTop50Event) error {
	n.log.InfoContext(ctx, "entered top 50 event",
		slog.String("email", ev.Email),
		slog.Int("rank", ev.Rank),
	)
	return nil
}

func (n *LogNotifier) NotifyPositionUpdated(ctx context.Context, ev domain.PositionUpdatedEvent) error {
	n.log.InfoContext(ctx, "position updated event",
		slog.String("email", ev.Email),
		slog.Int("position", ev.Position),
	)
	return nil
}
