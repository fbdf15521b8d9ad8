// Package notify delivers waitlist ranking events to entrants, either by
// email through Resend or to the log when delivery is disabled.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/heartmarshall/waitlist-backend/internal/adapter/resend"
	"github.com/heartmarshall/waitlist-backend/internal/config"
	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// emailSender defines the minimal interface needed by EmailNotifier.
type emailSender interface {
	Send(ctx context.Context, email resend.Email) (string, error)
}

// EmailNotifier renders ranking events into HTML emails and sends them.
// Unsubscribed recipients are skipped silently.
type EmailNotifier struct {
	sender emailSender
	cfg    config.NotifyConfig
	log    *slog.Logger
}

// NewEmailNotifier creates an EmailNotifier.
func NewEmailNotifier(sender emailSender, cfg config.NotifyConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		sender: sender,
		cfg:    cfg,
		log:    logger.With("adapter", "notify"),
	}
}

// NotifyWelcome emails a new entrant their position and referral link.
func (n *EmailNotifier) NotifyWelcome(ctx context.Context, ev domain.WelcomeEvent) error {
	if !ev.Subscribed {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Your overall position is #%d</p>", ev.Position)
	if ev.TopRank != nil {
		fmt.Fprintf(&b, "<p>Congrats! Top 50 position: #%d</p>", *ev.TopRank)
	}
	fmt.Fprintf(&b, "<p>Share your referral link: <a href=%q>%s</a></p>",
		n.referralLink(ev.ReferralCode), n.referralLink(ev.ReferralCode))
	b.WriteString("<p>Keep inviting friends to climb higher on the waitlist!</p>")
	b.WriteString(n.footer(ev.Email))

	return n.send(ctx, ev.Email, "You joined the waitlist!", b.String())
}

// NotifyEnteredTop50 emails an entrant that made the leaderboard.
func (n *EmailNotifier) NotifyEnteredTop50(ctx context.Context, ev domain.EnteredTop50Event) error {
	if !ev.Subscribed {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Congrats! Top 50 position: #%d</p>", ev.Rank)
	fmt.Fprintf(&b, "<p>Overall position: #%d</p>", ev.Position)
	b.WriteString(n.footer(ev.Email))

	subject := fmt.Sprintf("You're in Top 50! #%d", ev.Rank)
	return n.send(ctx, ev.Email, subject, b.String())
}

// NotifyPositionUpdated emails a referrer whose position moved.
func (n *EmailNotifier) NotifyPositionUpdated(ctx context.Context, ev domain.PositionUpdatedEvent) error {
	if !ev.Subscribed {
		return nil
	}

	top := "Not yet"
	if ev.TopRank != nil {
		top = fmt.Sprintf("#%d", *ev.TopRank)
	}

	var b strings.Builder
	b.WriteString("<p>Your referral joined the waitlist!</p>")
	fmt.Fprintf(&b, "<p>Top 50: %s</p>", top)
	fmt.Fprintf(&b, "<p>Overall: #%d</p>", ev.Position)
	b.WriteString(n.footer(ev.Email))

	return n.send(ctx, ev.Email, "Your position updated!", b.String())
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, html string) error {
	id, err := n.sender.Send(ctx, resend.Email{
		From:    n.cfg.FromEmail,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	n.log.DebugContext(ctx, "email sent",
		slog.String("subject", subject),
		slog.String("message_id", id),
	)
	return nil
}

func (n *EmailNotifier) referralLink(code string) string {
	return n.cfg.PublicURL + "/waitlist?ref=" + url.QueryEscape(code)
}

func (n *EmailNotifier) footer(email string) string {
	link := n.cfg.PublicURL + "/api/unsubscribe?email=" + url.QueryEscape(email)
	return fmt.Sprintf("<p><a href=%q>Unsubscribe</a> from waitlist updates.</p>", link)
}
