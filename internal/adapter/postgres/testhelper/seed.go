package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEntry inserts a waitlist entry at the given position with a unique
// email and referral code. Returns the filled domain.WaitlistEntry.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, position int) domain.WaitlistEntry {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	entry := domain.WaitlistEntry{
		ID:           uuid.New(),
		Email:        "entrant-" + suffix + "@example.com",
		ReferralCode: strings.ToUpper(suffix),
		Position:     position,
		Subscribed:   true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO waitlist (id, email, referral_code, position, subscribed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Email, entry.ReferralCode, entry.Position, entry.Subscribed, entry.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return entry
}

// SetReferralCount sets an entry's referral count directly. Ranking tests
// use it to shape the leaderboard without replaying individual referrals.
func SetReferralCount(t *testing.T, pool *pgxpool.Pool, id uuid.UUID, count int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE waitlist SET referral_count = $1 WHERE id = $2`, count, id)
	if err != nil {
		t.Fatalf("testhelper: SetReferralCount: %v", err)
	}
}

// Positions returns the multiset of positions currently stored, for
// asserting the dense-permutation invariant.
func Positions(t *testing.T, pool *pgxpool.Pool) []int {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		`SELECT position FROM waitlist ORDER BY position ASC`)
	if err != nil {
		t.Fatalf("testhelper: Positions query: %v", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			t.Fatalf("testhelper: Positions scan: %v", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("testhelper: Positions rows: %v", err)
	}

	return positions
}
