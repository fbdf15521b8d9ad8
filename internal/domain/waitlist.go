package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopSize is the number of distinctly ranked leaderboard slots.
const TopSize = 50

// WaitlistEntry is one waitlist signup record.
//
// Position is the entry's rank in the overall signup order (1 is first).
// Across all entries the positions form a dense permutation of 1..N:
// no gaps, no duplicates. TopRank is the entry's rank on the referral
// leaderboard, nil when the entry is outside the top slots; InTop50 is
// true exactly when TopRank is non-nil.
type WaitlistEntry struct {
	ID            uuid.UUID
	Email         string
	ReferralCode  string
	ReferredBy    *string
	ReferralCount int
	Position      int
	InTop50       bool
	TopRank       *int
	Subscribed    bool
	CreatedAt     time.Time
}

// IsRanked returns true if the entry currently holds a leaderboard slot.
func (e *WaitlistEntry) IsRanked() bool {
	return e.TopRank != nil
}

// RankSlot assigns a leaderboard rank to an entry. Produced by the
// leaderboard recalculation, ordered by rank ascending.
type RankSlot struct {
	EntryID uuid.UUID
	Rank    int
}

// ReferralOutcome reports the result of crediting a referral during signup.
// Referrer is nil when no referral code was supplied or the code did not
// resolve to an entry; that is a normal outcome, not an error.
type ReferralOutcome struct {
	Referrer    *WaitlistEntry
	NewPosition int
}

// Credited returns true if a referrer was found and credited.
func (o ReferralOutcome) Credited() bool {
	return o.Referrer != nil
}
