package domain

// Notification events emitted by the signup orchestrator after a committed
// ranking mutation. Delivery is a side effect: consumers may fail without
// affecting the signup itself. Subscribed mirrors the recipient's flag so
// delivery collaborators can honor unsubscribes without a store lookup.

// WelcomeEvent notifies a new entrant of its initial placement.
type WelcomeEvent struct {
	Email        string
	Position     int
	TopRank      *int
	ReferralCode string
	Subscribed   bool
}

// EnteredTop50Event notifies a new entrant that it landed on the leaderboard.
type EnteredTop50Event struct {
	Email      string
	Rank       int
	Position   int
	Subscribed bool
}

// PositionUpdatedEvent notifies a referrer that a credited referral moved it.
type PositionUpdatedEvent struct {
	Email      string
	Position   int
	TopRank    *int
	Subscribed bool
}
