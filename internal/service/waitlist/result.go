package waitlist

// Decline reasons reported in SignupResult.Reason.
const (
	ReasonDuplicate = "duplicate"
	ReasonInvalid   = "invalid"
)

// SignupResult is the outcome of one signup attempt. A declined signup
// (duplicate email, invalid input) is a normal outcome with Accepted false
// and a Reason; infrastructure failures are returned as errors instead.
type SignupResult struct {
	Accepted     bool
	Reason       string
	Position     int
	ReferralCode string
	TopRank      *int
}

func declined(reason string) *SignupResult {
	return &SignupResult{Accepted: false, Reason: reason}
}
