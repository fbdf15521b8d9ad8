package waitlist

import (
	"strings"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
)

// SignupInput holds the parameters for a signup request.
// ReferralCode is the code of the entry that referred this signup, if any.
type SignupInput struct {
	Email        string
	ReferralCode string
}

// Validate performs a syntactic check on the input. Email verification is
// out of scope; this only rejects values that cannot be an address.
func (i SignupInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > 254:
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	case !looksLikeEmail(email):
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}

	if len(i.ReferralCode) > 64 {
		errs = append(errs, domain.FieldError{Field: "referral", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// looksLikeEmail checks for one "@" with non-empty local and domain parts
// and no whitespace. Deliverability is the email collaborator's problem.
func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.IndexByte(s[at+1:], '@') >= 0 {
		return false
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

// UnsubscribeInput holds the parameters for opting out of notifications.
type UnsubscribeInput struct {
	Email string
}

// Validate checks the email field.
func (i UnsubscribeInput) Validate() error {
	if strings.TrimSpace(i.Email) == "" {
		return domain.NewValidationError("email", "required")
	}
	return nil
}
