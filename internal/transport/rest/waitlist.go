package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/waitlist-backend/internal/domain"
	"github.com/heartmarshall/waitlist-backend/internal/service/waitlist"
)

// waitlistService defines the minimal interface needed by WaitlistHandler.
type waitlistService interface {
	Signup(ctx context.Context, input waitlist.SignupInput) (*waitlist.SignupResult, error)
	Unsubscribe(ctx context.Context, input waitlist.UnsubscribeInput) error
	ListEntries(ctx context.Context) ([]domain.WaitlistEntry, error)
}

// WaitlistHandler serves the waitlist REST endpoints.
type WaitlistHandler struct {
	svc waitlistService
	log *slog.Logger
}

// NewWaitlistHandler creates a WaitlistHandler.
func NewWaitlistHandler(svc waitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{svc: svc, log: logger.With("handler", "waitlist")}
}

type signupRequest struct {
	Email    string `json:"email"`
	Referral string `json:"referral"`
}

type signupResponse struct {
	Message          string `json:"message"`
	ReferralCode     string `json:"referral_code"`
	WaitlistPosition int    `json:"waitlist_position"`
	TopPosition      *int   `json:"top_position"`
}

type entryResponse struct {
	Email            string `json:"email"`
	ReferralCount    int    `json:"referral_count"`
	WaitlistPosition int    `json:"waitlist_position"`
	InTop50          bool   `json:"in_top_50"`
	TopPosition      *int   `json:"top_position"`
	CreatedAt        string `json:"created_at"`
}

// Signup handles POST /api/signup.
func (h *WaitlistHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Signup(r.Context(), waitlist.SignupInput{
		Email:        req.Email,
		ReferralCode: req.Referral,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if !result.Accepted {
		switch result.Reason {
		case waitlist.ReasonDuplicate:
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Already signed up!"})
		default:
			writeError(w, http.StatusBadRequest, "a valid email is required")
		}
		return
	}

	writeJSON(w, http.StatusOK, signupResponse{
		Message:          "Signed up successfully!",
		ReferralCode:     result.ReferralCode,
		WaitlistPosition: result.Position,
		TopPosition:      result.TopRank,
	})
}

// Users handles GET /api/users: the full waitlist in signup order.
func (h *WaitlistHandler) Users(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntries(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			Email:            e.Email,
			ReferralCount:    e.ReferralCount,
			WaitlistPosition: e.Position,
			InTop50:          e.InTop50,
			TopPosition:      e.TopRank,
			CreatedAt:        e.CreatedAt.Format(time.RFC3339Nano),
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// Unsubscribe handles GET /api/unsubscribe?email=...; the link lands in
// email clients, so the success response is a small HTML page rather
// than JSON.
func (h *WaitlistHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	err := h.svc.Unsubscribe(r.Context(), waitlist.UnsubscribeInput{Email: email})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<html><body style="font-family: Arial; text-align: center; padding: 50px;">
<h2>You have been unsubscribed</h2>
<p>%s will no longer receive waitlist updates.</p>
</body></html>`, html.EscapeString(email))
}

func (h *WaitlistHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

