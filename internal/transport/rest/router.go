package rest

import (
	"net/http"
)

// NewRouter registers the public API routes plus the health probes.
func NewRouter(waitlist *WaitlistHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/signup", waitlist.Signup)
	mux.HandleFunc("GET /api/users", waitlist.Users)
	mux.HandleFunc("GET /api/unsubscribe", waitlist.Unsubscribe)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	return mux
}
