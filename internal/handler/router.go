package handler

import (
	"net/http"

	"github.com/ujjiboni/dashboard/pkg/response"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth     *AuthHandler
	Accounts *AccountHandler
	Loans    *LoanHandler
	Members  *MemberHandler
	Summary  *SummaryHandler
	Health   *HealthHandler
}

// NewRouter mounts the dashboard API under /api/v1. Everything except
// sign-in, password setup, the session document and health checks needs
// the session id issued at sign-in. CORS is applied by the caller around
// the router.
func NewRouter(h Handlers, sessions SessionSource) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(IdentifySession(sessions))

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/setup-password", h.Auth.SetupPassword).Methods(http.MethodPost)
	api.HandleFunc("/session", h.Auth.Session).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(RequireSession)

	private.HandleFunc("/session/theme", h.Auth.ToggleTheme).Methods(http.MethodPost)

	private.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	private.HandleFunc("/auth/profile", h.Auth.Profile).Methods(http.MethodGet)
	private.HandleFunc("/auth/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)

	private.HandleFunc("/summary", h.Summary.Organization).Methods(http.MethodGet)

	private.HandleFunc("/accounts", h.Accounts.List).Methods(http.MethodGet)
	private.HandleFunc("/accounts", h.Accounts.Create).Methods(http.MethodPost)
	private.HandleFunc("/accounts/{id}", h.Accounts.Get).Methods(http.MethodGet)
	private.HandleFunc("/accounts/{id}/transactions", h.Accounts.Transactions).Methods(http.MethodGet)
	private.HandleFunc("/accounts/{id}/transactions", h.Accounts.EnterTransaction).Methods(http.MethodPost)

	private.HandleFunc("/loans", h.Loans.List).Methods(http.MethodGet)
	private.HandleFunc("/loans", h.Loans.Create).Methods(http.MethodPost)
	private.HandleFunc("/loans/stats", h.Loans.Stats).Methods(http.MethodGet)
	private.HandleFunc("/loans/member-stats", h.Loans.MemberStats).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id}", h.Loans.Get).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id}/emis", h.Loans.EMIs).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id}/emis", h.Loans.RecordEMI).Methods(http.MethodPost)
	private.HandleFunc("/loans/{id}/interests", h.Loans.Interests).Methods(http.MethodGet)
	private.HandleFunc("/loans/{id}/interests", h.Loans.RecordInterest).Methods(http.MethodPost)
	private.HandleFunc("/loans/{id}/interest-form", h.Loans.InterestForm).Methods(http.MethodGet)

	private.HandleFunc("/members", h.Members.List).Methods(http.MethodGet)
	private.HandleFunc("/members", h.Members.Invite).Methods(http.MethodPost)

	return router
}
