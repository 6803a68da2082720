package handler

import (
	"net/http"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/service"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/pkg/response"
)

type AuthHandler struct {
	auth service.Auth
}

func NewAuthHandler(auth service.Auth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	grant, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	setSessionCookie(w, grant.SessionID)
	response.Success(w, grant)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	clearSessionCookie(w)
	response.Message(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Profile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.auth.ChangePassword(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusOK, message)
}

func (h *AuthHandler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.SetupPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.auth.SetupPassword(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.SessionID != "" {
		setSessionCookie(w, resp.SessionID)
	}
	response.Success(w, resp)
}

// Session reports the persisted dashboard state; it never fails. Callers
// without the session id only learn the theme.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	state := h.auth.Session()
	if !authorized(r.Context()) {
		state = session.State{Theme: state.Theme, Members: []domain.User{}}
	}
	response.Success(w, state)
}

func (h *AuthHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.auth.ToggleTheme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, map[string]string{"theme": string(theme)})
}
