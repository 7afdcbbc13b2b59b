package handler

import (
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type SessionResponse struct {
	Message string          `json:"message,omitempty"`
	Scope   string          `json:"scope"`
	Session *domain.Session `json:"session"`
}

func (h *SessionHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.StaffCredentials
	if err := decode(r, &creds); err != nil {
		writeError(w, err)
		return
	}
	h.login(w, r, creds)
}

func (h *SessionHandler) GuestLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.GuestCredentials
	if err := decode(r, &creds); err != nil {
		writeError(w, err)
		return
	}
	h.login(w, r, creds)
}

func (h *SessionHandler) login(w http.ResponseWriter, r *http.Request, creds domain.Credentials) {
	session, err := h.sessions.Login(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Message: "Login successful",
		Scope:   session.ScopeName(),
		Session: session,
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Current()
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Scope: session.ScopeName(), Session: &session})
}
