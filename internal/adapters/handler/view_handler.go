package handler

import (
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/middleware"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/projector"
)

type ViewHandler struct {
	sessions ports.SessionService
	cache    *cache.Cache
	refresh  ports.Refresher
	contact  ports.ContactService
}

func NewViewHandler(sessions ports.SessionService, c *cache.Cache, refresh ports.Refresher, contact ports.ContactService) *ViewHandler {
	return &ViewHandler{sessions: sessions, cache: c, refresh: refresh, contact: contact}
}

type ViewResponse struct {
	Scope string         `json:"scope"`
	View  projector.View `json:"view"`
}

// View projects the cache for the current session.
func (h *ViewHandler) View(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		session, ok = h.sessions.Current()
	}
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	view, err := projector.Project(session, h.cache.Snapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewResponse{Scope: view.ScopeName(), View: view})
}

func (h *ViewHandler) Contact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.contact.Get(r.Context()))
}

// Refresh reloads one kind when {kind} is given, otherwise everything
// visible to the session.
func (h *ViewHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var err error
	if kind := r.PathValue("kind"); kind != "" {
		if !knownKind(domain.Kind(kind)) {
			writeError(w, domain.NewValidationError("unknown collection %q", kind))
			return
		}
		err = h.refresh.Refresh(r.Context(), domain.Kind(kind))
	} else {
		err = h.refresh.RefreshAll(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cache.Counts())
}

func knownKind(kind domain.Kind) bool {
	for _, k := range domain.AllKinds {
		if k == kind {
			return true
		}
	}
	return false
}
