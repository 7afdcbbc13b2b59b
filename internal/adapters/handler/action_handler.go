package handler

import (
	"net/http"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// ActionHandler exposes the dispatcher over HTTP. Scope checks happen in
// the dispatcher, so every route only needs an authenticated session.
type ActionHandler struct {
	actions ports.ActionDispatcher
}

func NewActionHandler(actions ports.ActionDispatcher) *ActionHandler {
	return &ActionHandler{actions: actions}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type RoomServiceOrderRequest struct {
	ReservationID string      `json:"reservationId"`
	Cart          domain.Cart `json:"cart"`
	Notes         string      `json:"notes,omitempty"`
}

type ConversationReadResponse struct {
	Marked int `json:"marked"`
}

func (h *ActionHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.NewReservation
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.CreateReservation(r.Context(), in)
	respond(w, http.StatusCreated, v, err)
}

func (h *ActionHandler) TransitionReservation(w http.ResponseWriter, r *http.Request) {
	var in StatusRequest
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.TransitionReservation(r.Context(), r.PathValue("id"), domain.ReservationStatus(in.Status))
	respond(w, http.StatusOK, v, err)
}

func (h *ActionHandler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	var in StatusRequest
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.UpdateRoomStatus(r.Context(), r.PathValue("id"), domain.RoomStatus(in.Status))
	respond(w, http.StatusOK, v, err)
}

func (h *ActionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var in domain.NewMessage
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.SendMessage(r.Context(), in)
	respond(w, http.StatusCreated, v, err)
}

func (h *ActionHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	v, err := h.actions.MarkMessageRead(r.Context(), r.PathValue("id"))
	respond(w, http.StatusOK, v, err)
}

func (h *ActionHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.actions.MarkConversationRead(r.Context(), r.PathValue("reservationID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConversationReadResponse{Marked: n})
}

func (h *ActionHandler) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	var in domain.NewServiceRequest
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.CreateServiceRequest(r.Context(), in)
	respond(w, http.StatusCreated, v, err)
}

func (h *ActionHandler) TransitionServiceRequest(w http.ResponseWriter, r *http.Request) {
	var in StatusRequest
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.TransitionServiceRequest(r.Context(), r.PathValue("id"), domain.RequestStatus(in.Status))
	respond(w, http.StatusOK, v, err)
}

func (h *ActionHandler) PlaceRoomServiceOrder(w http.ResponseWriter, r *http.Request) {
	var in RoomServiceOrderRequest
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.PlaceRoomServiceOrder(r.Context(), in.ReservationID, &in.Cart, in.Notes)
	respond(w, http.StatusCreated, v, err)
}

func (h *ActionHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var in domain.NewNotification
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.actions.CreateNotification(r.Context(), in)
	respond(w, http.StatusCreated, v, err)
}

func (h *ActionHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	v, err := h.actions.MarkNotificationRead(r.Context(), r.PathValue("id"))
	respond(w, http.StatusOK, v, err)
}

// respond writes the dispatcher result, or its error.
func respond[T any](w http.ResponseWriter, status int, v *T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, v)
}
