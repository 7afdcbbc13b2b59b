package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

var amounts = message.NewPrinter(language.English)

func (d *Dispatcher) CreateServiceRequest(ctx context.Context, in domain.NewServiceRequest) (*domain.ServiceRequest, error) {
	a, err := d.begin("create_service_request", domain.KindServiceRequests)
	if err != nil {
		return nil, err
	}

	req, err := d.createServiceRequest(ctx, a.session, in)
	id := ""
	if req != nil {
		id = req.ID
	}
	d.finish(ctx, a, id, err)
	return req, err
}

func (d *Dispatcher) createServiceRequest(ctx context.Context, session domain.Session, in domain.NewServiceRequest) (*domain.ServiceRequest, error) {
	in.Details = strings.TrimSpace(in.Details)
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}

	switch sc := session.Scope.(type) {
	case domain.GuestScope:
		if in.ReservationID == "" {
			in.ReservationID = sc.ReservationID
		}
		if err := ownReservation(session, in.ReservationID); err != nil {
			return nil, err
		}
		in.RoomNumber = sc.RoomNumber
		in.GuestName = sc.GuestName
		if in.GuestName == "" {
			in.GuestName = session.Name
		}
	case domain.StaffScope:
		res, ok := d.cache.Reservations.Get(in.ReservationID)
		if !ok {
			return nil, domain.NewValidationError("reservation %q is not known", in.ReservationID)
		}
		if room, ok := d.cache.Rooms.Get(res.RoomID); ok {
			in.RoomNumber = room.Number
		}
		if guest, ok := d.cache.Guests.Get(res.GuestID); ok {
			in.GuestName = guest.FullName()
		}
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.RoomNumber == "" {
		return nil, domain.NewValidationError("reservation %q has no resolvable room", in.ReservationID)
	}

	req, err := d.api.CreateServiceRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	d.cache.ServiceRequests.Upsert(*req)
	return req, nil
}

// TransitionServiceRequest advances a request. Guests may only cancel
// their own requests.
func (d *Dispatcher) TransitionServiceRequest(ctx context.Context, id string, to domain.RequestStatus) (*domain.ServiceRequest, error) {
	a, err := d.begin("transition_service_request", domain.KindServiceRequests)
	if err != nil {
		return nil, err
	}

	req, err := d.transitionServiceRequest(ctx, a.session, id, to)
	d.finish(ctx, a, id, err)
	return req, err
}

func (d *Dispatcher) transitionServiceRequest(ctx context.Context, session domain.Session, id string, to domain.RequestStatus) (*domain.ServiceRequest, error) {
	if !to.Valid() {
		return nil, domain.NewValidationError("unknown service request status %q", to)
	}
	current, ok := d.cache.ServiceRequests.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError(domain.KindServiceRequests, id)
	}
	if err := ownReservation(session, current.ReservationID); err != nil {
		return nil, err
	}
	if !session.IsStaff() && to != domain.RequestCancelled {
		return nil, domain.NewForbiddenError("guests may only cancel requests")
	}
	if !current.Status.CanTransition(to) {
		return nil, domain.NewValidationError("service request cannot move from %s to %s", current.Status, to)
	}

	req, err := d.api.UpdateServiceRequestStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	d.cache.ServiceRequests.Upsert(*req)
	return req, nil
}

// PlaceRoomServiceOrder turns a cart into a room-service request. The cart
// is cleared only after the backend accepted the request.
func (d *Dispatcher) PlaceRoomServiceOrder(ctx context.Context, reservationID string, cart *domain.Cart, notes string) (*domain.ServiceRequest, error) {
	a, err := d.begin("place_room_service_order", domain.KindServiceRequests)
	if err != nil {
		return nil, err
	}

	req, err := d.placeRoomServiceOrder(ctx, a.session, reservationID, cart, notes)
	id := ""
	if req != nil {
		id = req.ID
	}
	d.finish(ctx, a, id, err)
	return req, err
}

func (d *Dispatcher) placeRoomServiceOrder(ctx context.Context, session domain.Session, reservationID string, cart *domain.Cart, notes string) (*domain.ServiceRequest, error) {
	if cart == nil || cart.Empty() {
		return nil, domain.NewValidationError("cart is empty")
	}
	if err := validateInput(cart); err != nil {
		return nil, err
	}

	details, err := d.describeOrder(cart, notes)
	if err != nil {
		return nil, err
	}

	req, err := d.createServiceRequest(ctx, session, domain.NewServiceRequest{
		ReservationID: reservationID,
		Type:          domain.ServiceRoomService,
		Details:       details,
		Priority:      domain.PriorityMedium,
	})
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return req, nil
}

// describeOrder renders the order intent, e.g.
// "Room service order: 2x Club Sandwich ($24,000), 1x Lemonade ($8,000). Total: $32,000".
func (d *Dispatcher) describeOrder(cart *domain.Cart, notes string) (string, error) {
	lines := make([]string, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		name := l.ItemID
		if item, ok := d.cache.Catalog.Get(l.ItemID); ok {
			if !item.Available {
				return "", domain.NewValidationError("%s is not available", item.Name)
			}
			name = item.Name
		}
		lines = append(lines, fmt.Sprintf("%dx %s ($%s)", l.Quantity, name, formatAmount(l.Price*int64(l.Quantity))))
	}

	details := fmt.Sprintf("Room service order: %s. Total: $%s", strings.Join(lines, ", "), formatAmount(cart.Total()))
	if notes = strings.TrimSpace(notes); notes != "" {
		details += "\nNotes: " + notes
	}
	return details, nil
}

func formatAmount(v int64) string {
	return amounts.Sprintf("%d", v)
}
