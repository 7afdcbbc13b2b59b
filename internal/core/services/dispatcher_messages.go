package services

import (
	"context"
	"strings"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// SendMessage appends the message optimistically and swaps in the
// server's copy once acknowledged. The sender is derived from the session.
func (d *Dispatcher) SendMessage(ctx context.Context, in domain.NewMessage) (*domain.Message, error) {
	a, err := d.begin("send_message", domain.KindMessages)
	if err != nil {
		return nil, err
	}

	msg, err := d.sendMessage(ctx, a.session, in)
	id := ""
	if msg != nil {
		id = msg.ID
	}
	d.finish(ctx, a, id, err)
	return msg, err
}

func (d *Dispatcher) sendMessage(ctx context.Context, session domain.Session, in domain.NewMessage) (*domain.Message, error) {
	in.Content = strings.TrimSpace(in.Content)

	switch sc := session.Scope.(type) {
	case domain.GuestScope:
		if in.ReservationID == "" {
			in.ReservationID = sc.ReservationID
		}
		if err := ownReservation(session, in.ReservationID); err != nil {
			return nil, err
		}
		in.Sender = domain.SenderGuest
		in.RoomNumber = sc.RoomNumber
	case domain.StaffScope:
		res, ok := d.cache.Reservations.Get(in.ReservationID)
		if !ok {
			return nil, domain.NewValidationError("reservation %q is not known", in.ReservationID)
		}
		in.Sender = domain.SenderReception
		if room, ok := d.cache.Rooms.Get(res.RoomID); ok {
			in.RoomNumber = room.Number
		}
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	pending := d.cache.Messages.Stage(domain.Message{
		ID:            d.newID(),
		ReservationID: in.ReservationID,
		RoomNumber:    in.RoomNumber,
		Content:       in.Content,
		Sender:        in.Sender,
		Timestamp:     d.now(),
	})

	msg, err := d.api.SendMessage(ctx, in)
	if err != nil {
		pending.Revert()
		return nil, err
	}
	pending.Commit(*msg)
	return msg, nil
}

// MarkMessageRead is idempotent: an already read message is returned
// without calling the backend.
func (d *Dispatcher) MarkMessageRead(ctx context.Context, id string) (*domain.Message, error) {
	a, err := d.begin("mark_message_read", domain.KindMessages)
	if err != nil {
		return nil, err
	}

	msg, err := d.markMessageRead(ctx, a.session, id)
	d.finish(ctx, a, id, err)
	return msg, err
}

func (d *Dispatcher) markMessageRead(ctx context.Context, session domain.Session, id string) (*domain.Message, error) {
	current, ok := d.cache.Messages.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError(domain.KindMessages, id)
	}
	if err := ownReservation(session, current.ReservationID); err != nil {
		return nil, err
	}
	if current.Read {
		return &current, nil
	}

	pending, err := d.cache.Messages.StagePatch(id, func(m *domain.Message) error {
		m.Read = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := d.api.MarkMessageRead(ctx, id); err != nil {
		pending.Revert()
		return nil, err
	}

	current.Read = true
	pending.Commit(current)
	return &current, nil
}

// MarkConversationRead marks every unread message the other party sent on
// a reservation as read and returns how many changed.
func (d *Dispatcher) MarkConversationRead(ctx context.Context, reservationID string) (int, error) {
	a, err := d.begin("mark_conversation_read", domain.KindMessages)
	if err != nil {
		return 0, err
	}

	n, err := d.markConversationRead(ctx, a.session, reservationID)
	d.finish(ctx, a, reservationID, err)
	return n, err
}

func (d *Dispatcher) markConversationRead(ctx context.Context, session domain.Session, reservationID string) (int, error) {
	if reservationID == "" {
		return 0, domain.NewValidationError("reservation id is required")
	}
	if err := ownReservation(session, reservationID); err != nil {
		return 0, err
	}

	reader, from := domain.SenderReception, domain.SenderGuest
	if !session.IsStaff() {
		reader, from = domain.SenderGuest, domain.SenderReception
	}

	unread := d.cache.Messages.Find(func(m domain.Message) bool {
		return m.ReservationID == reservationID && m.Sender == from && !m.Read
	})
	if len(unread) == 0 {
		return 0, nil
	}

	staged := make([]*cache.Pending[domain.Message], 0, len(unread))
	confirmed := make([]domain.Message, 0, len(unread))
	for _, m := range unread {
		p, err := d.cache.Messages.StagePatch(m.ID, func(m *domain.Message) error {
			m.Read = true
			return nil
		})
		if err != nil {
			continue
		}
		m.Read = true
		staged = append(staged, p)
		confirmed = append(confirmed, m)
	}

	if err := d.api.MarkConversationRead(ctx, reservationID, reader); err != nil {
		// Revert newest first so each entity returns to its own prior state.
		for i := len(staged) - 1; i >= 0; i-- {
			staged[i].Revert()
		}
		return 0, err
	}
	for i, p := range staged {
		p.Commit(confirmed[i])
	}
	return len(staged), nil
}
