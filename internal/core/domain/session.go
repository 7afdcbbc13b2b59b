package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type Role string

const (
	RoleReception Role = "reception"
	RoleAdmin     Role = "admin"
)

// Scope is either GuestScope or StaffScope.
type Scope interface {
	scope()
}

type GuestScope struct {
	ReservationID string `json:"reservationId"`
	RoomID        string `json:"roomId"`
	RoomNumber    string `json:"roomNumber"`
	GuestName     string `json:"guestName,omitempty"`
}

type StaffScope struct {
	Role Role `json:"role"`
}

func (GuestScope) scope() {}
func (StaffScope) scope() {}

// Session is the authenticated identity held by the client.
type Session struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Token     string    `json:"token"`
	Scope     Scope     `json:"-"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	Demo      bool      `json:"demo,omitempty"`
}

func (s Session) IsStaff() bool {
	_, ok := s.Scope.(StaffScope)
	return ok
}

// HasRole reports whether the session is staff with one of roles.
func (s Session) HasRole(roles ...Role) bool {
	st, ok := s.Scope.(StaffScope)
	if !ok {
		return false
	}
	for _, r := range roles {
		if st.Role == r {
			return true
		}
	}
	return false
}

// ScopeName is "guest", "reception" or "admin".
func (s Session) ScopeName() string {
	switch sc := s.Scope.(type) {
	case GuestScope:
		return "guest"
	case StaffScope:
		return string(sc.Role)
	}
	return ""
}

type sessionJSON struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt,omitempty"`
	Demo      bool        `json:"demo,omitempty"`
	Guest     *GuestScope `json:"guest,omitempty"`
	Staff     *StaffScope `json:"staff,omitempty"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Demo:      s.Demo,
	}
	switch sc := s.Scope.(type) {
	case GuestScope:
		out.Guest = &sc
	case StaffScope:
		out.Staff = &sc
	default:
		return nil, fmt.Errorf("session %q has no scope", s.UserID)
	}
	return json.Marshal(out)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Session{
		UserID:    in.UserID,
		Name:      in.Name,
		Email:     in.Email,
		Token:     in.Token,
		ExpiresAt: in.ExpiresAt,
		Demo:      in.Demo,
	}
	switch {
	case in.Guest != nil && in.Staff != nil:
		return fmt.Errorf("session %q has both guest and staff scope", in.UserID)
	case in.Guest != nil:
		s.Scope = *in.Guest
	case in.Staff != nil:
		if in.Staff.Role != RoleReception && in.Staff.Role != RoleAdmin {
			return fmt.Errorf("session %q has unknown staff role %q", in.UserID, in.Staff.Role)
		}
		s.Scope = *in.Staff
	default:
		return fmt.Errorf("session %q has no scope", in.UserID)
	}
	return nil
}

// Credentials is either StaffCredentials or GuestCredentials.
type Credentials interface {
	credentials()
}

type StaffCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GuestCredentials struct {
	RoomNumber string `json:"roomNumber" validate:"required"`
	Document   string `json:"document" validate:"required"`
}

func (StaffCredentials) credentials() {}
func (GuestCredentials) credentials() {}
