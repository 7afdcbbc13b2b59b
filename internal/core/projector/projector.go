// Package projector derives role-scoped views from a cache snapshot.
// Every function here is pure.
package projector

import (
	"fmt"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/cache"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// View is one of *GuestView, *ReceptionView or *AdminView.
type View interface {
	ScopeName() string
}

// Project builds the view matching the session scope.
func Project(session domain.Session, snap cache.Snapshot) (View, error) {
	switch sc := session.Scope.(type) {
	case domain.GuestScope:
		return Guest(sc, snap), nil
	case domain.StaffScope:
		switch sc.Role {
		case domain.RoleReception:
			return Reception(snap), nil
		case domain.RoleAdmin:
			return Admin(snap), nil
		}
		return nil, fmt.Errorf("unknown staff role %q", sc.Role)
	}
	return nil, fmt.Errorf("session %q has no scope", session.UserID)
}
