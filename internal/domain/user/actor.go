package user

import "github.com/google/uuid"

// Actor is the authenticated caller of a single request. It is handed to every command
// explicitly; nothing in the service keeps the current user in shared state.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// CanActFor reports whether the actor may operate on a record owned by ownerID.
func (a Actor) CanActFor(ownerID uuid.UUID) bool {
	return a.ID == ownerID || a.IsStaff()
}
