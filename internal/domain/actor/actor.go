package actor

import "errors"

var ErrForbidden = errors.New("actor is not allowed to perform this operation")

type Role string

const (
	// Developer-side users open and edit proposals.
	RoleDeveloper Role = "developer"
	// Customer-side users are registered as approvers and record decisions.
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Actor is an already-authenticated caller identity. Authentication itself
// happens upstream; the engine only checks roles and ownership.
type Actor struct {
	ID   string // 32-char lowercase hex user id
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Is reports whether the actor is the given user or an admin.
func (a Actor) Is(userID string) bool { return a.IsAdmin() || a.ID == userID }
