package models

import (
	"fmt"

	"github.com/google/uuid"
)

type IdentityKind int

const (
	IdentityNone IdentityKind = iota
	IdentityUser
	IdentityGuest
)

// Identity is who owns a cart or wishlist for the current request: an
// authenticated user or a guest session. Resolved once per request.
type Identity struct {
	Kind      IdentityKind
	UserID    uuid.UUID
	SessionID string
}

func UserIdentity(userID uuid.UUID) Identity {
	return Identity{Kind: IdentityUser, UserID: userID}
}

func GuestIdentity(sessionID string) Identity {
	return Identity{Kind: IdentityGuest, SessionID: sessionID}
}

func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityUser
}

func (i Identity) IsZero() bool {
	return i.Kind == IdentityNone
}

// OwnerKey matches the generated owner_key column used for uniqueness. The
// prefix keeps a session id that happens to look like a user id from
// colliding with that user's cart.
func (i Identity) OwnerKey() string {
	switch i.Kind {
	case IdentityUser:
		return "u:" + i.UserID.String()
	case IdentityGuest:
		return "s:" + i.SessionID
	default:
		return ""
	}
}

func (i Identity) String() string {
	switch i.Kind {
	case IdentityUser:
		return fmt.Sprintf("user:%s", i.UserID)
	case IdentityGuest:
		return fmt.Sprintf("guest:%s", i.SessionID)
	default:
		return "anonymous"
	}
}
