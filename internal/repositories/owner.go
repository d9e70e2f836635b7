package repository

import (
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// ownerFilter returns the WHERE fragment selecting rows owned by owner, using
// placeholder $pos, and the value to bind to it.
func ownerFilter(owner models.Identity, pos int) (string, any, error) {
	switch owner.Kind {
	case models.IdentityUser:
		return fmt.Sprintf("user_id = $%d", pos), owner.UserID, nil
	case models.IdentityGuest:
		return fmt.Sprintf("session_id = $%d", pos), owner.SessionID, nil
	default:
		return "", nil, ErrNoOwner
	}
}

// ownerColumns returns the user_id and session_id values for an insert.
// Exactly one of them is non-nil.
func ownerColumns(owner models.Identity) (any, any, error) {
	switch owner.Kind {
	case models.IdentityUser:
		return owner.UserID, nil, nil
	case models.IdentityGuest:
		return nil, owner.SessionID, nil
	default:
		return nil, nil, ErrNoOwner
	}
}
