package handlers

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// resolveIdentity decides who owns the cart or wishlist touched by r. A
// verified bearer token always wins; otherwise the session id from the body
// or the sessionId query parameter names a guest. The zero Identity means
// neither was supplied.
func resolveIdentity(r *http.Request, bodySessionID string) models.Identity {

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return models.UserIdentity(claims.UserID)
	}

	sessionID := strings.TrimSpace(bodySessionID)
	if sessionID == "" {
		sessionID = strings.TrimSpace(r.URL.Query().Get("sessionId"))
	}

	if sessionID == "" {
		return models.Identity{}
	}

	return models.GuestIdentity(sessionID)
}
