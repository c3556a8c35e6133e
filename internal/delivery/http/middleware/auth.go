package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	h "invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/domain"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// SessionCookieName is the cookie that carries the signed admin session token.
const SessionCookieName = "admin_session"

// SetAdminID returns a context with the admin ID set. Used by auth middleware.
func SetAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// AdminIDFromContext returns the authenticated admin ID from the context, if present.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok && id != ""
}

// SessionToken returns the session cookie value, or "" when the cookie is absent.
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// RequireAdmin returns a wrapper that resolves the session cookie to an admin and sets the admin ID in the request context.
// A missing, forged or expired session gets 401 {"error":"Unauthorized"} before the request body is read.
func RequireAdmin(auth domain.SessionAuthenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			adminID, err := auth.Authenticate(r.Context(), SessionToken(r))
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					h.WriteJSONError(w, http.StatusUnauthorized, h.MsgUnauthorized)
					return
				}
				logger.ErrorContext(r.Context(), "session lookup failed", "path", r.URL.Path, "method", r.Method, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.MsgInternalServerError)
				return
			}
			next(w, r.WithContext(SetAdminID(r.Context(), adminID)))
		}
	}
}
