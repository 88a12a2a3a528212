package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"Cinelog/models"
	"Cinelog/services"
)

type contextKey string

const principalKey contextKey = "principal"

// redirectToLogin logs the reason and redirects to the login page
func redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Debug("redirecting to login", "reason", reason, "path", r.URL.Path)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// parseUserID converts various userID types to int64
func parseUserID(userID interface{}) (int64, error) {
	switch v := userID.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

// RequireAuth rejects requests without a valid session and injects the
// resolved principal into the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := services.GetSession(r)
		if err != nil {
			redirectToLogin(w, r, "no session found")
			return
		}

		userID, ok := session.Values["user_id"]
		if !ok {
			redirectToLogin(w, r, "user not authenticated")
			return
		}

		userIDInt, err := parseUserID(userID)
		if err != nil {
			redirectToLogin(w, r, "invalid user_id in session")
			return
		}

		// Verify the user still exists
		user, err := services.GetUserByID(userIDInt)
		if err != nil {
			redirectToLogin(w, r, "user not found in database")
			return
		}

		principal := &models.Principal{ID: user.ID, Username: user.Username}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Principal returns the authenticated principal bound by RequireAuth, or nil.
func Principal(r *http.Request) *models.Principal {
	principal, _ := r.Context().Value(principalKey).(*models.Principal)
	return principal
}

// WithPrincipal binds a principal to the context. Used by tests and by
// handlers that establish a session mid-request (login, registration).
func WithPrincipal(ctx context.Context, principal *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}
