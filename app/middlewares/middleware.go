package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/utils/sessions"
)

// AuthMiddleware loads the session user into the request context. It never
// blocks a request; missing or broken sessions just leave the context empty.
func AuthMiddleware(userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				log.Printf("AuthMiddleware: session user %s not found: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a handler behind authentication and, when roles are
// given, a role match. Unauthenticated requests bounce to the login page;
// a role mismatch is a hard 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.CurrentUser(r)
			if user == nil {
				http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("You must log in first."), http.StatusFound)
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Printf("RequireRole: user %s (%s) denied, role %q not allowed", user.ID, user.Username, user.Role)
			http.Error(w, "Insufficient permissions.", http.StatusForbidden)
		})
	}
}
