package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/utils/sessions"
)

// IdentityMiddleware resolves who is shopping and stores it in the request
// context: the user ID and user record when logged in, and always the
// session key that scopes an anonymous cart. The key is minted on first
// contact so two visitors never resolve to the same cart.
func IdentityMiddleware(sessionStore sessions.SessionStore, userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionKey := sessionStore.AnonymousKey(w, r)
			ctx = context.WithValue(ctx, helpers.ContextKeySessionKey, sessionKey)

			if userID := sessionStore.GetUserID(r); userID != "" {
				user, err := userRepo.FindByID(ctx, userID)
				if err != nil {
					log.Printf("IdentityMiddleware: error loading user %s: %v", userID, err)
				}
				if user != nil {
					ctx = context.WithValue(ctx, helpers.ContextKeyUserID, userID)
					ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous visitors to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); !ok || userID == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			if override := r.Form.Get("_method"); override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
