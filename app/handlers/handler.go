package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/services"
)

// identityFromRequest reads what IdentityMiddleware stored in the context.
func identityFromRequest(r *http.Request) services.Identity {
	var identity services.Identity
	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok {
		identity.UserID = userID
	}
	if sessionKey, ok := r.Context().Value(helpers.ContextKeySessionKey).(string); ok {
		identity.SessionKey = sessionKey
	}
	return identity
}

// redirectWithMessage carries a one-shot status/message pair through a
// redirect as query parameters, the way every POST handler reports back.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, message string) {
	target := fmt.Sprintf("%s?status=%s&message=%s", path, url.QueryEscape(status), url.QueryEscape(message))
	http.Redirect(w, r, target, http.StatusSeeOther)
}
