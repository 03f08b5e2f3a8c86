package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "carservice-session"

	userIDSessionKey       = "userID"
	anonymousKeySessionKey = "anonKey"
)

// SessionStore keeps two things in the cookie: the logged-in user's ID, and
// the anonymous key that scopes a visitor's cart before they log in. The
// anonymous key is minted lazily and stays stable for the cookie's lifetime,
// so every visitor gets their own cart.
type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	AnonymousKey(w http.ResponseWriter, r *http.Request) string
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A stale or tampered cookie still yields a usable new session.
		log.Printf("session: error decoding cookie: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session := c.getSession(r)
	if session == nil {
		return ""
	}
	userID, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) AnonymousKey(w http.ResponseWriter, r *http.Request) string {
	session := c.getSession(r)
	if key, ok := session.Values[anonymousKeySessionKey].(string); ok && key != "" {
		return key
	}
	key := uuid.New().String()
	session.Values[anonymousKeySessionKey] = key
	if err := session.Save(r, w); err != nil {
		log.Printf("session: error saving anonymous key: %v", err)
	}
	return key
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
