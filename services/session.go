package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"Cinelog/config"
	"Cinelog/database"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const SessionName = "cinelog_session"

const sessionMaxAge = 86400 * 7 // 7 days

var store sessions.Store

// PGStore keeps session state server-side in the sessions table. The cookie
// only carries a signed opaque token; destroying the row invalidates every
// request bearing the old cookie.
type PGStore struct {
	codec   *securecookie.SecureCookie
	options *sessions.Options
}

func InitSessionStore(cfg *config.Config) {
	secure := cfg.Environment == "production"
	store = NewPGStore([]byte(cfg.SessionSecret), secure)
}

func NewPGStore(secret []byte, secure bool) *PGStore {
	return &PGStore{
		codec: securecookie.New(secret, nil),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   sessionMaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (s *PGStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *PGStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var token string
	if err := s.codec.Decode(name, c.Value, &token); err != nil {
		// Tampered or stale cookie; hand out a fresh session
		return session, nil
	}

	var userID int64
	var username string
	err = database.DB.QueryRow(
		"SELECT user_id, username FROM sessions WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP",
		token,
	).Scan(&userID, &username)
	if err != nil {
		// Logged out or expired
		return session, nil
	}

	session.ID = token
	session.Values["user_id"] = userID
	session.Values["username"] = username
	session.IsNew = false
	return session, nil
}

func (s *PGStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if _, err := database.DB.Exec("DELETE FROM sessions WHERE token = $1", session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionToken()
	}

	userID, _ := session.Values["user_id"].(int64)
	username, _ := session.Values["username"].(string)
	expiresAt := time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)

	_, err := database.DB.Exec(`
		INSERT INTO sessions (token, user_id, username, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			expires_at = EXCLUDED.expires_at`,
		session.ID, userID, username, expiresAt,
	)
	if err != nil {
		return err
	}

	encoded, err := s.codec.Encode(session.Name(), session.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func newSessionToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to read session token entropy: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func GetSession(r *http.Request) (*sessions.Session, error) {
	if store == nil {
		return nil, errors.New("session store not initialized")
	}
	return store.Get(r, SessionName)
}

func SaveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	return session.Save(r, w)
}
