package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"feedbackportal/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultCookieName = "session"
	DefaultSessionTTL = 14 * 24 * time.Hour
)

// UserLookup resolves a session's user id to an account.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionManager ties the session cookie to a Store entry holding the
// signed-in user's id.
type SessionManager struct {
	Store      Store
	Users      UserLookup
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func NewSessionManager(store Store, users UserLookup) *SessionManager {
	return &SessionManager{
		Store:      store,
		Users:      users,
		CookieName: DefaultCookieName,
		TTL:        DefaultSessionTTL,
	}
}

// Login starts a fresh session for user. Any session the request already
// carried is discarded.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, user *models.User) error {
	ctx := r.Context()
	if c, err := r.Cookie(m.CookieName); err == nil && c.Value != "" {
		if err := m.Store.Delete(ctx, c.Value); err != nil {
			log.WithError(err).Warn("drop previous session")
		}
	}

	id := uuid.NewString()
	if err := m.Store.Set(ctx, id, user.ID, m.TTL); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout removes the session and expires the cookie.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(m.CookieName); err == nil && c.Value != "" {
		if err := m.Store.Delete(r.Context(), c.Value); err != nil {
			log.WithError(err).Warn("delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser resolves the request's session to a user. It returns nil when
// there is no session, the session expired, or the user no longer exists;
// lookup failures are logged and treated the same way.
func (m *SessionManager) CurrentUser(r *http.Request) *models.User {
	c, err := r.Cookie(m.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	ctx := r.Context()
	userID, err := m.Store.Get(ctx, c.Value)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.WithError(err).Warn("read session")
		}
		return nil
	}

	user, err := m.Users.GetUserByID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("resolve session user")
		return nil
	}
	return user
}
