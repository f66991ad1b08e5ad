package handlers

import (
	"net/http"

	"feedbackportal/auth"
)

// RequireUser resolves the session user. Requests without one are sent to
// the login page; the rest carry the user in their context.
func RequireUser(sessions *auth.SessionManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := sessions.CurrentUser(r)
		if user == nil {
			redirect(w, r, "/login")
			return
		}
		next(w, r.WithContext(auth.WithUser(r.Context(), user)))
	}
}
