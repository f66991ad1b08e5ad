package handlers

import (
	"net/http"

	"feedbackportal/auth"
	"feedbackportal/repository"
)

type UserHandler struct {
	Repo     repository.UserRepository
	Sessions *auth.SessionManager
	Views    Renderer
}

// Index sends the user to their home view.
func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, auth.HomePath(auth.UserFromContext(r.Context())))
}

func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.Views, http.StatusOK, "login.html", map[string]any{
		"username": "",
		"error":    "",
	})
}

// Login verifies credentials and starts a session. Failures re-render the
// form with a message and leave any session untouched.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.loginFailed(w, "", "Invalid request")
		return
	}
	form := LoginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := validate.Struct(form); err != nil {
		h.loginFailed(w, form.Username, "Username and password are required")
		return
	}

	user, err := h.Repo.GetUserByUsername(r.Context(), form.Username)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if user == nil || !auth.VerifyPassword(form.Password, user.PasswordHash) {
		h.loginFailed(w, form.Username, "Invalid credentials")
		return
	}

	if err := h.Sessions.Login(w, r, user); err != nil {
		serverError(w, r, err)
		return
	}
	redirect(w, r, auth.HomePath(user))
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, r)
	redirect(w, r, "/login")
}

func (h *UserHandler) loginFailed(w http.ResponseWriter, username, msg string) {
	render(w, h.Views, http.StatusBadRequest, "login.html", map[string]any{
		"username": username,
		"error":    msg,
	})
}
