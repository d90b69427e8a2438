package handlers

import (
	"net/http"
	"net/url"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/httpx"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/services"
)

type AuthHandler struct {
	Accounts *services.AccountService
	Sessions *auth.Manager
}

func NewAuthHandler(accounts *services.AccountService, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Sessions: sessions}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	if sess.Authenticated() {
		http.Redirect(w, r, roleHome(sess.Role()), http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		// The signup token is single-use per page load; every render
		// rotates it, unlike the session-lifetime token other forms use.
		renderTemplate(w, r, "signup", map[string]any{
			"CSRFToken": sess.RotateCSRF(),
			"Form":      sess.PopForm(),
		})
		return
	}
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "GET, POST")
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	if !sess.VerifyCSRF(r.PostFormValue("csrf_token")) {
		h.signupFailed(w, r, sess, "Invalid form submission")
		return
	}
	in := services.RegisterInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	if _, err := h.Accounts.Register(in); err != nil {
		switch {
		case err == services.ErrDuplicateAccount:
			h.signupFailed(w, r, sess, "Username or email already exists")
		default:
			if ve, ok := services.AsValidation(err); ok {
				h.signupFailed(w, r, sess, ve.Reason)
				return
			}
			logger.L.Error().Err(err).Msg("signup failed")
			h.signupFailed(w, r, sess, genericError)
		}
		return
	}
	sess.FlashSuccess("Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// signupFailed stashes the non-password fields for repopulation and
// sends the user back to the form.
func (h *AuthHandler) signupFailed(w http.ResponseWriter, r *http.Request, sess *auth.Session, reason string) {
	sess.FlashError(reason)
	sess.StashForm(url.Values{
		"username": {r.PostFormValue("username")},
		"email":    {r.PostFormValue("email")},
	})
	http.Redirect(w, r, "/signup", http.StatusSeeOther)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	// Already authenticated sessions skip straight to their landing
	// page without re-checking credentials.
	if sess.Authenticated() {
		http.Redirect(w, r, roleHome(sess.Role()), http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "login", nil)
		return
	}
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "GET, POST")
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		sess.FlashError("Username and password are required")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	user, err := h.Accounts.Authenticate(username, password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			sess.FlashError("Invalid username or password")
		} else {
			logger.L.Error().Err(err).Msg("login failed")
			sess.FlashError(genericError)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	// Fresh identifier on privilege escalation; the pre-login cookie
	// stops resolving from here on.
	h.Sessions.Regenerate(w, sess)
	sess.LogIn(user.ID, user.Username, user.Role)
	target, ok := sess.PopRedirect()
	if !ok {
		target = roleHome(user.Role)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	if sess := auth.FromContext(r.Context()); sess != nil {
		h.Sessions.Destroy(w, sess)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
