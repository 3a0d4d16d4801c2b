package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// SessionWriter writes and clears the session cookie.
type SessionWriter interface {
	SetSessionCookie(w http.ResponseWriter, token string)
	ClearSessionCookie(w http.ResponseWriter)
}

// NewLoginHandler returns an HTTP handler for user login.
//
// A failed login redirects back to the login page with no error message.
// That is the behavior of the system this replaces, kept as is.
// @Summary User login
// @Description Authenticate a user from a form post and establish a session cookie.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 303 "Redirect to / on success, back to /login on failure"
// @Router /api/login [post]
func NewLoginHandler(svc Loginer, sessions SessionWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := svc.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			if !errors.Is(err, services.ErrInvalidCredentials) {
				logger.Log.Errorw("login failed", "err", err)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sessions.SetSessionCookie(w, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NewLogoutHandler returns an HTTP handler that clears the session cookie.
// @Summary Logout
// @Description Clears the session cookie and redirects home.
// @Tags auth
// @Produce plain
// @Success 303 "Redirect to /"
// @Router /logout [get]
func NewLogoutHandler(sessions SessionWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
