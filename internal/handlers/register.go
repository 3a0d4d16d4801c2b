package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string, role models.Role) error
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from a form post. Usernames are unique. Redirects to the login page on success.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param userrole formData int true "Role: 0 admin, 1 bidder, 2 seller"
// @Success 303 "Redirect to /login"
// @Failure 400 {string} string "Username already exists / invalid form"
// @Router /api/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := strconv.Atoi(r.FormValue("userrole"))
		if err != nil {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}

		parsed, err := models.ParseRole(role)
		if err != nil {
			http.Error(w, "Invalid role", http.StatusBadRequest)
			return
		}

		err = svc.Register(r.Context(), r.FormValue("username"), r.FormValue("password"), parsed)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUsernameTaken):
				http.Error(w, "Username already exists", http.StatusBadRequest)
			case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidRole):
				http.Error(w, "Missing username or password", http.StatusBadRequest)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
