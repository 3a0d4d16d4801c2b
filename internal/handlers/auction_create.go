package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/middlewares"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

// AuctionCreator defines the interface that the service must implement.
type AuctionCreator interface {
	Create(ctx context.Context, actor models.Identity, title, description string) (*models.AuctionDB, error)
}

// NewAuctionCreateHandler returns an HTTP handler for listing a new auction.
// Only an authenticated seller may create one.
// @Summary Create an auction
// @Description Creates a new auction listing from a form post. Requires an authenticated seller session. Titles are unique.
// @Tags auction
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 303 "Redirect to /"
// @Failure 400 {string} string "Not a seller / title already exists"
// @Router /api/auction/add [post]
func NewAuctionCreateHandler(svc AuctionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Not a seller", http.StatusBadRequest)
			return
		}

		_, err := svc.Create(r.Context(), actor, r.FormValue("title"), r.FormValue("description"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotSeller):
				http.Error(w, "Not a seller", http.StatusBadRequest)
			case errors.Is(err, services.ErrTitleTaken):
				http.Error(w, "Title already exists", http.StatusBadRequest)
			case errors.Is(err, services.ErrMissingFields):
				http.Error(w, "Missing title", http.StatusBadRequest)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
