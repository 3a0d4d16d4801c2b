package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/middlewares"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

// BidPlacer defines the interface that the service must implement.
type BidPlacer interface {
	PlaceBid(ctx context.Context, actor models.Identity, auctionID, amount int64) (*models.AuctionDB, bool, error)
}

// NewAuctionBidHandler returns an HTTP handler for placing a bid.
// Only an authenticated bidder may bid. A bid at or below the current bid
// is a silent no-op; either way the caller is redirected to the auction
// page, which shows the outcome.
// @Summary Place a bid
// @Description Places a bid on an auction from a form post. Requires an authenticated bidder session. Only a bid strictly above the current one is accepted.
// @Tags auction
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param auction-id formData int true "Auction id"
// @Param bidding formData int true "Bid amount"
// @Success 303 "Redirect to /auction/{id}"
// @Failure 400 {string} string "Not a bidder / no auction / invalid form"
// @Router /api/auction/bid [post]
func NewAuctionBidHandler(svc BidPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "Not a bidder", http.StatusBadRequest)
			return
		}

		auctionID, err := strconv.ParseInt(r.FormValue("auction-id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid auction id", http.StatusBadRequest)
			return
		}

		amount, err := strconv.ParseInt(r.FormValue("bidding"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid bid amount", http.StatusBadRequest)
			return
		}

		_, accepted, err := svc.PlaceBid(r.Context(), actor, auctionID, amount)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotBidder):
				http.Error(w, "Not a bidder", http.StatusBadRequest)
			case errors.Is(err, services.ErrAuctionNotFound):
				http.Error(w, "No auction", http.StatusBadRequest)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		logger.Log.Infow("bid handled",
			"auction_id", auctionID,
			"bidder_id", actor.UserID,
			"amount", amount,
			"accepted", accepted,
		)

		http.Redirect(w, r, fmt.Sprintf("/auction/%d", auctionID), http.StatusSeeOther)
	}
}
