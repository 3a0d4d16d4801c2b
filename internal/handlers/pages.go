package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/middlewares"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// AuctionGetter defines the read interface needed by the auction page.
type AuctionGetter interface {
	Get(ctx context.Context, id int64) (*models.AuctionDB, error)
}

// AuctionSearcher defines the read interface needed by the search page.
type AuctionSearcher interface {
	Search(ctx context.Context, query *string) ([]models.AuctionDB, error)
}

// UserFinder resolves user ids to records for page rendering. Lookups are
// explicit; nothing is lazily loaded through relations.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*models.UserDB, error)
}

type pageData struct {
	LoggedIn bool
	Identity models.Identity
}

func newPageData(r *http.Request) pageData {
	identity, ok := middlewares.GetIdentityFromContext(r.Context())
	return pageData{LoggedIn: ok, Identity: identity}
}

func renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Errorw("failed to render page", "template", name, "err", err)
	}
}

// NewHomePageHandler renders the landing page.
func NewHomePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "home.html", newPageData(r))
	}
}

// NewRegisterPageHandler renders the registration form.
func NewRegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "register.html", newPageData(r))
	}
}

// NewLoginPageHandler renders the login form.
func NewLoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "login.html", newPageData(r))
	}
}

// NewAuctionAddPageHandler renders the auction creation form.
func NewAuctionAddPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, "auction-add.html", newPageData(r))
	}
}

type auctionPageData struct {
	pageData
	Auction    *models.AuctionDB
	SellerName string
	BidderName string
}

// NewAuctionPageHandler renders a single auction, 404 if it does not exist.
func NewAuctionPageHandler(auctions AuctionGetter, users UserFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "There is no such auction", http.StatusNotFound)
			return
		}

		auction, err := auctions.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrAuctionNotFound) {
				http.Error(w, "There is no such auction", http.StatusNotFound)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data := auctionPageData{pageData: newPageData(r), Auction: auction}
		if seller, err := users.FindByID(r.Context(), auction.SellerID); err == nil && seller != nil {
			data.SellerName = seller.Username
		}
		if bidderID, ok := auction.LeadingBidder(); ok {
			if bidder, err := users.FindByID(r.Context(), bidderID); err == nil && bidder != nil {
				data.BidderName = bidder.Username
			}
		}

		renderPage(w, "auction.html", data)
	}
}

type searchPageData struct {
	pageData
	Query    string
	Auctions []models.AuctionDB
}

// NewAuctionSearchPageHandler lists auctions, optionally filtered by a
// case-sensitive title substring.
func NewAuctionSearchPageHandler(auctions AuctionSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query *string
		if r.URL.Query().Has("query") {
			q := r.URL.Query().Get("query")
			query = &q
		}

		results, err := auctions.Search(r.Context(), query)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data := searchPageData{pageData: newPageData(r), Auctions: results}
		if query != nil {
			data.Query = *query
		}

		renderPage(w, "auction-search.html", data)
	}
}
