package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

func TestStaticPages(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		path     string
		contains string
	}{
		{name: "home", handler: NewHomePageHandler(), path: "/", contains: "Auction"},
		{name: "register", handler: NewRegisterPageHandler(), path: "/register", contains: "/api/register"},
		{name: "login", handler: NewLoginPageHandler(), path: "/login", contains: "/api/login"},
		{name: "auction add", handler: NewAuctionAddPageHandler(), path: "/auction/add", contains: "/api/auction/add"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}

func TestAuctionPageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newRouter := func(auctions AuctionGetter, users UserFinder) http.Handler {
		r := chi.NewRouter()
		r.Get("/auction/{id}", NewAuctionPageHandler(auctions, users))
		return r
	}

	t.Run("renders an existing auction", func(t *testing.T) {
		mockAuctions := NewMockAuctionGetter(ctrl)
		mockUsers := NewMockUserFinder(ctrl)

		auction := &models.AuctionDB{ID: 5, Title: "Lamp", Description: "an old lamp", CurrentBid: 0, SellerID: 1}
		mockAuctions.EXPECT().Get(gomock.Any(), int64(5)).Return(auction, nil)
		mockUsers.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&models.UserDB{ID: 1, Username: "jane"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auction/5", nil)
		rr := httptest.NewRecorder()
		newRouter(mockAuctions, mockUsers).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Lamp")
		assert.Contains(t, rr.Body.String(), "jane")
	})

	t.Run("missing auction yields 404", func(t *testing.T) {
		mockAuctions := NewMockAuctionGetter(ctrl)
		mockUsers := NewMockUserFinder(ctrl)

		mockAuctions.EXPECT().Get(gomock.Any(), int64(404)).Return(nil, services.ErrAuctionNotFound)

		req := httptest.NewRequest(http.MethodGet, "/auction/404", nil)
		rr := httptest.NewRecorder()
		newRouter(mockAuctions, mockUsers).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "There is no such auction")
	})

	t.Run("non-numeric id yields 404", func(t *testing.T) {
		mockAuctions := NewMockAuctionGetter(ctrl)
		mockUsers := NewMockUserFinder(ctrl)

		req := httptest.NewRequest(http.MethodGet, "/auction/lamp", nil)
		rr := httptest.NewRecorder()
		newRouter(mockAuctions, mockUsers).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAuctionSearchPageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("no query lists everything", func(t *testing.T) {
		mockAuctions := NewMockAuctionSearcher(ctrl)
		mockAuctions.EXPECT().Search(gomock.Any(), nil).Return([]models.AuctionDB{
			{ID: 1, Title: "Chair"},
			{ID: 2, Title: "Lamp"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/auction/search", nil)
		rr := httptest.NewRecorder()
		NewAuctionSearchPageHandler(mockAuctions).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Chair")
		assert.Contains(t, rr.Body.String(), "Lamp")
	})

	t.Run("query is forwarded", func(t *testing.T) {
		mockAuctions := NewMockAuctionSearcher(ctrl)
		mockAuctions.EXPECT().
			Search(gomock.Any(), gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ interface{}, query *string) ([]models.AuctionDB, error) {
				assert.Equal(t, "Lam", *query)
				return []models.AuctionDB{{ID: 2, Title: "Lamp"}}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/auction/search?query=Lam", nil)
		rr := httptest.NewRecorder()
		NewAuctionSearchPageHandler(mockAuctions).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Lamp")
	})

	t.Run("empty query is still a query", func(t *testing.T) {
		mockAuctions := NewMockAuctionSearcher(ctrl)
		mockAuctions.EXPECT().
			Search(gomock.Any(), gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ interface{}, query *string) ([]models.AuctionDB, error) {
				assert.Equal(t, "", *query)
				return []models.AuctionDB{}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/auction/search?query=", nil)
		rr := httptest.NewRecorder()
		NewAuctionSearchPageHandler(mockAuctions).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No auctions found")
	})
}
