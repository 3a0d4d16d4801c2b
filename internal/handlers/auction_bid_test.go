package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/k355l3r-5yndr0m3/auction/internal/models"
	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

func TestAuctionBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bidder := models.Identity{UserID: 2, Role: models.RoleBidder}
	seller := models.Identity{UserID: 1, Role: models.RoleSeller}

	tests := []struct {
		name             string
		actor            *models.Identity
		form             url.Values
		mockSetup        func(m *MockBidPlacer)
		expectedCode     int
		expectedLocation string
		expectedBody     string
	}{
		{
			name:  "accepted bid redirects to the auction",
			actor: &bidder,
			form:  url.Values{"auction-id": {"5"}, "bidding": {"20"}},
			mockSetup: func(m *MockBidPlacer) {
				m.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(5), int64(20)).
					Return(&models.AuctionDB{ID: 5, CurrentBid: 20}, true, nil)
			},
			expectedCode:     http.StatusSeeOther,
			expectedLocation: "/auction/5",
		},
		{
			// A too-low bid looks identical at the HTTP surface.
			name:  "too-low bid also redirects to the auction",
			actor: &bidder,
			form:  url.Values{"auction-id": {"5"}, "bidding": {"1"}},
			mockSetup: func(m *MockBidPlacer) {
				m.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(5), int64(1)).
					Return(&models.AuctionDB{ID: 5, CurrentBid: 20}, false, nil)
			},
			expectedCode:     http.StatusSeeOther,
			expectedLocation: "/auction/5",
		},
		{
			name:         "anonymous request is rejected",
			actor:        nil,
			form:         url.Values{"auction-id": {"5"}, "bidding": {"20"}},
			mockSetup:    func(m *MockBidPlacer) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Not a bidder",
		},
		{
			name:  "seller is rejected",
			actor: &seller,
			form:  url.Values{"auction-id": {"5"}, "bidding": {"20"}},
			mockSetup: func(m *MockBidPlacer) {
				m.EXPECT().
					PlaceBid(gomock.Any(), seller, int64(5), int64(20)).
					Return(nil, false, services.ErrNotBidder)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Not a bidder",
		},
		{
			name:  "no such auction",
			actor: &bidder,
			form:  url.Values{"auction-id": {"404"}, "bidding": {"20"}},
			mockSetup: func(m *MockBidPlacer) {
				m.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(404), int64(20)).
					Return(nil, false, services.ErrAuctionNotFound)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "No auction",
		},
		{
			name:         "missing auction id",
			actor:        &bidder,
			form:         url.Values{"bidding": {"20"}},
			mockSetup:    func(m *MockBidPlacer) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid auction id",
		},
		{
			name:         "non-numeric bid",
			actor:        &bidder,
			form:         url.Values{"auction-id": {"5"}, "bidding": {"lots"}},
			mockSetup:    func(m *MockBidPlacer) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Invalid bid amount",
		},
		{
			name:  "internal error",
			actor: &bidder,
			form:  url.Values{"auction-id": {"5"}, "bidding": {"20"}},
			mockSetup: func(m *MockBidPlacer) {
				m.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(5), int64(20)).
					Return(nil, false, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockBidPlacer(ctrl)
			tt.mockSetup(mockSvc)

			rr := postFormAs(t, NewAuctionBidHandler(mockSvc), "/api/auction/bid", tt.form, tt.actor)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedBody)
			}
		})
	}
}
