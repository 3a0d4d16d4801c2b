package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/k355l3r-5yndr0m3/auction/internal/jwt"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

func TestIdentityMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		mockSetup        func(m *MockTokener)
		expectIdentity   bool
		expectedIdentity models.Identity
	}{
		{
			name: "NoSession",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", jwt.ErrNoSession)
			},
			expectIdentity: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(nil, errors.New("invalid token"))
			},
			expectIdentity: false,
		},
		{
			name: "ValidSession",
			mockSetup: func(m *MockTokener) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{UserID: 42, Role: models.RoleSeller}, nil)
			},
			expectIdentity:   true,
			expectedIdentity: models.Identity{UserID: 42, Role: models.RoleSeller},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			tt.mockSetup(mockTokener)

			// Every request reaches the next handler, with or without a session
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				identity, ok := GetIdentityFromContext(r.Context())
				assert.Equal(t, tt.expectIdentity, ok)
				if tt.expectIdentity {
					assert.Equal(t, tt.expectedIdentity, identity)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := IdentityMiddleware(mockTokener)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.True(t, nextCalled)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetIdentityFromContext(req.Context())
	assert.False(t, ok)

	want := models.Identity{UserID: 7, Role: models.RoleBidder}
	ctx := SetIdentityToContext(req.Context(), want)

	got, ok := GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
