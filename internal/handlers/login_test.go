package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/k355l3r-5yndr0m3/auction/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		form             url.Values
		mockSetup        func(svc *MockLoginer, sessions *MockSessionWriter)
		expectedLocation string
	}{
		{
			name: "success sets session and redirects home",
			form: url.Values{"username": {"alice"}, "password": {"correct"}},
			mockSetup: func(svc *MockLoginer, sessions *MockSessionWriter) {
				svc.EXPECT().
					Login(gomock.Any(), "alice", "correct").
					Return("signed-token", nil)
				sessions.EXPECT().SetSessionCookie(gomock.Any(), "signed-token")
			},
			expectedLocation: "/",
		},
		{
			// Failed logins redirect back silently, no error shown.
			name: "invalid credentials redirect back to login",
			form: url.Values{"username": {"alice"}, "password": {"wrong"}},
			mockSetup: func(svc *MockLoginer, sessions *MockSessionWriter) {
				svc.EXPECT().
					Login(gomock.Any(), "alice", "wrong").
					Return("", services.ErrInvalidCredentials)
			},
			expectedLocation: "/login",
		},
		{
			name: "internal error also redirects back",
			form: url.Values{"username": {"alice"}, "password": {"correct"}},
			mockSetup: func(svc *MockLoginer, sessions *MockSessionWriter) {
				svc.EXPECT().
					Login(gomock.Any(), "alice", "correct").
					Return("", errors.New("db down"))
			},
			expectedLocation: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			mockSessions := NewMockSessionWriter(ctrl)
			tt.mockSetup(mockSvc, mockSessions)

			rr := postForm(t, NewLoginHandler(mockSvc, mockSessions), "/api/login", tt.form)

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := NewMockSessionWriter(ctrl)
	mockSessions.EXPECT().ClearSessionCookie(gomock.Any())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rr := httptest.NewRecorder()
	NewLogoutHandler(mockSessions).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}
