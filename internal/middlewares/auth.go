package middlewares

import (
	"context"
	"net/http"

	"github.com/k355l3r-5yndr0m3/auction/internal/jwt"
	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

// Tokener defines the minimal session interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// IdentityMiddleware resolves the session cookie into a models.Identity and
// stores it in the request context. Requests without a valid session pass
// through anonymously; handlers that need an identity check for one.
func IdentityMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("session rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			identity := models.Identity{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(SetIdentityToContext(ctx, identity)))
		})
	}
}

// identityKey is an unexported type for keys in context
type identityKey struct{}

var idKey = identityKey{}

// SetIdentityToContext stores the acting identity in the context.
func SetIdentityToContext(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, idKey, identity)
}

// GetIdentityFromContext retrieves the acting identity from the context.
// The second return value reports whether the request is authenticated.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(idKey).(models.Identity)
	return identity, ok
}
