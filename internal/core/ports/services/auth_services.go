package services

import (
	"context"
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and verifies the JWT access tokens and opaque
// refresh tokens used by the auth endpoints.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken checks a raw refresh token against the
	// user's stored hash and expiry, returning the user on success.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade covers the Google sign-in flow, from the
// initial redirect through ID token validation.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates the CSRF state value for the OAuth redirect.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL builds the Google consent page URL for the given state.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken trades an authorization code for an OAuth token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo fetches the Google profile for an access token.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken verifies an ID token's signature and audience.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
