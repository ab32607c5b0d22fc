package services

import (
	"context"
	"fmt"

	"github.com/authorizerdev/authorizer-go"
	"github.com/techieblitz/assignment-tracker/internal/config"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// TokenVerifier validates a bearer credential and returns the caller's
// identity. Implementations must treat every failure as unauthorized.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*types.Identity, error)
}

// AuthorizerVerifier validates JWTs against the Authorizer identity
// provider.
type AuthorizerVerifier struct {
	client *authorizer.AuthorizerClient
}

// NewAuthorizerVerifier creates the verifier and its underlying client.
func NewAuthorizerVerifier(cfg *config.Config) (*AuthorizerVerifier, error) {
	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	return &AuthorizerVerifier{client: client}, nil
}

// Verify validates the token as an access token and extracts the subject,
// email and roles claims.
func (v *AuthorizerVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	res, err := v.client.ValidateJWTToken(&authorizer.ValidateJWTTokenInput{
		TokenType: authorizer.TokenTypeAccessToken,
		Token:     token,
	})
	if err != nil {
		return nil, &types.UnauthorizedError{Message: fmt.Sprintf("token validation failed: %v", err)}
	}
	if res == nil || !res.IsValid {
		return nil, &types.UnauthorizedError{Message: "token is not valid"}
	}

	identity := &types.Identity{}
	if sub, ok := res.Claims["sub"].(string); ok {
		identity.UserID = sub
	}
	if email, ok := res.Claims["email"].(string); ok {
		identity.Email = email
	}
	if roles, ok := res.Claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			if role, ok := r.(string); ok {
				identity.Roles = append(identity.Roles, role)
			}
		}
	}
	if identity.UserID == "" {
		return nil, &types.UnauthorizedError{Message: "token has no subject"}
	}
	return identity, nil
}
