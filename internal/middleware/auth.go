package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// IdentityKey is the Locals key the verified identity is stored under.
const IdentityKey = "identity"

// Auth validates the Authorization bearer token against the identity
// provider and attaches the resulting identity to the request.
func Auth(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized: no token provided",
				Type:    "auth.token.missing",
			}
		}

		identity, err := verifier.Verify(c.Context(), token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "auth.token.invalid",
			}
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}
