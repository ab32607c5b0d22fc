package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/middleware"
	"github.com/techieblitz/assignment-tracker/internal/types"
	"github.com/techieblitz/assignment-tracker/internal/utils"
)

// identityFrom extracts the verified identity set by the auth middleware.
func identityFrom(c *fiber.Ctx) (*types.Identity, error) {
	identity, ok := c.Locals(middleware.IdentityKey).(*types.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// respondError maps domain errors to status codes and the standard error
// envelope. Anything unrecognized is a 500 with a generic message.
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var (
		validationErr   *types.ValidationError
		notFoundErr     *types.NotFoundError
		unauthorizedErr *types.UnauthorizedError
		externalErr     *types.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		return utils.ErrorResponse(c, validationErr.Message, fiber.StatusBadRequest, errorType)
	case errors.As(err, &notFoundErr):
		return utils.NotFoundResponse(c, notFoundErr.Error())
	case errors.As(err, &unauthorizedErr):
		return utils.ErrorResponse(c, unauthorizedErr.Message, fiber.StatusUnauthorized, errorType)
	case errors.As(err, &externalErr):
		log.Printf("%s: %v", errorType, err)
		return utils.ErrorResponse(c, "external service failure", fiber.StatusInternalServerError, errorType)
	default:
		log.Printf("%s: %v", errorType, err)
		return utils.ErrorResponse(c, "internal error", fiber.StatusInternalServerError, errorType)
	}
}
