package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// VersionKey is the Locals key the negotiated API version is stored under.
const VersionKey = "apiVersion"

const currentVersion = "1.0.0"

// Version negotiates the X-Api-Version request header. A missing header or
// a bare major alias resolves to the current version, which is echoed back
// on every response; an unsupported major is rejected.
func Version() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", currentVersion)
		if version == "1" || version == "1.0" {
			version = currentVersion
		}

		if version != currentVersion && !strings.HasPrefix(version, "1.") {
			return &types.CustomError{
				Code:    fiber.StatusBadRequest,
				Message: "Unsupported API version: " + version,
				Type:    "version.unsupported",
			}
		}

		c.Locals(VersionKey, version)
		c.Set("X-Api-Version", version)
		return c.Next()
	}
}
