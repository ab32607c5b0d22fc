package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/techieblitz/assignment-tracker/internal/middleware"
)

func newVersionApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandlerFor,
	})
	app.Get("/ping", middleware.Version(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"version": c.Locals(middleware.VersionKey)})
	})
	return app
}

func TestVersionDefaultsAndEchoes(t *testing.T) {
	app := newVersionApp()

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}
	if got := res.Header.Get("X-Api-Version"); got != "1.0.0" {
		t.Errorf("Expected negotiated version echoed, got %q", got)
	}
}

func TestVersionResolvesAliases(t *testing.T) {
	app := newVersionApp()

	for _, alias := range []string{"1", "1.0", "1.0.0"} {
		req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
		req.Header.Set("X-Api-Version", alias)
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("Test request failed: %v", err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Errorf("Expected 200 for alias %q, got %d", alias, res.StatusCode)
		}
		if got := res.Header.Get("X-Api-Version"); got != "1.0.0" {
			t.Errorf("Expected alias %q resolved to 1.0.0, got %q", alias, got)
		}
	}
}

func TestVersionRejectsUnsupportedMajor(t *testing.T) {
	app := newVersionApp()

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for unsupported version, got %d", res.StatusCode)
	}
}
