package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
)

// CustomErrorHandler maps errors escaping a handler onto the JSON
// envelope or a plain error page.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, models.ErrValidation):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	}

	if isAPIRequest(c) {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    code,
				"message": message,
			},
		})
	}

	return c.Status(code).SendString(fmt.Sprintf("Error %d: %s", code, message))
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data: https:; "+
				"connect-src 'self';")

		return c.Next()
	}
}
