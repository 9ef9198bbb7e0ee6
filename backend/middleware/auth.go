package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/backend/utils"
	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

// AuthRequired resolves the token cookie against the Users table and
// stores the matching user in the request context.
func AuthRequired(users repositories.UserRepository, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return redirectToLogin(c)
		}

		user, err := users.FindByToken(c.Context(), token)
		if err != nil {
			slog.Debug("Auth required: token not recognized",
				slog.String("type", "web"))
			return redirectToLogin(c)
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// TeacherRequired gates review and admin routes. AuthRequired must run
// first.
func TeacherRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.SendForbidden(c, "Access denied")
		}
		if user.Role != models.RoleTeacher {
			slog.Warn("Teacher required: student attempted privileged route",
				slog.String("type", "web"),
				slog.String("user", user.Name),
				slog.String("path", c.Path()))
			return utils.SendForbidden(c, "Teacher access required")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil outside an
// authenticated route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// redirectToLogin redirects web requests to the login page and returns
// 401 for API requests.
func redirectToLogin(c *fiber.Ctx) error {
	if isAPIRequest(c) {
		return utils.SendUnauthorized(c, "Authentication required")
	}
	return c.Redirect("/login")
}

func isAPIRequest(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return strings.Contains(c.Get("Accept"), "application/json")
}
