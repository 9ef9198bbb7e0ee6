package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
)

var loginTmpl = utils.MustPage("login", `{{define "content"}}
<section class="login">
	<h1>Enter the Command Center</h1>
	{{if .Error}}<p class="status-red">{{.Error}}</p>{{end}}
	<form method="post" action="/login">
		<input type="password" name="token" placeholder="Access token" autofocus>
		<button type="submit">Enter</button>
	</form>
</section>
{{end}}`)

// LoginPage renders the token prompt.
func LoginPage(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.RenderHTML(c, loginTmpl, fiber.Map{"Title": "Login"})
	}
}

// Login exchanges an access token for the session cookie. The token is
// looked up in the Users table on every request afterwards, so revoking
// a token in the sheet logs the holder out.
func Login(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		user, err := w.Repos.Users.FindByToken(c.Context(), req.Token)
		if err != nil {
			slog.Warn("Login failed",
				slog.String("type", "web"),
				slog.String("ip", c.IP()))
			return utils.RenderHTML(c, loginTmpl, fiber.Map{
				"Title": "Login",
				"Error": "That token is not recognized.",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     w.Config.CookieName(),
			Value:    req.Token,
			Expires:  time.Now().Add(w.Config.CookieTTL()),
			HTTPOnly: true,
			SameSite: "Lax",
			Secure:   !w.Config.Debug,
		})

		slog.Info("User logged in",
			slog.String("type", "web"),
			slog.String("user", user.Name),
			slog.String("role", string(user.Role)))
		return c.Redirect("/")
	}
}

// Logout clears the session cookie.
func Logout(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     w.Config.CookieName(),
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
		return c.Redirect("/login")
	}
}
