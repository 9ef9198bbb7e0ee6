package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
)

var badgesTmpl = utils.MustPage("badges", `{{define "content"}}
<section class="trophy-room">
	<h1>Trophy Room</h1>
	<ul class="badges">
	{{range .Badges}}
		<li class="badge badge-{{.Category}}">
			<strong>{{.Name}}</strong>
			<time>{{.DateEarned}}</time>
		</li>
	{{else}}
		<li>No badges yet. Enslave your first minion.</li>
	{{end}}
	</ul>
</section>
{{end}}`)

// BadgesPage renders the trophy room.
func BadgesPage(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		badges, err := w.Repos.Badges.GetAll(c.Context())
		if err != nil {
			return err
		}
		views := make([]webmodels.BadgeView, 0, len(badges))
		for _, b := range badges {
			views = append(views, webmodels.NewBadgeView(b))
		}
		return utils.RenderHTML(c, badgesTmpl, fiber.Map{
			"Title":  "Badges",
			"Badges": views,
		})
	}
}

// ListBadges serves the badge ledger as JSON.
func ListBadges(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		badges, err := w.Repos.Badges.GetAll(c.Context())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		views := make([]webmodels.BadgeView, 0, len(badges))
		for _, b := range badges {
			views = append(views, webmodels.NewBadgeView(b))
		}
		return utils.SendSuccess(c, views, "")
	}
}
