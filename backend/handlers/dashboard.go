package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/backend/middleware"
	webmodels "github.com/sovereignhud/sovereign-hud/backend/models"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
)

var dashboardTmpl = utils.MustPage("dashboard", `{{define "content"}}
<section class="hud-stats">
	<div class="stat-card">
		<span class="stat-value">{{.Overview.Streak.Current}}</span>
		<span class="stat-label">{{pluralize .Overview.Streak.Current "day" "days"}} streak</span>
	</div>
	<div class="stat-card">
		<span class="stat-value">{{.Overview.Streak.Best}}</span>
		<span class="stat-label">best streak</span>
	</div>
	<div class="stat-card">
		<span class="stat-value">{{len .Overview.Badges}}</span>
		<span class="stat-label">badges</span>
	</div>
</section>

<section class="sectors">
{{range .Overview.Sectors}}
	<article class="sector">
		<h2>{{.Name}} <span class="pct">{{.Percent}}%</span></h2>
		<ul>
		{{range .Bosses}}
			<li class="{{if .Complete}}status-green{{end}}">
				{{.Name}} ({{.Enslaved}}/{{.Total}}){{if .Survival}} &#9876;{{end}}
			</li>
		{{end}}
		</ul>
	</article>
{{end}}
</section>

<section class="queues">
	<article>
		<h2>Your quests</h2>
		<ul>
		{{range .Overview.Actionable}}
			<li class="{{statusColor (printf "%s" .Status)}}">{{.Boss}} &gt; {{.Minion}} [{{.Status}}]</li>
		{{else}}
			<li>Nothing queued. Pick a minion to engage.</li>
		{{end}}
		</ul>
	</article>
	<article>
		<h2>Awaiting review</h2>
		<ul>
		{{range .Overview.PendingApproval}}
			<li>{{.Boss}} &gt; {{.Minion}}</li>
		{{end}}
		</ul>
	</article>
</section>

{{if .Overview.Glossary}}
<details class="glossary">
	<summary>What do these words mean?</summary>
	<dl>
	{{range .Overview.Glossary}}
		<dt>{{.Term}}</dt><dd>{{.Definition}}</dd>
	{{end}}
	</dl>
</details>
{{end}}
{{end}}`)

// DashboardPage renders the HUD landing page.
func DashboardPage(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		overview, err := w.Dashboard.Overview(c.Context())
		if err != nil {
			return err
		}
		return utils.RenderHTML(c, dashboardTmpl, fiber.Map{
			"Title":    "Dashboard",
			"Overview": overview,
			"User":     middleware.CurrentUser(c),
		})
	}
}

// Overview serves the dashboard aggregate as JSON for the API clients.
func Overview(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		overview, err := w.Dashboard.Overview(c.Context())
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		actionable := make([]webmodels.QuestView, 0, len(overview.Actionable))
		for _, q := range overview.Actionable {
			actionable = append(actionable, webmodels.NewQuestView(q))
		}
		pending := make([]webmodels.QuestView, 0, len(overview.PendingApproval))
		for _, q := range overview.PendingApproval {
			pending = append(pending, webmodels.NewQuestView(q))
		}
		engaged := make([]webmodels.MinionView, 0, len(overview.Engaged))
		for _, m := range overview.Engaged {
			engaged = append(engaged, webmodels.NewMinionView(m))
		}
		badges := make([]webmodels.BadgeView, 0, len(overview.Badges))
		for _, b := range overview.Badges {
			badges = append(badges, webmodels.NewBadgeView(b))
		}

		return utils.SendSuccess(c, fiber.Map{
			"sectors":          overview.Sectors,
			"actionable":       actionable,
			"pending_approval": pending,
			"engaged":          engaged,
			"badges":           badges,
			"stats":            overview.Stats,
			"glossary":         overview.Glossary,
			"streak":           overview.Streak,
		}, "")
	}
}
