package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/backend/config"
	"github.com/sovereignhud/sovereign-hud/backend/middleware"
	"github.com/sovereignhud/sovereign-hud/backend/utils"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
	"github.com/sovereignhud/sovereign-hud/sovereign/services"
)

// WebApp bundles the dependencies every handler needs. The proof
// storage, photo importer and digest are optional and stay nil when the
// matching config section is absent.
type WebApp struct {
	Config    *config.WebAppConfig
	Repos     *repositories.Repositories
	Lifecycle *services.LifecycleService
	Dashboard *services.DashboardService
	Locks     *services.LockResolver
	Badges    *services.BadgeService
	Search    *services.SearchService
	Proofs    *services.ProofStorage
	Importer  *services.PhotoImportService
	Digest    *services.DigestService
}

// RegisterRoutes mounts every route on the Fiber app.
func (w *WebApp) RegisterRoutes(app *fiber.App) {
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.LoggingMiddleware())

	app.Get("/healthz", HealthCheck(w))

	app.Get("/login", LoginPage(w))
	app.Post("/login", middleware.LoginRateLimit(), Login(w))
	app.Get("/logout", Logout(w))

	auth := middleware.AuthRequired(w.Repos.Users, w.Config.CookieName())
	teacher := middleware.TeacherRequired()

	// HTML pages.
	app.Get("/", auth, DashboardPage(w))
	app.Get("/quests", auth, QuestBoardPage(w))
	app.Get("/badges", auth, BadgesPage(w))

	api := app.Group("/api", auth)
	api.Get("/overview", Overview(w))
	api.Get("/badges", ListBadges(w))

	quests := api.Group("/quests")
	quests.Post("/start", StartQuest(w))
	quests.Post("/start-batch", StartQuestBatch(w))
	quests.Post("/:id/submit", middleware.UploadRateLimit(), SubmitQuest(w))
	quests.Post("/:id/abandon", AbandonQuest(w))
	quests.Get("/:id/log", QuestLog(w))
	quests.Post("/:id/log", AddQuestLog(w))

	review := api.Group("/review", teacher)
	review.Post("/bulk-approve", middleware.AuditLogMiddleware("bulk_approve"), BulkApprove(w))
	review.Post("/:id/approve", middleware.AuditLogMiddleware("approve"), ApproveQuest(w))
	review.Post("/:id/reject", middleware.AuditLogMiddleware("reject"), RejectQuest(w))
	review.Post("/:id/reopen", middleware.AuditLogMiddleware("reopen"), ReopenQuest(w))
	review.Post("/:id/undo", middleware.AuditLogMiddleware("undo_approval"), UndoApproval(w))

	admin := api.Group("/admin", teacher)
	admin.Get("/search", SearchMinions(w))
	admin.Post("/minions", middleware.AuditLogMiddleware("add_minion"), CreateMinion(w))
	admin.Post("/minions/lock", middleware.AuditLogMiddleware("bulk_lock"), BulkLock(w))
	admin.Post("/resolve-locks", middleware.AuditLogMiddleware("resolve_locks"), ResolveLocks(w))
	admin.Post("/import", middleware.UploadRateLimit(), middleware.AuditLogMiddleware("photo_import"), ImportPhoto(w))
	admin.Post("/digest", middleware.AuditLogMiddleware("send_digest"), SendDigest(w))
}

func HealthCheck(w *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{
			"status":  "healthy",
			"version": w.Config.Version,
		}, "Health check successful")
	}
}
