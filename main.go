package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sovereignhud/sovereign-hud/backend/config"
	"github.com/sovereignhud/sovereign-hud/backend/handlers"
	"github.com/sovereignhud/sovereign-hud/backend/middleware"
	"github.com/sovereignhud/sovereign-hud/sovereign"
	"github.com/sovereignhud/sovereign-hud/sovereign/logger"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
	"github.com/sovereignhud/sovereign-hud/sovereign/services"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

var version = "dev"

func main() {
	debug := flag.Bool("debug", false, "serve cookies without the Secure flag")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	// Level comes from config, so bootstrap at Info and swap after load.
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	cfg, err := sovereign.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))

	logger.LogSystem("Starting Sovereign HUD", slog.String("version", version))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sheetStart := time.Now()
	google, err := sheets.NewGoogleClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
	if err != nil {
		logger.LogError("Spreadsheet connection failed", err)
		os.Exit(-1)
	}
	cacheSize, cacheTTL := cfg.Sheets.CacheSize, cfg.Sheets.CacheTTL
	if cacheSize <= 0 {
		cacheSize = 16
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	client, err := sheets.NewCachedClient(google, cacheSize, cacheTTL)
	if err != nil {
		logger.LogError("Cache setup failed", err)
		os.Exit(-1)
	}

	if err := repositories.EnsureSchema(ctx, client); err != nil {
		logger.LogError("Schema migration failed", err)
		os.Exit(-1)
	}
	logger.LogSystem("Spreadsheet ready",
		slog.String("spreadsheet", cfg.Sheets.SpreadsheetID),
		slog.Duration("took", time.Since(sheetStart)))

	repos := repositories.New(client)

	locks := services.NewLockResolver(repos.Minions)
	badges := services.NewBadgeService(repos.Minions, repos.Quests, repos.Stats, repos.Badges, nil)
	lifecycle := services.NewLifecycleService(repos.Quests, repos.Minions, repos.QuestLog, locks, badges, nil)
	dashboard := services.NewDashboardService(client, repos, nil)
	search := services.NewSearchService(repos.Minions)

	var proofs *services.ProofStorage
	if cfg.Spaces.Key != "" {
		proofs, err = services.NewProofStorage(
			cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region,
			cfg.Spaces.Bucket, cfg.Spaces.ProofRoot)
		if err != nil {
			logger.LogError("Proof storage setup failed", err)
			os.Exit(-1)
		}
	}

	var importer *services.PhotoImportService
	if cfg.AI.Enabled {
		importer, err = services.NewPhotoImportService(ctx, cfg.AI.APIKey, cfg.AI.Model, repos.Minions, nil)
		if err != nil {
			logger.LogError("Photo import setup failed", err)
			os.Exit(-1)
		}
	}

	digestCtx, digestCancel := context.WithCancel(context.Background())
	defer digestCancel()

	var digest *services.DigestService
	if cfg.Mail.Enabled {
		mailer := &services.SMTPMailer{
			Addr:     cfg.Mail.Addr,
			From:     cfg.Mail.From,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
		}
		digest = services.NewDigestService(
			repos.Minions, repos.Quests, mailer, cfg.Mail.To,
			time.Weekday(cfg.Mail.DigestWeekday), cfg.Mail.DigestHour, nil)
		go digest.Run(digestCtx)
	}

	webCfg := config.NewWebAppConfig(cfg, *debug, version)
	webApp := &handlers.WebApp{
		Config:    webCfg,
		Repos:     repos,
		Lifecycle: lifecycle,
		Dashboard: dashboard,
		Locks:     locks,
		Badges:    badges,
		Search:    search,
		Proofs:    proofs,
		Importer:  importer,
		Digest:    digest,
	}

	app := fiber.New(fiber.Config{
		AppName:      "Sovereign HUD",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    12 * 1024 * 1024,
	})
	app.Use(middleware.RateLimit(webCfg.RateLimit(), time.Minute))
	webApp.RegisterRoutes(app)

	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.LogError("Web server stopped", err)
			os.Exit(-1)
		}
	}()
	logger.LogSystem("Sovereign HUD is running. Press CTRL-C to exit.",
		slog.String("addr", cfg.Server.Addr))

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	logger.LogSystem("Shutting down...")
	digestCancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.LogError("Shutdown failed", err)
	}
}
