package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sovereignhud/sovereign-hud/sovereign"
	"github.com/sovereignhud/sovereign-hud/sovereign/logger"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
	"github.com/sovereignhud/sovereign-hud/sovereign/services"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hudctl",
	Short: "Sovereign HUD admin tool",
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "create missing sheets and headers in the spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := connect(cmd)
		if err != nil {
			return err
		}
		if err := repositories.EnsureSchema(cmd.Context(), client); err != nil {
			return err
		}
		slog.Info("Spreadsheet schema is up to date")
		return nil
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "send the weekly digest mail now",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := connect(cmd)
		if err != nil {
			return err
		}
		repos := repositories.New(client)
		mailer := &services.SMTPMailer{
			Addr:     cfg.Mail.Addr,
			From:     cfg.Mail.From,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
		}
		digest := services.NewDigestService(
			repos.Minions, repos.Quests, mailer, cfg.Mail.To,
			time.Weekday(cfg.Mail.DigestWeekday), cfg.Mail.DigestHour, nil)
		if err := digest.SendNow(cmd.Context()); err != nil {
			return err
		}
		slog.Info("Digest sent", slog.Int("recipients", len(cfg.Mail.To)))
		return nil
	},
}

var locksCmd = &cobra.Command{
	Use:   "resolve-locks",
	Short: "promote minions whose prerequisites are met",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := connect(cmd)
		if err != nil {
			return err
		}
		repos := repositories.New(client)
		promoted, err := services.NewLockResolver(repos.Minions).Resolve(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("Locks resolved", slog.Int("promoted", promoted))
		return nil
	},
}

func connect(cmd *cobra.Command) (sheets.Client, *sovereign.Config, error) {
	cfg, err := sovereign.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	client, err := sheets.NewGoogleClient(cmd.Context(), cfg.Sheets.SpreadsheetID, cfg.Sheets.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.AddCommand(setupCmd, digestCmd, locksCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
