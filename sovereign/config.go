// Package sovereign holds the application-level wiring shared by the web
// process and the admin commands.
package sovereign

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Sheets SheetsConfig `toml:"sheets"`
	Spaces SpacesConfig `toml:"spaces"`
	Mail   MailConfig   `toml:"mail"`
	AI     AIConfig     `toml:"ai"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	Addr       string `toml:"addr"`
	CookieName string `toml:"cookie_name"`

	// RateLimit is the per-IP request budget per minute.
	RateLimit int `toml:"rate_limit"`
}

type SheetsConfig struct {
	SpreadsheetID   string        `toml:"spreadsheet_id"`
	CredentialsFile string        `toml:"credentials_file"`
	CacheSize       int           `toml:"cache_size"`
	CacheTTL        time.Duration `toml:"cache_ttl"`
}

type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	ProofRoot string `toml:"proof_root"`
}

type MailConfig struct {
	Enabled  bool     `toml:"enabled"`
	Addr     string   `toml:"addr"`
	From     string   `toml:"from"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	To       []string `toml:"to"`

	// Digest schedule: weekday 0 (Sunday) through 6, and the local hour.
	DigestWeekday int `toml:"digest_weekday"`
	DigestHour    int `toml:"digest_hour"`
}

type AIConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}
