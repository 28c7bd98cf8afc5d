package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env/.env.local into the process environment. Existing
// variables are not overwritten, so real environment always wins over files.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}

// applyEnv overlays MDPRESS_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("Ignoring invalid duration in environment", "key", key, "value", v)
			return
		}
		*dst = d
	}

	setString("MDPRESS_FILENAME", &cfg.Output.Filename)
	setString("MDPRESS_BUILD_DIR", &cfg.Build.Dir)
	setString("MDPRESS_ENTRY_POINT", &cfg.Build.EntryPoint)
	setString("MDPRESS_STYLES_DIR", &cfg.Build.StylesDir)
	setString("MDPRESS_PANDOC", &cfg.Tools.Pandoc)
	setString("MDPRESS_CONTEXT", &cfg.Tools.Context)
	setString("MDPRESS_GHOSTSCRIPT", &cfg.Tools.Ghostscript)
	setString("MDPRESS_HISTORY_PATH", &cfg.History.Path)
	setString("MDPRESS_METRICS_ADDR", &cfg.Metrics.Addr)
	setDuration("MDPRESS_QUIET_WINDOW", &cfg.Watch.QuietWindow)
	setDuration("MDPRESS_REBUILD_EVERY", &cfg.Watch.RebuildEvery)
}
