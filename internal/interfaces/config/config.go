package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Cache backends selectable via CACHE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	FeedURL string `envconfig:"FEED_URL" required:"true"`

	CacheDir     string `envconfig:"CACHE_DIR" default:".cache"`
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"file"`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:".cache/reprint.db"`

	OutputDir        string `envconfig:"OUTPUT_DIR" default:"public"`
	TemplatePath     string `envconfig:"TEMPLATE_PATH" required:"true"`
	RenderedFilename string `envconfig:"RENDERED_FILENAME" default:"index.html"`

	// When set, the process serves the rebuild webhook instead of
	// rendering once and exiting.
	ListenAddr    string `envconfig:"LISTEN_ADDR"`
	RebuildSecret string `envconfig:"REBUILD_SECRET"`

	CacheTTLHours int  `envconfig:"CACHE_TTL_HOURS" default:"12"`
	Typography    bool `envconfig:"TYPOGRAPHY" default:"true"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.CacheBackend != BackendFile && cfg.CacheBackend != BackendSQLite {
		return nil, fmt.Errorf("unknown cache backend %q (want %q or %q)",
			cfg.CacheBackend, BackendFile, BackendSQLite)
	}
	if cfg.ListenAddr != "" && cfg.RebuildSecret == "" {
		return nil, fmt.Errorf("REBUILD_SECRET must be set when LISTEN_ADDR is configured")
	}

	return &cfg, nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
