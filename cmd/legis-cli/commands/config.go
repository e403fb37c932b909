package commands

import (
	"errors"
	"legiscraper/lib/configutil"
	configlibsql "legiscraper/lib/configutil/libsql"
	"legiscraper/lib/scrapers/legislature"
	"log/slog"
	"os"
	"time"
)

type Config struct {
	DocumentHost     string              `json:"document_host"`
	SessionLocator   string              `json:"session_locator"`
	SessionLinkBase  string              `json:"session_link_base"`
	TimeoutSeconds   int                 `json:"timeout_seconds"`
	RetryCount       int                 `json:"retry_count"`
	UserAgent        string              `json:"user_agent"`
	CloudflareBypass bool                `json:"cloudflare_bypass"`
	CacheTTLSeconds  int                 `json:"cache_ttl_seconds"`
	Database         configlibsql.Struct `json:"database"`
}

var defaultConfig = Config{
	DocumentHost:    legislature.DefaultDocumentHost,
	SessionLocator:  legislature.DefaultSessionLocator,
	SessionLinkBase: legislature.DefaultSessionLinkBase,
	TimeoutSeconds:  30,
	RetryCount:      2,
	UserAgent:       legislature.DefaultUserAgent,
	CacheTTLSeconds: 600,
	Database: configlibsql.Struct{
		File: "<dev_state>/bills.db",
	},
}

// loadConfig reads `path` (and its .local override) on top of the
// defaults. A missing file is fine, the defaults are used as is.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, defaultConfig)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return defaultConfig, nil
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) clientOptions() legislature.ClientOptions {
	return legislature.ClientOptions{
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		RetryCount:       c.RetryCount,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
		CacheTTL:         time.Duration(c.CacheTTLSeconds) * time.Second,
	}
}
