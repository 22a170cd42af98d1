package runtimeconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every variable ApplyEnv reads.
const EnvPrefix = "CMS_"

// envOverrides lists the settings that can come from the environment.
// Fields start from the current config so unset variables keep it.
type envOverrides struct {
	DefaultLang      string        `env:"DEFAULT_LANG"`
	Languages        []string      `env:"LANGUAGES"`
	StorageDriver    string        `env:"STORAGE_DRIVER"`
	StorageDSN       string        `env:"STORAGE_DSN"`
	StorageDebug     bool          `env:"STORAGE_DEBUG"`
	CacheEnabled     bool          `env:"CACHE_ENABLED"`
	CacheTTL         time.Duration `env:"CACHE_TTL"`
	HTTPAddr         string        `env:"HTTP_ADDR"`
	AdminBasePath    string        `env:"HTTP_ADMIN_BASE_PATH"`
	PublicBasePath   string        `env:"HTTP_PUBLIC_BASE_PATH"`
	PublicURL        string        `env:"HTTP_PUBLIC_URL"`
	RequestTimeout   time.Duration `env:"HTTP_REQUEST_TIMEOUT"`
	SanitizeRichText bool          `env:"CONTENT_SANITIZE_RICH_TEXT"`
	MarkdownEnabled  bool          `env:"MARKDOWN_ENABLED"`
	MarkdownDir      string        `env:"MARKDOWN_CONTENT_DIR"`
	MarkdownSchedule string        `env:"MARKDOWN_SCHEDULE"`
	CommandTimeout   time.Duration `env:"COMMANDS_TIMEOUT"`
	LoggerEnabled    bool          `env:"LOGGER_ENABLED"`
	LogProvider      string        `env:"LOG_PROVIDER"`
	LogLevel         string        `env:"LOG_LEVEL"`
	LogFormat        string        `env:"LOG_FORMAT"`
	LogAddSource     bool          `env:"LOG_ADD_SOURCE"`
	LogFocus         []string      `env:"LOG_FOCUS"`
}

// ApplyEnv overlays CMS_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom is ApplyEnv reading from environ instead of the process
// environment.
func ApplyEnvFrom(cfg *Config, environ map[string]string) error {
	return applyEnv(cfg, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func applyEnv(cfg *Config, opts env.Options) error {
	if cfg == nil {
		return fmt.Errorf("runtimeconfig: nil config")
	}
	o := envOverrides{
		DefaultLang:      cfg.DefaultLang,
		Languages:        cfg.Languages,
		StorageDriver:    cfg.Storage.Driver,
		StorageDSN:       cfg.Storage.DSN,
		StorageDebug:     cfg.Storage.Debug,
		CacheEnabled:     cfg.Cache.Enabled,
		CacheTTL:         cfg.Cache.DefaultTTL,
		HTTPAddr:         cfg.HTTP.Addr,
		AdminBasePath:    cfg.HTTP.AdminBasePath,
		PublicBasePath:   cfg.HTTP.PublicBasePath,
		PublicURL:        cfg.HTTP.PublicURL,
		RequestTimeout:   cfg.HTTP.RequestTimeout,
		SanitizeRichText: cfg.Content.SanitizeRichText,
		MarkdownEnabled:  cfg.Markdown.Enabled,
		MarkdownDir:      cfg.Markdown.ContentDir,
		MarkdownSchedule: cfg.Markdown.Schedule,
		CommandTimeout:   cfg.Commands.Timeout,
		LoggerEnabled:    cfg.Features.Logger,
		LogProvider:      cfg.Logging.Provider,
		LogLevel:         cfg.Logging.Level,
		LogFormat:        cfg.Logging.Format,
		LogAddSource:     cfg.Logging.AddSource,
		LogFocus:         cfg.Logging.Focus,
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.DefaultLang = o.DefaultLang
	cfg.Languages = o.Languages
	cfg.Storage.Driver = o.StorageDriver
	cfg.Storage.DSN = o.StorageDSN
	cfg.Storage.Debug = o.StorageDebug
	cfg.Cache.Enabled = o.CacheEnabled
	cfg.Cache.DefaultTTL = o.CacheTTL
	cfg.HTTP.Addr = o.HTTPAddr
	cfg.HTTP.AdminBasePath = o.AdminBasePath
	cfg.HTTP.PublicBasePath = o.PublicBasePath
	cfg.HTTP.PublicURL = o.PublicURL
	cfg.HTTP.RequestTimeout = o.RequestTimeout
	cfg.Content.SanitizeRichText = o.SanitizeRichText
	cfg.Markdown.Enabled = o.MarkdownEnabled
	cfg.Markdown.ContentDir = o.MarkdownDir
	cfg.Markdown.Schedule = o.MarkdownSchedule
	cfg.Commands.Timeout = o.CommandTimeout
	cfg.Features.Logger = o.LoggerEnabled
	cfg.Logging.Provider = o.LogProvider
	cfg.Logging.Level = o.LogLevel
	cfg.Logging.Format = o.LogFormat
	cfg.Logging.AddSource = o.LogAddSource
	cfg.Logging.Focus = o.LogFocus
	return nil
}
