package runtimeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/validation"
	"github.com/goliatone/go-bilingual-cms/pkg/storage"
)

var ErrDefaultLangUnsupported = errors.New("cms config: default language must be en or ur")
var ErrLanguagesInvalid = errors.New("cms config: languages must list en and ur only")
var ErrStorageConfigInvalid = errors.New("cms config: storage configuration is invalid")
var ErrCacheTTLInvalid = errors.New("cms config: cache ttl must be zero or positive")
var ErrHTTPBasePathInvalid = errors.New("cms config: http base paths must start with /")
var ErrCommandTimeoutInvalid = errors.New("cms config: command timeout must be zero or positive")
var ErrMarkdownContentDirRequired = errors.New("cms config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("cms config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("cms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("cms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cms config: logging format is invalid")

// Config aggregates the settings of the CMS module. Fields use simple types
// so host applications can fill them from any source.
type Config struct {
	DefaultLang string
	Languages   []string
	Storage     storage.Config
	Cache       CacheConfig
	HTTP        HTTPConfig
	Navigation  NavigationConfig
	Content     ContentConfig
	Markdown    MarkdownConfig
	Commands    CommandsConfig
	Features    Features
	Logging     LoggingConfig
}

// CacheConfig captures the record cache toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// HTTPConfig captures the content API listener.
type HTTPConfig struct {
	Addr           string
	AdminBasePath  string
	PublicBasePath string
	// PublicURL is the base of navbar URLs.
	PublicURL      string
	RequestTimeout time.Duration
}

// NavigationConfig captures routing configuration for navbar URL resolution.
// A nil RouteConfig means the built-in public routes.
type NavigationConfig struct {
	RouteConfig  *urlkit.Config
	DefaultGroup string
	LocaleGroups map[string]string
}

// ContentConfig captures record handling.
type ContentConfig struct {
	SanitizeRichText bool
}

// MarkdownConfig captures where bilingual post files are imported from.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	// Schedule is a cron expression for periodic re-imports of ContentDir.
	// Empty disables scheduling.
	Schedule string
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults of a local install.
func DefaultConfig() Config {
	return Config{
		DefaultLang: "en",
		Languages:   []string{"en", "ur"},
		Storage: storage.Config{
			Driver: storage.DriverMemory,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AdminBasePath:  "/admin/api",
			PublicBasePath: "/api",
			RequestTimeout: 15 * time.Second,
		},
		Navigation: NavigationConfig{
			DefaultGroup: "public",
			LocaleGroups: map[string]string{"en": "public", "ur": "public.ur"},
		},
		Content: ContentConfig{
			SanitizeRichText: true,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content/posts",
			Pattern:    "*.md",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if _, ok := content.ParseLang(cfg.DefaultLang); !ok {
		return fmt.Errorf("%w: %q", ErrDefaultLangUnsupported, cfg.DefaultLang)
	}
	if err := validateLanguages(cfg.Languages); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	for _, base := range []string{cfg.HTTP.AdminBasePath, cfg.HTTP.PublicBasePath} {
		if !strings.HasPrefix(strings.TrimSpace(base), "/") {
			return fmt.Errorf("%w: %q", ErrHTTPBasePathInvalid, base)
		}
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Markdown.Enabled && strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrMarkdownContentDirRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func validateLanguages(languages []string) error {
	seen := map[content.Lang]bool{}
	for _, code := range languages {
		lang, ok := content.ParseLang(code)
		if !ok || seen[lang] {
			return fmt.Errorf("%w: %q", ErrLanguagesInvalid, code)
		}
		seen[lang] = true
	}
	if !seen[content.LangEN] || !seen[content.LangUR] {
		return ErrLanguagesInvalid
	}
	return nil
}

var (
	storageSchemaOnce sync.Once
	storageSchema     map[string]any
	storageSchemaErr  error
)

func validateStorage(cfg storage.Config) error {
	storageSchemaOnce.Do(func() {
		storageSchemaErr = json.Unmarshal([]byte(storage.ConfigJSONSchema), &storageSchema)
	})
	if storageSchemaErr != nil {
		return fmt.Errorf("%w: %v", ErrStorageConfigInvalid, storageSchemaErr)
	}
	if err := validation.ValidatePayload(storageSchema, cfg.Document()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageConfigInvalid, err)
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
