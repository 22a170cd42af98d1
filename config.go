package cms

import "github.com/goliatone/go-bilingual-cms/internal/runtimeconfig"

var (
	ErrDefaultLangUnsupported     = runtimeconfig.ErrDefaultLangUnsupported
	ErrLanguagesInvalid           = runtimeconfig.ErrLanguagesInvalid
	ErrStorageConfigInvalid       = runtimeconfig.ErrStorageConfigInvalid
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrHTTPBasePathInvalid        = runtimeconfig.ErrHTTPBasePathInvalid
	ErrCommandTimeoutInvalid      = runtimeconfig.ErrCommandTimeoutInvalid
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	CacheConfig      = runtimeconfig.CacheConfig
	HTTPConfig       = runtimeconfig.HTTPConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	ContentConfig    = runtimeconfig.ContentConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	CommandsConfig   = runtimeconfig.CommandsConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ApplyEnv overlays CMS_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return runtimeconfig.ApplyEnv(cfg)
}
