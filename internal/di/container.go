package di

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	command "github.com/goliatone/go-command"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-bilingual-cms/internal/commands"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	recordscmd "github.com/goliatone/go-bilingual-cms/internal/commands/records"
	"github.com/goliatone/go-bilingual-cms/internal/dashboard"
	"github.com/goliatone/go-bilingual-cms/internal/editor"
	cmshttp "github.com/goliatone/go-bilingual-cms/internal/http"
	"github.com/goliatone/go-bilingual-cms/internal/i18n"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/logging/console"
	"github.com/goliatone/go-bilingual-cms/internal/logging/gologger"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/navigation"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/internal/runtimeconfig"
	"github.com/goliatone/go-bilingual-cms/internal/storage"
	"github.com/goliatone/go-bilingual-cms/pkg/activity"
	"github.com/goliatone/go-bilingual-cms/pkg/activity/usersink"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-bilingual-cms/pkg/storage"
)

// CommandRegistry receives every command handler the container builds.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	recordRepo records.Repository
	recordSvc  *records.Service

	activitySink  interfaces.ActivitySink
	activityHooks activity.Hooks

	commandRegistry CommandRegistry
	cronRegistrar   markdowncmd.CronRegistrar
	recordHandlers  *recordscmd.HandlerSet
	importHandler   *markdowncmd.ImportMarkdownHandler

	routeManager *urlkit.RouteManager
	navResolver  *navigation.Resolver
	langResolver *i18n.Resolver

	markdownLoader *markdown.Loader
	importer       *markdown.Importer

	dashboardSvc *dashboard.Service
	router       chi.Router
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB supplies an open database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithRecordRepository overrides the repository chosen from Config.Storage.
func WithRecordRepository(repo records.Repository) Option {
	return func(c *Container) {
		c.recordRepo = repo
	}
}

// WithActivitySink forwards record changes to a go-users activity sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithActivityHooks adds hooks notified on record changes.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		c.activityHooks = append(c.activityHooks, hooks...)
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithCronRegistrar schedules the markdown import when
// Config.Markdown.Schedule is set.
func WithCronRegistrar(reg markdowncmd.CronRegistrar) Option {
	return func(c *Container) {
		c.cronRegistrar = reg
	}
}

// WithNavigationResolver overrides the resolver built from Config.Navigation.
func WithNavigationResolver(resolver *navigation.Resolver) Option {
	return func(c *Container) {
		c.navResolver = resolver
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureStorage,
		c.configureRecords,
		c.configureCommands,
		c.configureNavigation,
		c.configureMarkdown,
		c.configureDashboard,
		c.configureRouter,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.logger().Info("container.configured",
		"storage", cfg.Storage.String(),
		"cache", c.cacheService != nil,
		"markdown", cfg.Markdown.Enabled,
	)
	return c, nil
}

func (c *Container) logger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, "cms")
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: &level})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.recordRepo != nil {
		return nil
	}
	if c.bunDB == nil && c.Config.Storage.NormalizedDriver() == pkgstorage.DriverMemory {
		c.recordRepo = records.NewMemoryRepository()
		return nil
	}

	ctx := context.Background()
	if c.bunDB == nil {
		db, err := storage.Open(ctx, c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if err := storage.EnsureSchema(ctx, c.bunDB); err != nil {
		return err
	}

	c.configureCacheDefaults()
	c.recordRepo = records.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		c.cacheService = nil
		c.keySerializer = nil
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger().Warn("container.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRecords() error {
	hooks := append(activity.Hooks{}, c.activityHooks...)
	if c.activitySink != nil {
		hooks = append(hooks, usersink.Hook{Sink: c.activitySink})
	}

	svc, err := records.NewService(c.recordRepo,
		records.WithLogger(logging.RecordsLogger(c.loggerProvider)),
		records.WithRichTextSanitizer(c.Config.Content.SanitizeRichText),
		records.WithActivityHooks(hooks...),
	)
	if err != nil {
		return fmt.Errorf("di: records service: %w", err)
	}
	c.recordSvc = svc
	return nil
}

func (c *Container) configureCommands() error {
	timeout := c.Config.Commands.Timeout
	if timeout <= 0 {
		timeout = commands.DefaultCommandTimeout
	}
	set, err := recordscmd.RegisterRecordCommands(c.commandRegistry, c.recordSvc, c.loggerProvider,
		recordscmd.WithSaveHandlerOptions(commands.WithTimeout[recordscmd.SaveRecordCommand](timeout)),
		recordscmd.WithDeleteHandlerOptions(commands.WithTimeout[recordscmd.DeleteRecordCommand](timeout)),
	)
	if err != nil {
		return err
	}
	c.recordHandlers = set
	return nil
}

func (c *Container) configureNavigation() error {
	langs := i18n.FromModuleConfig(c.Config.DefaultLang, c.Config.Languages)
	c.langResolver = i18n.NewResolver(langs)

	if c.navResolver != nil {
		return nil
	}
	navCfg := c.Config.Navigation
	routeCfg := navCfg.RouteConfig
	if routeCfg == nil {
		publicURL := strings.TrimSpace(c.Config.HTTP.PublicURL)
		if publicURL == "" {
			return nil
		}
		routeCfg = navigation.DefaultRouteConfig(publicURL)
	}

	c.routeManager = urlkit.NewRouteManager(routeCfg)
	localeGroups := navCfg.LocaleGroups
	if len(localeGroups) == 0 {
		localeGroups = navigation.DefaultLocaleGroups()
	}
	c.navResolver = navigation.NewResolver(navigation.Options{
		Manager:      c.routeManager,
		DefaultGroup: strings.TrimSpace(navCfg.DefaultGroup),
		LocaleGroups: localeGroups,
		Logger:       logging.ModuleLogger(c.loggerProvider, "cms.navigation"),
	})
	return nil
}

func (c *Container) configureMarkdown() error {
	mdCfg := c.Config.Markdown
	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Store:  c.recordSvc,
		Logger: logging.ImportLogger(c.loggerProvider),
	})
	if dir := strings.TrimSpace(mdCfg.ContentDir); dir != "" {
		c.markdownLoader = markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{
			Pattern:   mdCfg.Pattern,
			Recursive: mdCfg.Recursive,
		})
	}

	gates := markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return c.Config.Markdown.Enabled },
	}
	handler, err := markdowncmd.RegisterMarkdownCommands(c.commandRegistry, c.importer, c.markdownLoader, c.loggerProvider, gates)
	if err != nil {
		return err
	}
	c.importHandler = handler

	schedule := strings.TrimSpace(mdCfg.Schedule)
	if !mdCfg.Enabled || schedule == "" || c.cronRegistrar == nil {
		return nil
	}
	if err := markdowncmd.RegisterMarkdownCron(c.cronRegistrar, handler, command.HandlerConfig{Expression: schedule}, markdowncmd.ImportMarkdownCommand{Dir: "."}); err != nil {
		return fmt.Errorf("di: schedule markdown import: %w", err)
	}
	c.logger().Info("markdown.import.scheduled", "expression", schedule, "dir", mdCfg.ContentDir)
	return nil
}

func (c *Container) configureDashboard() error {
	svc, err := dashboard.NewService(c.recordSvc, dashboard.WithLogger(logging.DashboardLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.dashboardSvc = svc
	return nil
}

func (c *Container) configureRouter() error {
	httpLogger := logging.HTTPLogger(c.loggerProvider)
	admin := cmshttp.NewAdminAPI(
		cmshttp.WithBasePath(c.Config.HTTP.AdminBasePath),
		cmshttp.WithRecordService(c.recordSvc),
		cmshttp.WithSaveHandler(c.recordHandlers.Save),
		cmshttp.WithDeleteHandler(c.recordHandlers.Delete),
		cmshttp.WithImportHandler(c.importHandler),
		cmshttp.WithDashboard(c.dashboardSvc),
		cmshttp.WithLogger(httpLogger),
	)
	public := cmshttp.NewPublicAPI(
		cmshttp.WithPublicBasePath(c.Config.HTTP.PublicBasePath),
		cmshttp.WithPublicRecordService(c.recordSvc),
		cmshttp.WithLanguageResolver(c.langResolver),
		cmshttp.WithNavigation(c.navResolver),
		cmshttp.WithPublicLogger(httpLogger),
	)
	router, err := cmshttp.NewRouter(cmshttp.RouterConfig{
		Admin:   admin,
		Public:  public,
		Timeout: c.Config.HTTP.RequestTimeout,
		Logger:  httpLogger,
	})
	if err != nil {
		return err
	}
	c.router = router
	return nil
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	c.ownsDB = false
	return c.bunDB.Close()
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the module logger for name.
func (c *Container) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, name)
}

func (c *Container) DB() *bun.DB {
	return c.bunDB
}

func (c *Container) RecordRepository() records.Repository {
	return c.recordRepo
}

func (c *Container) RecordService() *records.Service {
	return c.recordSvc
}

// RecordHandlers returns the save and delete command handlers.
func (c *Container) RecordHandlers() *recordscmd.HandlerSet {
	return c.recordHandlers
}

func (c *Container) ImportHandler() *markdowncmd.ImportMarkdownHandler {
	return c.importHandler
}

func (c *Container) Importer() *markdown.Importer {
	return c.importer
}

// MarkdownLoader is nil when no content directory is configured.
func (c *Container) MarkdownLoader() *markdown.Loader {
	return c.markdownLoader
}

func (c *Container) Dashboard() *dashboard.Service {
	return c.dashboardSvc
}

func (c *Container) LanguageResolver() *i18n.Resolver {
	return c.langResolver
}

// NavigationResolver is nil when neither a route config nor a public URL is
// configured.
func (c *Container) NavigationResolver() *navigation.Resolver {
	return c.navResolver
}

// Router returns the HTTP handler serving both APIs.
func (c *Container) Router() chi.Router {
	return c.router
}

// Editor returns an editor machine saving through the in-process record
// service.
func (c *Container) Editor(opts ...editor.Option) *editor.Machine {
	base := []editor.Option{editor.WithLogger(logging.EditorLogger(c.loggerProvider))}
	return editor.NewMachine(editor.ServicePersister{Service: c.recordSvc}, append(base, opts...)...)
}
