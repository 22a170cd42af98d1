package cms

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/dashboard"
	"github.com/goliatone/go-bilingual-cms/internal/di"
	"github.com/goliatone/go-bilingual-cms/internal/editor"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// RecordService exports the record service used by the admin and public APIs.
type RecordService = *records.Service

// Record exports the stored record model.
type Record = records.Record

// DashboardService exports the admin overview service.
type DashboardService = *dashboard.Service

// DashboardOverview exports the overview DTO.
type DashboardOverview = dashboard.Overview

// Editor exports the editor state machine.
type Editor = *editor.Machine

// ImportReport exports the markdown import report.
type ImportReport = markdown.Report

// Typed record views.
type (
	BlogCollection    = *records.Collection[content.BlogPost]
	EventCollection   = *records.Collection[content.EventDetail]
	ServiceCollection = *records.Collection[content.ServiceDetail]
	NavbarSingleton   = *records.Singleton[content.Navbar]
	ContactSingleton  = *records.Singleton[content.ContactInfo]
	PageSingleton     = *records.Singleton[content.PageSettings]
)

var ErrPageKindInvalid = errors.New("cms: page settings exist only for collection kinds")

// Module represents the top level CMS runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a CMS module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases storage opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Records returns the record service.
func (m *Module) Records() RecordService {
	return m.container.RecordService()
}

// Handler serves the admin and public JSON APIs.
func (m *Module) Handler() http.Handler {
	return m.container.Router()
}

func (m *Module) Dashboard() DashboardService {
	return m.container.Dashboard()
}

// Editor returns a new editor session machine saving in-process.
func (m *Module) Editor(opts ...editor.Option) Editor {
	return m.container.Editor(opts...)
}

// LoggerProvider returns the provider the module logs through.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

func (m *Module) Blogs() BlogCollection {
	return records.NewCollection[content.BlogPost](m.Records(), content.KindBlogs)
}

func (m *Module) Events() EventCollection {
	return records.NewCollection[content.EventDetail](m.Records(), content.KindEvents)
}

func (m *Module) Services() ServiceCollection {
	return records.NewCollection[content.ServiceDetail](m.Records(), content.KindServices)
}

func (m *Module) Navbar() NavbarSingleton {
	return records.NewSingleton[content.Navbar](m.Records(), content.KindNavbar, "")
}

func (m *Module) Contact() ContactSingleton {
	return records.NewSingleton[content.ContactInfo](m.Records(), content.KindContact, "")
}

// PageSettings returns the header settings of a collection's listing page.
func (m *Module) PageSettings(kind content.Kind) (PageSingleton, error) {
	kind = content.Kind(strings.ToLower(strings.TrimSpace(kind.String())))
	if !isCollectionKind(kind) {
		return nil, ErrPageKindInvalid
	}
	return records.NewSingleton[content.PageSettings](m.Records(), content.KindPages, kind.String()), nil
}

// ImportMarkdown runs the markdown import command for dir, relative to
// Config.Markdown.ContentDir.
func (m *Module) ImportMarkdown(ctx context.Context, dir string, dryRun bool) (*ImportReport, error) {
	report := &markdown.Report{}
	err := m.container.ImportHandler().Execute(ctx, markdowncmd.ImportMarkdownCommand{Dir: dir, DryRun: dryRun, Report: report})
	if err != nil {
		return nil, err
	}
	return report, nil
}
