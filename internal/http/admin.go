package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-bilingual-cms/content"
	markdowncmd "github.com/goliatone/go-bilingual-cms/internal/commands/markdown"
	recordscmd "github.com/goliatone/go-bilingual-cms/internal/commands/records"
	"github.com/goliatone/go-bilingual-cms/internal/dashboard"
	"github.com/goliatone/go-bilingual-cms/internal/kinds"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/internal/markdown"
	"github.com/goliatone/go-bilingual-cms/internal/records"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// AdminRecords is the read side of records.Service used by the admin API.
type AdminRecords interface {
	List(ctx context.Context, kind content.Kind) ([]*records.Record, error)
	Get(ctx context.Context, kind content.Kind, id uuid.UUID) (*records.Record, error)
	GetSingleton(ctx context.Context, kind content.Kind, key string) (*records.Record, error)
	Validate(kind content.Kind, doc map[string]any, lang content.Lang) (records.Report, error)
}

// AdminAPI registers the editor-facing endpoints.
type AdminAPI struct {
	basePath  string
	records   AdminRecords
	save      command.Commander[recordscmd.SaveRecordCommand]
	delete    command.Commander[recordscmd.DeleteRecordCommand]
	importer  command.Commander[markdowncmd.ImportMarkdownCommand]
	dashboard *dashboard.Service
	logger    interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: defaultAdminBasePath,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithRecordService wires the record reads.
func WithRecordService(service AdminRecords) AdminOption {
	return func(api *AdminAPI) {
		api.records = service
	}
}

// WithSaveHandler wires the command handler used for creates and updates.
func WithSaveHandler(handler command.Commander[recordscmd.SaveRecordCommand]) AdminOption {
	return func(api *AdminAPI) {
		api.save = handler
	}
}

// WithDeleteHandler wires the command handler used for deletes.
func WithDeleteHandler(handler command.Commander[recordscmd.DeleteRecordCommand]) AdminOption {
	return func(api *AdminAPI) {
		api.delete = handler
	}
}

// WithImportHandler enables POST /import/markdown.
func WithImportHandler(handler command.Commander[markdowncmd.ImportMarkdownCommand]) AdminOption {
	return func(api *AdminAPI) {
		api.importer = handler
	}
}

// WithDashboard enables GET /dashboard.
func WithDashboard(service *dashboard.Service) AdminOption {
	return func(api *AdminAPI) {
		api.dashboard = service
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		api.logger = logging.Ensure(logger)
	}
}

// Register attaches the admin endpoints to r under the base path.
func (api *AdminAPI) Register(r chi.Router) error {
	if r == nil {
		return fmt.Errorf("http: router is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}
	if api.records == nil {
		return fmt.Errorf("http: admin api requires a record service")
	}
	r.Route(joinPath(api.basePath, ""), api.routes)
	return nil
}

func (api *AdminAPI) routes(r chi.Router) {
	r.Get("/dashboard", api.overview)
	r.Post("/import/markdown", api.importMarkdown)

	r.Get("/navbar", api.getSingleton(content.KindNavbar))
	r.Put("/navbar", api.putSingleton(content.KindNavbar))
	r.Get("/contact", api.getSingleton(content.KindContact))
	r.Put("/contact", api.putSingleton(content.KindContact))
	r.Get("/pages/{page}", api.getSingleton(content.KindPages))
	r.Put("/pages/{page}", api.putSingleton(content.KindPages))

	r.Get("/{kind}", api.list)
	r.Post("/{kind}", api.create)
	r.Post("/{kind}/validate", api.validate)
	r.Get("/{kind}/{id}", api.get)
	r.Put("/{kind}/{id}", api.update)
	r.Delete("/{kind}/{id}", api.remove)
}

func kindParam(r *http.Request) content.Kind {
	return content.Kind(strings.ToLower(strings.TrimSpace(chi.URLParam(r, "kind"))))
}

// collectionParam resolves {kind} and rejects singleton or unknown kinds.
func collectionParam(r *http.Request) (content.Kind, error) {
	kind := kindParam(r)
	def, ok := kinds.Lookup(kind)
	if !ok || def.Singleton {
		return "", newRequestError(http.StatusNotFound, CodeUnknownKind, "unknown collection "+strconv.Quote(kind.String()))
	}
	return kind, nil
}

func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, newRequestError(http.StatusNotFound, CodeNotFound, "record id is not valid")
	}
	return id, nil
}

func documents(recs []*records.Record) []map[string]any {
	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Document())
	}
	return out
}

func (api *AdminAPI) list(w http.ResponseWriter, r *http.Request) {
	recs, err := api.records.List(r.Context(), kindParam(r))
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, http.StatusOK, documents(recs))
}

func (api *AdminAPI) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	rec, err := api.records.Get(r.Context(), kindParam(r), id)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, http.StatusOK, rec.Document())
}

func (api *AdminAPI) create(w http.ResponseWriter, r *http.Request) {
	api.saveRecord(w, r, uuid.Nil, http.StatusCreated)
}

func (api *AdminAPI) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	api.saveRecord(w, r, id, http.StatusOK)
}

func (api *AdminAPI) saveRecord(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	kind, err := collectionParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	rec, err := api.dispatchSave(w, r, recordscmd.SaveRecordCommand{Kind: kind, ID: id})
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, status, rec.Document())
}

func (api *AdminAPI) dispatchSave(w http.ResponseWriter, r *http.Request, msg recordscmd.SaveRecordCommand) (*records.Record, error) {
	lang, err := parseLangQuery(r)
	if err != nil {
		return nil, newRequestError(http.StatusBadRequest, CodeBadRequest, err.Error())
	}
	var doc map[string]any
	if err := decodeJSON(w, r, &doc); err != nil {
		return nil, newRequestError(http.StatusBadRequest, CodeBadRequest, err.Error())
	}
	if api.save == nil {
		return nil, newRequestError(http.StatusServiceUnavailable, CodeUnavailable, "saving is not configured")
	}
	result := &recordscmd.SaveResult{}
	msg.Payload = doc
	msg.Lang = lang
	msg.Result = result
	if err := api.save.Execute(r.Context(), msg); err != nil {
		return nil, err
	}
	return result.Record, nil
}

func (api *AdminAPI) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	if !parseBoolQuery(r.URL.Query().Get("confirm"), false) {
		writeError(w, r, api.logger, newRequestError(http.StatusBadRequest, CodeConfirmationRequired, "deletion is permanent; repeat the request with confirm=true"))
		return
	}
	if api.delete == nil {
		writeError(w, r, api.logger, newRequestError(http.StatusServiceUnavailable, CodeUnavailable, "deleting is not configured"))
		return
	}
	kind, err := collectionParam(r)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	if err := api.delete.Execute(r.Context(), recordscmd.DeleteRecordCommand{Kind: kind, ID: id, Confirmed: true}); err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *AdminAPI) validate(w http.ResponseWriter, r *http.Request) {
	lang, err := parseLangQuery(r)
	if err != nil {
		writeError(w, r, api.logger, newRequestError(http.StatusBadRequest, CodeBadRequest, err.Error()))
		return
	}
	var doc map[string]any
	if err := decodeJSON(w, r, &doc); err != nil {
		writeError(w, r, api.logger, newRequestError(http.StatusBadRequest, CodeBadRequest, err.Error()))
		return
	}
	report, err := api.records.Validate(kindParam(r), doc, lang)
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, http.StatusOK, report)
}

func (api *AdminAPI) getSingleton(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := api.records.GetSingleton(r.Context(), kind, chi.URLParam(r, "page"))
		if err != nil {
			writeError(w, r, api.logger, err)
			return
		}
		writeData(w, http.StatusOK, rec.Document())
	}
}

func (api *AdminAPI) putSingleton(kind content.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "page")
		if _, err := api.records.GetSingleton(r.Context(), kind, key); err != nil {
			writeError(w, r, api.logger, err)
			return
		}
		rec, err := api.dispatchSave(w, r, recordscmd.SaveRecordCommand{Kind: kind, Key: key})
		if err != nil {
			writeError(w, r, api.logger, err)
			return
		}
		writeData(w, http.StatusOK, rec.Document())
	}
}

func (api *AdminAPI) overview(w http.ResponseWriter, r *http.Request) {
	if api.dashboard == nil {
		writeError(w, r, api.logger, newRequestError(http.StatusServiceUnavailable, CodeUnavailable, "dashboard is not configured"))
		return
	}
	overview, err := api.dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, http.StatusOK, overview)
}

type importRequest struct {
	Dir    string `json:"dir"`
	DryRun bool   `json:"dryRun"`
}

func (api *AdminAPI) importMarkdown(w http.ResponseWriter, r *http.Request) {
	if api.importer == nil {
		writeError(w, r, api.logger, newRequestError(http.StatusServiceUnavailable, CodeUnavailable, "markdown import is not configured"))
		return
	}
	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, api.logger, newRequestError(http.StatusBadRequest, CodeBadRequest, err.Error()))
		return
	}
	report := &markdown.Report{}
	if err := api.importer.Execute(r.Context(), markdowncmd.ImportMarkdownCommand{Dir: req.Dir, DryRun: req.DryRun, Report: report}); err != nil {
		writeError(w, r, api.logger, err)
		return
	}
	writeData(w, http.StatusOK, report)
}
