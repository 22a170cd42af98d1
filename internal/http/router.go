package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

const (
	defaultAdminBasePath  = "/admin/api"
	defaultPublicBasePath = "/api"
	defaultTimeout        = 30 * time.Second
)

// RouterConfig mounts the admin and public APIs.
type RouterConfig struct {
	Admin   *AdminAPI
	Public  *PublicAPI
	Timeout time.Duration
	Logger  interfaces.Logger
}

// NewRouter builds the chi router with shared middleware. Either API may be
// nil to serve only the other one.
func NewRouter(cfg RouterConfig) (chi.Router, error) {
	logger := logging.Ensure(cfg.Logger)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(middleware.Timeout(timeout))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, logger, newRequestError(http.StatusNotFound, CodeNotFound, fmt.Sprintf("no route for %s", req.URL.Path)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, logger, newRequestError(http.StatusMethodNotAllowed, "method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path)))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Admin != nil {
		if err := cfg.Admin.Register(r); err != nil {
			return nil, err
		}
	}
	if cfg.Public != nil {
		if err := cfg.Public.Register(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func requestLogger(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			ctx := logging.ContextWithFields(r.Context(), map[string]any{"request_id": middleware.GetReqID(r.Context())})
			next.ServeHTTP(ww, r.WithContext(ctx))
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("http.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(started).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
