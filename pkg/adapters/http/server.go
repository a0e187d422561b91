package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/entitystore"
	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/aretw0/entitystore/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// Host is the container surface served over HTTP.
type Host interface {
	ports.Dispatcher
	ports.StateReader
	Paths() []string
	Subscribe(buffer int) (<-chan container.Change, func())
}

// Server serves a Host over HTTP.
type Server struct {
	Host    Host
	Streams *StreamManager

	spec     *openapi3.T
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler for host.
// Changes are streamed to SSE clients until ctx is done.
func NewHandler(ctx context.Context, host Host, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Host:   host,
		spec:   spec,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	changes, cancel := host.Subscribe(64)
	go s.pump(ctx, changes, cancel)

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/dispatch", s.Dispatch)
	r.Get("/state", s.GetState)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/collections", func(r chi.Router) {
		r.Get("/", s.ListCollections)
		r.Get("/{path}", s.GetCollection)
		r.Get("/{path}/keys", s.GetKeys)
		r.Get("/{path}/entities", s.GetEntities)
		r.Get("/{path}/active", s.GetActive)
		r.Get("/{path}/size", s.GetSize)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>entitystore API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps a dispatch error to its HTTP status.
func statusFor(err error) int {
	var payloadErr *domain.PayloadError
	switch {
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidID), errors.As(err, &payloadErr):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "entitystore-http",
		"version":     strings.TrimSpace(entitystore.Version),
		"api_version": apiVersion,
	})
}

// Dispatch handles the POST /dispatch request.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	var action domain.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn("Dispatch: Invalid request body", "err", err)
		return
	}
	if _, _, err := domain.ParseActionType(action.Type); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.Host.Dispatch(r.Context(), action); err != nil {
		status := statusFor(err)
		writeError(w, status, err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("Dispatch failed", "type", action.Type, "err", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	tree := s.Host.State()
	out := make(map[string]domain.View)
	for _, p := range s.Host.Paths() {
		if v, ok := entity.ViewAt(tree, p); ok {
			out[p] = v
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCollections handles the GET /collections request.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Host.Paths())
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) (domain.View, bool) {
	path := chi.URLParam(r, "path")
	v, ok := entity.ViewAt(s.Host.State(), path)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrPathNotFound, path))
	}
	return v, ok
}

// GetCollection handles the GET /collections/{path} request.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.view(w, r); ok {
		writeJSON(w, http.StatusOK, v)
	}
}

// GetKeys handles the GET /collections/{path}/keys request.
func (s *Server) GetKeys(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.view(w, r); ok {
		writeJSON(w, http.StatusOK, v.Keys())
	}
}

// GetEntities handles the GET /collections/{path}/entities request.
func (s *Server) GetEntities(w http.ResponseWriter, r *http.Request) {
	list, ok := entity.EntitiesAt(s.Host.State(), chi.URLParam(r, "path"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrPathNotFound, chi.URLParam(r, "path")))
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetActive handles the GET /collections/{path}/active request.
func (s *Server) GetActive(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	e, ok := v.Entities[v.Active]
	if v.Active == "" || !ok {
		writeError(w, http.StatusNotFound, errors.New("no active entity"))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// GetSize handles the GET /collections/{path}/size request.
func (s *Server) GetSize(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.view(w, r); ok {
		writeJSON(w, http.StatusOK, map[string]int{"size": v.Size()})
	}
}
