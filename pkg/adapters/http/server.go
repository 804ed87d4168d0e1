package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/conduit/internal/dag"
	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/observability"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var openapiSpec []byte

// ParsePath is the route of the verdict endpoint.
const ParsePath = "/pipelines/parse"

// Server is the reference verdict service: it answers submission payloads
// with node/edge counts and a directed-acyclicity verdict.
type Server struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	contract routers.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records verdicts on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler creates the HTTP handler of the verdict service.
// It fails only if the embedded OpenAPI contract is broken.
func NewHandler(opts ...Option) (http.Handler, error) {
	contract, err := loadContract()
	if err != nil {
		return nil, err
	}
	s := &Server{
		logger:   logging.NewNop(),
		contract: contract,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.validateRequest)

	r.Get("/", s.Ping)
	r.Post(ParsePath, s.Parse)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	return r, nil
}

func loadContract() (routers.Router, error) {
	ctx := context.Background()
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI contract: %w", err)
	}
	return legacyrouter.NewRouter(doc)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validateRequest rejects requests that violate the OpenAPI contract.
// Routes the contract does not describe pass through.
func (s *Server) validateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := s.contract.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Warn("request rejected by contract", "path", r.URL.Path, "error", err)
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Ping handles GET /.
func (s *Server) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Ping": "Pong"})
}

// Parse handles POST /pipelines/parse.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	var payload wire.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.logger.Warn("Parse: invalid request body", "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	resp := dag.Analyze(payload)
	s.metrics.ObserveVerdict(resp.IsDAG)
	s.logger.Info("pipeline parsed", "num_nodes", resp.NumNodes, "num_edge", resp.NumEdge, "is_dag", resp.IsDAG)
	writeJSON(w, http.StatusOK, resp)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
