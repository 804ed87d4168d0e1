package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/conduit"
	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/derive"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/submit"
	"github.com/aretw0/conduit/pkg/validity"
	"github.com/aretw0/conduit/pkg/wire"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ValidateResponse is the structured result of validate_pipeline.
type ValidateResponse struct {
	Valid     bool            `json:"valid" jsonschema_description:"True when the pipeline is acyclic and fully connected"`
	Reason    validity.Reason `json:"reason" jsonschema_description:"valid, cycle_detected or disconnected_nodes"`
	Message   string          `json:"message" jsonschema_description:"Human readable verdict"`
	NumNodes  int             `json:"num_nodes"`
	NumEdge   int             `json:"num_edge"`
	IsDAG     bool            `json:"is_dag"`
	Unreached []string        `json:"unreached,omitempty" jsonschema_description:"Nodes not reachable from the first node"`
}

// PortsResponse is the structured result of derive_ports.
type PortsResponse struct {
	Type  domain.NodeType `json:"type"`
	Ports []domain.Port   `json:"ports"`
}

// Server exposes pipeline validation as MCP tools.
type Server struct {
	submitter *submit.Submitter
	endpoint  string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithEndpoint names the verdict service in error messages.
func WithEndpoint(endpoint string) Option {
	return func(s *Server) {
		s.endpoint = endpoint
	}
}

// NewServer creates an MCP server validating through submitter.
func NewServer(submitter *submit.Submitter, opts ...Option) *Server {
	s := &Server{
		submitter: submitter,
		endpoint:  "the verdict service endpoint",
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("conduit-mcp", strings.TrimSpace(conduit.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves on Stdin/Stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_pipeline
	validateTool := mcp.NewTool("validate_pipeline",
		mcp.WithDescription("Check that a pipeline document is a directed acyclic graph and that every node is connected."),
		mcp.WithString("pipeline", mcp.Required(), mcp.Description(`JSON document {"nodes":[...],"edges":[...]}`)),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: derive_ports
	portsTool := mcp.NewTool("derive_ports",
		mcp.WithDescription("List the ports a node of the given type and configuration exposes."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Node type, e.g. text or merge")),
		mcp.WithString("data", mcp.Description("JSON object with the node configuration (optional)")),
		mcp.WithOutputSchema[PortsResponse](),
	)
	s.mcpServer.AddTool(portsTool, mcp.NewStructuredToolHandler(s.handleDerivePorts))
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ValidateResponse, error) {
	raw, _ := args["pipeline"].(string)
	var payload wire.Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ValidateResponse{}, fmt.Errorf("pipeline is not valid JSON: %w", err)
	}

	p, err := wire.Decode(payload)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("pipeline rejected: %w", err)
	}

	out, err := s.submitter.Submit(ctx, p.Snapshot())
	if err != nil {
		s.logger.Warn("MCP validate: submission failed", "error", err)
		return ValidateResponse{}, errors.New(submit.UserMessage(err, s.endpoint))
	}

	return ValidateResponse{
		Valid:     out.Validity.PipelineValid,
		Reason:    out.Validity.Reason,
		Message:   out.Validity.Reason.Message(),
		NumNodes:  out.Response.NumNodes,
		NumEdge:   out.Response.NumEdge,
		IsDAG:     out.Response.IsDAG,
		Unreached: out.Unreached,
	}, nil
}

func (s *Server) handleDerivePorts(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (PortsResponse, error) {
	typ, _ := args["type"].(string)
	t := domain.NodeType(typ)
	if !t.Valid() {
		return PortsResponse{}, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, typ)
	}

	var data map[string]any
	if raw, ok := args["data"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return PortsResponse{}, fmt.Errorf("data is not a JSON object: %w", err)
		}
	}

	cfg, err := domain.DecodeConfig(t, data)
	if err != nil {
		return PortsResponse{}, err
	}
	ports, err := derive.Ports(typ, cfg)
	if err != nil {
		return PortsResponse{}, err
	}
	return PortsResponse{Type: t, Ports: ports}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: conduit://node-types
	s.mcpServer.AddResource(mcp.NewResource("conduit://node-types", "Node types and their default ports",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		catalog, err := nodeCatalog()
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(catalog)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "conduit://node-types",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// nodeCatalog lists every node type with the ports of its default
// configuration, using the type name as the node id.
func nodeCatalog() ([]PortsResponse, error) {
	catalog := make([]PortsResponse, 0, len(domain.NodeTypes))
	for _, t := range domain.NodeTypes {
		cfg, err := domain.DefaultConfig(t)
		if err != nil {
			return nil, err
		}
		ports, err := derive.Ports(string(t), cfg)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, PortsResponse{Type: t, Ports: ports})
	}
	return catalog, nil
}
