package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/entitystore"
	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/aretw0/entitystore/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI is the resource exposing every collection.
const StateURI = "entitystore://state"

// Selector names accepted by the select tool.
const (
	SelectCollection = "collection"
	SelectSize       = "size"
	SelectKeys       = "keys"
	SelectEntities   = "entities"
	SelectActive     = "active"
	SelectActiveID   = "activeId"
	SelectLoading    = "loading"
	SelectError      = "error"
)

// DispatchResponse aligns with the HTTP dispatch response.
type DispatchResponse struct {
	Status string `json:"status" jsonschema_description:"ok when the action was applied"`
	Type   string `json:"type" jsonschema_description:"The routed action type"`
}

// Host is the container surface exposed over MCP.
type Host interface {
	ports.Dispatcher
	ports.StateReader
	Paths() []string
}

// Server wraps a Host and exposes it as an MCP Server.
type Server struct {
	host      Host
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(host Host, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		host:      host,
		mcpServer: server.NewMCPServer("entitystore-mcp", strings.TrimSpace(entitystore.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: dispatch
	dispatchTool := mcp.NewTool("dispatch",
		mcp.WithDescription("Apply an action to a collection. The type is \"[<path>] <operation>\"."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Action type, e.g. [todo] add")),
		mcp.WithString("payload", mcp.Description("JSON encoded payload (optional for clear, reset, clearActive)")),
		mcp.WithOutputSchema[DispatchResponse](),
	)
	s.mcpServer.AddTool(dispatchTool, mcp.NewStructuredToolHandler(s.handleDispatch))

	// TOOL: select
	s.mcpServer.AddTool(mcp.NewTool("select",
		mcp.WithDescription("Read a derived value from a collection."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Collection path")),
		mcp.WithString("selector", mcp.Description("One of collection, size, keys, entities, active, activeId, loading, error (default collection)")),
	), s.handleSelect)

	// TOOL: list_collections
	s.mcpServer.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List the registered collection paths."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.host.Paths())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DispatchResponse, error) {
	actionType, _ := args["type"].(string)
	if _, _, err := domain.ParseActionType(actionType); err != nil {
		return DispatchResponse{}, err
	}

	action := domain.Action{Type: actionType}
	if raw, ok := args["payload"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &action.Payload); err != nil {
			return DispatchResponse{}, fmt.Errorf("payload is not valid JSON: %w", err)
		}
	}

	if err := s.host.Dispatch(ctx, action); err != nil {
		s.logger.Warn("MCP Dispatch: Action rejected", "type", actionType, "err", err)
		return DispatchResponse{}, err
	}
	return DispatchResponse{Status: "ok", Type: actionType}, nil
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)
	selector, _ := args["selector"].(string)
	if selector == "" {
		selector = SelectCollection
	}

	value, err := Select(s.host.State(), path, selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// Select evaluates a named selector against the collection at path.
func Select(tree domain.Tree, path, selector string) (any, error) {
	v, ok := entity.ViewAt(tree, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPathNotFound, path)
	}

	switch selector {
	case SelectCollection:
		return v, nil
	case SelectSize:
		return v.Size(), nil
	case SelectKeys:
		return v.Keys(), nil
	case SelectEntities:
		list, _ := entity.EntitiesAt(tree, path)
		return list, nil
	case SelectActive:
		e, _ := entity.ActiveAt(tree, path)
		return e, nil
	case SelectActiveID:
		if v.Active == "" {
			return nil, nil
		}
		return v.Active, nil
	case SelectLoading:
		return v.Loading, nil
	case SelectError:
		if v.Error == "" {
			return nil, nil
		}
		return v.Error, nil
	default:
		return nil, fmt.Errorf("unknown selector %q", selector)
	}
}

// snapshot renders every collection as views keyed by path.
func (s *Server) snapshot() ([]byte, error) {
	tree := s.host.State()
	out := make(map[string]domain.View)
	for _, p := range s.host.Paths() {
		if v, ok := entity.ViewAt(tree, p); ok {
			out[p] = v
		}
	}
	return json.Marshal(out)
}

func (s *Server) registerResources() {
	// EXPOSE: entitystore://state
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Current State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := s.snapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StateURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
