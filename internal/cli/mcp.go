package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/entitystore/internal/config"
	"github.com/aretw0/entitystore/pkg/adapters/mcp"
	"github.com/aretw0/entitystore/pkg/observability"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	Config    config.Config
	Transport string
	Port      int
	Logger    *slog.Logger
}

// ServeMCP exposes the configured collections as MCP tools over stdio or SSE.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	logger := loggerOrNop(opts.Logger)
	host, err := NewHost(ctx, opts.Config, logger, observability.LoggingHooks(logger))
	if err != nil {
		return err
	}
	srv := mcp.NewServer(host, logger)

	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		err := srv.ServeSSE(ctx, opts.Port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q: supported stdio, sse", opts.Transport)
	}
}
