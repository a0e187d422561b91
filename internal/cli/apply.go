package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/entitystore/internal/config"
)

// ApplyOptions configures the apply command.
type ApplyOptions struct {
	Config config.Config
	Script Script
	JSON   bool
	Quiet  bool
	Debug  bool
	Out    io.Writer
	Logger *slog.Logger
}

// Apply dispatches the script's actions in order against a fresh host and prints
// the resulting collections. The first rejected action stops the run.
func Apply(ctx context.Context, opts ApplyOptions) error {
	logger := loggerOrNop(opts.Logger)
	hooks := createDebugHooks(logger)
	host, err := NewHost(ctx, opts.Config, logger, hooks)
	if err != nil {
		return err
	}

	for i, entry := range opts.Script.Actions {
		if err := host.Dispatch(ctx, entry.Action()); err != nil {
			return fmt.Errorf("actions[%d] %s: %w", i, entry.Type, err)
		}
	}
	if !opts.Quiet && !opts.JSON {
		printSystemMessage(opts.Out, "Applied %d action(s).", len(opts.Script.Actions))
	}
	return WriteCollections(opts.Out, host.State(), host.Paths(), opts.JSON)
}
