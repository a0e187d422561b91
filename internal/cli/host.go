package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/entitystore/internal/config"
	"github.com/aretw0/entitystore/internal/todo"
	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
)

// Host is a container with the collections described by a configuration.
type Host struct {
	*container.Container

	// Todo is set when no collection is configured and the todo sample is served instead.
	Todo *todo.App
}

// NewHost registers every configured collection, or the seeded todo sample when
// the configuration declares none.
func NewHost(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*Host, error) {
	c := container.New(
		container.WithLogger(logger),
		container.WithHooks(hooks),
	)
	h := &Host{Container: c}

	if len(cfg.Collections) == 0 {
		app, err := todo.NewApp(ctx, c, logger)
		if err != nil {
			return nil, err
		}
		h.Todo = app
		return h, nil
	}

	for _, col := range cfg.Collections {
		store, err := col.Build(logger)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", col.Path, err)
		}
		if err := store.Register(c); err != nil {
			return nil, fmt.Errorf("collection %s: %w", col.Path, err)
		}
		logger.Debug("Collection registered", "path", col.Path, "id_key", col.IDKey, "merge", col.Merge)
	}
	return h, nil
}
