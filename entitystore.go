package entitystore

import (
	"context"
	"log/slog"

	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
)

// Engine is the high-level entry point for the library.
// It wraps an in-memory container and the stores registered with it.
type Engine struct {
	container *container.Container
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. Repeated calls chain the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine and its stores.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New initializes an empty Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(eng)
	}
	eng.container = container.New(
		container.WithLogger(eng.logger),
		container.WithHooks(eng.hooks),
	)
	return eng
}

// Open creates a store for T at path and registers it with the engine.
func Open[T any](e *Engine, path, idKey string, merge entity.MergeFunc[T]) (*entity.Store[T], error) {
	s, err := entity.New(path, idKey, merge, entity.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	if err := s.Register(e.container); err != nil {
		return nil, err
	}
	return s, nil
}

// Dispatch applies an action to the store registered for its type.
func (e *Engine) Dispatch(ctx context.Context, action domain.Action) error {
	return e.container.Dispatch(ctx, action)
}

// State returns the current immutable state tree.
func (e *Engine) State() domain.Tree {
	return e.container.State()
}

// Paths lists the registered collection paths.
func (e *Engine) Paths() []string {
	return e.container.Paths()
}

// Subscribe streams every installed change. See container.Container.Subscribe.
func (e *Engine) Subscribe(buffer int) (<-chan container.Change, func()) {
	return e.container.Subscribe(buffer)
}

// Reinitialize restores every collection to its default.
func (e *Engine) Reinitialize() {
	e.container.Reinitialize()
}

// Container exposes the underlying host container.
func (e *Engine) Container() *container.Container {
	return e.container
}
