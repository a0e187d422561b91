package container

import (
	"log/slog"

	"github.com/aretw0/entitystore/pkg/domain"
)

// Option configures the Container.
type Option func(*Container)

// WithLogger configures a logger for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain the hooks in order.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Container) {
		c.hooks = c.hooks.Merge(hooks)
	}
}
