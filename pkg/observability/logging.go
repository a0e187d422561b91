package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/entitystore/pkg/domain"
)

// LoggingHooks logs applied actions at info level and rejected ones at warn level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnApplied: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.InfoContext(ctx, "action_applied",
				"type", e.ActionType,
				"change_id", e.ChangeID,
				"duration", e.Duration,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.WarnContext(ctx, "action_rejected",
				"type", e.ActionType,
				"change_id", e.ChangeID,
				"err", e.Err,
			)
		},
	}
}
