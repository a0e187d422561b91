package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/aretw0/entitystore/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `mapstructure:"id"`
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	c := container.New(container.WithHooks(m.Hooks()))
	s, err := entity.New("items", "id", entity.Overlay[item]())
	require.NoError(t, err)
	require.NoError(t, s.Register(c))

	ctx := context.Background()
	require.NoError(t, c.Dispatch(ctx, entity.AddOrReplaceAll(s, []item{{ID: "a"}, {ID: "b"}})))
	require.Error(t, c.Dispatch(ctx, entity.Update(s, entity.Partial{})))

	count, err := testutil.GatherAndCount(reg, "entitystore_actions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")

	_, err = testutil.GatherAndCount(reg, "entitystore_action_duration_seconds")
	require.NoError(t, err)

	size, err := testutil.GatherAndCount(reg, "entitystore_entities")
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	hooks := observability.LoggingHooks(logger)
	hooks.OnApplied(context.Background(), &domain.DispatchEvent{ActionType: "[items] add"})
	hooks.OnRejected(context.Background(), &domain.DispatchEvent{ActionType: "[items] update"})

	out := buf.String()
	assert.Contains(t, out, "action_applied")
	assert.Contains(t, out, "action_rejected")
	assert.Contains(t, out, "[items] update")
}
