package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errContractFailure = errors.New("contract handler failure")

// counterModule is a minimal module used to exercise a Container implementation.
func counterModule(path string) Module {
	return Module{
		Path:     path,
		Defaults: func() any { return 0 },
		Handlers: map[string]Handler{
			"inc": func(sc StateContext, payload any) error {
				n, _ := payload.(int)
				sc.SetState(sc.GetState().(int) + n)
				return nil
			},
			"fail": func(sc StateContext, payload any) error {
				sc.SetState(-1)
				return errContractFailure
			},
		},
	}
}

// RunContainerContract runs a suite of tests to verify that a Container implementation
// adheres to the defined interface contract. newContainer must return a fresh container.
func RunContainerContract(t *testing.T, newContainer func() Container) {
	ctx := context.Background()

	t.Run("Register installs defaults", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("contract.counter")))

		v, ok := c.State().Resolve("contract.counter")
		require.True(t, ok, "default state should be reachable at the module path")
		assert.Equal(t, 0, v)
	})

	t.Run("Dispatch routes by type", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("counter")))

		err := c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "inc"), Payload: 2})
		require.NoError(t, err)
		err = c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "inc"), Payload: 3})
		require.NoError(t, err)

		v, _ := c.State().Resolve("counter")
		assert.Equal(t, 5, v)
	})

	t.Run("Failed handler leaves state unchanged", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("counter")))
		require.NoError(t, c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "inc"), Payload: 1}))

		err := c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "fail")})
		assert.ErrorIs(t, err, errContractFailure, "handler errors must surface to the caller")

		v, _ := c.State().Resolve("counter")
		assert.Equal(t, 1, v)
	})

	t.Run("Unknown action", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("counter")))

		err := c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "nope")})
		assert.ErrorIs(t, err, domain.ErrUnknownAction)
	})

	t.Run("Collections are isolated", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("a")))
		require.NoError(t, c.Register(counterModule("b")))

		require.NoError(t, c.Dispatch(ctx, domain.Action{Type: domain.ActionType("a", "inc"), Payload: 7}))

		a, _ := c.State().Resolve("a")
		b, _ := c.State().Resolve("b")
		assert.Equal(t, 7, a)
		assert.Equal(t, 0, b)
	})

	t.Run("Published trees are immutable", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.Register(counterModule("counter")))
		before := c.State()

		require.NoError(t, c.Dispatch(ctx, domain.Action{Type: domain.ActionType("counter", "inc"), Payload: 1}))

		v, _ := before.Resolve("counter")
		assert.Equal(t, 0, v, "a tree returned earlier must not observe later dispatches")
	})
}
