package registry_test

import (
	"testing"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
	"github.com/aretw0/entitystore/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ports.StateContext, any) error { return nil }

func TestRegistry_LookupRoutedType(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("todo", domain.OpAdd, noop)

	entry, err := r.Lookup("[todo] add")
	require.NoError(t, err)
	assert.Equal(t, "todo", entry.Path)
	assert.Equal(t, domain.OpAdd, entry.Op)
	assert.NotNil(t, entry.Handler)
}

func TestRegistry_Unknown(t *testing.T) {
	r := registry.NewRegistry()

	_, err := r.Lookup("[todo] add")
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
}

func TestRegistry_Types(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("todo", domain.OpRemove, noop)
	r.Register("todo", domain.OpAdd, noop)
	r.Register("todo", domain.OpAdd, noop) // overwrite

	assert.Equal(t, []string{"[todo] add", "[todo] remove"}, r.Types())
}
