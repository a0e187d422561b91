package domain_test

import (
	"testing"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionType(t *testing.T) {
	assert.Equal(t, "[todo] add", domain.ActionType("todo", domain.OpAdd))
	assert.Equal(t, "[app.todo] updateActive", domain.ActionType("app.todo", domain.OpUpdateActive))
}

func TestParseActionType(t *testing.T) {
	path, op, err := domain.ParseActionType("[app.todo] removeAll")
	require.NoError(t, err)
	assert.Equal(t, "app.todo", path)
	assert.Equal(t, "removeAll", op)

	for _, bad := range []string{"", "todo add", "[todo]add", "[] add", "[todo] "} {
		_, _, err := domain.ParseActionType(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidActionType, "input %q", bad)
	}
}

func TestOperations_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, op := range domain.Operations {
		assert.False(t, seen[op], "duplicate operation %s", op)
		seen[op] = true
	}
	assert.Len(t, domain.Operations, 13)
}
