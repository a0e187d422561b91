package entity_test

import (
	"testing"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectors_UnresolvedPath(t *testing.T) {
	s, err := entity.New("missing", "title", entity.Overlay[note]())
	require.NoError(t, err)
	tree := domain.Tree{}

	_, ok := s.Size()(tree)
	assert.False(t, ok)
	_, ok = s.Keys()(tree)
	assert.False(t, ok)
	_, ok = s.Entities()(tree)
	assert.False(t, ok)
	_, ok = s.EntityMap()(tree)
	assert.False(t, ok)
	_, ok = s.Loading()(tree)
	assert.False(t, ok)
	_, ok = s.Error()(tree)
	assert.False(t, ok)
	_, ok = s.Active()(tree)
	assert.False(t, ok)
	_, ok = s.ActiveID()(tree)
	assert.False(t, ok)
}

func TestSelectors_WrongSliceType(t *testing.T) {
	s, err := entity.New("notes", "title", entity.Overlay[note]())
	require.NoError(t, err)
	tree := domain.Tree{"notes": 12}

	assert.NotPanics(t, func() {
		_, ok := s.Size()(tree)
		assert.False(t, ok)
	})
}

func TestSelectors_Values(t *testing.T) {
	s, c := setup(t, nil)
	dispatch(t, c,
		entity.AddOrReplaceAll(s, []note{{Title: "b"}, {Title: "a"}, {Title: "c"}}),
		entity.SetActive(s, "c"),
	)
	tree := c.State()

	size, _ := s.Size()(tree)
	keys, _ := s.Keys()(tree)
	list, _ := s.Entities()(tree)
	m, _ := s.EntityMap()(tree)
	active, _ := s.Active()(tree)

	assert.Equal(t, 3, size)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []note{{Title: "a"}, {Title: "b"}, {Title: "c"}}, list)
	assert.Len(t, m, 3)
	assert.Equal(t, note{Title: "c"}, active)
}

func TestUntypedSelectors(t *testing.T) {
	s, c := setup(t, nil)
	dispatch(t, c,
		entity.AddOrReplaceAll(s, []note{{Title: "b"}, {Title: "a"}}),
		entity.SetActive(s, "a"),
	)
	tree := c.State()

	view, ok := entity.ViewAt(tree, "notes")
	require.True(t, ok)
	assert.Equal(t, "a", view.Active)

	size, ok := entity.SizeAt(tree, "notes")
	require.True(t, ok)
	assert.Equal(t, 2, size)

	keys, _ := entity.KeysAt(tree, "notes")
	assert.Equal(t, []string{"a", "b"}, keys)

	list, _ := entity.EntitiesAt(tree, "notes")
	assert.Equal(t, []any{note{Title: "a"}, note{Title: "b"}}, list)

	active, ok := entity.ActiveAt(tree, "notes")
	require.True(t, ok)
	assert.Equal(t, note{Title: "a"}, active)

	_, ok = entity.ViewAt(tree, "nope")
	assert.False(t, ok)
	_, ok = entity.SizeAt(tree, "nope")
	assert.False(t, ok)
}
