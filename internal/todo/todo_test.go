package todo

import (
	"context"
	"testing"

	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newApp returns an app whose store has been reset to the empty default.
func newApp(t *testing.T) (*App, *container.Container) {
	t.Helper()
	c := container.New()
	app, err := NewApp(context.Background(), c, nil)
	require.NoError(t, err)
	require.Len(t, app.ToDos(), 3, "seeded items")
	c.Reinitialize()
	return app, c
}

func add(t *testing.T, app *App, n int) []ToDo {
	t.Helper()
	var out []ToDo
	for i := 0; i < n; i++ {
		td, err := app.AddToDo(context.Background())
		require.NoError(t, err)
		out = append(out, td)
	}
	return out
}

func TestApp_AddToDo(t *testing.T) {
	app, _ := newApp(t)
	add(t, app, 1)
	assert.Len(t, app.ToDos(), 1)
}

func TestApp_SetDone(t *testing.T) {
	app, _ := newApp(t)
	first := add(t, app, 1)[0]

	require.NoError(t, app.SetDone(context.Background(), ToDo{
		Title:       first.Title,
		Description: "Doesn't matter. Just need title for ID",
	}))

	list := app.ToDos()
	require.Len(t, list, 1)
	assert.Equal(t, first.Title, list[0].Title)
	assert.True(t, list[0].Done)
}

func TestApp_RemoveToDo(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	items := add(t, app, 2)

	require.NoError(t, app.Open(ctx, items[0].Title))
	require.NoError(t, app.RemoveToDo(ctx, items[0].Title))

	list := app.ToDos()
	require.Len(t, list, 1)
	assert.Equal(t, items[1].Title, list[0].Title)
	assert.Empty(t, app.Collection().Active)
}

func TestApp_DoneAll(t *testing.T) {
	app, _ := newApp(t)
	items := add(t, app, 3)

	require.NoError(t, app.DoneAll(context.Background(), items[:2]))

	list := app.ToDos()
	require.Len(t, list, 3)
	assert.True(t, list[0].Done)
	assert.True(t, list[1].Done)
	assert.False(t, list[2].Done)
}

func TestApp_RemoveMultiple(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	items := add(t, app, 1)
	require.NoError(t, app.Open(ctx, items[0].Title))
	items = append(items, add(t, app, 3)...)

	require.NoError(t, app.RemoveMultiple(ctx, []string{items[0].Title, items[1].Title, items[2].Title}))

	list := app.ToDos()
	require.Len(t, list, 1)
	assert.Equal(t, items[3].Title, list[0].Title)
	assert.Empty(t, app.Collection().Active)
}

func TestApp_Toggles(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)

	require.NoError(t, app.ToggleLoading(ctx))
	require.NoError(t, app.ToggleError(ctx))
	assert.True(t, app.Collection().Loading)
	assert.ErrorIs(t, app.Collection().Err, ErrExample)

	require.NoError(t, app.ToggleLoading(ctx))
	require.NoError(t, app.ToggleError(ctx))
	assert.False(t, app.Collection().Loading)
	assert.NoError(t, app.Collection().Err)
}

func TestApp_Active(t *testing.T) {
	ctx := context.Background()
	app, c := newApp(t)
	items := add(t, app, 3)

	require.NoError(t, app.Open(ctx, items[1].Title))
	require.NoError(t, app.SetDoneActive(ctx))

	active, ok := app.Store.Active()(c.State())
	require.True(t, ok)
	assert.Equal(t, items[1].Title, active.Title)
	assert.True(t, active.Done)

	require.NoError(t, app.CloseDetails(ctx))
	_, ok = app.Store.Active()(c.State())
	assert.False(t, ok)
}

func TestApp_ClearKeepsFlags(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	items := add(t, app, 2)
	require.NoError(t, app.Open(ctx, items[1].Title))
	add(t, app, 1)
	require.NoError(t, app.ToggleLoading(ctx))
	require.NoError(t, app.ToggleError(ctx))

	require.NoError(t, app.ClearEntities(ctx))

	col := app.Collection()
	assert.Empty(t, col.Entities)
	assert.Empty(t, col.Active)
	assert.True(t, col.Loading)
	assert.ErrorIs(t, col.Err, ErrExample)
}

func TestApp_ResetState(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	items := add(t, app, 2)
	require.NoError(t, app.Open(ctx, items[1].Title))
	require.NoError(t, app.ToggleLoading(ctx))
	require.NoError(t, app.ToggleError(ctx))

	require.NoError(t, app.ResetState(ctx))

	assert.Equal(t, domain.DefaultCollection[ToDo](), app.Collection())
}

func TestRunDemo(t *testing.T) {
	c := container.New()
	app, err := NewApp(context.Background(), c, nil)
	require.NoError(t, err)

	var steps []string
	var sizes []int
	err = RunDemo(context.Background(), app, func(step string, col domain.Collection[ToDo]) {
		steps = append(steps, step)
		sizes = append(sizes, len(col.Entities))
	})
	require.NoError(t, err)

	assert.Len(t, steps, len(DemoSteps())+1)
	assert.Equal(t, []int{3, 4, 6, 6, 6, 6, 6, 6, 3, 3, 0}, sizes)
}
