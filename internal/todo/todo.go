// Package todo is the sample application built on an entity store: a todo list keyed by title.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/aretw0/entitystore/pkg/ports"
)

// Path is where the todo collection lives in the state tree.
const Path = "todo"

// ToDo is a single todo item. Title is its identity.
type ToDo struct {
	Title       string `mapstructure:"title" json:"title" yaml:"title"`
	Description string `mapstructure:"description" json:"description" yaml:"description"`
	Done        bool   `mapstructure:"done" json:"done" yaml:"done"`
}

// ErrExample is the error toggled on and off by ToggleError.
var ErrExample = errors.New("Example error")

// NewStore creates the todo store.
func NewStore(logger *slog.Logger) (*entity.Store[ToDo], error) {
	return entity.New(Path, "title", entity.Overlay[ToDo](), entity.WithLogger(logger))
}

// App drives a todo store the way an interactive client would.
type App struct {
	Store *entity.Store[ToDo]

	host    ports.Container
	counter int
	loading bool
	failing bool
}

// NewApp registers the todo store with host and seeds the three starter items.
func NewApp(ctx context.Context, host ports.Container, logger *slog.Logger) (*App, error) {
	store, err := NewStore(logger)
	if err != nil {
		return nil, err
	}
	if err := store.Register(host); err != nil {
		return nil, fmt.Errorf("register todo store: %w", err)
	}

	app := &App{Store: store, host: host, counter: 2}
	err = app.dispatch(ctx,
		entity.AddOrReplace(store, item(0)),
		entity.AddOrReplaceAll(store, []ToDo{item(1), item(2)}),
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func item(n int) ToDo {
	return ToDo{
		Title:       fmt.Sprintf("NGXS Entity Store %d", n),
		Description: fmt.Sprintf("Some Descr %d", n),
	}
}

func (a *App) dispatch(ctx context.Context, actions ...domain.Action) error {
	for _, action := range actions {
		if err := a.host.Dispatch(ctx, action); err != nil {
			return err
		}
	}
	return nil
}

// AddToDo adds the next numbered item and returns it.
func (a *App) AddToDo(ctx context.Context) (ToDo, error) {
	a.counter++
	t := item(a.counter)
	return t, a.dispatch(ctx, entity.AddOrReplace(a.Store, t))
}

// SetDone marks t as done, using its title as id.
func (a *App) SetDone(ctx context.Context, t ToDo) error {
	partial, err := entity.PartialOf(t)
	if err != nil {
		return err
	}
	partial["done"] = true
	return a.dispatch(ctx, entity.Update(a.Store, partial))
}

// DoneAll marks every item in list as done.
func (a *App) DoneAll(ctx context.Context, list []ToDo) error {
	partials := make([]entity.Partial, 0, len(list))
	for _, t := range list {
		partial, err := entity.PartialOf(t)
		if err != nil {
			return err
		}
		partial["done"] = true
		partials = append(partials, partial)
	}
	return a.dispatch(ctx, entity.UpdateAll(a.Store, partials))
}

// SetDoneActive marks the opened item as done.
func (a *App) SetDoneActive(ctx context.Context) error {
	return a.dispatch(ctx, entity.UpdateActive(a.Store, entity.Partial{"done": true}))
}

// Open makes the item titled title the active one.
func (a *App) Open(ctx context.Context, title string) error {
	return a.dispatch(ctx, entity.SetActive(a.Store, title))
}

// CloseDetails clears the active item.
func (a *App) CloseDetails(ctx context.Context) error {
	return a.dispatch(ctx, entity.ClearActive(a.Store))
}

// RemoveToDo removes the item titled title.
func (a *App) RemoveToDo(ctx context.Context, title string) error {
	return a.dispatch(ctx, entity.Remove(a.Store, title))
}

// RemoveFirstThree removes the first three items of list.
func (a *App) RemoveFirstThree(ctx context.Context, list []ToDo) error {
	if len(list) > 3 {
		list = list[:3]
	}
	titles := make([]string, 0, len(list))
	for _, t := range list {
		titles = append(titles, t.Title)
	}
	return a.dispatch(ctx, entity.RemoveAll(a.Store, titles))
}

// RemoveMultiple removes the items with the given titles.
func (a *App) RemoveMultiple(ctx context.Context, titles []string) error {
	return a.dispatch(ctx, entity.RemoveAll(a.Store, titles))
}

// ClearEntities removes every item.
func (a *App) ClearEntities(ctx context.Context) error {
	return a.dispatch(ctx, entity.Clear(a.Store))
}

// ResetState restores the empty default collection.
func (a *App) ResetState(ctx context.Context) error {
	return a.dispatch(ctx, entity.Reset(a.Store))
}

// ToggleLoading flips the loading flag.
func (a *App) ToggleLoading(ctx context.Context) error {
	a.loading = !a.loading
	return a.dispatch(ctx, entity.SetLoading(a.Store, a.loading))
}

// ToggleError sets ErrExample, or clears it when it was set by the previous toggle.
func (a *App) ToggleError(ctx context.Context) error {
	a.failing = !a.failing
	var err error
	if a.failing {
		err = ErrExample
	}
	return a.dispatch(ctx, entity.SetError(a.Store, err))
}

// ToDos returns the items ordered by title.
func (a *App) ToDos() []ToDo {
	list, _ := entity.Select(a.host, a.Store.Entities())
	return list
}

// Collection returns the whole todo slice.
func (a *App) Collection() domain.Collection[ToDo] {
	c, _ := entity.Select(a.host, a.Store.Collection())
	return c
}
