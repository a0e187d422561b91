package todo

import (
	"context"
	"fmt"

	"github.com/aretw0/entitystore/pkg/domain"
)

// Step is one stage of the demo walkthrough.
type Step struct {
	Name string
	Run  func(ctx context.Context, a *App) error
}

// DemoSteps replays an interactive session against the todo store.
func DemoSteps() []Step {
	return []Step{
		{Name: "add a todo", Run: func(ctx context.Context, a *App) error {
			_, err := a.AddToDo(ctx)
			return err
		}},
		{Name: "add two more", Run: func(ctx context.Context, a *App) error {
			for i := 0; i < 2; i++ {
				if _, err := a.AddToDo(ctx); err != nil {
					return err
				}
			}
			return nil
		}},
		{Name: "toggle loading", Run: func(ctx context.Context, a *App) error {
			return a.ToggleLoading(ctx)
		}},
		{Name: "toggle error", Run: func(ctx context.Context, a *App) error {
			return a.ToggleError(ctx)
		}},
		{Name: "open the second todo", Run: func(ctx context.Context, a *App) error {
			list := a.ToDos()
			if len(list) < 2 {
				return fmt.Errorf("open: only %d todos", len(list))
			}
			return a.Open(ctx, list[1].Title)
		}},
		{Name: "mark the active todo done", Run: func(ctx context.Context, a *App) error {
			return a.SetDoneActive(ctx)
		}},
		{Name: "mark every todo done", Run: func(ctx context.Context, a *App) error {
			return a.DoneAll(ctx, a.ToDos())
		}},
		{Name: "remove the first three", Run: func(ctx context.Context, a *App) error {
			return a.RemoveFirstThree(ctx, a.ToDos())
		}},
		{Name: "toggle loading and error back", Run: func(ctx context.Context, a *App) error {
			if err := a.ToggleLoading(ctx); err != nil {
				return err
			}
			return a.ToggleError(ctx)
		}},
		{Name: "clear", Run: func(ctx context.Context, a *App) error {
			return a.ClearEntities(ctx)
		}},
	}
}

// RunDemo executes every step in order, reporting the collection after each one.
func RunDemo(ctx context.Context, a *App, report func(step string, c domain.Collection[ToDo])) error {
	report("initial state", a.Collection())
	for _, step := range DemoSteps() {
		if err := step.Run(ctx, a); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
		report(step.Name, a.Collection())
	}
	return nil
}
