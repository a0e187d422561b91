package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/entitystore/internal/presentation/tui"
	"github.com/aretw0/entitystore/internal/todo"
	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
)

// DemoOptions configures the demo command.
type DemoOptions struct {
	Banner bool
	Out    io.Writer
	Logger *slog.Logger
}

// Demo replays the todo walkthrough, rendering the collection after every step.
func Demo(ctx context.Context, opts DemoOptions) error {
	if opts.Banner {
		tui.PrintBanner(opts.Out)
	}

	logger := loggerOrNop(opts.Logger)
	c := container.New(
		container.WithLogger(logger),
		container.WithHooks(createDebugHooks(logger)),
	)
	app, err := todo.NewApp(ctx, c, logger)
	if err != nil {
		return err
	}

	var renderErr error
	err = todo.RunDemo(ctx, app, func(step string, col domain.Collection[todo.ToDo]) {
		if renderErr != nil {
			return
		}
		printSystemMessage(opts.Out, "%s", step)
		renderErr = tui.Render(opts.Out, tui.CollectionMarkdown(todo.Path, col.View()))
	})
	if err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}
	printSystemMessage(opts.Out, "Demo finished %s.", tui.Status(true, "ok"))
	return nil
}
