/*
Package entity implements a generic store engine for normalized entity collections.

A Store owns one domain.Collection at a fixed container path and answers to a fixed
vocabulary of operations (add, update, remove, setActive, ...). It never touches a
container directly: Module returns the explicit registration value that any
ports.Registrar accepts, and every handler reads the current slice, computes a new one and
stages it in a single SetState call.

# Usage

	type ToDo struct {
		Title string `mapstructure:"title"`
		Done  bool   `mapstructure:"done"`
	}

	todos, err := entity.New("todo", "title", entity.Overlay[ToDo]())
	if err != nil {
		log.Fatal(err)
	}

	c := container.New()
	if err := todos.Register(c); err != nil {
		log.Fatal(err)
	}

	_ = c.Dispatch(ctx, entity.AddOrReplace(todos, ToDo{Title: "A"}))
	_ = c.Dispatch(ctx, entity.Update(todos, entity.Partial{"title": "A", "done": true}))

	size, _ := todos.Size()(c.State())

# Identity

The identity key names a field of T using mapstructure naming: the mapstructure tag if
present, otherwise the Go field name (matched case-insensitively). Map-typed entities use
the map key directly. Identity values must be non-empty strings or integers.

# Merge strategies

Updates are merged by an injected MergeFunc. Overlay, DeepMerge and Replace cover the
common cases; custom strategies receive a nil current entity when the id is unknown.
*/
package entity
