/*
Package entitystore manages normalized collections of entities inside a host state container.

Each entity type gets a store bound to a fixed path in the state tree and an identity key.
The store answers to a fixed vocabulary of operations (add, update, remove, setActive,
setLoading, setError, ...), each applied atomically with copy-on-write semantics, and
exposes pure selectors that derive views from the current state.

# Concept

The engine is split into three layers:

  - pkg/domain: the collection model, the state tree and the action format "[<path>] <op>".
  - pkg/entity: the generic store engine, merge strategies, selectors and action builders.
  - pkg/container: an in-memory host that routes actions, serializes writers per path and
    publishes immutable trees to lock-free readers.

Transports (HTTP with SSE, MCP) and observability hooks (Prometheus, slog) live in
pkg/adapters and pkg/observability.

# Usage

	eng := entitystore.New()

	todos, err := entitystore.Open(eng, "todo", "title", entity.Overlay[ToDo]())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_ = eng.Dispatch(ctx, entity.AddOrReplace(todos, ToDo{Title: "A"}))
	_ = eng.Dispatch(ctx, entity.SetActive(todos, "A"))

	active, ok := entity.Select(eng, todos.Active())

# Identity and merging

Identity keys follow mapstructure field naming. Updates are combined with an injected
MergeFunc; Overlay, DeepMerge and Replace are provided.
*/
package entitystore
