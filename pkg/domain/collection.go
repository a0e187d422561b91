package domain

import "sort"

// Collection is the normalized state slice managed by an entity store.
type Collection[T any] struct {
	// Entities maps an entity id to the entity. Treated as immutable once published:
	// every mutation installs a new map.
	Entities map[string]T

	// Loading is an application-level flag, set only through setLoading.
	Loading bool

	// Err is the last application error, set only through setError (or cleared by reset).
	Err error

	// Active is the id of the currently opened entity. Empty means no entity is active.
	Active string
}

// DefaultCollection returns an empty collection with all metadata cleared.
func DefaultCollection[T any]() Collection[T] {
	return Collection[T]{
		Entities: make(map[string]T),
	}
}

// ActiveEntity returns the entity referenced by c.Active.
// The second result is false when no entity is active or the id is dangling.
func ActiveEntity[T any](c Collection[T]) (T, bool) {
	var zero T
	if c.Active == "" {
		return zero, false
	}
	e, ok := c.Entities[c.Active]
	if !ok {
		return zero, false
	}
	return e, true
}

// Keys returns the entity ids in ascending order.
func (c Collection[T]) Keys() []string {
	keys := make([]string, 0, len(c.Entities))
	for k := range c.Entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the entities ordered by their ids.
func (c Collection[T]) Values() []T {
	keys := c.Keys()
	values := make([]T, 0, len(keys))
	for _, k := range keys {
		values = append(values, c.Entities[k])
	}
	return values
}

// CloneEntities returns a shallow copy of the entity map, ready to be mutated and installed.
func (c Collection[T]) CloneEntities() map[string]T {
	out := make(map[string]T, len(c.Entities))
	for k, v := range c.Entities {
		out[k] = v
	}
	return out
}

// View projects the collection into its untyped form.
func (c Collection[T]) View() View {
	v := View{
		Entities: make(map[string]any, len(c.Entities)),
		Loading:  c.Loading,
		Active:   c.Active,
	}
	for k, e := range c.Entities {
		v.Entities[k] = e
	}
	if c.Err != nil {
		v.Error = c.Err.Error()
	}
	return v
}

// Viewer is implemented by every collection regardless of its entity type.
// Adapters use it to render state slices without knowing T.
type Viewer interface {
	View() View
}

// View is the untyped, serializable projection of a Collection.
type View struct {
	Entities map[string]any `json:"entities"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
	Active   string         `json:"active,omitempty"`
}

// Size returns the number of entities in the view.
func (v View) Size() int {
	return len(v.Entities)
}

// Keys returns the entity ids in ascending order.
func (v View) Keys() []string {
	keys := make([]string, 0, len(v.Entities))
	for k := range v.Entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
