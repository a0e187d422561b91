package entity

import (
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
)

// Selector reads a value out of a state tree. The boolean is false when the value
// cannot be resolved. Selectors never panic.
type Selector[V any] func(tree domain.Tree) (V, bool)

// Select applies sel to the current state of r.
func Select[V any](r ports.StateReader, sel Selector[V]) (V, bool) {
	return sel(r.State())
}

// Collection selects the whole state slice.
func (s *Store[T]) Collection() Selector[domain.Collection[T]] {
	return func(tree domain.Tree) (domain.Collection[T], bool) {
		v, ok := tree.Resolve(s.path)
		if !ok {
			return domain.Collection[T]{}, false
		}
		c, ok := v.(domain.Collection[T])
		return c, ok
	}
}

func derive[T, V any](s *Store[T], fn func(domain.Collection[T]) V) Selector[V] {
	col := s.Collection()
	return func(tree domain.Tree) (V, bool) {
		c, ok := col(tree)
		if !ok {
			var zero V
			return zero, false
		}
		return fn(c), true
	}
}

// Size selects the number of entities.
func (s *Store[T]) Size() Selector[int] {
	return derive(s, func(c domain.Collection[T]) int { return len(c.Entities) })
}

// Keys selects the entity ids in ascending order.
func (s *Store[T]) Keys() Selector[[]string] {
	return derive(s, domain.Collection[T].Keys)
}

// Entities selects the entities ordered by id.
func (s *Store[T]) Entities() Selector[[]T] {
	return derive(s, domain.Collection[T].Values)
}

// EntityMap selects the id to entity mapping. The map is shared with the state tree
// and must not be mutated.
func (s *Store[T]) EntityMap() Selector[map[string]T] {
	return derive(s, func(c domain.Collection[T]) map[string]T { return c.Entities })
}

// Loading selects the loading flag.
func (s *Store[T]) Loading() Selector[bool] {
	return derive(s, func(c domain.Collection[T]) bool { return c.Loading })
}

// Error selects the stored error, nil when none is set.
func (s *Store[T]) Error() Selector[error] {
	return derive(s, func(c domain.Collection[T]) error { return c.Err })
}

// ActiveID selects the active id. It also reports false when no entity is active.
func (s *Store[T]) ActiveID() Selector[string] {
	col := s.Collection()
	return func(tree domain.Tree) (string, bool) {
		c, ok := col(tree)
		if !ok || c.Active == "" {
			return "", false
		}
		return c.Active, true
	}
}

// Active selects the active entity. It also reports false when no entity is active
// or the active id is dangling.
func (s *Store[T]) Active() Selector[T] {
	col := s.Collection()
	return func(tree domain.Tree) (T, bool) {
		c, ok := col(tree)
		if !ok {
			var zero T
			return zero, false
		}
		return domain.ActiveEntity(c)
	}
}

// ViewAt resolves the collection at path in its untyped form.
func ViewAt(tree domain.Tree, path string) (domain.View, bool) {
	v, ok := tree.Resolve(path)
	if !ok {
		return domain.View{}, false
	}
	viewer, ok := v.(domain.Viewer)
	if !ok {
		return domain.View{}, false
	}
	return viewer.View(), true
}

// SizeAt is the untyped form of Store.Size.
func SizeAt(tree domain.Tree, path string) (int, bool) {
	v, ok := ViewAt(tree, path)
	return v.Size(), ok
}

// KeysAt is the untyped form of Store.Keys.
func KeysAt(tree domain.Tree, path string) ([]string, bool) {
	v, ok := ViewAt(tree, path)
	if !ok {
		return nil, false
	}
	return v.Keys(), true
}

// EntitiesAt is the untyped form of Store.Entities.
func EntitiesAt(tree domain.Tree, path string) ([]any, bool) {
	v, ok := ViewAt(tree, path)
	if !ok {
		return nil, false
	}
	keys := v.Keys()
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, v.Entities[k])
	}
	return out, true
}

// ActiveAt is the untyped form of Store.Active.
func ActiveAt(tree domain.Tree, path string) (any, bool) {
	v, ok := ViewAt(tree, path)
	if !ok || v.Active == "" {
		return nil, false
	}
	e, ok := v.Entities[v.Active]
	return e, ok
}
