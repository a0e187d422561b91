package entity

import "github.com/aretw0/entitystore/pkg/domain"

// Handle identifies the collection an action targets.
// *Store satisfies it, as does Path for callers that only know the location.
type Handle interface {
	Path() string
}

// Path is a Handle for a bare container path.
type Path string

// Path returns p.
func (p Path) Path() string { return string(p) }

func build(h Handle, op string, payload any) domain.Action {
	return domain.Action{Type: domain.ActionType(h.Path(), op), Payload: payload}
}

// AddOrReplace builds an add action. An entity with an existing id replaces it.
func AddOrReplace[T any](h Handle, e T) domain.Action {
	return build(h, domain.OpAdd, e)
}

// AddOrReplaceAll builds an addAll action.
func AddOrReplaceAll[T any](h Handle, list []T) domain.Action {
	return build(h, domain.OpAddAll, list)
}

// Update builds an update action for the entity identified inside partial.
func Update(h Handle, partial Partial) domain.Action {
	return build(h, domain.OpUpdate, partial)
}

// UpdateAll builds an updateAll action.
func UpdateAll(h Handle, partials []Partial) domain.Action {
	return build(h, domain.OpUpdateAll, partials)
}

// UpdateActive builds an updateActive action.
func UpdateActive(h Handle, partial Partial) domain.Action {
	return build(h, domain.OpUpdateActive, partial)
}

// Remove builds a remove action.
func Remove(h Handle, id string) domain.Action {
	return build(h, domain.OpRemove, id)
}

// RemoveAll builds a removeAll action.
func RemoveAll(h Handle, ids []string) domain.Action {
	return build(h, domain.OpRemoveAll, ids)
}

// Clear builds a clear action.
func Clear(h Handle) domain.Action {
	return build(h, domain.OpClear, nil)
}

// Reset builds a reset action.
func Reset(h Handle) domain.Action {
	return build(h, domain.OpReset, nil)
}

// SetLoading builds a setLoading action.
func SetLoading(h Handle, loading bool) domain.Action {
	return build(h, domain.OpSetLoading, loading)
}

// SetActive builds a setActive action. The id is not checked against the collection.
func SetActive(h Handle, id string) domain.Action {
	return build(h, domain.OpSetActive, id)
}

// ClearActive builds a clearActive action.
func ClearActive(h Handle) domain.Action {
	return build(h, domain.OpClearActive, nil)
}

// SetError builds a setError action. A nil err clears the error.
func SetError(h Handle, err error) domain.Action {
	return build(h, domain.OpSetError, err)
}
