package entity

import (
	"fmt"
	"strings"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
)

func (s *Store[T]) add(sc ports.StateContext, payload any) error {
	e, err := asEntity[T](domain.OpAdd, payload)
	if err != nil {
		return err
	}
	return s.upsert(sc, []T{e})
}

func (s *Store[T]) addAll(sc ports.StateContext, payload any) error {
	list, err := asEntities[T](domain.OpAddAll, payload)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	return s.upsert(sc, list)
}

func (s *Store[T]) upsert(sc ports.StateContext, list []T) error {
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	entities := state.CloneEntities()
	for _, e := range list {
		id, err := s.idOf(e)
		if err != nil {
			return err
		}
		entities[id] = e
	}
	state.Entities = entities
	sc.SetState(state)
	s.logger.Debug("entities upserted", "count", len(list))
	return nil
}

func (s *Store[T]) update(sc ports.StateContext, payload any) error {
	partial, err := asPartial[T](domain.OpUpdate, payload)
	if err != nil {
		return err
	}
	return s.mergeAll(sc, domain.OpUpdate, []Partial{partial})
}

func (s *Store[T]) updateAll(sc ports.StateContext, payload any) error {
	partials, err := asPartials[T](domain.OpUpdateAll, payload)
	if err != nil {
		return err
	}
	if len(partials) == 0 {
		return nil
	}
	return s.mergeAll(sc, domain.OpUpdateAll, partials)
}

func (s *Store[T]) updateActive(sc ports.StateContext, payload any) error {
	partial, err := asPartial[T](domain.OpUpdateActive, payload)
	if err != nil {
		return err
	}
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	active, ok := domain.ActiveEntity(state)
	if !ok {
		return fmt.Errorf("%w: no active entity", domain.ErrInvalidID)
	}
	fields, err := fieldsOf(active)
	if err != nil {
		return err
	}
	raw, ok := lookup(fields, s.idKey)
	if !ok {
		return fmt.Errorf("%w: active entity has no %q", domain.ErrInvalidID, s.idKey)
	}

	pinned := make(Partial, len(partial)+1)
	for k, v := range partial {
		pinned[k] = v
	}
	for k := range pinned {
		if strings.EqualFold(k, s.idKey) {
			delete(pinned, k)
		}
	}
	// The identity keeps its field type; state.Active is only its key form.
	pinned[s.idKey] = raw
	return s.mergeAll(sc, domain.OpUpdateActive, []Partial{pinned})
}

// mergeAll applies partials in order on one working copy and stages it only if all succeed.
func (s *Store[T]) mergeAll(sc ports.StateContext, op string, partials []Partial) error {
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	entities := state.CloneEntities()
	for _, partial := range partials {
		id, err := s.idOf(partial)
		if err != nil {
			return err
		}
		var cur *T
		if e, ok := entities[id]; ok {
			cur = &e
		}
		next, err := s.merge(cur, partial)
		if err != nil {
			return payloadErr(op, "a partial matching the entity", partial, err)
		}
		got, err := s.idOf(next)
		if err != nil {
			return fmt.Errorf("merge %q: %w", id, err)
		}
		if got != id {
			return fmt.Errorf("%w: merge of %q produced id %q", domain.ErrInvalidID, id, got)
		}
		entities[id] = next
	}
	state.Entities = entities
	sc.SetState(state)
	s.logger.Debug("entities merged", "count", len(partials))
	return nil
}

func (s *Store[T]) remove(sc ports.StateContext, payload any) error {
	id, err := asID(domain.OpRemove, payload)
	if err != nil {
		return err
	}
	return s.delete(sc, []string{id})
}

func (s *Store[T]) removeAll(sc ports.StateContext, payload any) error {
	ids, err := asIDs(domain.OpRemoveAll, payload)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return s.delete(sc, ids)
}

func (s *Store[T]) delete(sc ports.StateContext, ids []string) error {
	state, err := s.current(sc)
	if err != nil {
		return err
	}

	changed := false
	for _, id := range ids {
		if _, ok := state.Entities[id]; ok {
			changed = true
		}
		if id != "" && id == state.Active {
			state.Active = ""
			changed = true
		}
	}
	if !changed {
		return nil
	}

	entities := state.CloneEntities()
	for _, id := range ids {
		delete(entities, id)
	}
	state.Entities = entities
	sc.SetState(state)
	return nil
}

func (s *Store[T]) clear(sc ports.StateContext, _ any) error {
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	state.Entities = make(map[string]T)
	state.Active = ""
	sc.SetState(state)
	return nil
}

func (s *Store[T]) reset(sc ports.StateContext, _ any) error {
	sc.SetState(domain.DefaultCollection[T]())
	return nil
}

func (s *Store[T]) setLoading(sc ports.StateContext, payload any) error {
	loading, err := asBool(domain.OpSetLoading, payload)
	if err != nil {
		return err
	}
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	state.Loading = loading
	sc.SetState(state)
	return nil
}

func (s *Store[T]) setActive(sc ports.StateContext, payload any) error {
	id, err := asID(domain.OpSetActive, payload)
	if err != nil {
		return err
	}
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	state.Active = id
	sc.SetState(state)
	return nil
}

func (s *Store[T]) clearActive(sc ports.StateContext, _ any) error {
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	state.Active = ""
	sc.SetState(state)
	return nil
}

func (s *Store[T]) setError(sc ports.StateContext, payload any) error {
	var cause error
	if err := asError(domain.OpSetError, payload, &cause); err != nil {
		return err
	}
	state, err := s.current(sc)
	if err != nil {
		return err
	}
	state.Err = cause
	sc.SetState(state)
	return nil
}
