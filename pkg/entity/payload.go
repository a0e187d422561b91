package entity

import (
	"errors"

	"github.com/aretw0/entitystore/pkg/domain"
)

func payloadErr(op, expected string, got any, cause error) error {
	return &domain.PayloadError{Op: op, Expected: expected, Got: got, Cause: cause}
}

// asEntity accepts a T, a *T or a decoded map.
func asEntity[T any](op string, payload any) (T, error) {
	var zero T
	switch p := payload.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	case map[string]any:
		var out T
		if err := decode(p, &out); err != nil {
			return zero, payloadErr(op, "an entity", payload, err)
		}
		return out, nil
	}
	return zero, payloadErr(op, "an entity", payload, nil)
}

func asEntities[T any](op string, payload any) ([]T, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case []T:
		return p, nil
	case []map[string]any:
		out := make([]T, 0, len(p))
		for _, m := range p {
			e, err := asEntity[T](op, m)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case []any:
		out := make([]T, 0, len(p))
		for _, item := range p {
			e, err := asEntity[T](op, item)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	}
	return nil, payloadErr(op, "a list of entities", payload, nil)
}

// asPartial accepts a map or a full entity.
func asPartial[T any](op string, payload any) (Partial, error) {
	switch p := payload.(type) {
	case map[string]any:
		return p, nil
	case T:
		return PartialOf(p)
	case *T:
		if p != nil {
			return PartialOf(*p)
		}
	}
	return nil, payloadErr(op, "a partial entity", payload, nil)
}

func asPartials[T any](op string, payload any) ([]Partial, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case []Partial:
		return p, nil
	case []T:
		out := make([]Partial, 0, len(p))
		for _, e := range p {
			partial, err := PartialOf(e)
			if err != nil {
				return nil, payloadErr(op, "a list of partial entities", payload, err)
			}
			out = append(out, partial)
		}
		return out, nil
	case []any:
		out := make([]Partial, 0, len(p))
		for _, item := range p {
			partial, err := asPartial[T](op, item)
			if err != nil {
				return nil, err
			}
			out = append(out, partial)
		}
		return out, nil
	}
	return nil, payloadErr(op, "a list of partial entities", payload, nil)
}

func asID(op string, payload any) (string, error) {
	if id, ok := payload.(string); ok {
		return id, nil
	}
	if id, ok := stringID(payload); ok {
		return id, nil
	}
	return "", payloadErr(op, "an id", payload, nil)
}

func asIDs(op string, payload any) ([]string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case []string:
		return p, nil
	case []any:
		out := make([]string, 0, len(p))
		for _, item := range p {
			id, err := asID(op, item)
			if err != nil {
				return nil, payloadErr(op, "a list of ids", payload, err)
			}
			out = append(out, id)
		}
		return out, nil
	}
	return nil, payloadErr(op, "a list of ids", payload, nil)
}

func asBool(op string, payload any) (bool, error) {
	b, ok := payload.(bool)
	if !ok {
		return false, payloadErr(op, "a boolean", payload, nil)
	}
	return b, nil
}

// asError stores into out an error, nil, or an error message from a serialized transport.
func asError(op string, payload any, out *error) error {
	switch p := payload.(type) {
	case nil:
		*out = nil
	case error:
		*out = p
	case string:
		*out = nil
		if p != "" {
			*out = errors.New(p)
		}
	default:
		return payloadErr(op, "an error or nil", payload, nil)
	}
	return nil
}
