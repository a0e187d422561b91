package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// fieldsOf flattens an entity into its mapstructure key/value form.
func fieldsOf(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}

	var out map[string]any
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, fmt.Errorf("flatten %T: %w", v, err)
	}
	return out, nil
}

// lookup finds key in fields, falling back to a case-insensitive match the way
// mapstructure does when decoding.
func lookup(fields map[string]any, key string) (any, bool) {
	if v, ok := fields[key]; ok {
		return v, true
	}
	for k, v := range fields {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// stringID converts an identity value to its key form.
func stringID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case *string:
		if id == nil {
			return "", false
		}
		return *id, *id != ""
	case int:
		return strconv.Itoa(id), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint:
		return strconv.FormatUint(uint64(id), 10), true
	case uint32:
		return strconv.FormatUint(uint64(id), 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	case float64:
		// JSON transports decode every number as float64.
		if id == math.Trunc(id) && math.Abs(id) < 1<<63 {
			return strconv.FormatInt(int64(id), 10), true
		}
		return "", false
	case fmt.Stringer:
		s := id.String()
		return s, s != ""
	default:
		return "", false
	}
}

// idOf derives the identity of an entity or partial.
func (s *Store[T]) idOf(v any) (string, error) {
	fields, err := fieldsOf(v)
	if err != nil {
		return "", err
	}
	raw, ok := lookup(fields, s.idKey)
	if !ok {
		return "", fmt.Errorf("%w: %q is missing", domain.ErrInvalidID, s.idKey)
	}
	id, ok := stringID(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q is %v", domain.ErrInvalidID, s.idKey, raw)
	}
	return id, nil
}

// IDOf returns the identity of an entity, or ErrInvalidID when it has none.
func (s *Store[T]) IDOf(e T) (string, error) {
	return s.idOf(e)
}

// PartialOf converts a full entity into a partial carrying every field.
// It mirrors spreading an entity before overriding a few fields.
func PartialOf[T any](e T) (Partial, error) {
	fields, err := fieldsOf(e)
	if err != nil {
		return nil, err
	}
	out := make(Partial, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out, nil
}
