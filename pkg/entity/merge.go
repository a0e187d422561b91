package entity

import (
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
)

// Partial is a subset of an entity's fields, keyed by mapstructure field names.
type Partial = map[string]any

// MergeFunc combines the current entity (nil when the id is unknown) with a partial update.
// It must not mutate *current.
type MergeFunc[T any] func(current *T, partial Partial) (T, error)

// decode writes partial into out, keeping struct fields of out that partial does not name.
// Lists and maps named by partial replace the previous ones.
func decode(partial Partial, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(partial)
}

// clone returns a deep copy of *current, or the zero value when current is nil.
func clone[T any](current *T) T {
	var out T
	if current == nil {
		return out
	}
	if cp, ok := deepcopy.Copy(*current).(T); ok {
		return cp
	}
	return *current
}

// Overlay writes the partial's keys over a copy of the current entity.
// Keys absent from the partial keep their value; nested structs are overlaid the same way
// while lists and maps are replaced. Unknown ids start from the zero value.
func Overlay[T any]() MergeFunc[T] {
	return func(current *T, partial Partial) (T, error) {
		out := clone(current)
		if m, ok := any(&out).(*map[string]any); ok {
			if *m == nil {
				*m = make(map[string]any, len(partial))
			}
			for k, v := range partial {
				(*m)[k] = deepcopy.Copy(v)
			}
			return out, nil
		}
		if err := decode(partial, &out); err != nil {
			var zero T
			return zero, fmt.Errorf("overlay: %w", err)
		}
		return out, nil
	}
}

// DeepMerge decodes the partial into a fresh T and merges it into a copy of the
// current entity with mergo. Zero values in the partial never override.
// Without options, mergo.WithOverride is used.
func DeepMerge[T any](opts ...func(*mergo.Config)) MergeFunc[T] {
	if len(opts) == 0 {
		opts = []func(*mergo.Config){mergo.WithOverride}
	}
	return func(current *T, partial Partial) (T, error) {
		var patch T
		if err := decode(partial, &patch); err != nil {
			var zero T
			return zero, fmt.Errorf("deep merge: %w", err)
		}
		if current == nil {
			return patch, nil
		}
		out := clone(current)
		if err := mergo.Merge(&out, patch, opts...); err != nil {
			var zero T
			return zero, fmt.Errorf("deep merge: %w", err)
		}
		return out, nil
	}
}

// Replace discards the current entity and decodes the partial into a fresh T.
func Replace[T any]() MergeFunc[T] {
	return func(_ *T, partial Partial) (T, error) {
		var out T
		if err := decode(partial, &out); err != nil {
			var zero T
			return zero, fmt.Errorf("replace: %w", err)
		}
		return out, nil
	}
}
