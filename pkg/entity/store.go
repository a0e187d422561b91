package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
)

// Store is the entity engine for one collection of T at a fixed path.
// It holds no state of its own; its state lives in whatever container it is registered with.
type Store[T any] struct {
	path   string
	idKey  string
	merge  MergeFunc[T]
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to trace handler decisions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a store for entities of type T.
// T must be a struct or a string-keyed map; for structs, idKey
// must name one of its fields.
func New[T any](path, idKey string, merge MergeFunc[T], opts ...Option) (*Store[T], error) {
	if len(domain.SplitPath(path)) == 0 {
		return nil, fmt.Errorf("entity store: empty path")
	}
	if idKey == "" {
		return nil, fmt.Errorf("entity store %s: empty id key", path)
	}
	if merge == nil {
		return nil, fmt.Errorf("entity store %s: merge strategy is required", path)
	}
	if err := checkIdentity[T](idKey); err != nil {
		return nil, fmt.Errorf("entity store %s: %w", path, err)
	}

	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{
		path:   path,
		idKey:  idKey,
		merge:  merge,
		logger: o.logger.With("path", path),
	}, nil
}

// checkIdentity verifies that T can carry idKey.
func checkIdentity[T any](idKey string) error {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	switch t.Kind() {
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("entity type %s must be keyed by string", t)
		}
		return nil
	case reflect.Struct:
		fields, err := fieldsOf(zero)
		if err != nil {
			return err
		}
		if _, ok := lookup(fields, idKey); !ok {
			return fmt.Errorf("entity type %s has no field %q", t, idKey)
		}
		return nil
	default:
		return fmt.Errorf("entity type %s must be a struct or a map", t)
	}
}

// Path returns the container path the store is registered under.
func (s *Store[T]) Path() string { return s.path }

// IDKey returns the name of the identity field.
func (s *Store[T]) IDKey() string { return s.idKey }

// Module returns the registration value for a host container.
func (s *Store[T]) Module() ports.Module {
	return ports.Module{
		Path: s.path,
		Defaults: func() any {
			return domain.DefaultCollection[T]()
		},
		Handlers: map[string]ports.Handler{
			domain.OpAdd:          s.add,
			domain.OpAddAll:       s.addAll,
			domain.OpUpdate:       s.update,
			domain.OpUpdateAll:    s.updateAll,
			domain.OpUpdateActive: s.updateActive,
			domain.OpRemove:       s.remove,
			domain.OpRemoveAll:    s.removeAll,
			domain.OpClear:        s.clear,
			domain.OpReset:        s.reset,
			domain.OpSetLoading:   s.setLoading,
			domain.OpSetActive:    s.setActive,
			domain.OpClearActive:  s.clearActive,
			domain.OpSetError:     s.setError,
		},
	}
}

// Register hands the store's module to r.
func (s *Store[T]) Register(r ports.Registrar) error {
	return r.Register(s.Module())
}

// errStateType reports a slice at the store's path that is not a Collection[T].
var errStateType = errors.New("unexpected state type")

func (s *Store[T]) current(sc ports.StateContext) (domain.Collection[T], error) {
	switch c := sc.GetState().(type) {
	case nil:
		return domain.DefaultCollection[T](), nil
	case domain.Collection[T]:
		return c, nil
	default:
		return domain.Collection[T]{}, fmt.Errorf("%w at %s: %T", errStateType, s.path, c)
	}
}
