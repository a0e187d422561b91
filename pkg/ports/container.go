package ports

import (
	"context"

	"github.com/aretw0/entitystore/pkg/domain"
)

// StateContext is the accessor a handler receives over the state slice at its module path.
// SetState stages a new value; the host installs it only if the handler returns nil.
type StateContext interface {
	GetState() any
	SetState(value any)
}

// Handler applies one named operation to a state slice.
type Handler func(sc StateContext, payload any) error

// Module is the registration value a store hands to its host: where its state lives,
// how to build the default state, and which operations it answers to.
type Module struct {
	// Path is the dotted location of the slice inside the state tree.
	Path string

	// Defaults builds a fresh default state. Called at registration and on reinitialization.
	Defaults func() any

	// Handlers maps an operation name (not the routed type) to its handler.
	Handlers map[string]Handler
}

// Registrar accepts modules.
type Registrar interface {
	Register(m Module) error
}

// Dispatcher routes an action to the handler registered under action.Type.
type Dispatcher interface {
	Dispatch(ctx context.Context, action domain.Action) error
}

// StateReader exposes the current state tree. The returned tree must not be mutated.
type StateReader interface {
	State() domain.Tree
}

// Container is the full host contract: registration, dispatch and read access.
type Container interface {
	Registrar
	Dispatcher
	StateReader
}
