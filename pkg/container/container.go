package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/ports"
	"github.com/aretw0/entitystore/pkg/registry"
	"github.com/google/uuid"
)

// Change describes a state slice replaced by a dispatch.
type Change struct {
	ID     string
	Action domain.Action
	Path   string
	Before any
	After  any
	Tree   domain.Tree
}

// Container is an in-memory host for state modules.
// Writers are serialized per module path; readers never lock.
type Container struct {
	tree     atomic.Pointer[domain.Tree]
	registry *registry.Registry
	locks    *pathLocks

	mu      sync.RWMutex
	modules map[string]ports.Module
	subs    map[int]chan Change
	nextSub int

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

var _ ports.Container = (*Container)(nil)

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registry: registry.NewRegistry(),
		locks:    newPathLocks(),
		modules:  make(map[string]ports.Module),
		subs:     make(map[int]chan Change),
		logger:   logging.NewNop(),
	}
	empty := domain.Tree{}
	c.tree.Store(&empty)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register installs the module's default state and routes its handlers.
// Paths must be canonical dotted paths and may not nest inside each other.
func (c *Container) Register(m ports.Module) error {
	path := strings.Join(domain.SplitPath(m.Path), ".")
	if path == "" || path != m.Path {
		return fmt.Errorf("register %q: invalid path", m.Path)
	}
	if m.Defaults == nil {
		return fmt.Errorf("register %s: module has no defaults", path)
	}

	c.mu.Lock()
	for existing := range c.modules {
		if overlaps(existing, path) {
			c.mu.Unlock()
			return fmt.Errorf("register %s: %w (conflicts with %s)", path, domain.ErrPathConflict, existing)
		}
	}
	c.modules[path] = m
	c.mu.Unlock()

	_ = c.locks.with(path, func() error {
		c.install(path, m.Defaults())
		return nil
	})
	for op, h := range m.Handlers {
		c.registry.Register(path, op, h)
	}

	c.logger.Debug("module registered", "path", path, "ops", len(m.Handlers))
	return nil
}

func overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}

// install swaps in a tree with value at path. The caller holds the path lock,
// so only writers of other paths can race the swap.
func (c *Container) install(path string, value any) domain.Tree {
	for {
		cur := c.tree.Load()
		next := cur.With(path, value)
		if c.tree.CompareAndSwap(cur, &next) {
			return next
		}
	}
}

// State returns the current state tree. It must not be mutated.
func (c *Container) State() domain.Tree {
	return *c.tree.Load()
}

// Paths lists the registered module paths in ascending order.
func (c *Container) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.modules))
	for p := range c.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ActionTypes lists every routable action type in ascending order.
func (c *Container) ActionTypes() []string {
	return c.registry.Types()
}

// Dispatch applies action to the module registered for its type.
// The handler runs on staged state; nothing is installed if it fails.
func (c *Container) Dispatch(ctx context.Context, action domain.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := c.registry.Lookup(action.Type)
	if err != nil {
		c.logger.Warn("action rejected", "type", action.Type, "err", err)
		return &domain.DispatchError{ActionType: action.Type, Err: err}
	}

	start := time.Now()
	event := &domain.DispatchEvent{
		EventBase: domain.EventBase{
			Timestamp: start,
			Type:      domain.EventDispatch,
			ChangeID:  uuid.NewString(),
		},
		ActionType: action.Type,
		Path:       entry.Path,
		Op:         entry.Op,
	}
	if c.hooks.OnDispatch != nil {
		c.hooks.OnDispatch(ctx, event)
	}

	var change *Change
	err = c.locks.with(entry.Path, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		before, _ := c.State().Resolve(entry.Path)
		sc := &staged{value: before}
		if err := entry.Handler(sc, action.Payload); err != nil {
			return err
		}
		if !sc.dirty {
			return nil
		}
		tree := c.install(entry.Path, sc.value)
		change = &Change{
			ID:     event.ChangeID,
			Action: action,
			Path:   entry.Path,
			Before: before,
			After:  sc.value,
			Tree:   tree,
		}
		c.publish(*change)
		return nil
	})

	event.Duration = time.Since(start)
	if err != nil {
		event.Type = domain.EventRejected
		event.Err = err
		c.logger.Warn("action rejected", "type", action.Type, "change_id", event.ChangeID, "err", err)
		if c.hooks.OnRejected != nil {
			c.hooks.OnRejected(ctx, event)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &domain.DispatchError{ActionType: action.Type, Err: err}
	}

	event.Type = domain.EventApplied
	if change != nil {
		event.After = change.After
	}
	c.logger.Debug("action applied", "type", action.Type, "change_id", event.ChangeID, "changed", change != nil, "duration", event.Duration)
	if c.hooks.OnApplied != nil {
		c.hooks.OnApplied(ctx, event)
	}
	return nil
}

// Reinitialize restores the default state of every registered module.
func (c *Container) Reinitialize() {
	c.mu.RLock()
	modules := make([]ports.Module, 0, len(c.modules))
	for _, m := range c.modules {
		modules = append(modules, m)
	}
	c.mu.RUnlock()

	for _, m := range modules {
		_ = c.locks.with(m.Path, func() error {
			before, _ := c.State().Resolve(m.Path)
			after := m.Defaults()
			tree := c.install(m.Path, after)
			c.publish(Change{
				ID:     uuid.NewString(),
				Action: domain.Action{Type: domain.ActionType(m.Path, domain.OpReset)},
				Path:   m.Path,
				Before: before,
				After:  after,
				Tree:   tree,
			})
			return nil
		})
	}
	c.logger.Debug("container reinitialized", "modules", len(modules))
}

// Subscribe returns a channel receiving every installed change and a cancel function.
// Changes are dropped for a subscriber whose buffer is full.
func (c *Container) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *Container) publish(change Change) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for id, ch := range c.subs {
		select {
		case ch <- change:
		default:
			c.logger.Warn("subscriber too slow, change dropped", "subscriber", id, "change_id", change.ID)
		}
	}
}

// staged is the StateContext handed to handlers.
type staged struct {
	value any
	dirty bool
}

func (s *staged) GetState() any { return s.value }

func (s *staged) SetState(value any) {
	s.value = value
	s.dirty = true
}
