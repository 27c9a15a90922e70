package pluginhost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ThemeRegistrar routes theme (un)registration calls to the editor's theme
// registry. The manager never holds theme state itself; it only tracks
// which plugin registered which name so Unload can clean up automatically.
type ThemeRegistrar interface {
	RegisterTheme(pluginID, name, colorsJSON string) error
	UnregisterTheme(pluginID, name string) error
}

// EventHandler is invoked once per ready subscriber, in load order, when
// the manager dispatches an editor event. A non-nil error is recorded
// against that plugin and does not stop dispatch to later subscribers.
type EventHandler func(ctx context.Context, inst *Instance, event string, payload string) error

// Manager discovers plugin manifests, resolves load order, instantiates
// each plugin through the configured Runtimes, and dispatches editor
// events to ready instances in load order.
type Manager struct {
	mu sync.RWMutex

	loader   *Loader
	runtimes Runtimes
	themes   ThemeRegistrar
	logger   *slog.Logger

	instances map[string]*Instance // by manifest id
	loadOrder []string             // ids, in resolved dependency order

	// subscribers maps event name -> ids in load order.
	subscribers map[string][]string

	nextToken Token

	// lastErrors records the most recent load/dispatch failure per id.
	lastErrors map[string]error
}

// NewManager creates a manager over the given plugin roots.
func NewManager(roots []string, runtimes Runtimes, themes ThemeRegistrar) *Manager {
	logger := slog.Default()
	return &Manager{
		loader:      NewLoader(roots...),
		runtimes:    runtimes,
		themes:      themes,
		logger:      logger,
		instances:   make(map[string]*Instance),
		subscribers: make(map[string][]string),
		lastErrors:  make(map[string]error),
	}
}

// SetRuntimes installs the execution backends after construction. It
// exists because the script backend's Dispatcher is usually the
// capability bridge, which in turn takes the Manager itself as its
// ThemeSink — the two constructors would otherwise need each other's
// result. Callers build the Manager, build the bridge over it, then call
// SetRuntimes before the first Discover/Load.
func (m *Manager) SetRuntimes(r Runtimes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runtimes = r
}

// Discover scans the configured roots and resolves a dependency load
// order. It replaces any previously discovered instances that are not
// already ready; ready instances are left untouched until Unload.
func (m *Manager) Discover() error {
	result, err := m.loader.Discover()
	if err != nil {
		return err
	}

	order, err := ResolveLoadOrder(result.Plugins)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[string]*Manifest, len(result.Plugins))
	for _, man := range result.Plugins {
		byID[man.ID] = man
	}

	for id, missing := range order.Unsatisfied {
		m.lastErrors[id] = fmt.Errorf("%w: %s requires %s", ErrUnsatisfiedDependency, id, missing)
		m.logger.Warn("plugin dependency unsatisfied", "plugin", id, "missing", missing)
	}

	if len(order.Cycle) > 0 {
		cycleErr := &DependencyCycleError{Members: order.Cycle}
		m.logger.Warn("plugin dependency cycle detected", "members", order.Cycle)
		for _, id := range order.Cycle {
			m.lastErrors[id] = cycleErr
			m.nextToken++
			m.instances[id] = newInstance(byID[id], m.nextToken)
		}
	}

	for _, id := range order.Order {
		if existing, ok := m.instances[id]; ok && existing.State == StateReady {
			continue
		}
		m.nextToken++
		m.instances[id] = newInstance(byID[id], m.nextToken)
	}
	m.loadOrder = order.Order

	return nil
}

// LoadAll instantiates every discovered instance, in dependency order,
// through the matching runtime. A failure isolates to that plugin; peers
// continue loading.
func (m *Manager) LoadAll(ctx context.Context) {
	m.mu.RLock()
	order := append([]string(nil), m.loadOrder...)
	m.mu.RUnlock()

	for _, id := range order {
		if err := m.Load(ctx, id); err != nil {
			m.logger.Error("plugin load failed", "plugin", id, "error", err)
		}
	}
}

// Load instantiates a single discovered instance by id.
func (m *Manager) Load(ctx context.Context, id string) error {
	m.mu.Lock()
	inst, ok := m.instances[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPluginNotFound, id)
	}
	if inst.State != StateDiscovered {
		m.mu.Unlock()
		return nil
	}
	inst.State = StateLoading
	m.mu.Unlock()

	handle, err := m.instantiate(ctx, inst)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		inst.State = StateFailed
		inst.Err = err
		m.lastErrors[id] = err
		return err
	}
	inst.Handle = handle
	inst.State = StateReady
	return nil
}

func (m *Manager) instantiate(ctx context.Context, inst *Instance) (interface{}, error) {
	switch inst.Kind {
	case KindScript:
		if m.runtimes.Script == nil {
			return nil, ErrUnknownKind
		}
		return m.runtimes.Script.LoadScript(ctx, inst.Manifest, inst.Manifest.EntryPointPath())
	case KindNative:
		if m.runtimes.Native == nil {
			return nil, ErrUnknownKind
		}
		return m.runtimes.Native.LoadNative(inst.Manifest.EntryPointPath())
	default:
		return nil, ErrUnknownKind
	}
}

// Unload tears down a ready instance, unregisters its themes, and removes
// it from every event subscription.
func (m *Manager) Unload(id string) error {
	m.mu.Lock()
	inst, ok := m.instances[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPluginNotFound, id)
	}
	if inst.State != StateReady {
		m.mu.Unlock()
		return nil
	}
	themes := append([]string(nil), inst.themes...)
	m.mu.Unlock()

	var err error
	switch inst.Kind {
	case KindScript:
		if m.runtimes.Script != nil {
			err = m.runtimes.Script.UnloadScript(inst.Handle)
		}
	case KindNative:
		if m.runtimes.Native != nil {
			err = m.runtimes.Native.UnloadNative(inst.Handle)
		}
	}

	if m.themes != nil {
		for _, name := range themes {
			if uerr := m.themes.UnregisterTheme(id, name); uerr != nil {
				m.logger.Warn("theme unregister failed", "plugin", id, "theme", name, "error", uerr)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	inst.themes = nil
	inst.State = StateUnloaded
	for event, subs := range m.subscribers {
		m.subscribers[event] = removeString(subs, id)
	}
	return err
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Get returns a loaded instance by id.
func (m *Manager) Get(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[id]
	return inst, ok
}

// List returns the instances in the resolved load order. Cycle members,
// which have instances but no place in that order, are not included.
func (m *Manager) List() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Instance, 0, len(m.loadOrder))
	for _, id := range m.loadOrder {
		out = append(out, m.instances[id])
	}
	return out
}

// Errors returns the most recent failure recorded per plugin id.
func (m *Manager) Errors() map[string]error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]error, len(m.lastErrors))
	for k, v := range m.lastErrors {
		out[k] = v
	}
	return out
}

// Subscribe registers id as a subscriber to event. Subscriptions are
// appended in call order, which is how load-order-preserving dispatch is
// achieved when subscriptions happen during LoadAll.
func (m *Manager) Subscribe(id, event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[event] = append(m.subscribers[event], id)
}

// Dispatch invokes handler for every ready subscriber of event, in
// subscription order. A handler error is recorded against that plugin
// and does not prevent dispatch to subsequent subscribers.
func (m *Manager) Dispatch(ctx context.Context, event, payload string, handler EventHandler) {
	m.mu.RLock()
	subs := append([]string(nil), m.subscribers[event]...)
	m.mu.RUnlock()

	for _, id := range subs {
		m.mu.RLock()
		inst := m.instances[id]
		m.mu.RUnlock()
		if inst == nil || !inst.CanDispatch() {
			continue
		}
		if err := handler(ctx, inst, event, payload); err != nil {
			m.mu.Lock()
			m.lastErrors[id] = err
			m.mu.Unlock()
			m.logger.Error("plugin event handler failed", "plugin", id, "event", event, "error", err)
		}
	}
}

// RegisterTheme routes a register_theme capability call through the
// configured ThemeRegistrar and records the registration so Unload can
// automatically reverse it.
func (m *Manager) RegisterTheme(pluginID, name, colorsJSON string) error {
	if m.themes == nil {
		return nil
	}
	if err := m.themes.RegisterTheme(pluginID, name, colorsJSON); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.instances[pluginID]; ok {
		inst.themes = append(inst.themes, name)
	}
	return nil
}

// UnregisterTheme routes an unregister_theme capability call.
func (m *Manager) UnregisterTheme(pluginID, name string) error {
	if m.themes == nil {
		return nil
	}
	if err := m.themes.UnregisterTheme(pluginID, name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.instances[pluginID]; ok {
		inst.themes = removeString(inst.themes, name)
	}
	return nil
}
