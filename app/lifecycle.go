package app

import (
	"fmt"
)

// Lifecycle holds the one-shot callback flags of a single activity. A set
// flag means the matching callback is due on the next frame.
type Lifecycle struct {
	OnCreate  bool
	OnResume  bool
	OnPause   bool
	OnDestroy bool // never set; activities are not torn down.
}

func newLifecycle() *Lifecycle {
	return &Lifecycle{OnCreate: true}
}

// String is used in trace logs.
func (l Lifecycle) String() string {
	return fmt.Sprintf("create=%t resume=%t pause=%t destroy=%t",
		l.OnCreate, l.OnResume, l.OnPause, l.OnDestroy)
}

// LifecycleManager tracks the single active activity, the previously active
// one and the lifecycle flags of every registered activity.
//
// LifecycleManager is not safe for concurrent use. It must only be used from
// the goroutine that renders frames; other goroutines request navigation
// through a Navigator.
type LifecycleManager struct {
	lifecycles map[ActivityID]*Lifecycle
	// registered keeps registration order for diagnostics.
	registered []ActivityID

	booted   bool
	current  ActivityID
	previous *ActivityID
}

func NewLifecycleManager() *LifecycleManager {
	return &LifecycleManager{
		lifecycles: make(map[ActivityID]*Lifecycle),
	}
}

// Boot registers id and makes it the active activity. Its create flag is
// set but not its resume flag. Boot fails if an activity was already booted
// or if id is already registered.
func (m *LifecycleManager) Boot(id ActivityID) error {
	if m.booted {
		return fmt.Errorf("boot %q (active %q): %w", id, m.current, ErrAlreadyBooted)
	}
	if _, ok := m.lifecycles[id]; ok {
		return fmt.Errorf("boot %q: registered before boot: %w", id, ErrAlreadyBooted)
	}

	m.add(id)
	m.booted = true
	m.current = id
	m.previous = nil
	return nil
}

// Register adds id without activating it. New activities start with only
// the create flag set.
func (m *LifecycleManager) Register(id ActivityID) error {
	if _, ok := m.lifecycles[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrAlreadyRegistered)
	}
	m.add(id)
	return nil
}

func (m *LifecycleManager) add(id ActivityID) {
	m.registered = append(m.registered, id)
	m.lifecycles[id] = newLifecycle()
}

// IsRegistered reports whether id was registered or booted.
func (m *LifecycleManager) IsRegistered(id ActivityID) bool {
	_, ok := m.lifecycles[id]
	return ok
}

// Registered returns the registered ids in registration order.
func (m *LifecycleManager) Registered() []ActivityID {
	ids := make([]ActivityID, len(m.registered))
	copy(ids, m.registered)
	return ids
}

// IsBooted reports whether a boot activity was set.
func (m *LifecycleManager) IsBooted() bool {
	return m.booted
}

// Current returns the active activity and the previously active one, if
// any. The returned pointer is a copy.
func (m *LifecycleManager) Current() (ActivityID, *ActivityID) {
	if m.previous == nil {
		return m.current, nil
	}
	prev := *m.previous
	return m.current, &prev
}

// Lifecycle returns a copy of the flags of id.
func (m *LifecycleManager) Lifecycle(id ActivityID) (Lifecycle, bool) {
	l, ok := m.lifecycles[id]
	if !ok {
		return Lifecycle{}, false
	}
	return *l, true
}

// Navigate makes target the active activity. Navigating to the active
// activity is a no-op. The incoming activity gets its resume flag set and
// keeps its create flag, so an activity that has never been drawn gets both
// callbacks. The outgoing activity only keeps the pause flag.
func (m *LifecycleManager) Navigate(target ActivityID) error {
	incoming, ok := m.lifecycles[target]
	if !ok {
		return fmt.Errorf("navigate to %q: %w", target, ErrNotRegistered)
	}
	if !m.booted {
		return fmt.Errorf("navigate to %q: %w", target, ErrNotBooted)
	}
	if target == m.current {
		return nil
	}

	incoming.OnResume = true
	incoming.OnPause = false
	incoming.OnDestroy = false

	outgoingID := m.current
	m.previous = &outgoingID
	if outgoing, ok := m.lifecycles[outgoingID]; ok {
		outgoing.OnCreate = false
		outgoing.OnResume = false
		outgoing.OnPause = true
		outgoing.OnDestroy = false
	}

	m.current = target
	log.Tracef("navigated %s -> %s", outgoingID, target)
	return nil
}

// ResetLifecycle clears the one-shot flags once the callbacks of a frame
// have been dispatched: create and resume on the active activity, pause on
// the previous one.
func (m *LifecycleManager) ResetLifecycle() {
	if l, ok := m.lifecycles[m.current]; ok {
		l.OnResume = false
		l.OnCreate = false
	}
	if m.previous != nil {
		if l, ok := m.lifecycles[*m.previous]; ok {
			l.OnPause = false
		}
	}
}
