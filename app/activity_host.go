package app

import (
	"fmt"
)

// ActivityHost owns the registered activities and drives their lifecycle
// once per frame. It is the entry point the window calls on every
// FrameEvent.
type ActivityHost struct {
	activities map[ActivityID]Activity
	lifecycle  *LifecycleManager
	navigator  *Navigator
	state      State
}

func NewActivityHost(navigator *Navigator, state State) *ActivityHost {
	return &ActivityHost{
		activities: make(map[ActivityID]Activity),
		lifecycle:  NewLifecycleManager(),
		navigator:  navigator,
		state:      state,
	}
}

// Boot registers a and makes it the first active activity.
func (h *ActivityHost) Boot(a Activity) error {
	if err := h.lifecycle.Boot(a.ID()); err != nil {
		return err
	}
	h.activities[a.ID()] = a
	log.Debugf("booted activity %s", a.ID())
	return nil
}

// Register adds a to the activities that can be navigated to.
func (h *ActivityHost) Register(a Activity) error {
	if err := h.lifecycle.Register(a.ID()); err != nil {
		return err
	}
	h.activities[a.ID()] = a
	log.Debugf("registered activity %s", a.ID())
	return nil
}

// Navigator returns the navigator drained by this host.
func (h *ActivityHost) Navigator() *Navigator {
	return h.navigator
}

// Lifecycle exposes the lifecycle manager for inspection.
func (h *ActivityHost) Lifecycle() *LifecycleManager {
	return h.lifecycle
}

// CurrentActivity returns the active activity or nil before boot.
func (h *ActivityHost) CurrentActivity() Activity {
	if !h.lifecycle.IsBooted() {
		return nil
	}
	current, _ := h.lifecycle.Current()
	return h.activities[current]
}

// Update draws the active activity and runs one lifecycle step, strictly in
// this order:
//
//  1. Layout the active activity.
//  2. OnCreate on the active activity if due.
//  3. OnResume on the active activity if due.
//  4. OnPause on the previous activity if due.
//  5. Reset the one-shot flags.
//  6. Drain at most one navigation request and apply it.
//
// A navigation requested by a callback in steps 2-4 is therefore applied at
// the end of the same frame at the earliest, and its callbacks run in the
// next frame. Only the oldest pending request is applied per frame.
func (h *ActivityHost) Update(gtx C) D {
	current, previous := h.lifecycle.Current()
	activity, ok := h.activities[current]
	if !ok {
		log.Errorf("no active activity to display (booted=%t current=%q)", h.lifecycle.IsBooted(), current)
		return D{}
	}

	dims := activity.Layout(gtx, h.state)

	if l, _ := h.lifecycle.Lifecycle(current); l.OnCreate {
		log.Tracef("%s: OnCreate", current)
		activity.OnCreate(h.state)
	}
	if l, _ := h.lifecycle.Lifecycle(current); l.OnResume {
		log.Tracef("%s: OnResume", current)
		activity.OnResume(h.state)
	}
	if previous != nil {
		if l, _ := h.lifecycle.Lifecycle(*previous); l.OnPause {
			if prev, ok := h.activities[*previous]; ok {
				log.Tracef("%s: OnPause", *previous)
				prev.OnPause(h.state)
			}
		}
	}

	h.lifecycle.ResetLifecycle()

	// Redraw after every drained request, failed or not.
	if target, ok := h.navigator.TryRecv(); ok {
		if err := h.navigate(target); err != nil {
			log.Errorf("navigation to %s failed: %v", target, err)
		}
		h.navigator.Invalidate()
	}

	return dims
}

func (h *ActivityHost) navigate(target ActivityID) error {
	if _, ok := h.activities[target]; !ok {
		return fmt.Errorf("navigate to %q: %w", target, ErrNotRegistered)
	}
	return h.lifecycle.Navigate(target)
}
