package app

import (
	"fmt"
	"sync"
)

// Navigator carries navigation requests from any goroutine to the
// ActivityHost. Sends never block: requests are buffered without bound until
// the host drains them, one per frame.
//
// A single Navigator is created at startup and shared by reference with
// every activity and background task that needs to navigate.
type Navigator struct {
	mtx     sync.Mutex
	pending []ActivityID
	closed  bool

	// invalidate asks the window to draw a new frame. It may be nil.
	invalidate func()
}

// NewNavigator returns a Navigator that calls invalidate after every send so
// that an idle window wakes up to apply the request.
func NewNavigator(invalidate func()) *Navigator {
	return &Navigator{invalidate: invalidate}
}

// Send queues a navigation request to id. It is safe for concurrent use and
// returns ErrChannelSendFailed once the navigator is closed.
func (n *Navigator) Send(id ActivityID) error {
	n.mtx.Lock()
	if n.closed {
		n.mtx.Unlock()
		return fmt.Errorf("send %q: %w", id, ErrChannelSendFailed)
	}
	n.pending = append(n.pending, id)
	n.mtx.Unlock()

	n.Invalidate()
	return nil
}

// TryRecv removes the oldest pending request without blocking. ok is false
// when there is nothing to receive.
func (n *Navigator) TryRecv() (id ActivityID, ok bool) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if len(n.pending) == 0 {
		return "", false
	}
	id = n.pending[0]
	n.pending[0] = ""
	n.pending = n.pending[1:]
	if len(n.pending) == 0 {
		// Release the backing array once drained.
		n.pending = nil
	}
	return id, true
}

// Pending returns the number of requests waiting to be drained.
func (n *Navigator) Pending() int {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return len(n.pending)
}

// Invalidate requests a redraw.
func (n *Navigator) Invalidate() {
	if n.invalidate != nil {
		n.invalidate()
	}
}

// Close makes every later Send fail. Pending requests can still be drained.
func (n *Navigator) Close() {
	n.mtx.Lock()
	n.closed = true
	n.mtx.Unlock()
}
