package app

import "errors"

var (
	// ErrNotRegistered is returned when navigating to an activity that was
	// never registered.
	ErrNotRegistered = errors.New("activity not registered")
	// ErrAlreadyRegistered is returned when an activity id is registered
	// more than once.
	ErrAlreadyRegistered = errors.New("activity already registered")
	// ErrAlreadyBooted is returned when a boot activity has already been
	// set, or when the boot id conflicts with a registered activity.
	ErrAlreadyBooted = errors.New("boot activity already set")
	// ErrNotBooted is returned by operations that need an active activity
	// before any activity was booted.
	ErrNotBooted = errors.New("no boot activity")
	// ErrChannelSendFailed is returned when a navigation request can no
	// longer be delivered because the navigator was closed.
	ErrChannelSendFailed = errors.New("navigation channel closed")
)
