package app

import (
	"gioui.org/layout"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ActivityID names an activity. Two ids are the same activity when their
// names are equal.
type ActivityID string

// String implements fmt.Stringer.
func (id ActivityID) String() string {
	return string(id)
}

// State is the process-wide key/value store shared by all activities. Every
// call is individually synchronized; a Get followed by a Set is not atomic.
type State interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Exists(key string) bool
}

// Activity is a full-window screen managed by an ActivityHost. Only one
// activity is active at a time. The lifecycle callbacks are invoked by the
// host on the render goroutine right after the activity's Layout in the
// frame following a navigation.
type Activity interface {
	// ID is the unique identifier the activity is registered under.
	ID() ActivityID
	// OnCreate is called once, after the first Layout following
	// registration.
	OnCreate(state State)
	// OnResume is called after every navigation to this activity.
	OnResume(state State)
	// OnPause is called after every navigation away from this activity.
	OnPause(state State)
	// Layout draws the activity. It is called on every frame while the
	// activity is active.
	Layout(gtx C, state State) D
}

// GenericActivity implements the ID and lifecycle methods of Activity with
// no-op callbacks. Activities embed it and override what they need.
type GenericActivity struct {
	id ActivityID
}

func NewGenericActivity(id ActivityID) *GenericActivity {
	return &GenericActivity{id: id}
}

// ID implements Activity.
func (ga *GenericActivity) ID() ActivityID {
	return ga.id
}

// OnCreate implements Activity.
func (*GenericActivity) OnCreate(State) {}

// OnResume implements Activity.
func (*GenericActivity) OnResume(State) {}

// OnPause implements Activity.
func (*GenericActivity) OnPause(State) {}
