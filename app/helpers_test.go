package app_test

import (
	"fmt"
	"strings"
	"sync"

	"gioui.org/op"

	"github.com/ltp456/uwallet/app"
)

// mapState is a minimal app.State for tests.
type mapState struct {
	mtx    sync.Mutex
	values map[string]string
}

func newMapState() *mapState {
	return &mapState{values: make(map[string]string)}
}

func (s *mapState) Get(key string) (string, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *mapState) Set(key, value string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.values[key] = value
}

func (s *mapState) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// recorder is an activity that appends every callback to a shared trace.
type recorder struct {
	*app.GenericActivity
	trace *[]string

	onCreate func(app.State)
	onResume func(app.State)
}

func newRecorder(id string, trace *[]string) *recorder {
	return &recorder{
		GenericActivity: app.NewGenericActivity(app.ActivityID(id)),
		trace:           trace,
	}
}

func (r *recorder) record(event string) {
	*r.trace = append(*r.trace, fmt.Sprintf("%s.%s", r.ID(), event))
}

func (r *recorder) OnCreate(s app.State) {
	r.record("create")
	if r.onCreate != nil {
		r.onCreate(s)
	}
}

func (r *recorder) OnResume(s app.State) {
	r.record("resume")
	if r.onResume != nil {
		r.onResume(s)
	}
}

func (r *recorder) OnPause(app.State) {
	r.record("pause")
}

func (r *recorder) Layout(_ app.C, _ app.State) app.D {
	r.record("layout")
	return app.D{}
}

func newGtx() app.C {
	return app.C{Ops: new(op.Ops)}
}

// callbacks drops layout events from a trace.
func callbacks(trace []string) []string {
	var out []string
	for _, e := range trace {
		if strings.HasSuffix(e, ".layout") {
			continue
		}
		out = append(out, e)
	}
	return out
}
