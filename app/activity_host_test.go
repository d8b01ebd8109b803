package app_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ltp456/uwallet/app"
)

var _ = Describe("ActivityHost", func() {
	var (
		trace       []string
		invalidated int
		nav         *app.Navigator
		host        *app.ActivityHost
		state       *mapState
		a, b, c     *recorder
	)

	tick := func() []string {
		start := len(trace)
		host.Update(newGtx())
		return callbacks(trace[start:])
	}

	BeforeEach(func() {
		trace = nil
		invalidated = 0
		nav = app.NewNavigator(func() { invalidated++ })
		state = newMapState()
		host = app.NewActivityHost(nav, state)
		a = newRecorder("A", &trace)
		b = newRecorder("B", &trace)
		c = newRecorder("C", &trace)
		Expect(host.Boot(a)).To(Succeed())
		Expect(host.Register(b)).To(Succeed())
		Expect(host.Register(c)).To(Succeed())
	})

	It("rejects duplicate registrations and a second boot", func() {
		Expect(host.Register(newRecorder("B", &trace))).To(MatchError(app.ErrAlreadyRegistered))
		Expect(host.Boot(newRecorder("D", &trace))).To(MatchError(app.ErrAlreadyBooted))
	})

	It("draws before firing the lifecycle callbacks", func() {
		host.Update(newGtx())
		Expect(trace).To(Equal([]string{"A.layout", "A.create"}))
	})

	It("fires create only once for the boot activity", func() {
		Expect(tick()).To(Equal([]string{"A.create"}))
		Expect(tick()).To(BeEmpty())
		Expect(tick()).To(BeEmpty())
	})

	It("produces the documented trace for a round trip", func() {
		Expect(tick()).To(Equal([]string{"A.create"}))

		Expect(nav.Send("B")).To(Succeed())
		Expect(tick()).To(BeEmpty(), "request applied at the end of the frame")
		Expect(tick()).To(Equal([]string{"B.create", "B.resume", "A.pause"}))

		Expect(nav.Send("C")).To(Succeed())
		tick()
		Expect(tick()).To(Equal([]string{"C.create", "C.resume", "B.pause"}))

		Expect(nav.Send("A")).To(Succeed())
		tick()
		Expect(tick()).To(Equal([]string{"A.resume", "C.pause"}))

		Expect(tick()).To(BeEmpty())
		current, previous := host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("A")))
		Expect(*previous).To(Equal(app.ActivityID("C")))
	})

	It("fires create and resume for an activity navigated to before its first frame", func() {
		Expect(nav.Send("B")).To(Succeed())
		Expect(tick()).To(Equal([]string{"A.create"}))
		Expect(tick()).To(Equal([]string{"B.create", "B.resume", "A.pause"}))
	})

	It("runs the callbacks of a navigation requested from a callback in the next frame", func() {
		b.onResume = func(app.State) {
			Expect(nav.Send("C")).To(Succeed())
		}
		Expect(nav.Send("B")).To(Succeed())
		tick()

		Expect(tick()).To(Equal([]string{"B.create", "B.resume", "A.pause"}))
		current, _ := host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("C")), "applied at the end of the frame")
		Expect(tick()).To(Equal([]string{"C.create", "C.resume", "B.pause"}))
	})

	It("applies one pending request per frame", func() {
		Expect(nav.Send("B")).To(Succeed())
		Expect(nav.Send("C")).To(Succeed())
		Expect(nav.Pending()).To(Equal(2))

		tick()
		current, _ := host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("B")))
		Expect(nav.Pending()).To(Equal(1))

		tick()
		current, _ = host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("C")))
		Expect(nav.Pending()).To(BeZero())
	})

	It("keeps redrawing past a failed request until the queue is drained", func() {
		tick()
		Expect(nav.Send("nowhere")).To(Succeed())
		Expect(nav.Send("B")).To(Succeed())

		// Invalidations requested before a frame collapse into that frame,
		// so only redraws requested by the host itself count from here.
		framePending := true
		frames := 0
		for framePending && frames < 10 {
			framePending = false
			before := invalidated
			tick()
			frames++
			framePending = invalidated > before
		}

		current, _ := host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("B")))
		Expect(host.Navigator().Pending()).To(BeZero())
		Expect(trace).To(ContainElement("B.create"))
	})

	It("requests a redraw after a transition", func() {
		Expect(nav.Send("B")).To(Succeed())
		Expect(invalidated).To(Equal(1))
		tick()
		Expect(invalidated).To(Equal(2))
		tick()
		Expect(invalidated).To(Equal(2))
	})

	It("keeps the active activity when a request names an unknown id", func() {
		tick()
		Expect(nav.Send("nowhere")).To(Succeed())
		tick()

		current, previous := host.Lifecycle().Current()
		Expect(current).To(Equal(app.ActivityID("A")))
		Expect(previous).To(BeNil())
		Expect(tick()).To(BeEmpty())
		Expect(host.CurrentActivity()).To(BeIdenticalTo(a))
	})

	It("ignores a request for the active activity", func() {
		tick()
		Expect(nav.Send("A")).To(Succeed())
		Expect(tick()).To(BeEmpty())
		Expect(tick()).To(BeEmpty())
	})

	It("passes the shared state to the callbacks", func() {
		c.onCreate = func(s app.State) {
			s.Set("seen", "C")
		}
		b.onCreate = func(s app.State) {
			v, ok := s.Get("seen")
			Expect(ok).To(BeFalse(), v)
		}
		Expect(nav.Send("B")).To(Succeed())
		tick()
		tick()
		Expect(nav.Send("C")).To(Succeed())
		tick()
		tick()
		seen, ok := state.Get("seen")
		Expect(ok).To(BeTrue())
		Expect(seen).To(Equal("C"))
	})
})

var _ = Describe("ActivityHost before boot", func() {
	It("renders nothing and does not panic", func() {
		host := app.NewActivityHost(app.NewNavigator(nil), newMapState())
		Expect(host.CurrentActivity()).To(BeNil())
		Expect(func() { host.Update(newGtx()) }).NotTo(Panic())
	})
})
