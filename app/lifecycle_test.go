package app_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ltp456/uwallet/app"
)

var _ = Describe("LifecycleManager", func() {
	var mgr *app.LifecycleManager

	BeforeEach(func() {
		mgr = app.NewLifecycleManager()
	})

	Describe("Boot", func() {
		It("activates the boot id after any number of registrations", func() {
			for _, id := range []app.ActivityID{"one", "two", "three"} {
				Expect(mgr.Register(id)).To(Succeed())
			}
			Expect(mgr.Boot("zero")).To(Succeed())

			current, previous := mgr.Current()
			Expect(current).To(Equal(app.ActivityID("zero")))
			Expect(previous).To(BeNil())
		})

		It("seeds create without resume", func() {
			Expect(mgr.Boot("zero")).To(Succeed())
			l, ok := mgr.Lifecycle("zero")
			Expect(ok).To(BeTrue())
			Expect(l).To(Equal(app.Lifecycle{OnCreate: true}))
		})

		It("fails when called twice", func() {
			Expect(mgr.Boot("zero")).To(Succeed())
			Expect(mgr.Boot("one")).To(MatchError(app.ErrAlreadyBooted))
			Expect(mgr.Boot("zero")).To(MatchError(app.ErrAlreadyBooted))

			current, _ := mgr.Current()
			Expect(current).To(Equal(app.ActivityID("zero")))
		})

		It("fails for an id that was already registered", func() {
			Expect(mgr.Register("zero")).To(Succeed())
			Expect(mgr.Boot("zero")).To(MatchError(app.ErrAlreadyBooted))
			Expect(mgr.IsBooted()).To(BeFalse())
		})
	})

	Describe("Register", func() {
		It("rejects duplicates, including the boot id", func() {
			Expect(mgr.Boot("zero")).To(Succeed())
			Expect(mgr.Register("one")).To(Succeed())
			Expect(mgr.Register("one")).To(MatchError(app.ErrAlreadyRegistered))
			Expect(mgr.Register("zero")).To(MatchError(app.ErrAlreadyRegistered))
			Expect(mgr.Registered()).To(Equal([]app.ActivityID{"zero", "one"}))
		})

		It("starts new activities with only the create flag", func() {
			Expect(mgr.Register("one")).To(Succeed())
			l, _ := mgr.Lifecycle("one")
			Expect(l).To(Equal(app.Lifecycle{OnCreate: true}))
		})
	})

	Describe("Navigate", func() {
		BeforeEach(func() {
			Expect(mgr.Boot("a")).To(Succeed())
			Expect(mgr.Register("b")).To(Succeed())
			Expect(mgr.Register("c")).To(Succeed())
		})

		It("is a no-op for the active activity", func() {
			before, _ := mgr.Lifecycle("a")
			Expect(mgr.Navigate("a")).To(Succeed())

			after, _ := mgr.Lifecycle("a")
			Expect(after).To(Equal(before))
			current, previous := mgr.Current()
			Expect(current).To(Equal(app.ActivityID("a")))
			Expect(previous).To(BeNil())
		})

		It("rejects unregistered targets and leaves state unchanged", func() {
			Expect(mgr.Navigate("b")).To(Succeed())
			mgr.ResetLifecycle()
			aBefore, _ := mgr.Lifecycle("a")
			bBefore, _ := mgr.Lifecycle("b")

			err := mgr.Navigate("nowhere")
			Expect(err).To(MatchError(app.ErrNotRegistered))

			current, previous := mgr.Current()
			Expect(current).To(Equal(app.ActivityID("b")))
			Expect(*previous).To(Equal(app.ActivityID("a")))
			aAfter, _ := mgr.Lifecycle("a")
			bAfter, _ := mgr.Lifecycle("b")
			Expect(aAfter).To(Equal(aBefore))
			Expect(bAfter).To(Equal(bBefore))
		})

		It("moves the active activity to previous and flags both", func() {
			Expect(mgr.Navigate("b")).To(Succeed())

			current, previous := mgr.Current()
			Expect(current).To(Equal(app.ActivityID("b")))
			Expect(previous).NotTo(BeNil())
			Expect(*previous).To(Equal(app.ActivityID("a")))

			b, _ := mgr.Lifecycle("b")
			Expect(b.OnResume).To(BeTrue())
			Expect(b.OnCreate).To(BeTrue(), "never drawn, create is kept")
			a, _ := mgr.Lifecycle("a")
			Expect(a).To(Equal(app.Lifecycle{OnPause: true}))
		})

		It("clears the one-shot flags on reset", func() {
			Expect(mgr.Navigate("b")).To(Succeed())
			mgr.ResetLifecycle()

			b, _ := mgr.Lifecycle("b")
			Expect(b.OnResume).To(BeFalse())
			Expect(b.OnCreate).To(BeFalse())
			a, _ := mgr.Lifecycle("a")
			Expect(a.OnPause).To(BeFalse())
		})

		It("never sets create again on a returning activity", func() {
			Expect(mgr.Navigate("b")).To(Succeed())
			mgr.ResetLifecycle()
			Expect(mgr.Navigate("a")).To(Succeed())

			a, _ := mgr.Lifecycle("a")
			Expect(a).To(Equal(app.Lifecycle{OnResume: true}))
			b, _ := mgr.Lifecycle("b")
			Expect(b).To(Equal(app.Lifecycle{OnPause: true}))
		})

		It("never sets the destroy flag", func() {
			for _, id := range []app.ActivityID{"b", "c", "a", "c", "b"} {
				Expect(mgr.Navigate(id)).To(Succeed())
				for _, other := range mgr.Registered() {
					l, _ := mgr.Lifecycle(other)
					Expect(l.OnDestroy).To(BeFalse())
				}
				mgr.ResetLifecycle()
			}
		})
	})

	It("refuses navigation before boot", func() {
		Expect(mgr.Register("a")).To(Succeed())
		Expect(mgr.Navigate("a")).To(MatchError(app.ErrNotBooted))
	})
})
