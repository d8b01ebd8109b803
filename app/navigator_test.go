package app_test

import (
	"fmt"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ltp456/uwallet/app"
)

var _ = Describe("Navigator", func() {
	It("delivers requests in order without blocking", func() {
		nav := app.NewNavigator(nil)
		for i := 0; i < 1000; i++ {
			Expect(nav.Send(app.ActivityID(fmt.Sprint(i)))).To(Succeed())
		}
		for i := 0; i < 1000; i++ {
			id, ok := nav.TryRecv()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(app.ActivityID(fmt.Sprint(i))))
		}
		_, ok := nav.TryRecv()
		Expect(ok).To(BeFalse())
	})

	It("fails sends after Close but still drains", func() {
		nav := app.NewNavigator(nil)
		Expect(nav.Send("a")).To(Succeed())
		nav.Close()
		Expect(nav.Send("b")).To(MatchError(app.ErrChannelSendFailed))

		id, ok := nav.TryRecv()
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(app.ActivityID("a")))
		Expect(nav.Pending()).To(BeZero())
	})

	It("requests a redraw for every send", func() {
		var redraws int32
		nav := app.NewNavigator(func() { atomic.AddInt32(&redraws, 1) })
		Expect(nav.Send("a")).To(Succeed())
		Expect(nav.Send("b")).To(Succeed())
		Expect(atomic.LoadInt32(&redraws)).To(Equal(int32(2)))
	})

	It("keeps the host on a registered activity under concurrent senders", func() {
		const (
			senders = 16
			perSend = 200
		)
		ids := []app.ActivityID{"a", "b", "c", "d"}

		var trace []string
		nav := app.NewNavigator(nil)
		host := app.NewActivityHost(nav, newMapState())
		Expect(host.Boot(newRecorder("a", &trace))).To(Succeed())
		for _, id := range ids[1:] {
			Expect(host.Register(newRecorder(string(id), &trace))).To(Succeed())
		}

		var wg sync.WaitGroup
		for s := 0; s < senders; s++ {
			wg.Add(1)
			go func(s int) {
				defer GinkgoRecover()
				defer wg.Done()
				for i := 0; i < perSend; i++ {
					target := ids[(s+i)%len(ids)]
					if i%50 == 0 {
						target = "unknown"
					}
					Expect(nav.Send(target)).To(Succeed())
				}
			}(s)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		frames := 0
		drain := func() {
			host.Update(newGtx())
			frames++
			current, _ := host.Lifecycle().Current()
			Expect(ids).To(ContainElement(current))
		}
	loop:
		for {
			select {
			case <-done:
				break loop
			default:
				drain()
			}
		}
		for nav.Pending() > 0 {
			drain()
		}
		drain()

		Expect(frames).To(BeNumerically(">=", senders*perSend/2))
		for _, id := range ids {
			l, ok := host.Lifecycle().Lifecycle(id)
			Expect(ok).To(BeTrue())
			Expect(l.OnCreate && l.OnResume).To(BeFalse())
			Expect(l.OnPause).To(BeFalse())
			Expect(l.OnDestroy).To(BeFalse())
		}
	})
})
