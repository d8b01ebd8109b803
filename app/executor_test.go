package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ltp456/uwallet/app"
)

var _ = Describe("Executor", func() {
	It("runs tasks off the calling goroutine", func() {
		exec := app.NewExecutor(context.Background(), 0)
		defer exec.Shutdown()

		results := make(chan int, 3)
		for i := 0; i < 3; i++ {
			i := i
			Expect(exec.Go("square", func(context.Context) error {
				results <- i * i
				return nil
			})).To(BeTrue())
		}

		var sum int
		for i := 0; i < 3; i++ {
			var r int
			Eventually(results).Should(Receive(&r))
			sum += r
		}
		Expect(sum).To(Equal(0 + 1 + 4))
	})

	It("keeps running other tasks when one fails", func() {
		exec := app.NewExecutor(context.Background(), 0)
		defer exec.Shutdown()

		Expect(exec.Go("fail", func(context.Context) error {
			return errors.New("boom")
		})).To(BeTrue())

		ran := make(chan struct{})
		Expect(exec.Go("ok", func(context.Context) error {
			close(ran)
			return nil
		})).To(BeTrue())
		Eventually(ran).Should(BeClosed())
	})

	It("cancels running tasks on shutdown and refuses new ones", func() {
		exec := app.NewExecutor(context.Background(), 0)

		var canceled int32
		started := make(chan struct{})
		Expect(exec.Go("wait", func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			atomic.StoreInt32(&canceled, 1)
			return ctx.Err()
		})).To(BeTrue())
		Eventually(started).Should(BeClosed())

		exec.Shutdown()
		Expect(atomic.LoadInt32(&canceled)).To(Equal(int32(1)))
		Expect(exec.Go("late", func(context.Context) error { return nil })).To(BeFalse())
	})

	It("rejects tasks beyond the limit instead of blocking", func() {
		exec := app.NewExecutor(context.Background(), 1)
		defer exec.Shutdown()

		release := make(chan struct{})
		Expect(exec.Go("hold", func(context.Context) error {
			<-release
			return nil
		})).To(BeTrue())
		Expect(exec.Go("extra", func(context.Context) error { return nil })).To(BeFalse())
		close(release)

		Eventually(func() bool {
			return exec.Go("after", func(context.Context) error { return nil })
		}, time.Second).Should(BeTrue())
	})
})
