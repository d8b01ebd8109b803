package activity

import (
	"context"
	"time"

	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/ui/load"
)

// welcomeDelay is how long the welcome screen shows before asking for the
// password.
const welcomeDelay = 2500 * time.Millisecond

type WelcomeActivity struct {
	*app.GenericActivity
	load  *load.Load
	delay time.Duration
}

func NewWelcomeActivity(l *load.Load) *WelcomeActivity {
	return &WelcomeActivity{
		GenericActivity: app.NewGenericActivity(WelcomeID),
		load:            l,
		delay:           welcomeDelay,
	}
}

// OnCreate starts the timer that moves on to the password activity.
func (wa *WelcomeActivity) OnCreate(app.State) {
	delay := wa.delay
	wa.load.Executor.Go("welcome timer", func(ctx context.Context) error {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		wa.load.Navigate(PasswordID)
		return nil
	})
}

func (wa *WelcomeActivity) Layout(gtx C, _ app.State) D {
	return layout.Center.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				title := material.H3(wa.load.Theme, "UWallet")
				title.Alignment = text.Middle
				return title.Layout(gtx)
			}),
			layout.Rigid(func(gtx C) D {
				return material.Body1(wa.load.Theme, wa.load.Net.Network.Display()).Layout(gtx)
			}),
		)
	})
}
