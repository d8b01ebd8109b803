// Package activity contains the wallet screens. Each screen is an
// app.Activity registered with the window's ActivityHost.
package activity

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/ui/load"
)

const (
	WelcomeID  app.ActivityID = "welcome"
	PasswordID app.ActivityID = "password"
	PhraseID   app.ActivityID = "phrase"
	HomeID     app.ActivityID = "home"
	TransferID app.ActivityID = "transfer"
	SettingID  app.ActivityID = "setting"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	pagePadding = unit.Dp(24)
	itemSpacing = unit.Dp(12)
)

// New returns the boot activity and the activities to register after it.
func New(l *load.Load) (app.Activity, []app.Activity) {
	return NewWelcomeActivity(l), []app.Activity{
		NewPasswordActivity(l),
		NewPhraseActivity(l),
		NewHomeActivity(l),
		NewTransferActivity(l),
		NewSettingActivity(l),
		NewLogActivity(l),
	}
}

// vertical lays out children top to bottom with itemSpacing between them.
func vertical(gtx C, children ...layout.Widget) D {
	flexChildren := make([]layout.FlexChild, 0, len(children))
	for _, child := range children {
		child := child
		flexChildren = append(flexChildren, layout.Rigid(func(gtx C) D {
			return layout.Inset{Bottom: itemSpacing}.Layout(gtx, child)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, flexChildren...)
}

// submitted reports whether the editor received a submit event since the
// last call.
func submitted(ed *widget.Editor) bool {
	for _, e := range ed.Events() {
		if _, ok := e.(widget.SubmitEvent); ok {
			return true
		}
	}
	return false
}
