package activity

import (
	"context"
	"errors"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/ui/load"
)

// Shannon entropy thresholds of the password strength hint.
const (
	weakPasswordEntropy   = 2.5
	strongPasswordEntropy = 3.5
)

type PasswordActivity struct {
	*app.GenericActivity
	load    *load.Load
	results *resultQueue
	status  *StatusBar

	// setMode is true until a password was stored.
	setMode    bool
	submitting bool

	password widget.Editor
	confirm  widget.Editor
	submit   widget.Clickable
}

func NewPasswordActivity(l *load.Load) *PasswordActivity {
	pa := &PasswordActivity{
		GenericActivity: app.NewGenericActivity(PasswordID),
		load:            l,
		results:         newResultQueue(l),
		status:          NewStatusBar(l),
	}
	for _, ed := range []*widget.Editor{&pa.password, &pa.confirm} {
		ed.SingleLine = true
		ed.Submit = true
		ed.Mask = '*'
	}
	return pa
}

// OnCreate chooses between setting a new password and entering the
// existing one.
func (pa *PasswordActivity) OnCreate(app.State) {
	pa.setMode = !pa.load.WL.HasPassword()
}

func (pa *PasswordActivity) OnResume(app.State) {
	pa.setMode = !pa.load.WL.HasPassword()
	pa.password.SetText("")
	pa.confirm.SetText("")
	pa.status.Normal()
}

func (pa *PasswordActivity) OnPause(app.State) {
	pa.results.invalidate()
	pa.submitting = false
	pa.status.Stop()
}

// SetMode reports whether the activity asks for a new password.
func (pa *PasswordActivity) SetMode() bool {
	return pa.setMode
}

// checkPassword sets or verifies password and returns the activity to show
// next.
func (pa *PasswordActivity) checkPassword(setMode bool, password, confirm string) (app.ActivityID, error) {
	var err error
	if setMode {
		err = pa.load.WL.SetPassword(password, confirm)
	} else {
		err = pa.load.WL.Unlock(password)
	}
	if err != nil {
		return "", err
	}
	if pa.load.WL.HasPhrase() {
		return HomeID, nil
	}
	return PhraseID, nil
}

// Submit checks the entered password in the background. Key derivation is
// too slow for the render goroutine.
func (pa *PasswordActivity) Submit(password, confirm string) {
	if pa.submitting {
		return
	}
	pa.submitting = true
	pa.status.Loading("Checking password")

	setMode := pa.setMode
	started := pa.results.spawn("check password", func(context.Context) func() {
		next, err := pa.checkPassword(setMode, password, confirm)
		return func() {
			pa.submitting = false
			if err != nil {
				log.Debugf("Password rejected: %v", err)
				pa.status.Fail(userError(setMode, err))
				return
			}
			pa.status.Normal()
			pa.load.Navigate(next)
		}
	})
	if !started {
		pa.submitting = false
		pa.status.Fail(errBusy)
	}
}

// userError turns a wallet error into the message shown to the user.
func userError(setMode bool, err error) error {
	switch utils.ErrorCode(err) {
	case utils.ErrPassphraseRequired:
		return errors.New("password is required")
	case utils.ErrInvalidPassphrase:
		if setMode {
			return load.ErrPasswordMismatch
		}
		return errors.New("wrong password")
	}
	return err
}

// strengthHint describes the strength of password.
func strengthHint(password string) string {
	if password == "" {
		return ""
	}
	switch entropy := utils.ShannonEntropy(password); {
	case entropy < weakPasswordEntropy:
		return "Weak password"
	case entropy < strongPasswordEntropy:
		return "Medium password"
	default:
		return "Strong password"
	}
}

func (pa *PasswordActivity) handle() {
	if pa.submit.Clicked() || submitted(&pa.password) || submitted(&pa.confirm) {
		pa.Submit(pa.password.Text(), pa.confirm.Text())
	}
}

func (pa *PasswordActivity) Layout(gtx C, _ app.State) D {
	pa.results.drain()
	pa.handle()

	th := pa.load.Theme
	title, action := "Enter password", "Unlock"
	if pa.setMode {
		title, action = "Set a new password", "Set password"
	}

	children := []layout.Widget{
		material.H5(th, title).Layout,
		material.Editor(th, &pa.password, "Password").Layout,
	}
	if pa.setMode {
		children = append(children,
			material.Caption(th, strengthHint(pa.password.Text())).Layout,
			material.Editor(th, &pa.confirm, "Confirm password").Layout,
		)
	}
	children = append(children,
		func(gtx C) D {
			btn := material.Button(th, &pa.submit, action)
			if pa.submitting {
				gtx = gtx.Disabled()
			}
			return btn.Layout(gtx)
		},
		pa.status.Layout,
	)

	return layout.UniformInset(pagePadding).Layout(gtx, func(gtx C) D {
		return vertical(gtx, children...)
	})
}
