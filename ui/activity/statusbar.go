package activity

import (
	"context"
	"image/color"
	"time"

	"gioui.org/unit"
	"gioui.org/widget/material"
	"go.uber.org/atomic"

	"github.com/ltp456/uwallet/ui/load"
)

const blinkInterval = 600 * time.Millisecond

type StatusKind int

const (
	StatusNormal StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusFail
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFail:
		return "fail"
	default:
		return "normal"
	}
}

var (
	colorSuccess = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	colorFail    = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	colorLoading = color.NRGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}
)

// StatusBar shows the outcome of the last operation of an activity. While
// loading, the message blinks driven by a background ticker.
type StatusBar struct {
	load *load.Load

	kind    StatusKind
	message string

	visible    atomic.Bool
	stopTicker context.CancelFunc
}

func NewStatusBar(l *load.Load) *StatusBar {
	sb := &StatusBar{load: l}
	sb.visible.Store(true)
	return sb
}

func (sb *StatusBar) Status() (StatusKind, string) {
	return sb.kind, sb.message
}

func (sb *StatusBar) Loading(message string) {
	sb.set(StatusLoading, message)
	sb.startTicker()
}

func (sb *StatusBar) Success(message string) {
	sb.set(StatusSuccess, message)
}

func (sb *StatusBar) Fail(err error) {
	sb.set(StatusFail, err.Error())
}

func (sb *StatusBar) Normal() {
	sb.set(StatusNormal, "")
}

func (sb *StatusBar) set(kind StatusKind, message string) {
	sb.kind = kind
	sb.message = message
	if kind != StatusLoading {
		sb.Stop()
	}
}

// Stop ends the blinking and keeps the message visible.
func (sb *StatusBar) Stop() {
	if sb.stopTicker != nil {
		sb.stopTicker()
		sb.stopTicker = nil
	}
	sb.visible.Store(true)
}

func (sb *StatusBar) startTicker() {
	if sb.stopTicker != nil {
		return
	}
	ctx, cancel := context.WithCancel(sb.load.Executor.Context())
	sb.stopTicker = cancel
	sb.load.Executor.Go("status bar ticker", func(_ context.Context) error {
		ticker := time.NewTicker(blinkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				sb.visible.Toggle()
				sb.load.Navigator.Invalidate()
			}
		}
	})
}

func (sb *StatusBar) Layout(gtx C) D {
	if sb.kind == StatusNormal || sb.message == "" {
		return D{}
	}

	lbl := material.Body2(sb.load.Theme, sb.message)
	switch sb.kind {
	case StatusLoading:
		lbl.Color = colorLoading
		if !sb.visible.Load() {
			lbl.Color.A = 0
		}
	case StatusSuccess:
		lbl.Color = colorSuccess
	case StatusFail:
		lbl.Color = colorFail
	}
	lbl.TextSize = unit.Sp(14)
	return lbl.Layout(gtx)
}
