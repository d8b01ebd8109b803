package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	giouiApp "gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	libutils "github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/ui/activity"
	"github.com/ltp456/uwallet/ui/load"
)

const (
	appName = "UWallet"

	appWidth     = unit.Dp(900)
	appHeight    = unit.Dp(620)
	appMinWidth  = unit.Dp(640)
	appMinHeight = unit.Dp(480)
)

// Window represents the app window (and UI in general). There should only be one.
// The activity host decides what to display on every frame.
type Window struct {
	*giouiApp.Window
	host *app.ActivityHost
	load *load.Load
	ops  op.Ops

	ctx       context.Context
	ctxCancel context.CancelFunc

	// shutdownRequest is sent to from any goroutine to start the shutdown.
	shutdownRequest chan struct{}

	// Quit channel used to trigger background process to begin implementing the
	// shutdown protocol.
	Quit chan struct{}
	// IsShutdown channel is used to report that background processes have
	// completed shutting down, therefore the UI processes can finally stop.
	IsShutdown chan struct{}
}

type (
	C = layout.Context
	D = layout.Dimensions
)

// CreateWindow creates and initializes a new window with the welcome
// activity as the first activity displayed. l must carry the app state and
// wallet; the window adds the theme, navigator and executor.
// Should never be called more than once as it calls
// app.NewWindow() which does not support being called more
// than once.
func CreateWindow(l *load.Load) (*Window, error) {
	appTitle := giouiApp.Title(appName)
	// Display network on the app title if its not polkadot.
	if l.Net.Network != libutils.Polkadot {
		appTitle = giouiApp.Title(fmt.Sprintf("%s (%s)", appName, l.Net.Network.Display()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	giouiWindow := giouiApp.NewWindow(
		giouiApp.Size(appWidth, appHeight),
		giouiApp.MinSize(appMinWidth, appMinHeight),
		appTitle,
	)
	win := &Window{
		Window:          giouiWindow,
		load:            l,
		ctx:             ctx,
		ctxCancel:       cancel,
		shutdownRequest: make(chan struct{}, 1),
		Quit:            make(chan struct{}, 1),
		IsShutdown:      make(chan struct{}, 1),
	}

	if l.Theme == nil {
		l.Theme = load.NewTheme()
	}
	if l.Printer == nil {
		l.Printer = load.NewPrinter()
	}
	l.Navigator = app.NewNavigator(giouiWindow.Invalidate)
	l.Executor = app.NewExecutor(ctx, app.DefaultMaxTasks)
	l.Shutdown = win.requestShutdown

	host, err := newActivityHost(l)
	if err != nil {
		cancel()
		return nil, err
	}
	win.host = host
	return win, nil
}

// newActivityHost registers every activity and the shutdown display.
func newActivityHost(l *load.Load) (*app.ActivityHost, error) {
	host := app.NewActivityHost(l.Navigator, l.State)

	boot, activities := activity.New(l)
	if err := host.Boot(boot); err != nil {
		return nil, err
	}
	activities = append(activities, app.NewWidgetDisplayActivity(app.WidgetDisplayActivityID, func(gtx C) D {
		return layout.Center.Layout(gtx, material.H5(l.Theme, "Shutting down...").Layout)
	}))
	for _, a := range activities {
		if err := host.Register(a); err != nil {
			return nil, err
		}
	}
	return host, nil
}

func (win *Window) requestShutdown() {
	select {
	case win.shutdownRequest <- struct{}{}:
	default:
	}
}

// HandleEvents runs main event handling and activity rendering loop.
func (win *Window) HandleEvents() {
	done := make(chan os.Signal, 1)
	if runtime.GOOS == "windows" {
		// For controlled shutdown to work on windows, the channel has to be
		// listening to all signals.
		// https://github.com/golang/go/commit/8cfa01943a7f43493543efba81996221bb0f27f8
		signal.Notify(done)
	} else {
		// Signals are primarily used on Unix-like systems.
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	}

	var isShuttingDown bool

	displayShutdownPage := func() {
		if isShuttingDown {
			return
		}
		isShuttingDown = true

		log.Info("...Initiating the app shutdown protocols...")
		// Show the shutdown display and stop any later navigation while
		// backend processes are terminating.
		win.load.Navigate(app.WidgetDisplayActivityID)
		win.load.Navigator.Close()
		win.ctxCancel()
		// Trigger the backend processes shutdown.
		win.Quit <- struct{}{}
	}

	for {
		// Select either the os interrupt or the window event, whichever becomes
		// ready first.
		select {
		case <-done:
			displayShutdownPage()
		case <-win.shutdownRequest:
			displayShutdownPage()
		case <-win.IsShutdown:
			// backend processes shutdown is complete, exit UI process too.
			return
		case e := <-win.Events():
			switch evt := e.(type) {

			case system.DestroyEvent:
				displayShutdownPage()

			case system.FrameEvent:
				evt.Frame(win.handleFrameEvent(evt))

			default:
				log.Tracef("Unhandled window event %v\n", e)
			}
		}
	}
}

// handleFrameEvent is called when a FrameEvent is received by the active
// window. The activity host draws the current activity and applies pending
// lifecycle callbacks and navigation. The returned operations list is
// displayed on screen.
func (win *Window) handleFrameEvent(evt system.FrameEvent) *op.Ops {
	win.ops.Reset()
	gtx := layout.NewContext(&win.ops, evt)
	paint.Fill(gtx.Ops, win.load.Theme.Palette.Bg)
	win.host.Update(gtx)
	return gtx.Ops
}
