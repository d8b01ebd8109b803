package activity

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gioui.org/io/clipboard"
	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/ui/load"
)

type SettingActivity struct {
	*app.GenericActivity
	load    *load.Load
	results *resultQueue
	status  *StatusBar
	menu    *leftMenu

	// clip is written to the clipboard on the next frame.
	clip string

	endpointEditor widget.Editor
	backupBtn      widget.Clickable
	saveBtn        widget.Clickable
	logBtn         widget.Clickable
	lockBtn        widget.Clickable
	exitBtn        widget.Clickable
}

func NewSettingActivity(l *load.Load) *SettingActivity {
	sa := &SettingActivity{
		GenericActivity: app.NewGenericActivity(SettingID),
		load:            l,
		results:         newResultQueue(l),
		status:          NewStatusBar(l),
		menu:            newLeftMenu(l),
	}
	sa.endpointEditor.SingleLine = true
	sa.endpointEditor.Submit = true
	return sa
}

func (sa *SettingActivity) OnResume(app.State) {
	sa.endpointEditor.SetText(sa.load.Config.Values().RPCEndpoint)
	sa.status.Normal()
}

func (sa *SettingActivity) OnPause(app.State) {
	sa.results.invalidate()
	sa.clip = ""
	sa.status.Stop()
}

// Backup decrypts the recovery phrase and copies it to the clipboard.
func (sa *SettingActivity) Backup() {
	sa.status.Loading("Decrypting recovery phrase")
	started := sa.results.spawn("backup phrase", func(context.Context) func() {
		phrase, err := sa.load.WL.Phrase()
		return func() {
			if err != nil {
				sa.status.Fail(err)
				return
			}
			sa.clip = phrase
			sa.load.Navigator.Invalidate()
			sa.status.Success("Recovery phrase copied to the clipboard")
		}
	})
	if !started {
		sa.status.Fail(errBusy)
	}
}

// SaveEndpoint stores the rpc endpoint used from the next start. An empty
// endpoint restores the network default.
func (sa *SettingActivity) SaveEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
		default:
			return fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
		}
	}
	return sa.load.Config.Update(func(v *load.AppConfigValues) {
		v.RPCEndpoint = endpoint
	})
}

// Lock forgets the session key and asks for the password again.
func (sa *SettingActivity) Lock() {
	sa.load.WL.Lock()
	sa.load.Navigate(PasswordID)
}

func (sa *SettingActivity) handle() {
	if sa.backupBtn.Clicked() {
		sa.Backup()
	}
	if sa.saveBtn.Clicked() || submitted(&sa.endpointEditor) {
		if err := sa.SaveEndpoint(sa.endpointEditor.Text()); err != nil {
			sa.status.Fail(err)
		} else {
			sa.status.Success("Endpoint saved, restart to use it")
		}
	}
	if sa.logBtn.Clicked() {
		sa.load.Navigate(LogID)
	}
	if sa.lockBtn.Clicked() {
		sa.Lock()
	}
	if sa.exitBtn.Clicked() && sa.load.Shutdown != nil {
		sa.load.Shutdown()
	}
}

func (sa *SettingActivity) Layout(gtx C, _ app.State) D {
	sa.results.drain()
	sa.handle()
	if sa.clip != "" {
		clipboard.WriteOp{Text: sa.clip}.Add(gtx.Ops)
		sa.clip = ""
	}

	th := sa.load.Theme
	info := sa.load.AppInfo
	return withMenu(gtx, sa.menu, SettingID, func(gtx C) D {
		return vertical(gtx,
			material.H5(th, "Setting").Layout,
			material.Body1(th, "Network: "+sa.load.Net.Network.Display()).Layout,
			material.Body1(th, "Connected to: "+sa.load.Client.Endpoint()).Layout,
			material.Editor(th, &sa.endpointEditor, "Custom rpc endpoint (default when empty)").Layout,
			material.Button(th, &sa.saveBtn, "Save endpoint").Layout,
			material.Button(th, &sa.backupBtn, "Backup recovery phrase").Layout,
			func(gtx C) D {
				return layout.Flex{}.Layout(gtx,
					layout.Rigid(material.Button(th, &sa.logBtn, "View log").Layout),
					layout.Rigid(layout.Spacer{Width: itemSpacing}.Layout),
					layout.Rigid(material.Button(th, &sa.lockBtn, "Lock").Layout),
					layout.Rigid(layout.Spacer{Width: itemSpacing}.Layout),
					layout.Rigid(material.Button(th, &sa.exitBtn, "Exit").Layout),
				)
			},
			sa.status.Layout,
			material.Caption(th, fmt.Sprintf("Version %s built %s, up %s", info.Version(),
				utils.FormatUTCTime(info.BuildDate().Unix()), info.Uptime().Truncate(time.Second))).Layout,
		)
	})
}
