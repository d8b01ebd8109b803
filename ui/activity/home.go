package activity

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"gioui.org/io/clipboard"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	qrcode "github.com/yeqown/go-qrcode"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/ui/load"
)

// HomeActivity shows the account address and its balances.
type HomeActivity struct {
	*app.GenericActivity
	load    *load.Load
	results *resultQueue
	status  *StatusBar
	menu    *leftMenu

	address string
	account *libwallet.AccountInfo
	qrImage *widget.Image

	copyBtn    widget.Clickable
	refreshBtn widget.Clickable
}

func NewHomeActivity(l *load.Load) *HomeActivity {
	return &HomeActivity{
		GenericActivity: app.NewGenericActivity(HomeID),
		load:            l,
		results:         newResultQueue(l),
		status:          NewStatusBar(l),
		menu:            newLeftMenu(l),
	}
}

const qrCodeSize = unit.Dp(160)

func (ha *HomeActivity) OnCreate(app.State) {
	ha.setAddress(ha.load.WL.Address())
}

// OnResume refreshes the balances every time the activity is shown.
func (ha *HomeActivity) OnResume(app.State) {
	ha.setAddress(ha.load.WL.Address())
	ha.Refresh()
}

// setAddress shows address and its QR code. The address changes when the
// wallet is locked and another phrase is imported.
func (ha *HomeActivity) setAddress(address string) {
	if address == ha.address && ha.qrImage != nil {
		return
	}
	ha.address = address
	ha.qrImage = nil
	if address == "" {
		return
	}

	img, err := addressQRCode(address)
	if err != nil {
		log.Errorf("Error generating address qrCode: %v", err)
		return
	}
	ha.qrImage = &widget.Image{Src: paint.NewImageOp(img), Fit: widget.Contain}
}

func addressQRCode(address string) (image.Image, error) {
	qrCode, err := qrcode.New(address)
	if err != nil {
		return nil, err
	}

	var buff bytes.Buffer
	if err := qrCode.SaveTo(&buff); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(&buff)
	return img, err
}

func (ha *HomeActivity) OnPause(app.State) {
	ha.results.invalidate()
	ha.status.Stop()
}

func (ha *HomeActivity) Address() string {
	return ha.address
}

func (ha *HomeActivity) Account() *libwallet.AccountInfo {
	return ha.account
}

// Refresh fetches the account from the node in the background.
func (ha *HomeActivity) Refresh() {
	if ha.address == "" {
		ha.status.Fail(load.ErrWalletLocked)
		return
	}

	address := ha.address
	ha.status.Loading("Fetching balance")
	started := ha.results.spawn("fetch account", func(ctx context.Context) func() {
		account, err := ha.load.Client.SystemAccount(ctx, address)
		return func() {
			if err != nil {
				log.Errorf("Unable to fetch account %s: %v", address, err)
				ha.status.Fail(err)
				return
			}
			ha.account = account
			ha.status.Success("Balance updated")
		}
	})
	if !started {
		ha.status.Fail(errBusy)
	}
}

func (ha *HomeActivity) Layout(gtx C, _ app.State) D {
	ha.results.drain()
	if ha.refreshBtn.Clicked() {
		ha.Refresh()
	}
	if ha.copyBtn.Clicked() {
		clipboard.WriteOp{Text: ha.address}.Add(gtx.Ops)
		ha.status.Success("Address copied")
	}

	th := ha.load.Theme
	return withMenu(gtx, ha.menu, HomeID, func(gtx C) D {
		children := []layout.Widget{
			material.H5(th, ha.load.Net.Network.Display()+" account").Layout,
			func(gtx C) D {
				lbl := material.Body1(th, ha.address)
				lbl.Font.Variant = "Mono"
				return lbl.Layout(gtx)
			},
			material.Button(th, &ha.copyBtn, "Copy address").Layout,
		}
		if ha.qrImage != nil {
			children = append(children, func(gtx C) D {
				size := gtx.Dp(qrCodeSize)
				gtx.Constraints.Max.X, gtx.Constraints.Max.Y = size, size
				return ha.qrImage.Layout(gtx)
			})
		}
		if ha.account != nil {
			data := ha.account.Data
			children = append(children,
				material.H4(th, ha.load.FormatBalance(data.Free)).Layout,
				material.Body2(th, "Transferable: "+ha.load.FormatBalance(ha.account.Transferable())).Layout,
				material.Body2(th, "Reserved: "+ha.load.FormatBalance(data.Reserved)).Layout,
				material.Body2(th, fmt.Sprintf("Nonce: %d", ha.account.Nonce)).Layout,
			)
		}
		children = append(children,
			material.Button(th, &ha.refreshBtn, "Refresh").Layout,
			ha.status.Layout,
		)
		return vertical(gtx, children...)
	})
}
