package activity

import (
	"context"
	"time"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/libwallet/walletdata"
	"github.com/ltp456/uwallet/ui/load"
	uiutils "github.com/ltp456/uwallet/ui/utils"
)

// historyLimit is the number of past transfers shown.
const historyLimit = 20

// TransferActivity sends balances transfers and lists the ones sent before.
type TransferActivity struct {
	*app.GenericActivity
	load    *load.Load
	results *resultQueue
	status  *StatusBar
	menu    *leftMenu

	submitting bool
	history    []walletdata.TransferRecord

	destEditor   widget.Editor
	amountEditor widget.Editor
	sendBtn      widget.Clickable
	historyList  widget.List
}

func NewTransferActivity(l *load.Load) *TransferActivity {
	ta := &TransferActivity{
		GenericActivity: app.NewGenericActivity(TransferID),
		load:            l,
		results:         newResultQueue(l),
		status:          NewStatusBar(l),
		menu:            newLeftMenu(l),
	}
	ta.destEditor.SingleLine = true
	ta.amountEditor.SingleLine = true
	ta.amountEditor.Submit = true
	ta.historyList.Axis = layout.Vertical
	return ta
}

func (ta *TransferActivity) OnResume(app.State) {
	ta.loadHistory()
}

func (ta *TransferActivity) OnPause(app.State) {
	ta.results.invalidate()
	ta.submitting = false
	ta.status.Stop()
}

// History returns the transfers shown, newest first.
func (ta *TransferActivity) History() []walletdata.TransferRecord {
	return ta.history
}

func (ta *TransferActivity) loadHistory() {
	from := ta.load.WL.Address()
	if ta.load.DB == nil || from == "" {
		return
	}
	db := ta.load.DB
	ta.results.spawn("load transfer history", func(context.Context) func() {
		records, err := db.Transfers(from, 0, historyLimit)
		return func() {
			if err != nil {
				log.Errorf("Unable to load transfer history: %v", err)
				return
			}
			ta.history = records
		}
	})
}

// Send validates the input and submits the transfer in the background.
func (ta *TransferActivity) Send(dest, amountText string) {
	if ta.submitting {
		return
	}
	key, err := ta.load.WL.KeyPair()
	if err != nil {
		ta.status.Fail(err)
		return
	}
	if _, _, err := libwallet.DecodeAddress(dest); err != nil {
		ta.status.Fail(err)
		return
	}
	amount, err := libwallet.ParseAmount(amountText, ta.load.Net.Decimals)
	if err != nil {
		ta.status.Fail(err)
		return
	}
	if amount.IsZero() {
		ta.status.Fail(utils.NewError(utils.ErrInvalidAmount, nil))
		return
	}

	from := ta.load.WL.Address()
	ta.submitting = true
	ta.status.Loading("Submitting transfer")
	started := ta.results.spawn("submit transfer", func(ctx context.Context) func() {
		hash, err := ta.load.Client.Transfer(ctx, key, dest, amount)
		if err != nil {
			return func() {
				ta.submitting = false
				log.Errorf("Transfer to %s failed: %v", dest, err)
				ta.status.Fail(err)
			}
		}

		record := walletdata.TransferRecord{
			Hash:      hash,
			From:      from,
			To:        dest,
			Amount:    libwallet.FormatAmount(amount, ta.load.Net.Decimals),
			Network:   string(ta.load.Net.Network),
			Timestamp: time.Now().Unix(),
		}
		if ta.load.DB != nil {
			if err := ta.load.DB.SaveTransfer(&record); err != nil {
				log.Errorf("Unable to save transfer %s: %v", hash, err)
			}
		}
		ta.load.Notify("Transfer submitted: " + record.Amount + " " + ta.load.Net.Symbol)

		return func() {
			ta.submitting = false
			ta.history = append([]walletdata.TransferRecord{record}, ta.history...)
			if len(ta.history) > historyLimit {
				ta.history = ta.history[:historyLimit]
			}
			ta.destEditor.SetText("")
			ta.amountEditor.SetText("")
			ta.status.Success("Transfer submitted: " + hash)
		}
	})
	if !started {
		ta.submitting = false
		ta.status.Fail(errBusy)
	}
}

func (ta *TransferActivity) Layout(gtx C, _ app.State) D {
	ta.results.drain()
	if ta.sendBtn.Clicked() || submitted(&ta.amountEditor) {
		ta.Send(ta.destEditor.Text(), ta.amountEditor.Text())
	}

	th := ta.load.Theme
	return withMenu(gtx, ta.menu, TransferID, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return vertical(gtx,
					material.H5(th, "Transfer "+ta.load.Net.Symbol).Layout,
					material.Editor(th, &ta.destEditor, "Destination address").Layout,
					material.Editor(th, &ta.amountEditor, "Amount").Layout,
					func(gtx C) D {
						if ta.submitting {
							gtx = gtx.Disabled()
						}
						return material.Button(th, &ta.sendBtn, "Send").Layout(gtx)
					},
					ta.status.Layout,
					material.H6(th, "History").Layout,
				)
			}),
			layout.Flexed(1, func(gtx C) D {
				return material.List(th, &ta.historyList).Layout(gtx, len(ta.history), func(gtx C, i int) D {
					record := ta.history[i]
					return layout.Inset{Bottom: itemSpacing}.Layout(gtx, func(gtx C) D {
						return vertical(gtx,
							material.Body1(th, record.Amount+" "+ta.load.Net.Symbol+" to "+record.To).Layout,
							material.Caption(th, uiutils.FormatDateOrTime(record.Timestamp)+"  "+record.Hash).Layout,
						)
					})
				})
			}),
		)
	})
}
