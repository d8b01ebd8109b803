package activity

import (
	"context"
	"fmt"
	"strings"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/ui/load"
)

// PhraseActivity creates the account: it generates a new recovery phrase or
// imports an existing one.
type PhraseActivity struct {
	*app.GenericActivity
	load    *load.Load
	results *resultQueue
	status  *StatusBar

	generated  string
	importing  bool
	submitting bool

	importEditor widget.Editor
	generateBtn  widget.Clickable
	toggleBtn    widget.Clickable
	confirmBtn   widget.Clickable
}

func NewPhraseActivity(l *load.Load) *PhraseActivity {
	pa := &PhraseActivity{
		GenericActivity: app.NewGenericActivity(PhraseID),
		load:            l,
		results:         newResultQueue(l),
		status:          NewStatusBar(l),
	}
	pa.importEditor.Submit = true
	return pa
}

func (pa *PhraseActivity) OnCreate(app.State) {
	pa.Generate()
}

func (pa *PhraseActivity) OnPause(app.State) {
	pa.results.invalidate()
	pa.submitting = false
	pa.status.Stop()
}

// Generate replaces the shown phrase with a new random one.
func (pa *PhraseActivity) Generate() {
	phrase, err := libwallet.GeneratePhrase()
	if err != nil {
		log.Errorf("Unable to generate a recovery phrase: %v", err)
		pa.status.Fail(err)
		return
	}
	pa.generated = phrase
}

// Phrase returns the phrase that Confirm would save.
func (pa *PhraseActivity) Phrase() string {
	if pa.importing {
		return libwallet.NormalizePhrase(pa.importEditor.Text())
	}
	return pa.generated
}

// SetImporting switches between the generated phrase and the import editor.
func (pa *PhraseActivity) SetImporting(importing bool) {
	pa.importing = importing
	pa.status.Normal()
}

// Confirm saves the phrase and moves on to the home activity.
func (pa *PhraseActivity) Confirm() {
	if pa.submitting {
		return
	}
	phrase := pa.Phrase()
	if err := libwallet.ValidatePhrase(phrase); err != nil {
		pa.status.Fail(err)
		return
	}

	pa.submitting = true
	pa.status.Loading("Saving recovery phrase")
	started := pa.results.spawn("save phrase", func(context.Context) func() {
		err := pa.load.WL.SavePhrase(phrase)
		return func() {
			pa.submitting = false
			if err != nil {
				pa.status.Fail(err)
				return
			}
			pa.status.Normal()
			pa.importEditor.SetText("")
			pa.load.Navigate(HomeID)
		}
	})
	if !started {
		pa.submitting = false
		pa.status.Fail(errBusy)
	}
}

func (pa *PhraseActivity) handle() {
	if pa.generateBtn.Clicked() {
		pa.Generate()
	}
	if pa.toggleBtn.Clicked() {
		pa.SetImporting(!pa.importing)
	}
	if pa.confirmBtn.Clicked() || submitted(&pa.importEditor) {
		pa.Confirm()
	}
}

func (pa *PhraseActivity) Layout(gtx C, _ app.State) D {
	pa.results.drain()
	pa.handle()

	th := pa.load.Theme
	children := []layout.Widget{}
	if pa.importing {
		children = append(children,
			material.H5(th, "Import recovery phrase").Layout,
			material.Editor(th, &pa.importEditor, "Enter your 12 words separated by spaces").Layout,
			material.Button(th, &pa.toggleBtn, "Create a new phrase").Layout,
		)
	} else {
		children = append(children,
			material.H5(th, "Your recovery phrase").Layout,
			material.Body1(th, "Write these words down and keep them safe.").Layout,
			pa.wordsLayout,
			func(gtx C) D {
				return layout.Flex{Spacing: layout.SpaceEnd}.Layout(gtx,
					layout.Rigid(material.Button(th, &pa.generateBtn, "Generate again").Layout),
					layout.Rigid(layout.Spacer{Width: itemSpacing}.Layout),
					layout.Rigid(material.Button(th, &pa.toggleBtn, "Import a phrase").Layout),
				)
			},
		)
	}
	children = append(children,
		func(gtx C) D {
			if pa.submitting {
				gtx = gtx.Disabled()
			}
			return material.Button(th, &pa.confirmBtn, "Confirm").Layout(gtx)
		},
		pa.status.Layout,
	)

	return layout.UniformInset(pagePadding).Layout(gtx, func(gtx C) D {
		return vertical(gtx, children...)
	})
}

// wordsLayout shows the generated words in rows of four.
func (pa *PhraseActivity) wordsLayout(gtx C) D {
	words := strings.Fields(pa.generated)
	rows := make([]layout.Widget, 0, (len(words)+3)/4)
	for i := 0; i < len(words); i += 4 {
		end := i + 4
		if end > len(words) {
			end = len(words)
		}
		start, row := i, words[i:end]
		rows = append(rows, func(gtx C) D {
			cells := make([]layout.FlexChild, 0, len(row))
			for j, word := range row {
				label := material.Body1(pa.load.Theme, fmt.Sprintf("%d. %s", start+j+1, word))
				cells = append(cells, layout.Flexed(1, label.Layout))
			}
			return layout.Flex{}.Layout(gtx, cells...)
		})
	}
	return vertical(gtx, rows...)
}
