package activity

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/ui/load"
)

const menuWidth = unit.Dp(160)

type menuItem struct {
	title     string
	target    app.ActivityID
	clickable widget.Clickable
}

// leftMenu is the navigation column shown by the wallet activities.
type leftMenu struct {
	load  *load.Load
	items []*menuItem
}

func newLeftMenu(l *load.Load) *leftMenu {
	return &leftMenu{
		load: l,
		items: []*menuItem{
			{title: "Home", target: HomeID},
			{title: "Transfer", target: TransferID},
			{title: "Setting", target: SettingID},
		},
	}
}

// handle navigates to the last clicked item unless it is current.
func (m *leftMenu) handle(current app.ActivityID) {
	for _, item := range m.items {
		if item.clickable.Clicked() && item.target != current {
			m.load.Navigate(item.target)
		}
	}
}

func (m *leftMenu) Layout(gtx C, current app.ActivityID) D {
	m.handle(current)

	gtx.Constraints.Min.X = gtx.Dp(menuWidth)
	gtx.Constraints.Max.X = gtx.Constraints.Min.X
	return layout.UniformInset(itemSpacing).Layout(gtx, func(gtx C) D {
		children := make([]layout.Widget, 0, len(m.items))
		for _, item := range m.items {
			item := item
			children = append(children, func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				btn := material.Button(m.load.Theme, &item.clickable, item.title)
				if item.target != current {
					btn.Background = m.load.Theme.Palette.ContrastFg
					btn.Color = m.load.Theme.Palette.Fg
				}
				return btn.Layout(gtx)
			})
		}
		return vertical(gtx, children...)
	})
}

// withMenu lays out the menu to the left of content.
func withMenu(gtx C, menu *leftMenu, current app.ActivityID, content layout.Widget) D {
	return layout.Flex{}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return menu.Layout(gtx, current)
		}),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(pagePadding).Layout(gtx, content)
		}),
	)
}
