package app

import (
	"gioui.org/layout"
)

const WidgetDisplayActivityID ActivityID = "widgetdisplay"

// WidgetDisplayActivity is an activity that takes a widget to layout and
// does nothing more than displaying the widget.
type WidgetDisplayActivity struct {
	*GenericActivity
	widget layout.Widget
}

func NewWidgetDisplayActivity(id ActivityID, widget layout.Widget) *WidgetDisplayActivity {
	if id == "" {
		id = WidgetDisplayActivityID
	}
	return &WidgetDisplayActivity{
		GenericActivity: NewGenericActivity(id),
		widget:          widget,
	}
}

// Layout implements Activity.
func (wd *WidgetDisplayActivity) Layout(gtx C, _ State) D {
	if wd.widget == nil {
		return D{}
	}
	return wd.widget(gtx)
}
