// The load package contains data structures that are shared by components in the ui package. It is not a dumping ground
// for code you feel might be shared with other components in the future. Before adding code here, ask yourself, can
// the code be isolated in the package you're calling it from? Is it really needed by other packages in the ui package?
// or you're just planning for a use case that might never used.

package load

import (
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gioui.org/widget/material"

	"github.com/ltp456/uwallet/app"
	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
	"github.com/ltp456/uwallet/libwallet/walletdata"
	"github.com/ltp456/uwallet/ui/assets"
)

// Notifier shows a message outside of the window.
type Notifier interface {
	Notify(message string) error
}

type Load struct {
	Theme   *material.Theme
	Printer *message.Printer

	AppInfo *AppInfo
	Config  *AppConfig
	State   *AppState
	WL      *WalletLoad
	DB      *walletdata.DB
	Client  *libwallet.Client
	Net     *utils.NetParams
	// LogFile is the path of the main log file.
	LogFile string

	Navigator *app.Navigator
	Executor  *app.Executor
	Notifier  Notifier

	// Shutdown stops the app. It is safe to call from any goroutine.
	Shutdown func()
}

func NewTheme() *material.Theme {
	return material.NewTheme(assets.FontCollection())
}

func NewPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// Navigate asks the host to switch to id on the next frame.
func (l *Load) Navigate(id app.ActivityID) {
	if err := l.Navigator.Send(id); err != nil {
		log.Errorf("Unable to navigate to %s: %v", id, err)
	}
}

// FormatBalance formats planck as a grouped decimal amount with the chain
// symbol.
func (l *Load) FormatBalance(planck *uint256.Int) string {
	whole, frac, hasFrac := strings.Cut(libwallet.FormatAmount(planck, l.Net.Decimals), ".")
	if n, err := strconv.ParseUint(whole, 10, 64); err == nil {
		whole = l.Printer.Sprintf("%d", n)
	}
	if hasFrac {
		whole += "." + frac
	}
	return whole + " " + l.Net.Symbol
}

// Notify shows msg as a desktop notification when a notifier is set.
func (l *Load) Notify(msg string) {
	if l.Notifier == nil {
		return
	}
	if err := l.Notifier.Notify(msg); err != nil {
		log.Warnf("Notification failed: %v", err)
	}
}
