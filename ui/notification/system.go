package notification

import (
	"os"
	"path/filepath"

	"github.com/gen2brain/beeep"
)

const (
	iconFile = "uwallet.png"
	title    = "UWallet"
)

// SystemNotification shows desktop notifications.
type SystemNotification struct {
	iconPath string
}

// NewSystemNotification looks for the app icon next to the executable. The
// notification is shown without an icon when there is none.
func NewSystemNotification() *SystemNotification {
	sn := new(SystemNotification)
	exe, err := os.Executable()
	if err != nil {
		return sn
	}
	iconPath := filepath.Join(filepath.Dir(exe), iconFile)
	if _, err := os.Stat(iconPath); err == nil {
		sn.iconPath = iconPath
	}
	return sn
}

func (s *SystemNotification) Notify(message string) error {
	return beeep.Notify(title, message, s.iconPath)
}
