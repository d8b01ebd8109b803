package utils

import (
	"encoding/hex"
	"math"
	"os"
	"strings"
	"time"
)

const (
	LogFileName = "uwallet.log"

	// UserFilePerm is the permission used for files and directories created
	// in the app data directory.
	UserFilePerm = os.FileMode(0700)

	fullDateformat = "2006-01-02 15:04:05"
)

// FormatUTCTime formats timestamp as a UTC date and time.
func FormatUTCTime(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(fullDateformat)
}

// EncodeHex returns the 0x prefixed hex encoding used by substrate RPCs.
func EncodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeHex accepts hex strings with or without the 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// ShannonEntropy measures the character entropy of text. The password
// screen uses it as a strength hint.
func ShannonEntropy(text string) (entropy float64) {
	if text == "" {
		return 0
	}
	for i := 0; i < 256; i++ {
		px := float64(strings.Count(text, string(byte(i)))) / float64(len(text))
		if px > 0 {
			entropy += -px * math.Log2(px)
		}
	}
	return entropy
}
