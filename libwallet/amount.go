package libwallet

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ltp456/uwallet/libwallet/utils"
)

// maxBalanceBits is the width of the runtime Balance type.
const maxBalanceBits = 128

// ParseAmount converts a decimal token amount such as "1.25" to planck using
// the given number of decimals.
func ParseAmount(s string, decimals uint8) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	invalid := func(reason string) error {
		return utils.NewError(utils.ErrInvalidAmount, fmt.Errorf("%q: %s", s, reason))
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, invalid("empty amount")
	}
	if hasPoint && frac == "" {
		return nil, invalid("missing fractional digits")
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, invalid("not a decimal number")
	}
	if len(frac) > int(decimals) {
		return nil, invalid(fmt.Sprintf("more than %d fractional digits", decimals))
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, invalid("not a decimal number")
	}
	if n.BitLen() > maxBalanceBits {
		return nil, invalid("amount too large")
	}
	v, _ := uint256.FromBig(n)
	return v, nil
}

// FormatAmount renders a planck value as a decimal token amount without
// trailing zeros.
func FormatAmount(v *uint256.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	digits := v.ToBig().String()
	if decimals == 0 {
		return digits
	}
	if pad := int(decimals) + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	point := len(digits) - int(decimals)
	frac := strings.TrimRight(digits[point:], "0")
	if frac == "" {
		return digits[:point]
	}
	return digits[:point] + "." + frac
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
