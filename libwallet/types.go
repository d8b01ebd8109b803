package libwallet

import (
	"fmt"

	"github.com/holiman/uint256"
)

// RuntimeVersion is the result of state_getRuntimeVersion.
type RuntimeVersion struct {
	SpecName           string `json:"specName"`
	ImplName           string `json:"implName"`
	AuthoringVersion   uint32 `json:"authoringVersion"`
	SpecVersion        uint32 `json:"specVersion"`
	ImplVersion        uint32 `json:"implVersion"`
	TransactionVersion uint32 `json:"transactionVersion"`
	StateVersion       uint32 `json:"stateVersion"`
}

// AccountData holds the balances of an account, in planck.
type AccountData struct {
	Free       *uint256.Int
	Reserved   *uint256.Int
	MiscFrozen *uint256.Int
	FeeFrozen  *uint256.Int
}

// AccountInfo is the value stored under System.Account.
type AccountInfo struct {
	Nonce       uint32
	Consumers   uint32
	Providers   uint32
	Sufficients uint32
	Data        AccountData
}

// accountInfoSize is four u32 counters followed by four u128 balances.
const accountInfoSize = 4*4 + 4*16

func emptyAccountInfo() *AccountInfo {
	return &AccountInfo{
		Data: AccountData{
			Free:       new(uint256.Int),
			Reserved:   new(uint256.Int),
			MiscFrozen: new(uint256.Int),
			FeeFrozen:  new(uint256.Int),
		},
	}
}

// DecodeAccountInfo decodes the SCALE encoded System.Account value. Trailing
// bytes are ignored.
func DecodeAccountInfo(b []byte) (*AccountInfo, error) {
	if len(b) < accountInfoSize {
		return nil, fmt.Errorf("account info is %d bytes, want %d: %w", len(b), accountInfoSize, ErrShortBuffer)
	}

	r := &scaleReader{buf: b}
	info := new(AccountInfo)
	for _, dst := range []*uint32{&info.Nonce, &info.Consumers, &info.Providers, &info.Sufficients} {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	for _, dst := range []**uint256.Int{&info.Data.Free, &info.Data.Reserved, &info.Data.MiscFrozen, &info.Data.FeeFrozen} {
		v, err := r.u128()
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	return info, nil
}

// Transferable returns the free balance minus the largest frozen amount,
// floored at zero.
func (a *AccountInfo) Transferable() *uint256.Int {
	frozen := a.Data.MiscFrozen
	if a.Data.FeeFrozen.Gt(frozen) {
		frozen = a.Data.FeeFrozen
	}
	if !a.Data.Free.Gt(frozen) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a.Data.Free, frozen)
}
