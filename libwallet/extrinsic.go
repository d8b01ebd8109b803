package libwallet

import (
	"fmt"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/blake2b"

	"github.com/ltp456/uwallet/libwallet/utils"
)

const (
	// extrinsicVersion is format version 4 with the signed bit set.
	extrinsicVersion = 0x84

	multiAddressID  = 0x00
	multiSigEd25519 = 0x00
	immortalEra     = 0x00
	maxPayloadSize  = 256
	genesisHashSize = 32
)

// TransferParams is everything needed to sign a Balances.transfer offline.
type TransferParams struct {
	Dest   []byte
	Amount *uint256.Int
	// Tip is optional.
	Tip                *uint256.Int
	Nonce              uint32
	SpecVersion        uint32
	TransactionVersion uint32
	GenesisHash        []byte
}

func (p *TransferParams) validate() error {
	if len(p.Dest) != PublicKeySize {
		return utils.NewError(utils.ErrInvalidAddress, fmt.Errorf("destination is %d bytes", len(p.Dest)))
	}
	if p.Amount == nil || p.Amount.IsZero() {
		return utils.NewError(utils.ErrInvalidAmount, fmt.Errorf("amount must be positive"))
	}
	if p.Amount.BitLen() > maxBalanceBits {
		return utils.NewError(utils.ErrInvalidAmount, fmt.Errorf("amount too large"))
	}
	if len(p.GenesisHash) != genesisHashSize {
		return fmt.Errorf("genesis hash is %d bytes, want %d", len(p.GenesisHash), genesisHashSize)
	}
	return nil
}

// EncodeTransferCall encodes Balances.transfer(dest, amount).
func EncodeTransferCall(net *utils.NetParams, dest []byte, amount *uint256.Int) []byte {
	call := []byte{net.BalancesModule, net.TransferCall, multiAddressID}
	call = append(call, dest...)
	return append(call, EncodeCompact(amount)...)
}

// SignedTransfer builds a signed, immortal, version 4 extrinsic transferring
// p.Amount from key to p.Dest. The result is length prefixed and ready for
// author_submitExtrinsic.
func SignedTransfer(key *KeyPair, net *utils.NetParams, p TransferParams) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	tip := p.Tip
	if tip == nil {
		tip = new(uint256.Int)
	}

	call := EncodeTransferCall(net, p.Dest, p.Amount)

	extra := []byte{immortalEra}
	extra = append(extra, EncodeCompactUint64(uint64(p.Nonce))...)
	extra = append(extra, EncodeCompact(tip)...)

	// Immortal transactions use the genesis hash as the checkpoint block.
	additional := encodeU32(p.SpecVersion)
	additional = append(additional, encodeU32(p.TransactionVersion)...)
	additional = append(additional, p.GenesisHash...)
	additional = append(additional, p.GenesisHash...)

	signature := key.Sign(signingPayload(call, extra, additional))

	body := []byte{extrinsicVersion, multiAddressID}
	body = append(body, key.Public()...)
	body = append(body, multiSigEd25519)
	body = append(body, signature...)
	body = append(body, extra...)
	body = append(body, call...)

	return append(EncodeCompactUint64(uint64(len(body))), body...), nil
}

// signingPayload returns the bytes that are signed. Payloads longer than 256
// bytes are replaced by their blake2-256 hash.
func signingPayload(call, extra, additional []byte) []byte {
	payload := make([]byte, 0, len(call)+len(extra)+len(additional))
	payload = append(payload, call...)
	payload = append(payload, extra...)
	payload = append(payload, additional...)
	if len(payload) > maxPayloadSize {
		sum := blake2b.Sum256(payload)
		return sum[:]
	}
	return payload
}
