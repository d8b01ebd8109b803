package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type NetworkType string

const (
	Polkadot NetworkType = "polkadot"
	Kusama   NetworkType = "kusama"
	Westend  NetworkType = "westend"
	Local    NetworkType = "local"
	Unknown  NetworkType = "unknown"
)

// Display returns the title case network name to be displayed on the app UI.
func (n NetworkType) Display() string {
	caser := cases.Title(language.Und)
	return caser.String(string(n))
}

// ToNetworkType maps the provided network string identifier to the available
// network type constants.
func ToNetworkType(str string) NetworkType {
	switch strings.ToLower(str) {
	case "polkadot", "dot", "mainnet":
		return Polkadot
	case "kusama", "ksm":
		return Kusama
	case "westend", "wnd", "testnet":
		return Westend
	case "local", "dev", "development":
		return Local
	default:
		return Unknown
	}
}

// NetParams holds what the wallet needs to know about a chain to build
// addresses and balance transfers.
type NetParams struct {
	Network NetworkType
	// SS58Prefix is the address format of the chain.
	SS58Prefix uint16
	// BalancesModule and TransferCall locate Balances.transfer in the
	// runtime's call enum.
	BalancesModule uint8
	TransferCall   uint8
	Symbol         string
	Decimals       uint8
	// DefaultEndpoint is used when no endpoint was configured.
	DefaultEndpoint string
}

var (
	PolkadotParams = &NetParams{
		Network:         Polkadot,
		SS58Prefix:      0,
		BalancesModule:  5,
		TransferCall:    0,
		Symbol:          "DOT",
		Decimals:        10,
		DefaultEndpoint: "https://rpc.polkadot.io",
	}
	KusamaParams = &NetParams{
		Network:         Kusama,
		SS58Prefix:      2,
		BalancesModule:  4,
		TransferCall:    0,
		Symbol:          "KSM",
		Decimals:        12,
		DefaultEndpoint: "https://kusama-rpc.polkadot.io",
	}
	WestendParams = &NetParams{
		Network:         Westend,
		SS58Prefix:      42,
		BalancesModule:  4,
		TransferCall:    0,
		Symbol:          "WND",
		Decimals:        12,
		DefaultEndpoint: "https://westend-rpc.polkadot.io",
	}
	LocalParams = &NetParams{
		Network:         Local,
		SS58Prefix:      0,
		BalancesModule:  5,
		TransferCall:    0,
		Symbol:          "DOT",
		Decimals:        10,
		DefaultEndpoint: "http://127.0.0.1:9933",
	}
)

// ChainParams returns the parameters of the given network.
func ChainParams(netType NetworkType) (*NetParams, error) {
	switch netType {
	case Polkadot:
		return PolkadotParams, nil
	case Kusama:
		return KusamaParams, nil
	case Westend:
		return WestendParams, nil
	case Local:
		return LocalParams, nil
	default:
		return nil, ErrInvalidNet
	}
}
