package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/asdine/storm"
	bolt "go.etcd.io/bbolt"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("plain")
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "not found", err: fmt.Errorf("get: %w", storm.ErrNotFound), code: ErrNotExist},
		{name: "duplicate", err: storm.ErrAlreadyExists, code: ErrExist},
		{name: "locked db", err: bolt.ErrTimeout, code: ErrWalletDatabaseInUse},
		{name: "wrong password", err: fmt.Errorf("open: %w", ErrDecryptFailed), code: ErrInvalidPassphrase},
		{name: "canceled", err: context.Canceled, code: ErrContextCanceled},
		{name: "already coded", err: NewError(ErrInvalidAddress, plain), code: ErrInvalidAddress},
		{name: "unknown", err: plain, code: ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorCode(tc.err); got != tc.code {
				t.Errorf("(%v), expected (%v), got (%v)", tc.name, tc.code, got)
			}
			if !errors.Is(TranslateError(tc.err), tc.err) {
				t.Errorf("(%v), translated error must wrap the original", tc.name)
			}
		})
	}

	if TranslateError(nil) != nil {
		t.Errorf("expected nil for nil")
	}
}

func TestToNetworkType(t *testing.T) {
	tests := map[string]NetworkType{
		"Polkadot": Polkadot,
		"ksm":      Kusama,
		"testnet":  Westend,
		"dev":      Local,
		"bitcoin":  Unknown,
	}
	for in, want := range tests {
		if got := ToNetworkType(in); got != want {
			t.Errorf("(%v), expected (%v), got (%v)", in, want, got)
		}
	}

	if _, err := ChainParams(Unknown); !errors.Is(err, ErrInvalidNet) {
		t.Errorf("expected ErrInvalidNet, got %v", err)
	}
	params, err := ChainParams(Kusama)
	if err != nil || params.SS58Prefix != 2 {
		t.Errorf("unexpected kusama params %+v %v", params, err)
	}
	if Westend.Display() != "Westend" {
		t.Errorf("expected title case display name, got %v", Westend.Display())
	}
}
