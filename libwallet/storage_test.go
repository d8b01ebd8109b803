package libwallet

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestTwox128(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{input: "System", want: "26aa394eea5630e07c48ae0c9558cef7"},
		{input: "Account", want: "b99d880ec681799c0cf30e8886371da9"},
	}
	for _, tc := range tests {
		got := hex.EncodeToString(Twox128.Hash([]byte(tc.input)))
		if got != tc.want {
			t.Errorf("(%v), expected (%v), got (%v)", tc.input, tc.want, got)
		}
	}
}

func TestStorageMapKey(t *testing.T) {
	public := bytes.Repeat([]byte{0x01}, PublicKeySize)
	key := StorageMapKey("System", "Account", Blake2_128Concat, public)

	wantPrefix, _ := hex.DecodeString("26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9")
	if !bytes.HasPrefix(key, wantPrefix) {
		t.Fatalf("expected System.Account prefix, got (%x)", key[:32])
	}
	if len(key) != 32+16+PublicKeySize {
		t.Fatalf("unexpected key length %d", len(key))
	}
	if !bytes.Equal(key[32:48], blake2_128(public)) {
		t.Errorf("expected blake2_128 of the account id after the prefix")
	}
	if !bytes.Equal(key[48:], public) {
		t.Errorf("expected the account id to be appended")
	}
}

func TestStorageHasherSizes(t *testing.T) {
	input := []byte("uwallet")
	tests := []struct {
		hasher StorageHasher
		size   int
	}{
		{Blake2_128, 16},
		{Blake2_256, 32},
		{Blake2_128Concat, 16 + len(input)},
		{Twox128, 16},
		{Twox256, 32},
		{Twox64Concat, 8 + len(input)},
		{Identity, len(input)},
	}
	for _, tc := range tests {
		if got := len(tc.hasher.Hash(input)); got != tc.size {
			t.Errorf("(%v), expected (%d) bytes, got (%d)", tc.hasher, tc.size, got)
		}
	}

	// Twox256 extends Twox128 with the next two seeds.
	if !bytes.HasPrefix(Twox256.Hash(input), Twox128.Hash(input)) {
		t.Errorf("expected Twox128 to prefix Twox256")
	}
}
