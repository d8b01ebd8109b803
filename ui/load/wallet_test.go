package load

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
)

const testPhrase = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func newTestWallet(t *testing.T) (*WalletLoad, *AppState) {
	t.Helper()
	state, err := NewAppState(nil)
	require.NoError(t, err)
	return NewWalletLoad(state, utils.PolkadotParams), state
}

func TestSetPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		code     string
	}{
		{"empty", "", "", utils.ErrPassphraseRequired},
		{"mismatch", "secret", "secreT", utils.ErrInvalidPassphrase},
		{"ok", "secret", "secret", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wl, state := newTestWallet(t)
			err := wl.SetPassword(test.password, test.confirm)
			if test.code != "" {
				if utils.ErrorCode(err) != test.code {
					t.Errorf("(%v), expected (%v), got (%v)", test.name, test.code, err)
				}
				if state.Exists(KeyPassword) {
					t.Errorf("(%v), expected no stored password", test.name)
				}
				return
			}
			require.NoError(t, err)
			stored, _ := state.Get(KeyPassword)
			require.NotContains(t, stored, test.password)
			require.True(t, wl.HasPassword())
		})
	}
}

func TestSetPasswordTwice(t *testing.T) {
	wl, _ := newTestWallet(t)
	require.NoError(t, wl.SetPassword("one", "one"))
	require.Equal(t, utils.ErrExist, utils.ErrorCode(wl.SetPassword("two", "two")))
}

func TestPhraseRoundTrip(t *testing.T) {
	wl, state := newTestWallet(t)

	require.True(t, errors.Is(wl.SavePhrase(testPhrase), ErrWalletLocked))
	require.NoError(t, wl.SetPassword("secret", "secret"))

	require.Equal(t, utils.ErrInvalidSeed, utils.ErrorCode(wl.SavePhrase("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon")))
	require.False(t, wl.HasPhrase())

	require.NoError(t, wl.SavePhrase("  Legal winner thank year wave sausage worth useful legal winner thank yellow "))
	require.True(t, wl.HasPhrase())
	stored, _ := state.Get(KeyPhrase)
	require.NotContains(t, stored, "legal")

	phrase, err := wl.Phrase()
	require.NoError(t, err)
	require.Equal(t, testPhrase, phrase)

	key, err := libwallet.KeyPairFromPhrase(testPhrase, "")
	require.NoError(t, err)
	address, err := key.Address(utils.PolkadotParams.SS58Prefix)
	require.NoError(t, err)
	require.Equal(t, address, wl.Address())

	wl.Lock()
	require.Empty(t, wl.Address())
	_, err = wl.KeyPair()
	require.True(t, errors.Is(err, ErrWalletLocked))
	_, err = wl.Phrase()
	require.True(t, errors.Is(err, ErrWalletLocked))

	require.Equal(t, utils.ErrInvalidPassphrase, utils.ErrorCode(wl.Unlock("wrong")))
	require.NoError(t, wl.Unlock("secret"))
	unlocked, err := wl.KeyPair()
	require.NoError(t, err)
	require.Equal(t, key.Public(), unlocked.Public())
	require.Equal(t, address, wl.Address())
}

func TestUnlockWithoutPassword(t *testing.T) {
	wl, _ := newTestWallet(t)
	require.Equal(t, utils.ErrNotExist, utils.ErrorCode(wl.Unlock("secret")))
}
