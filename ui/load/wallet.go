package load

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/ltp456/uwallet/libwallet"
	"github.com/ltp456/uwallet/libwallet/utils"
)

var (
	ErrWalletLocked     = errors.New("wallet is locked")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// WalletLoad keeps the unlocked key of the session. The password and the key
// live in memory only; AppState holds their sealed forms.
type WalletLoad struct {
	state *AppState
	net   *utils.NetParams

	mtx      sync.RWMutex
	password []byte
	key      *libwallet.KeyPair
	address  string
}

func NewWalletLoad(state *AppState, net *utils.NetParams) *WalletLoad {
	return &WalletLoad{
		state: state,
		net:   net,
	}
}

// HasPassword reports whether a password was set.
func (wl *WalletLoad) HasPassword() bool {
	return wl.state.Exists(KeyPassword)
}

// HasPhrase reports whether a recovery phrase was saved.
func (wl *WalletLoad) HasPhrase() bool {
	return wl.state.Exists(KeyPhrase)
}

// SetPassword sets the first password and unlocks the session with it.
func (wl *WalletLoad) SetPassword(password, confirm string) error {
	if password == "" {
		return utils.NewError(utils.ErrPassphraseRequired, nil)
	}
	if password != confirm {
		return utils.NewError(utils.ErrInvalidPassphrase, ErrPasswordMismatch)
	}
	if wl.HasPassword() {
		return utils.NewError(utils.ErrExist, errors.New("password already set"))
	}

	check, err := libwallet.NewPasswordCheck([]byte(password))
	if err != nil {
		return err
	}
	wl.state.Set(KeyPassword, hex.EncodeToString(check))

	wl.mtx.Lock()
	wl.password = []byte(password)
	wl.mtx.Unlock()
	log.Info("Password set")
	return nil
}

// Unlock checks password against the stored check and, when a phrase was
// saved, derives the account key.
func (wl *WalletLoad) Unlock(password string) error {
	stored, ok := wl.state.Get(KeyPassword)
	if !ok {
		return utils.NewError(utils.ErrNotExist, errors.New("no password set"))
	}
	check, err := hex.DecodeString(stored)
	if err != nil {
		return fmt.Errorf("stored password check: %w", err)
	}
	if !libwallet.VerifyPassword([]byte(password), check) {
		return utils.NewError(utils.ErrInvalidPassphrase, ErrPasswordMismatch)
	}

	wl.mtx.Lock()
	wl.password = []byte(password)
	wl.mtx.Unlock()

	if wl.HasPhrase() {
		phrase, err := wl.Phrase()
		if err != nil {
			return err
		}
		return wl.useKey(phrase)
	}
	return nil
}

// SavePhrase validates phrase, stores it sealed with the session password
// and makes its key the session key.
func (wl *WalletLoad) SavePhrase(phrase string) error {
	pass, err := wl.sessionPassword()
	if err != nil {
		return err
	}
	if err := libwallet.ValidatePhrase(phrase); err != nil {
		return err
	}
	phrase = libwallet.NormalizePhrase(phrase)

	sealed, err := libwallet.EncryptSecret(pass, []byte(phrase))
	if err != nil {
		return err
	}
	if err := wl.useKey(phrase); err != nil {
		return err
	}
	wl.state.Set(KeyPhrase, hex.EncodeToString(sealed))
	log.Info("Recovery phrase saved")
	return nil
}

// Phrase decrypts the saved recovery phrase.
func (wl *WalletLoad) Phrase() (string, error) {
	pass, err := wl.sessionPassword()
	if err != nil {
		return "", err
	}
	stored, ok := wl.state.Get(KeyPhrase)
	if !ok {
		return "", utils.NewError(utils.ErrEmptySeed, nil)
	}
	sealed, err := hex.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("stored phrase: %w", err)
	}
	phrase, err := libwallet.DecryptSecret(pass, sealed)
	if err != nil {
		return "", utils.TranslateError(err)
	}
	return string(phrase), nil
}

func (wl *WalletLoad) useKey(phrase string) error {
	key, err := libwallet.KeyPairFromPhrase(phrase, "")
	if err != nil {
		return err
	}
	address, err := key.Address(wl.net.SS58Prefix)
	if err != nil {
		return err
	}

	wl.mtx.Lock()
	wl.key = key
	wl.address = address
	wl.mtx.Unlock()
	return nil
}

func (wl *WalletLoad) sessionPassword() ([]byte, error) {
	wl.mtx.RLock()
	defer wl.mtx.RUnlock()
	if wl.password == nil {
		return nil, ErrWalletLocked
	}
	return wl.password, nil
}

// KeyPair returns the session key.
func (wl *WalletLoad) KeyPair() (*libwallet.KeyPair, error) {
	wl.mtx.RLock()
	defer wl.mtx.RUnlock()
	if wl.key == nil {
		return nil, ErrWalletLocked
	}
	return wl.key, nil
}

// Address returns the address of the session key, or "" when locked.
func (wl *WalletLoad) Address() string {
	wl.mtx.RLock()
	defer wl.mtx.RUnlock()
	return wl.address
}

// NetParams returns the chain the wallet addresses belong to.
func (wl *WalletLoad) NetParams() *utils.NetParams {
	return wl.net
}

// Lock forgets the password and the key.
func (wl *WalletLoad) Lock() {
	wl.mtx.Lock()
	defer wl.mtx.Unlock()
	for i := range wl.password {
		wl.password[i] = 0
	}
	wl.password = nil
	wl.key = nil
	wl.address = ""
}
