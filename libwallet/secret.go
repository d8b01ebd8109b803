package libwallet

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/kevinburke/nacl"
	"github.com/kevinburke/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/ltp456/uwallet/libwallet/utils"
)

const (
	secretSaltSize = 16

	// passwordCheckText is sealed under the user password so the password
	// can be verified without storing it.
	passwordCheckText = "uwallet"
)

// naclLoadFromPass derives a nacl.Key from pass and salt using scrypt.Key.
func naclLoadFromPass(pass, salt []byte) (nacl.Key, error) {
	const N, r, p = 1 << 15, 8, 1

	hash, err := scrypt.Key(pass, salt, N, r, p, 32)
	if err != nil {
		return nil, err
	}
	return nacl.Load(hex.EncodeToString(hash))
}

// EncryptSecret seals secret with a key derived from pass. The random salt is
// stored in front of the sealed box.
func EncryptSecret(pass, secret []byte) ([]byte, error) {
	if len(pass) == 0 {
		return nil, utils.NewError(utils.ErrPassphraseRequired, nil)
	}

	salt := make([]byte, secretSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := naclLoadFromPass(pass, salt)
	if err != nil {
		return nil, err
	}
	return append(salt, secretbox.EasySeal(secret, key)...), nil
}

// DecryptSecret opens a box made by EncryptSecret. A wrong password yields
// utils.ErrDecryptFailed.
func DecryptSecret(pass, box []byte) ([]byte, error) {
	if len(box) <= secretSaltSize {
		return nil, fmt.Errorf("sealed secret is %d bytes: %w", len(box), utils.ErrDecryptFailed)
	}
	key, err := naclLoadFromPass(pass, box[:secretSaltSize])
	if err != nil {
		return nil, err
	}
	secret, err := secretbox.EasyOpen(box[secretSaltSize:], key)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, utils.ErrDecryptFailed)
	}
	return secret, nil
}

// NewPasswordCheck returns a value that VerifyPassword accepts for pass only.
func NewPasswordCheck(pass []byte) ([]byte, error) {
	return EncryptSecret(pass, []byte(passwordCheckText))
}

// VerifyPassword reports whether check was created from pass.
func VerifyPassword(pass, check []byte) bool {
	text, err := DecryptSecret(pass, check)
	return err == nil && string(text) == passwordCheckText
}
