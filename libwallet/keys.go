package libwallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"

	"github.com/ltp456/uwallet/libwallet/utils"
)

const (
	// MnemonicEntropyBits gives 12 word phrases.
	MnemonicEntropyBits = 128

	// PublicKeySize is the size of an account id.
	PublicKeySize = ed25519.PublicKeySize

	ss58ChecksumSize = 2
	maxSS58Prefix    = 1<<14 - 1
)

var ss58Pre = []byte("SS58PRE")

// GeneratePhrase returns a new random 12 word BIP-39 phrase.
func GeneratePhrase() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// NormalizePhrase collapses the whitespace of a typed or pasted phrase.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// ValidatePhrase checks the words and checksum of phrase.
func ValidatePhrase(phrase string) error {
	phrase = NormalizePhrase(phrase)
	if phrase == "" {
		return utils.NewError(utils.ErrEmptySeed, nil)
	}
	if _, err := bip39.EntropyFromMnemonic(phrase); err != nil {
		return utils.NewError(utils.ErrInvalidSeed, err)
	}
	return nil
}

// MiniSecret derives the 32 byte ed25519 seed of phrase the way substrate
// does: PBKDF2-SHA512 over the mnemonic entropy, not the mnemonic words.
func MiniSecret(phrase, password string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(NormalizePhrase(phrase))
	if err != nil {
		return nil, utils.NewError(utils.ErrInvalidSeed, err)
	}
	seed := pbkdf2.Key(entropy, []byte("mnemonic"+password), 2048, 64, sha512.New)
	return seed[:ed25519.SeedSize], nil
}

// KeyPair is an ed25519 account key.
type KeyPair struct {
	private ed25519.PrivateKey
}

// KeyPairFromPhrase derives the account key of phrase and an optional
// password.
func KeyPairFromPhrase(phrase, password string) (*KeyPair, error) {
	seed, err := MiniSecret(phrase, password)
	if err != nil {
		return nil, err
	}
	return KeyPairFromSeed(seed)
}

// KeyPairFromSeed builds a key from a 32 byte seed.
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, utils.NewError(utils.ErrInvalidSeed, fmt.Errorf("seed is %d bytes, want %d", len(seed), ed25519.SeedSize))
	}
	return &KeyPair{private: ed25519.NewKeyFromSeed(seed)}, nil
}

// Public returns the account id.
func (k *KeyPair) Public() []byte {
	return []byte(k.private.Public().(ed25519.PublicKey))
}

// Seed returns the 32 byte seed the key was built from.
func (k *KeyPair) Seed() []byte {
	return k.private.Seed()
}

// Address returns the SS58 address of the key for the given network prefix.
func (k *KeyPair) Address(prefix uint16) (string, error) {
	return EncodeAddress(k.Public(), prefix)
}

// Sign signs msg.
func (k *KeyPair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.private, msg)
}

// Verify reports whether sig is a valid signature of msg by public.
func Verify(public, msg, sig []byte) bool {
	if len(public) != PublicKeySize {
		return false
	}
	return ed25519.Verify(public, msg, sig)
}

// EncodeAddress returns the SS58 encoding of public under prefix.
func EncodeAddress(public []byte, prefix uint16) (string, error) {
	if len(public) != PublicKeySize {
		return "", utils.NewError(utils.ErrInvalidAddress, fmt.Errorf("account id is %d bytes", len(public)))
	}
	if prefix > maxSS58Prefix {
		return "", utils.NewError(utils.ErrInvalidAddress, fmt.Errorf("ss58 prefix %d out of range", prefix))
	}

	var payload []byte
	if prefix < 64 {
		payload = []byte{byte(prefix)}
	} else {
		payload = []byte{
			byte((prefix&0b1111_1100)>>2) | 0b0100_0000,
			byte(prefix>>8) | byte((prefix&0b11)<<6),
		}
	}
	payload = append(payload, public...)
	payload = append(payload, ss58Checksum(payload)...)
	return base58.Encode(payload), nil
}

// DecodeAddress returns the account id and network prefix of an SS58
// address.
func DecodeAddress(address string) (public []byte, prefix uint16, err error) {
	invalid := func(reason string) error {
		return utils.NewError(utils.ErrInvalidAddress, fmt.Errorf("%q: %s", address, reason))
	}

	data := base58.Decode(strings.TrimSpace(address))
	if len(data) == 0 {
		return nil, 0, invalid("not base58")
	}

	prefixLen := 1
	switch {
	case data[0] < 64:
		prefix = uint16(data[0])
	case data[0] < 128:
		if len(data) < 2 {
			return nil, 0, invalid("truncated prefix")
		}
		lower := data[0]<<2 | data[1]>>6
		upper := data[1] & 0b0011_1111
		prefix = uint16(lower) | uint16(upper)<<8
		prefixLen = 2
	default:
		return nil, 0, invalid("reserved prefix")
	}

	if len(data) != prefixLen+PublicKeySize+ss58ChecksumSize {
		return nil, 0, invalid(fmt.Sprintf("unexpected length %d", len(data)))
	}
	body := data[:len(data)-ss58ChecksumSize]
	if !bytes.Equal(ss58Checksum(body), data[len(body):]) {
		return nil, 0, invalid("bad checksum")
	}
	return append([]byte(nil), body[prefixLen:]...), prefix, nil
}

func ss58Checksum(payload []byte) []byte {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	h.Write(ss58Pre)
	h.Write(payload)
	return h.Sum(nil)[:ss58ChecksumSize]
}

// IsInvalidAddress reports whether err came from address decoding.
func IsInvalidAddress(err error) bool {
	var coded *utils.CodedError
	return errors.As(err, &coded) && coded.Code == utils.ErrInvalidAddress
}
