package libwallet

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// StorageHasher is the hashing scheme applied to a storage map key.
type StorageHasher int

const (
	Blake2_128 StorageHasher = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity
)

func (h StorageHasher) String() string {
	switch h {
	case Blake2_128:
		return "Blake2_128"
	case Blake2_256:
		return "Blake2_256"
	case Blake2_128Concat:
		return "Blake2_128Concat"
	case Twox128:
		return "Twox128"
	case Twox256:
		return "Twox256"
	case Twox64Concat:
		return "Twox64Concat"
	case Identity:
		return "Identity"
	default:
		return fmt.Sprintf("StorageHasher(%d)", int(h))
	}
}

// Hash applies h to key.
func (h StorageHasher) Hash(key []byte) []byte {
	switch h {
	case Blake2_128:
		return blake2_128(key)
	case Blake2_256:
		sum := blake2b.Sum256(key)
		return sum[:]
	case Blake2_128Concat:
		return append(blake2_128(key), key...)
	case Twox128:
		return twox(key, 2)
	case Twox256:
		return twox(key, 4)
	case Twox64Concat:
		return append(twox(key, 1), key...)
	default:
		return append([]byte(nil), key...)
	}
}

// StoragePrefix returns twox128(module) ++ twox128(item), the key of a plain
// storage value and the prefix of every entry of a storage map.
func StoragePrefix(module, item string) []byte {
	prefix := twox([]byte(module), 2)
	return append(prefix, twox([]byte(item), 2)...)
}

// StorageMapKey returns the full key of the map entry at key.
func StorageMapKey(module, item string, hasher StorageHasher, key []byte) []byte {
	return append(StoragePrefix(module, item), hasher.Hash(key)...)
}

// twox concatenates rounds little-endian xxhash64 digests of b seeded with
// 0, 1, ... rounds-1.
func twox(b []byte, rounds int) []byte {
	out := make([]byte, 8*rounds)
	for seed := 0; seed < rounds; seed++ {
		d := xxhash.NewWithSeed(uint64(seed))
		_, _ = d.Write(b)
		binary.LittleEndian.PutUint64(out[8*seed:], d.Sum64())
	}
	return out
}

func blake2_128(b []byte) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// Only returned for invalid sizes or keys.
		panic(err)
	}
	h.Write(b)
	return h.Sum(nil)
}
