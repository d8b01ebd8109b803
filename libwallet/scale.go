package libwallet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrShortBuffer is returned when SCALE data ends before a value is complete.
var ErrShortBuffer = errors.New("scale: short buffer")

const (
	compactSingleMax = 1<<6 - 1
	compactTwoMax    = 1<<14 - 1
	compactFourMax   = 1<<30 - 1
)

// EncodeCompact returns the SCALE compact encoding of v.
func EncodeCompact(v *uint256.Int) []byte {
	if v.IsUint64() {
		n := v.Uint64()
		switch {
		case n <= compactSingleMax:
			return []byte{byte(n << 2)}
		case n <= compactTwoMax:
			buf := make([]byte, 2)
			binary.LittleEndian.PutUint16(buf, uint16(n<<2)|0b01)
			return buf
		case n <= compactFourMax:
			buf := make([]byte, 4)
			binary.LittleEndian.PutUint32(buf, uint32(n<<2)|0b10)
			return buf
		}
	}

	le := reverse(v.Bytes())
	for len(le) < 4 {
		le = append(le, 0)
	}
	buf := make([]byte, 0, 1+len(le))
	buf = append(buf, byte((len(le)-4)<<2)|0b11)
	return append(buf, le...)
}

// EncodeCompactUint64 is EncodeCompact for values that fit a uint64.
func EncodeCompactUint64(n uint64) []byte {
	return EncodeCompact(uint256.NewInt(n))
}

// DecodeCompact decodes a compact integer from the start of b and returns it
// along with the number of bytes read.
func DecodeCompact(b []byte) (*uint256.Int, int, error) {
	if len(b) == 0 {
		return nil, 0, ErrShortBuffer
	}

	switch b[0] & 0b11 {
	case 0b00:
		return uint256.NewInt(uint64(b[0] >> 2)), 1, nil
	case 0b01:
		if len(b) < 2 {
			return nil, 0, ErrShortBuffer
		}
		return uint256.NewInt(uint64(binary.LittleEndian.Uint16(b) >> 2)), 2, nil
	case 0b10:
		if len(b) < 4 {
			return nil, 0, ErrShortBuffer
		}
		return uint256.NewInt(uint64(binary.LittleEndian.Uint32(b) >> 2)), 4, nil
	}

	size := int(b[0]>>2) + 4
	if size > 32 {
		return nil, 0, fmt.Errorf("scale: compact integer of %d bytes does not fit 256 bits", size)
	}
	if len(b) < 1+size {
		return nil, 0, ErrShortBuffer
	}
	v := new(uint256.Int).SetBytes(reverse(b[1 : 1+size]))
	return v, 1 + size, nil
}

func encodeU32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// reverse returns a reversed copy of b, converting between the big-endian
// byte order of uint256 and the little-endian order of SCALE.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// scaleReader decodes fixed width SCALE values in sequence.
type scaleReader struct {
	buf []byte
	off int
}

func (r *scaleReader) next(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, fmt.Errorf("read %d bytes at offset %d: %w", n, r.off, ErrShortBuffer)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *scaleReader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *scaleReader) u128() (*uint256.Int, error) {
	b, err := r.next(16)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(reverse(b)), nil
}
