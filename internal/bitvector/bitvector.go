/*
Package bitvector models an unsigned 64-bit integer as an ordered set of
addressable bits.

A BitVector keeps two views of the same number: the exact integer value
(math/big, never floating point) and the 64 individual bits backed by a
bitset. Every constructor and mutation rebuilds one view from the other so
that value == Σ bit[i]·2^i holds at all times.

BitVector is an immutable value: Toggle returns a new vector and leaves the
receiver untouched.
*/
package bitvector

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	// Width is the number of addressable bits.
	Width = 64

	// ByteCount is the number of 8-bit display groups.
	ByteCount = Width / 8
)

var (
	// ErrNotNumeric is returned when decimal text contains non-digit characters.
	ErrNotNumeric = errors.New("not a base-10 integer")

	// ErrNegative is returned for negative decimal input.
	ErrNegative = errors.New("value must not be negative")

	// ErrOutOfRange is returned when the value exceeds 2^64-1.
	ErrOutOfRange = errors.New("value exceeds 2^64-1")

	// ErrNotBinary is returned when binary text contains characters other than 0 and 1.
	ErrNotBinary = errors.New("not a binary string")

	// ErrBitPosition is returned for bit positions outside [0,63].
	ErrBitPosition = errors.New("bit position out of range")
)

// maxValue is 2^64 - 1.
var maxValue = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), Width), big.NewInt(1))

// Bit is one addressable bit. Position 0 is the least-significant bit.
type Bit struct {
	Position int   `json:"position"`
	Value    uint8 `json:"value"`
}

// Weight returns 2^Position as an exact integer.
func (b Bit) Weight() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(b.Position))
}

// Byte is a display group of 8 consecutive bits. Index 0 holds bits 0..7.
type Byte struct {
	Index int    `json:"index"`
	Bits  [8]Bit `json:"bits"`
}

// BitVector is the 64-bit addressable representation of an unsigned integer.
// The zero value is the empty vector.
type BitVector struct {
	bits  *bitset.BitSet
	value *big.Int
	set   bool
}

// Empty returns the "no value yet" vector. It renders as an empty decimal
// string and an all-zero binary string.
func Empty() BitVector {
	return BitVector{}
}

// Zero returns the vector holding the value 0.
func Zero() BitVector {
	return fromBig(new(big.Int))
}

// FromUint64 builds a vector from a machine integer.
func FromUint64(u uint64) BitVector {
	return fromBig(new(big.Int).SetUint64(u))
}

// ParseDecimal parses base-10 text into a vector.
//
// Empty (or all-whitespace) text yields Empty() and no error. Negative,
// non-numeric and out-of-range input is rejected; callers keep their prior
// vector in that case.
func ParseDecimal(text string) (BitVector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty(), nil
	}

	digits := text
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "-") {
		if isDigits(digits[1:]) {
			return BitVector{}, fmt.Errorf("%q: %w", text, ErrNegative)
		}
		return BitVector{}, fmt.Errorf("%q: %w", text, ErrNotNumeric)
	}
	if !isDigits(digits) {
		return BitVector{}, fmt.Errorf("%q: %w", text, ErrNotNumeric)
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return BitVector{}, fmt.Errorf("%q: %w", text, ErrNotNumeric)
	}
	if value.Cmp(maxValue) > 0 {
		return BitVector{}, fmt.Errorf("%q: %w", text, ErrOutOfRange)
	}

	return fromBig(value), nil
}

// ParseBinary parses up to 64 characters of 0/1 text, most-significant bit
// first. Shorter input is treated as zero-padded on the left.
func ParseBinary(text string) (BitVector, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "0b")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "_", "")
	if text == "" {
		return Empty(), nil
	}
	if len(text) > Width {
		trimmed := strings.TrimLeft(text, "0")
		if len(trimmed) > Width {
			return BitVector{}, fmt.Errorf("%d significant bits: %w", len(trimmed), ErrOutOfRange)
		}
		text = trimmed
	}

	bits := bitset.New(Width)
	for i := 0; i < len(text); i++ {
		pos := uint(len(text) - 1 - i)
		switch text[i] {
		case '1':
			bits.Set(pos)
		case '0':
		default:
			return BitVector{}, fmt.Errorf("%q: %w", text, ErrNotBinary)
		}
	}

	return fromBits(bits), nil
}

// fromBig derives the bit array from value. value must be in [0, 2^64-1].
func fromBig(value *big.Int) BitVector {
	bits := bitset.New(Width)
	for i := 0; i < Width; i++ {
		if value.Bit(i) == 1 {
			bits.Set(uint(i))
		}
	}
	return BitVector{bits: bits, value: new(big.Int).Set(value), set: true}
}

// fromBits recomputes the value as the exact sum of bit weights.
func fromBits(bits *bitset.BitSet) BitVector {
	return BitVector{bits: bits, value: sum(bits), set: true}
}

func sum(bits *bitset.BitSet) *big.Int {
	total := new(big.Int)
	for i := 0; i < Width; i++ {
		if bits.Test(uint(i)) {
			total.Add(total, new(big.Int).Lsh(big.NewInt(1), uint(i)))
		}
	}
	return total
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the vector is the "no value yet" state.
func (v BitVector) IsEmpty() bool {
	return !v.set
}

// Toggle flips exactly one bit and returns the resulting vector.
// Toggling an empty vector starts from zero.
func (v BitVector) Toggle(position int) (BitVector, error) {
	if position < 0 || position >= Width {
		return v, fmt.Errorf("position %d: %w", position, ErrBitPosition)
	}

	var bits *bitset.BitSet
	if v.bits == nil {
		bits = bitset.New(Width)
	} else {
		bits = v.bits.Clone()
	}
	bits.Flip(uint(position))

	return fromBits(bits), nil
}

// Value returns a copy of the integer value. Empty vectors report 0.
func (v BitVector) Value() *big.Int {
	if v.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.value)
}

// Uint64 returns the value as a machine integer. It is exact for every
// representable vector.
func (v BitVector) Uint64() uint64 {
	if v.value == nil {
		return 0
	}
	return v.value.Uint64()
}

// Bit returns the value (0 or 1) of the bit at position.
func (v BitVector) Bit(position int) uint8 {
	if v.bits == nil || position < 0 || position >= Width {
		return 0
	}
	if v.bits.Test(uint(position)) {
		return 1
	}
	return 0
}

// Bits returns all 64 bits ordered by position, least-significant first.
func (v BitVector) Bits() []Bit {
	out := make([]Bit, Width)
	for i := range out {
		out[i] = Bit{Position: i, Value: v.Bit(i)}
	}
	return out
}

// Bytes groups the bits into 8 display bytes, least-significant group first.
func (v BitVector) Bytes() [ByteCount]Byte {
	var out [ByteCount]Byte
	for pos := 0; pos < Width; pos++ {
		idx, off := ByteIndex(pos), BitInByte(pos)
		out[idx].Index = idx
		out[idx].Bits[off] = Bit{Position: pos, Value: v.Bit(pos)}
	}
	return out
}

// OnesCount returns the number of set bits.
func (v BitVector) OnesCount() int {
	if v.bits == nil {
		return 0
	}
	return int(v.bits.Count())
}

// DecimalText renders the value in canonical base 10. Empty vectors render
// as the empty string.
func (v BitVector) DecimalText() string {
	if !v.set {
		return ""
	}
	return v.value.Text(10)
}

// BinaryText renders exactly 64 characters, most-significant bit first.
func (v BitVector) BinaryText() string {
	var sb strings.Builder
	sb.Grow(Width)
	for pos := Width - 1; pos >= 0; pos-- {
		if v.Bit(pos) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HexText renders the value as 16 zero-padded lowercase hex digits.
func (v BitVector) HexText() string {
	return fmt.Sprintf("%016x", v.Uint64())
}

// Equal reports whether both vectors hold the same state.
func (v BitVector) Equal(other BitVector) bool {
	if v.set != other.set {
		return false
	}
	if !v.set {
		return true
	}
	return v.value.Cmp(other.value) == 0 && v.bits.Equal(other.bits)
}

// Consistent reports whether the value equals the sum of its bit weights.
func (v BitVector) Consistent() bool {
	if !v.set {
		return v.OnesCount() == 0
	}
	return sum(v.bits).Cmp(v.value) == 0
}

// String implements fmt.Stringer.
func (v BitVector) String() string {
	if !v.set {
		return "<empty>"
	}
	return v.DecimalText()
}

// ByteIndex returns the display group that holds position.
func ByteIndex(position int) int {
	return position / 8
}

// BitInByte returns the offset of position inside its display group.
func BitInByte(position int) int {
	return position % 8
}

// MaxValue returns 2^64 - 1.
func MaxValue() *big.Int {
	return new(big.Int).Set(maxValue)
}
