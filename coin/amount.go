package coin

import (
	"encoding/json"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/iov-one/junobox/errors"
)

// AmountBits is the maximal size of an amount value. All amounts are
// unsigned integers of at most 128 bits.
const AmountBits = 128

// AmountSize is the size of the binary representation of an amount.
const AmountSize = AmountBits / 8

// Amount is an unsigned, 128 bit integer value expressed in the smallest
// unit of a denomination. Zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of given value.
func NewAmount(val uint64) Amount {
	var a Amount
	a.v.SetUint64(val)
	return a
}

// ParseAmount decodes a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return a, errors.Wrapf(errors.ErrAmount, "cannot parse %q: %s", s, err)
	}
	if v.BitLen() > AmountBits {
		return a, errors.Wrapf(errors.ErrOverflow, "%s exceeds %d bits", s, AmountBits)
	}
	a.v = *v
	return a, nil
}

// MustParseAmount is like ParseAmount but panics on error. Use it only for
// constants.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns the sum of two amounts. ErrOverflow is returned if the
// result does not fit in the amount size.
func (a Amount) Add(b Amount) (Amount, error) {
	var res Amount
	if _, overflow := res.v.AddOverflow(&a.v, &b.v); overflow || res.v.BitLen() > AmountBits {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, b)
	}
	return res, nil
}

// Sub returns the difference of two amounts. ErrAmount is returned if b
// is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	var res Amount
	if _, underflow := res.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "%s - %s is negative", a, b)
	}
	return res, nil
}

// Cmp compares two amounts. The result is -1 if a < b, 0 if a == b and 1
// if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Equals returns true if both amounts have the same value.
func (a Amount) Equals(b Amount) bool {
	return a.v.Eq(&b.v)
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Uint64 returns the amount value and true if it fits in 64 bits.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}

// String returns the decimal representation of the amount.
func (a Amount) String() string {
	return a.v.Dec()
}

// Validate returns an error if the amount exceeds the maximal size.
func (a Amount) Validate() error {
	if a.v.BitLen() > AmountBits {
		return errors.Wrapf(errors.ErrOverflow, "amount exceeds %d bits", AmountBits)
	}
	return nil
}

// Bytes returns the fixed size, big endian representation of the amount.
func (a Amount) Bytes() []byte {
	b32 := a.v.Bytes32()
	return append([]byte(nil), b32[32-AmountSize:]...)
}

// SetBytes loads the amount value from its big endian representation.
func (a *Amount) SetBytes(raw []byte) error {
	if len(raw) > AmountSize {
		return errors.Wrapf(errors.ErrOverflow, "%d bytes amount", len(raw))
	}
	a.v.SetBytes(raw)
	return nil
}

// MarshalJSON represents the amount as a decimal string, so that values
// beyond the float precision are not lost.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	s := string(raw)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	val, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = val
	return nil
}
