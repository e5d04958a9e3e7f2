package coin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/junobox/errors"
)

// IsDenom is the RegExp to ensure valid denominations. Denominations follow
// the cosmos convention, for example "ujuno" or "ibc/27394FB0".
var IsDenom = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`).MatchString

// Coin is an amount of a single denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, denom string) Coin {
	return Coin{
		Denom:  denom,
		Amount: NewAmount(amount),
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, denom string) *Coin {
	c := NewCoin(amount, denom)
	return &c
}

// ID returns a coin denomination.
func (c Coin) ID() string {
	return c.Denom
}

// Add combines two coins. Returns error if they are of different
// denominations, or if the combination would cause an overflow
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a denom
	// set then it has no influence on the addition result.
	if c.Denom == "" && c.IsZero() {
		return o, nil
	}
	if o.Denom == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Denom, c.Denom)
	}
	sum, err := c.Amount.Add(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: c.Denom, Amount: sum}, nil
}

// Subtract given amount. ErrAmount is returned if the result would be
// negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Denom, c.Denom)
	}
	diff, err := c.Amount.Sub(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: c.Denom, Amount: diff}, nil
}

// Compare will check values of two coins, without inspecting the
// denomination. It is up to the caller to determine if they want to check
// this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	return c.Amount.Cmp(o.Amount)
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Denom == o.Denom && c.Amount.Equals(o.Amount)
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amounts are 0
func (c Coin) IsZero() bool {
	return c.Amount.IsZero()
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return !c.Amount.IsZero()
}

// IsGTE returns true if c is same type and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

// SameType returns true if they have the same denomination
func (c Coin) SameType(o Coin) bool {
	return c.Denom == o.Denom
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures that the coin is in the valid range and valid
// denomination.
func (c Coin) Validate() error {
	var err error
	if !IsDenom(c.Denom) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "invalid denomination: %q", c.Denom))
	}
	return errors.Append(err, c.Amount.Validate())
}

// String provides a human readable representation of the coin, the same
// as accepted by ParseHumanFormat.
func (c Coin) String() string {
	if c.Denom == "" {
		return c.Amount.String()
	}
	return c.Amount.String() + c.Denom
}

// ParseHumanFormat parse a human readable coin representation. Accepted
// format is a string of the amount followed by the denomination, with an
// optional space between:
//   "<amount>[ ]<denom>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format: %q", h)
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return Coin{}, err
	}
	c := Coin{Denom: m[2], Amount: amount}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

var humanCoinFormatRx = regexp.MustCompile(`^(\d+)\s*([a-zA-Z][a-zA-Z0-9/:._-]*)$`)

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}

// GoString is used by the %#v verb.
func (c Coin) GoString() string {
	return fmt.Sprintf("coin.Coin{Denom: %q, Amount: %s}", c.Denom, c.Amount)
}
