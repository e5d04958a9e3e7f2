package coin

import (
	"bytes"

	"github.com/iov-one/junobox/codec"
)

// Marshal serializes the coin into the protobuf format.
func (c *Coin) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.String(1, c.Denom)
	enc.Bytes(2, bytes.TrimLeft(c.Amount.Bytes(), "\x00"))
	return enc.Result()
}

// Unmarshal loads the coin from its protobuf representation.
func (c *Coin) Unmarshal(raw []byte) error {
	*c = Coin{}
	return codec.Decode(raw, func(f *codec.Field) error {
		switch f.Num {
		case 1:
			denom, err := f.String()
			c.Denom = denom
			return err
		case 2:
			b, err := f.Bytes()
			if err != nil {
				return err
			}
			return c.Amount.SetBytes(b)
		}
		return codec.UnknownField(f)
	})
}
