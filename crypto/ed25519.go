package crypto

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"golang.org/x/crypto/ed25519"
)

// Signer is the private half of a key pair.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is used to verify signatures and to build the signer condition.
type PublicKey struct {
	Ed25519 []byte
}

// PrivateKey can sign messages. Never store it on chain.
type PrivateKey struct {
	Ed25519 []byte
}

// Signature is created by PrivateKey.Sign.
type Signature struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a weave condition.
func (p *PublicKey) Condition() weave.Condition {
	return weave.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is the address of the condition of this key.
func (p *PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

// Validate returns an error if the key is not a valid ed25519 public key.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func marshalKey(b []byte) ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Bytes(1, b)
	return enc.Result()
}

func unmarshalKey(raw []byte) ([]byte, error) {
	var res []byte
	err := codec.Decode(raw, func(f *codec.Field) (err error) {
		if f.Num == 1 {
			res, err = f.Bytes()
			return err
		}
		return codec.UnknownField(f)
	})
	return res, err
}

// Marshal serializes the key into the protobuf format.
func (p *PublicKey) Marshal() ([]byte, error) { return marshalKey(p.Ed25519) }

// Unmarshal loads the key from its protobuf representation.
func (p *PublicKey) Unmarshal(raw []byte) (err error) {
	p.Ed25519, err = unmarshalKey(raw)
	return err
}

// Marshal serializes the key into the protobuf format.
func (p *PrivateKey) Marshal() ([]byte, error) { return marshalKey(p.Ed25519) }

// Unmarshal loads the key from its protobuf representation.
func (p *PrivateKey) Unmarshal(raw []byte) (err error) {
	p.Ed25519, err = unmarshalKey(raw)
	return err
}

// Marshal serializes the signature into the protobuf format.
func (s *Signature) Marshal() ([]byte, error) { return marshalKey(s.Ed25519) }

// Unmarshal loads the signature from its protobuf representation.
func (s *Signature) Unmarshal(raw []byte) (err error) {
	s.Ed25519, err = unmarshalKey(raw)
	return err
}

type keyJSON struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// MarshalJSON represents the key as a hex encoded ed25519 value.
func (p PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJSON{Type: "ed25519", Data: hex.EncodeToString(p.Ed25519)})
}

// UnmarshalJSON accepts the format produced by MarshalJSON.
func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var k keyJSON
	if err := json.Unmarshal(raw, &k); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if k.Type != "ed25519" {
		return errors.Wrapf(errors.ErrType, "key type %q", k.Type)
	}
	b, err := hex.DecodeString(k.Data)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(b) != ed25519.PrivateKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 private key size")
	}
	p.Ed25519 = b
	return nil
}
