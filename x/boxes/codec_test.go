package boxes

import (
	"reflect"
	"sort"
	"testing"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/weavetest/assert"
)

type protoModel interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// TestCodecMatchesProto ensures that every message declared in codec.proto
// is serialized with the declared field numbers and decodes back into the
// same value.
func TestCodecMatchesProto(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	models := map[string]protoModel{
		"Config": &Config{Metadata: meta(), Owner: addr, Denom: denom, RejectReopen: true},
		"Box": &Box{
			Metadata:       meta(),
			Creator:        addr,
			Funds:          coin.NewAmount(500),
			HashedPassword: HashPassword("secret"),
			State:          BoxOpened,
			Opener:         weavetest.NewCondition().Address(),
		},
		"BoxSpec":           &BoxSpec{Funds: coin.NewAmount(7), HashedPassword: HashPassword("a")},
		"InitMsg":           &InitMsg{Metadata: meta(), Denom: denom, RejectReopen: true},
		"CreateBoxesMsg":    &CreateBoxesMsg{Metadata: meta(), Boxes: []BoxSpec{spec(1, "a"), spec(2, "b")}, Funds: ujuno(3)},
		"OpenBoxMsg":        &OpenBoxMsg{Metadata: meta(), BoxID: 300, Password: "secret"},
		"CreateBoxesResult": &CreateBoxesResult{BoxIDs: []uint64{1, 2, 300}},
		"Transfer":          &Transfer{To: addr, Amount: coin.NewCoinp(10, denom)},
	}

	var names []string
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, weavetest.ProtoMessages(t, "codec.proto"), names)

	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			weavetest.AssertProtoFields(t, "codec.proto", name, m)

			raw, err := m.Marshal()
			assert.Nil(t, err)
			got := reflect.New(reflect.TypeOf(m).Elem()).Interface().(protoModel)
			assert.Nil(t, got.Unmarshal(raw))
			assert.Equal(t, m, got)
		})
	}
}

func TestBoxStateOverflowRejected(t *testing.T) {
	// State 2^32+2 must not wrap around into BoxOpened.
	raw := []byte{0x28, 0x82, 0x80, 0x80, 0x80, 0x10}
	var b Box
	err := b.Unmarshal(raw)
	assert.IsErr(t, errors.ErrInput, err)
}
