package codec

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    uint64
	Name  string
	Flag  bool
	Nums  []uint64
	Child *sample
}

func (s *sample) Marshal() ([]byte, error) {
	enc := NewEncoder()
	enc.Uvarint(1, s.ID)
	enc.String(2, s.Name)
	enc.Bool(3, s.Flag)
	enc.PackedUvarints(4, s.Nums)
	enc.Message(5, s.Child)
	return enc.Result()
}

func (s *sample) Unmarshal(raw []byte) error {
	*s = sample{}
	return Decode(raw, func(f *Field) (err error) {
		switch f.Num {
		case 1:
			s.ID, err = f.Uvarint()
		case 2:
			s.Name, err = f.String()
		case 3:
			s.Flag, err = f.Bool()
		case 4:
			var nums []uint64
			nums, err = f.Uvarints()
			s.Nums = append(s.Nums, nums...)
		case 5:
			s.Child = &sample{}
			return f.Message(s.Child)
		default:
			return UnknownField(f)
		}
		return err
	})
}

func TestWireFormat(t *testing.T) {
	cases := map[string]struct {
		obj  *sample
		want []byte
	}{
		"empty": {
			obj:  &sample{},
			want: nil,
		},
		"varint": {
			obj:  &sample{ID: 150},
			want: []byte{0x08, 0x96, 0x01},
		},
		"string and bool": {
			obj:  &sample{Name: "hi", Flag: true},
			want: []byte{0x12, 0x02, 'h', 'i', 0x18, 0x01},
		},
		"packed": {
			obj:  &sample{Nums: []uint64{1, 300}},
			want: []byte{0x22, 0x03, 0x01, 0xac, 0x02},
		},
		"nested empty message is kept": {
			obj:  &sample{Child: &sample{}},
			want: []byte{0x2a, 0x00},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := tc.obj.Marshal()
			require.NoError(t, err)
			require.Equal(t, len(tc.want), len(raw))
			if len(tc.want) > 0 {
				require.Equal(t, tc.want, raw)
			}

			var got sample
			require.NoError(t, got.Unmarshal(raw))
			require.Equal(t, *tc.obj, got)
		})
	}
}

func TestDecodeUnpackedAndUnknown(t *testing.T) {
	raw := []byte{
		0x20, 0x07, // field 4, unpacked
		0x20, 0x08, // field 4, unpacked
		0x38, 0x05, // field 7, unknown varint
		0x41, 1, 2, 3, 4, 5, 6, 7, 8, // field 8, unknown fixed64
		0x12, 0x01, 'x',
	}
	var s sample
	require.NoError(t, s.Unmarshal(raw))
	require.Equal(t, sample{Nums: []uint64{7, 8}, Name: "x"}, s)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string][]byte{
		"truncated key":    {0xff},
		"truncated bytes":  {0x12, 0x05, 'a'},
		"zero field":       {0x00, 0x01},
		"wrong wire":       {0x0a, 0x01, 'a'},
		"unsupported wire": {0x0b},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var s sample
			err := s.Unmarshal(raw)
			require.True(t, errors.ErrInput.Is(err), "%+v", err)
		})
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(&Field{Num: 3}, "bad %s", "value")
	require.True(t, errors.ErrInput.Is(err))
	require.Contains(t, err.Error(), "field 3: bad value")
}

func TestUint32Range(t *testing.T) {
	decode := func(v uint64) (uint32, error) {
		enc := NewEncoder()
		enc.Uvarint(1, v)
		raw, err := enc.Result()
		require.NoError(t, err)
		var got uint32
		err = Decode(raw, func(f *Field) (err error) {
			got, err = f.Uint32()
			return err
		})
		return got, err
	}

	got, err := decode(1<<32 - 1)
	require.NoError(t, err)
	require.Equal(t, uint32(1<<32-1), got)

	_, err = decode(1<<32 + 2)
	require.True(t, errors.ErrInput.Is(err), "%+v", err)
}
