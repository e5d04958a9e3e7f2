package weave_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := weave.NewAddress([]byte("some data"))
	assert.NotEqual(t, fmt.Sprintf("%X", []byte(addr)), addr.String())
	assert.Regexp(t, "^juno1", addr.String())

	cond := weave.NewCondition("12", "32", []byte("ABCD123456LHB"))
	assert.Equal(t, "12/32/"+fmt.Sprintf("%X", []byte("ABCD123456LHB")), cond.String())
}

func TestConditionParse(t *testing.T) {
	cond := weave.NewCondition("boxes", "escrow", []byte("module"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "boxes", ext)
	assert.Equal(t, "escrow", typ)
	assert.Equal(t, []byte("module"), data)

	_, _, _, err = weave.Condition("no-slashes").Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(weave.Condition("a/b/c").Validate()))
}

func TestParseAddress(t *testing.T) {
	addr := weave.NewAddress([]byte("a condition"))
	cond := weave.NewCondition("foo", "bar", []byte("conditiondata"))

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding is bech32": {
			enc:      addr.String(),
			wantAddr: addr,
		},
		"explicit bech32": {
			enc:      "bech32:" + addr.String(),
			wantAddr: addr,
		},
		"hex decoding": {
			enc:      "hex:" + hex.EncodeToString(addr),
			wantAddr: addr,
		},
		"cond decoding": {
			enc:      "cond:foo/bar/636f6e646974696f6e64617461",
			wantAddr: cond.Address(),
		},
		"invalid condition format": {
			enc:     "cond:foo/636f6e646974696f6e64617461",
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			enc:     "cond:foo/bar/zzzzz",
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrType,
		},
		"hex address of a wrong length": {
			enc:     "hex:0102",
			wantErr: errors.ErrInput,
		},
		"empty hex address": {
			enc:     "hex:",
			wantErr: errors.ErrEmpty,
		},
		"broken bech32": {
			enc:     "juno1notvalid",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := weave.ParseAddress(tc.enc)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q error, got %+v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := weave.NewAddress([]byte("json"))

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)
}

func TestConditionJSON(t *testing.T) {
	cond := weave.NewCondition("foo", "bar", []byte("conditiondata"))

	raw, err := json.Marshal(cond)
	require.NoError(t, err)

	var got weave.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, cond.Equals(got))

	err = json.Unmarshal([]byte(`"foo/636f6e646974696f6e64617461"`), &got)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(weave.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(weave.Address("short").Validate()))
	assert.NoError(t, weave.NewAddress([]byte("x")).Validate())
	assert.Len(t, weave.NewAddress([]byte("x")), weave.AddressLength)
}
