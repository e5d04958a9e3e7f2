package junoboxd

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/iov-one/junobox/x/sigs"
	"github.com/stretchr/testify/require"
)

func TestTxSerialization(t *testing.T) {
	key := weavetest.NewKey()
	msgs := []weave.Msg{
		&boxes.InitMsg{Metadata: &weave.Metadata{Schema: 1}, Denom: "ujuno", RejectReopen: true},
		&boxes.OpenBoxMsg{Metadata: &weave.Metadata{Schema: 1}, BoxID: 3, Password: "secret"},
		&migration.UpgradeSchemaMsg{Metadata: &weave.Metadata{Schema: 1}, Pkg: "boxes", ToVersion: 2},
	}
	for _, msg := range msgs {
		tx := NewTx(msg)
		unsigned, err := tx.GetSignBytes()
		require.NoError(t, err)

		sig, err := sigs.SignTx(key, tx, chainID, 4)
		require.NoError(t, err)
		tx.Signatures = []*sigs.StdSignature{sig}

		signBytes, err := tx.GetSignBytes()
		require.NoError(t, err)
		require.Equal(t, unsigned, signBytes)

		raw, err := tx.Marshal()
		require.NoError(t, err)
		decoded, err := TxDecoder(raw)
		require.NoError(t, err)
		require.Equal(t, tx, decoded)

		got, err := decoded.GetMsg()
		require.NoError(t, err)
		require.Equal(t, msg.Path(), got.Path())
	}
}

func TestTxErrors(t *testing.T) {
	_, err := NewTx(nil).GetMsg()
	require.True(t, errors.ErrMsg.Is(err))

	_, err = NewTx(&weavetest.Msg{RoutePath: "test/unknown"}).Marshal()
	require.True(t, errors.ErrType.Is(err))

	// Two messages in a single transaction are rejected.
	first, err := NewTx(&boxes.OpenBoxMsg{BoxID: 1}).Marshal()
	require.NoError(t, err)
	second, err := NewTx(&boxes.OpenBoxMsg{BoxID: 2}).Marshal()
	require.NoError(t, err)
	_, err = TxDecoder(append(first, second...))
	require.True(t, errors.ErrInput.Is(err))
}
