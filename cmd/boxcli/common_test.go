package main

import (
	"bytes"
	"io"
	"testing"

	junoboxd "github.com/iov-one/junobox/cmd/junoboxd/app"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/stretchr/testify/require"
)

func TestTxStream(t *testing.T) {
	txs := []*junoboxd.Tx{
		junoboxd.NewTx(&boxes.OpenBoxMsg{Metadata: &weave.Metadata{Schema: 1}, BoxID: 1, Password: "a"}),
		junoboxd.NewTx(&boxes.InitMsg{Metadata: &weave.Metadata{Schema: 1}, Denom: "ujuno"}),
	}

	var buf bytes.Buffer
	for _, tx := range txs {
		_, err := writeTx(&buf, tx)
		require.NoError(t, err)
	}
	for _, want := range txs {
		got, _, err := readTx(&buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, _, err := readTx(&buf)
	require.Equal(t, io.EOF, err)
}

func TestReadTxTooBig(t *testing.T) {
	_, _, err := readTx(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
	require.Error(t, err)
}
