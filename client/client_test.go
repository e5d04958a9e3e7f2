package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/junobox/client"
	junoboxd "github.com/iov-one/junobox/cmd/junoboxd/app"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/crypto"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/store/iavl"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/iov-one/junobox/x/sigs"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const chainID = "junobox-client-test"

// appConn serves rpc calls from an in-process application, committing a
// block for every broadcast transaction.
type appConn struct {
	app    abci.Application
	height int64
	txs    map[string]*ctypes.ResultTx
}

var _ client.Conn = (*appConn)(nil)

func newAppConn(t *testing.T, owner weave.Address) *appConn {
	t.Helper()
	state, err := junoboxd.GenInitOptions([]string{junoboxd.DefaultDenom, owner.String()})
	require.NoError(t, err)
	app := junoboxd.InlineApp(iavl.NewMemCommitStore(), log.NewNopLogger(), false)
	app.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	app.Commit()
	return &appConn{app: app, txs: make(map[string]*ctypes.ResultTx)}
}

func (c *appConn) Status() (*ctypes.ResultStatus, error) {
	return &ctypes.ResultStatus{SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height}}, nil
}

func (c *appConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{Genesis: &tmtypes.GenesisDoc{ChainID: chainID}}, nil
}

func (c *appConn) ABCIQueryWithOptions(path string, data common.HexBytes, opts rpcclient.ABCIQueryOptions) (*ctypes.ResultABCIQuery, error) {
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

func (c *appConn) BroadcastTxSync(tx tmtypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	res := c.app.CheckTx(tx)
	return &ctypes.ResultBroadcastTx{Code: res.Code, Data: res.Data, Log: res.Log, Hash: tx.Hash()}, nil
}

func (c *appConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	check := c.app.CheckTx(tx)
	if check.IsErr() {
		return &ctypes.ResultBroadcastTxCommit{CheckTx: check, Hash: tx.Hash()}, nil
	}
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: chainID, Height: c.height, Time: time.Now()}})
	deliver := c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()

	c.txs[string(tx.Hash())] = &ctypes.ResultTx{Hash: tx.Hash(), Height: c.height, TxResult: deliver, Tx: tx}
	return &ctypes.ResultBroadcastTxCommit{CheckTx: check, DeliverTx: deliver, Hash: tx.Hash(), Height: c.height}, nil
}

func (c *appConn) Tx(hash []byte, prove bool) (*ctypes.ResultTx, error) {
	res, ok := c.txs[string(hash)]
	if !ok {
		return nil, errors.Wrap(errors.ErrNotFound, "tx")
	}
	return res, nil
}

func signTx(t *testing.T, cli *client.Client, key *crypto.PrivateKey, msg weave.Msg) *junoboxd.Tx {
	t.Helper()
	ctx := context.Background()
	nonce, err := cli.NextNonce(ctx, key.PublicKey().Address())
	require.NoError(t, err)
	chain, err := cli.ChainID(ctx)
	require.NoError(t, err)

	tx := junoboxd.NewTx(msg)
	sig, err := sigs.SignTx(key, tx, chain, nonce)
	require.NoError(t, err)
	tx.Signatures = append(tx.Signatures, sig)
	return tx
}

func TestClientBoxes(t *testing.T) {
	ctx := context.Background()
	owner := weavetest.NewKey()
	opener := weavetest.NewKey()
	cli := client.NewClient(newAppConn(t, owner.PublicKey().Address()))

	n, err := cli.BoxCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)

	conf, err := cli.Config(ctx)
	require.NoError(t, err)
	require.Equal(t, junoboxd.DefaultDenom, conf.Denom)

	create := &boxes.CreateBoxesMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Boxes: []boxes.BoxSpec{
			{Funds: coin.NewAmount(300), HashedPassword: boxes.HashPassword("secret")},
		},
		Funds: coin.Coins{coin.NewCoinp(300, junoboxd.DefaultDenom)},
	}
	res, err := cli.CommitTx(ctx, signTx(t, cli, owner, create))
	require.NoError(t, err)
	require.NoError(t, res.Err)

	var created boxes.CreateBoxesResult
	require.NoError(t, created.Unmarshal(res.Result.Data))
	require.Equal(t, []uint64{1}, created.BoxIDs)

	stored, err := cli.GetTxByID(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, res.Height, stored.Height)

	status, err := cli.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, res.Height, status.Height)

	// The nonce was used by the first transaction.
	nonce, err := cli.NextNonce(ctx, owner.PublicKey().Address())
	require.NoError(t, err)
	require.Equal(t, int64(1), nonce)

	open := &boxes.OpenBoxMsg{Metadata: &weave.Metadata{Schema: 1}, BoxID: 1, Password: "nope"}
	res, err = cli.CommitTx(ctx, signTx(t, cli, opener, open))
	require.NoError(t, err)
	require.True(t, boxes.ErrIncorrectPassword.Is(res.Err), "%+v", res.Err)

	open.Password = "secret"
	res, err = cli.CommitTx(ctx, signTx(t, cli, opener, open))
	require.NoError(t, err)
	require.NoError(t, res.Err)

	box, err := cli.Box(ctx, 1)
	require.NoError(t, err)
	require.True(t, box.Opened())

	w, err := cli.Wallet(ctx, opener.PublicKey().Address())
	require.NoError(t, err)
	require.Equal(t, coin.Coins{coin.NewCoinp(300, junoboxd.DefaultDenom)}, w.Coins)

	_, err = cli.Box(ctx, 2)
	require.True(t, boxes.ErrBoxNotFound.Is(err), "%+v", err)
}

func TestClientRejectedTx(t *testing.T) {
	ctx := context.Background()
	owner := weavetest.NewKey()
	cli := client.NewClient(newAppConn(t, owner.PublicKey().Address()))

	// No signature is rejected by the check.
	tx := junoboxd.NewTx(&boxes.OpenBoxMsg{Metadata: &weave.Metadata{Schema: 1}, BoxID: 1, Password: "x"})
	_, err := cli.SubmitTx(ctx, tx)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = cli.CommitTx(ctx, tx)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	w, err := cli.Wallet(ctx, weavetest.NewCondition().Address())
	require.NoError(t, err)
	require.Empty(t, w.Coins)
}
