package bank

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/weavetest/assert"
)

type routes map[string]weave.Handler

func (r routes) Handle(m weave.Msg, h weave.Handler) {
	r[m.Path()] = h
}

func newDB(t testing.TB) weave.KVStore {
	t.Helper()
	db := store.MemStore()
	migration.MustInitPkg(db, packageName)
	return db
}

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		issue     []coin.Coin
		move      coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coins
		wantBob   coin.Coins
	}{
		"move part of the funds": {
			issue:     []coin.Coin{coin.NewCoin(1000, "ujuno")},
			move:      coin.NewCoin(400, "ujuno"),
			wantAlice: coin.Coins{coin.NewCoinp(600, "ujuno")},
			wantBob:   coin.Coins{coin.NewCoinp(400, "ujuno")},
		},
		"move all funds removes the wallet": {
			issue:   []coin.Coin{coin.NewCoin(1000, "ujuno")},
			move:    coin.NewCoin(1000, "ujuno"),
			wantBob: coin.Coins{coin.NewCoinp(1000, "ujuno")},
		},
		"insufficient funds": {
			issue:     []coin.Coin{coin.NewCoin(10, "ujuno")},
			move:      coin.NewCoin(11, "ujuno"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "ujuno")},
		},
		"other denomination": {
			issue:     []coin.Coin{coin.NewCoin(10, "ujuno")},
			move:      coin.NewCoin(1, "uatom"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "ujuno")},
		},
		"zero amount": {
			issue:     []coin.Coin{coin.NewCoin(10, "ujuno")},
			move:      coin.NewCoin(0, "ujuno"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoinp(10, "ujuno")},
		},
		"empty sender": {
			move:    coin.NewCoin(1, "ujuno"),
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newDB(t)
			ctrl := NewController(NewWalletBucket())
			for _, c := range tc.issue {
				assert.Nil(t, ctrl.IssueCoins(db, alice, c))
			}

			err := ctrl.MoveCoins(db, alice, bob, tc.move)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}

			got, err := ctrl.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestMoveCoinsToSelf(t *testing.T) {
	db := newDB(t)
	alice := weavetest.NewCondition().Address()
	ctrl := NewController(NewWalletBucket())
	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, "ujuno")))
	assert.Nil(t, ctrl.MoveCoins(db, alice, alice, coin.NewCoin(5, "ujuno")))

	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(5, "ujuno")}, got)
}

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	auth := &weavetest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		signer      weave.Condition
		msg         *SendMsg
		wantErr     *errors.Error
		wantBalance coin.Coins
	}{
		"valid send": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(30, "ujuno"),
				Memo:        "lunch",
			},
			wantBalance: coin.Coins{coin.NewCoinp(30, "ujuno")},
		},
		"not signed by the source": {
			signer: bob,
			msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(30, "ujuno"),
			},
			wantErr: errors.ErrUnauthorized,
		},
		"missing amount": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &weave.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
			},
			wantErr: errors.ErrAmount,
		},
		"missing metadata": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(30, "ujuno"),
			},
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newDB(t)
			ctrl := NewController(NewWalletBucket())
			assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), coin.NewCoin(100, "ujuno")))

			rt := routes{}
			RegisterRoutes(rt, auth, ctrl)
			h := rt[pathSendMsg]

			ctx := auth.SetConditions(context.Background(), tc.signer)
			tx := &weavetest.Tx{Msg: tc.msg}

			cres, err := h.Check(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, int64(sendTxCost), cres.GasAllocated)

			dres, err := h.Deliver(ctx, db, tx)
			assert.Nil(t, err)
			assert.Equal(t, 2, len(dres.Tags))

			got, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBalance, got)
		})
	}
}

func TestWalletSerialization(t *testing.T) {
	w := Wallet{
		Metadata: &weave.Metadata{Schema: 1},
		Coins:    coin.Coins{coin.NewCoinp(7, "uatom"), coin.NewCoinp(5, "ujuno")},
	}
	assert.Nil(t, w.Validate())

	weavetest.AssertProtoFields(t, "codec.proto", "Wallet", &w)
	weavetest.AssertProtoFields(t, "codec.proto", "SendMsg", &SendMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Source:      weavetest.NewCondition().Address(),
		Destination: weavetest.NewCondition().Address(),
		Amount:      coin.NewCoinp(1, "ujuno"),
		Memo:        "memo",
	})

	raw, err := w.Marshal()
	assert.Nil(t, err)
	var got Wallet
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, w, got)

	unsorted := Wallet{
		Metadata: &weave.Metadata{Schema: 1},
		Coins:    coin.Coins{coin.NewCoinp(5, "ujuno"), coin.NewCoinp(7, "uatom")},
	}
	if err := unsorted.Validate(); err == nil {
		t.Fatal("unsorted coins must not validate")
	}
}

func TestGenesis(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	raw, err := json.Marshal(map[string]interface{}{
		"bank": []interface{}{
			map[string]interface{}{
				"address": addr,
				"coins": []interface{}{
					map[string]interface{}{"denom": "ujuno", "amount": "1000"},
					map[string]interface{}{"denom": "uatom", "amount": 3},
				},
			},
		},
	})
	assert.Nil(t, err)
	var opts weave.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := newDB(t)
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	got, err := NewController(NewWalletBucket()).Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(3, "uatom"), coin.NewCoinp(1000, "ujuno")}, got)

	bad := weave.Options{"bank": json.RawMessage(`[{"address": "", "coins": []}]`)}
	if err := (Initializer{}).FromGenesis(bad, newDB(t)); err == nil {
		t.Fatal("empty address must fail")
	}
}
