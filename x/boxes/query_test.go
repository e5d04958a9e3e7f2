package boxes

import (
	"context"
	"testing"

	"github.com/iov-one/junobox/gconf"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestQueries(t *testing.T) {
	qr := weave.NewQueryRouter()
	RegisterQuery(qr)
	db := newDB(t)

	count := qr.Handler("/boxes/count")
	conf := qr.Handler("/boxes/config")
	boxes := qr.Handler("/boxes")

	res, err := conf.Query(db, weave.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	e := newInitializedEngine(t, db, false)
	creator := weavetest.NewCondition().Address()
	_, err = e.CreateBoxes(context.Background(), db, creator, []BoxSpec{spec(10, "a"), spec(20, "b")}, ujuno(30))
	assert.Nil(t, err)

	res, err = count.Query(db, weave.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("_s.boxes:id"), res[0].Key)
	// The reported key holds the counter state itself.
	raw, err := db.Get(res[0].Key)
	assert.Nil(t, err)
	assert.Equal(t, raw, res[0].Value)
	n, err := orm.DecodeSequence(res[0].Value)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), n)

	res, err = conf.Query(db, weave.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, gconf.Key("boxes"), res[0].Key)
	var c Config
	assert.Nil(t, c.Unmarshal(res[0].Value))
	assert.Equal(t, denom, c.Denom)

	res, err = boxes.Query(db, weave.KeyQueryMod, BoxKey(2))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, append([]byte("boxes:"), 0, 0, 0, 0, 0, 0, 0, 2), res[0].Key)
	var box Box
	assert.Nil(t, box.Unmarshal(res[0].Value))
	assert.Equal(t, HashPassword("b"), box.HashedPassword)

	res, err = boxes.Query(db, weave.KeyQueryMod, BoxKey(3))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = boxes.Query(db, weave.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = count.Query(db, weave.PrefixQueryMod, nil)
	if err == nil {
		t.Fatal("prefix query of the counter must fail")
	}
}
