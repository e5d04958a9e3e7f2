package weave_test

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest/assert"
)

type staticQuery []weave.Model

func (s staticQuery) Query(weave.ReadOnlyKVStore, string, []byte) ([]weave.Model, error) {
	return s, nil
}

func TestQueryRouter(t *testing.T) {
	qr := weave.NewQueryRouter()
	qr.RegisterAll(func(r weave.QueryRouter) {
		r.Register("/boxes", staticQuery{weave.Pair([]byte("k"), []byte("v"))})
	})

	h := qr.Handler("/boxes")
	if h == nil {
		t.Fatal("handler not registered")
	}
	models, err := h.Query(nil, weave.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte("v"), models[0].Value)

	// leading slash is optional
	if qr.Handler("boxes") == nil {
		t.Fatal("handler not found without leading slash")
	}
	if qr.Handler("/unknown") != nil {
		t.Fatal("unexpected handler")
	}

	assert.Panics(t, func() {
		qr.Register("boxes", staticQuery{})
	})
}

func TestMetadata(t *testing.T) {
	var nilMeta *weave.Metadata
	assert.IsErr(t, errors.ErrMetadata, nilMeta.Validate())
	assert.IsErr(t, errors.ErrMetadata, (&weave.Metadata{}).Validate())

	meta := &weave.Metadata{Schema: 300}
	assert.Nil(t, meta.Validate())

	raw, err := meta.Marshal()
	assert.Nil(t, err)
	var got weave.Metadata
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, meta, &got)

	cpy := meta.Copy()
	cpy.Schema = 1
	assert.Equal(t, uint32(300), meta.Schema)
}
