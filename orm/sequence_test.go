package orm

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("boxes", "id")

	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)

	v, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), v)

	bz, err := s.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, bz)

	assert.Equal(t, []byte("_s.boxes:id"), s.Key())
	raw, err := db.Get(s.Key())
	assert.Nil(t, err)
	assert.Equal(t, bz, raw)

	assert.Nil(t, s.Set(db, 41))
	v, err = s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(42), v)

	// sequences with different names do not interfere
	other := NewBucket("boxes", NewSimpleObj(nil, &note{})).Sequence("other")
	latest, err = other.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("boxes", "id")
	assert.Nil(t, s.Set(db, ^uint64(0)))

	_, err := s.NextInt(db)
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)

	v, err = DecodeSequence(EncodeSequence(1 << 40))
	assert.Nil(t, err)
	assert.Equal(t, uint64(1<<40), v)
}
