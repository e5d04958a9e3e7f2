package orm

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notes", &note{})

	assert.Nil(t, b.Put(db, []byte("a"), &note{Text: "first", Count: 1}))

	var got note
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, note{Text: "first", Count: 1}, got)
	assert.Nil(t, b.Has(db, []byte("a")))

	// overwrite
	assert.Nil(t, b.Put(db, []byte("a"), &note{Text: "second"}))
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, note{Text: "second"}, got)

	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("a"), &got))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))
}

func TestModelBucketPutValidation(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notes", &note{})

	cases := map[string]struct {
		key     []byte
		model   Model
		wantErr *errors.Error
	}{
		"valid": {
			key:   []byte("x"),
			model: &note{Text: "ok"},
		},
		"invalid model": {
			key:     []byte("x"),
			model:   &note{},
			wantErr: errors.ErrEmpty,
		},
		"missing key": {
			key:     nil,
			model:   &note{Text: "ok"},
			wantErr: errors.ErrEmpty,
		},
		"wrong model type": {
			key:     []byte("x"),
			model:   &other{note{Text: "ok"}},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := b.Put(db, tc.key, tc.model)
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notes", &note{})
	for _, key := range []string{"aa", "ab", "b"} {
		assert.Nil(t, b.Put(db, []byte(key), &note{Text: key}))
	}

	bucket := NewBucket("notes", NewSimpleObj(nil, &note{}))

	res, err := bucket.Query(db, "", []byte("ab"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("notes:ab"), res[0].Key)

	res, err = bucket.Query(db, "", []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = bucket.Query(db, "prefix", []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	obj, err := bucket.Parse([]byte("aa"), res[0].Value)
	assert.Nil(t, err)
	assert.Equal(t, &note{Text: "aa"}, obj.Value())

	_, err = bucket.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestInvalidBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("x", NewSimpleObj(nil, &note{})) })
	assert.Panics(t, func() { NewBucket("Notes", NewSimpleObj(nil, &note{})) })
}
