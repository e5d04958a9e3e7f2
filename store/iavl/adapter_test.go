package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weavetest/assert"
)

func workingTreeConstructor() (store.CacheableKVStore, func()) {
	s := NewMemCommitStore()
	return store.BTreeCacheable{KVStore: treeAdapter{tree: s.tree}}, s.Close
}

func TestTreeGetSet(t *testing.T) {
	store.NewTestSuite(workingTreeConstructor).GetSet(t)
}

func TestTreeCacheConflicts(t *testing.T) {
	store.NewTestSuite(workingTreeConstructor).CacheConflicts(t)
}

func TestTreeFuzzIterator(t *testing.T) {
	store.NewTestSuite(workingTreeConstructor).FuzzIterator(t)
}

func TestTreeIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(workingTreeConstructor).IteratorWithConflicts(t)
}

func TestCommitStoreOnlyServesCommittedData(t *testing.T) {
	s := NewMemCommitStore()
	defer s.Close()

	cache := s.CacheWrap()
	assert.Nil(t, cache.Set([]byte("box"), []byte("1")))
	assert.Nil(t, cache.Write())

	got, err := s.Get([]byte("box"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := s.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("commit must return a hash")
	}

	got, err = s.Get([]byte("box"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), got)

	latest, err := s.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "junobox-iavl")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	s, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	assert.Nil(t, s.LoadLatestVersion())

	cache := s.CacheWrap()
	assert.Nil(t, cache.Set([]byte("counter"), []byte{0, 0, 0, 0, 0, 0, 0, 2}))
	assert.Nil(t, cache.Write())
	first, err := s.Commit()
	assert.Nil(t, err)
	s.Close()

	// reopening the database restores the last committed version
	s, err = NewCommitStore(dir, "state")
	assert.Nil(t, err)
	defer s.Close()
	assert.Nil(t, s.LoadLatestVersion())

	latest, err := s.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, first.Version, latest.Version)
	assert.Equal(t, first.Hash, latest.Hash)

	got, err := s.Get([]byte("counter"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, got)
}
