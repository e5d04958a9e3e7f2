package migration

import (
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestZeroMigrationIsNotAllowed(t *testing.T) {
	reg := newRegister()

	assert.IsErr(t, errors.ErrInput, reg.Register(0, &MyMsg{}, NoModification))
	assert.IsErr(t, errors.ErrInput, reg.Apply(nil, &MyMsg{}, 0))
}

func TestRegisterMigrationMustBeSequential(t *testing.T) {
	reg := newRegister()

	// Each migration must start with 1.
	assert.IsErr(t, errors.ErrInput, reg.Register(2, &MyMsg{}, NoModification))

	reg.MustRegister(1, &MyMsg{}, NoModification)
	reg.MustRegister(2, &MyMsg{}, NoModification)
	assert.IsErr(t, errors.ErrInput, reg.Register(4, &MyMsg{}, NoModification))
	assert.IsErr(t, errors.ErrDuplicate, reg.Register(2, &MyMsg{}, NoModification))

	reg.MustRegister(3, &MyMsg{}, NoModification)
}

func TestRegisterNonStruct(t *testing.T) {
	reg := newRegister()
	var m Migratable
	assert.IsErr(t, errors.ErrType, reg.Register(1, m, NoModification))
}

func TestApply(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyMsg{}, NoModification)
	reg.MustRegister(2, &MyMsg{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyMsg).Content += " to2"
		return nil
	})
	reg.MustRegister(3, &MyMsg{}, NoModification)
	reg.MustRegister(4, &MyMsg{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyMsg).Content += " to4"
		return nil
	})

	cases := map[string]struct {
		msg         *MyMsg
		migrateTo   uint32
		wantErr     *errors.Error
		wantContent string
		wantSchema  uint32
	}{
		"already at the current version": {
			msg:         &MyMsg{Metadata: &weave.Metadata{Schema: 1}, Content: "init"},
			migrateTo:   1,
			wantContent: "init",
			wantSchema:  1,
		},
		"migrate from one to four": {
			msg:         &MyMsg{Metadata: &weave.Metadata{Schema: 1}, Content: "init"},
			migrateTo:   4,
			wantContent: "init to2 to4",
			wantSchema:  4,
		},
		"migrate a subset": {
			msg:         &MyMsg{Metadata: &weave.Metadata{Schema: 2}, Content: "init"},
			migrateTo:   3,
			wantContent: "init",
			wantSchema:  3,
		},
		"missing migration": {
			msg:       &MyMsg{Metadata: &weave.Metadata{Schema: 4}, Content: "init"},
			migrateTo: 5,
			wantErr:   errors.ErrSchema,
		},
		"schema higher than requested": {
			msg:       &MyMsg{Metadata: &weave.Metadata{Schema: 3}, Content: "init"},
			migrateTo: 2,
			wantErr:   errors.ErrSchema,
		},
		"missing metadata": {
			msg:       &MyMsg{Content: "init"},
			migrateTo: 2,
			wantErr:   errors.ErrMetadata,
		},
		"validation runs on the final version": {
			msg:       &MyMsg{Metadata: &weave.Metadata{Schema: 1}, Err: errors.ErrState},
			migrateTo: 2,
			wantErr:   errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := reg.Apply(nil, tc.msg, tc.migrateTo)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantContent, tc.msg.Content)
			assert.Equal(t, tc.wantSchema, tc.msg.Metadata.Schema)
		})
	}
}

func TestApplyNotRegistered(t *testing.T) {
	reg := newRegister()
	msg := &MyMsg{Metadata: &weave.Metadata{Schema: 1}}
	assert.IsErr(t, errors.ErrSchema, reg.Apply(nil, msg, 1))
}
