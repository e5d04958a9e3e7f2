package boxes

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis    string
		wantErr    *errors.Error
		wantConfig bool
	}{
		"no configuration": {
			genesis: `{}`,
		},
		"configured": {
			genesis:    `{"boxes": {"owner": "` + owner.String() + `", "denom": "ujuno", "reject_reopen": true}}`,
			wantConfig: true,
		},
		"missing owner": {
			genesis: `{"boxes": {"denom": "ujuno"}}`,
			wantErr: errors.ErrEmpty,
		},
		"invalid denom": {
			genesis: `{"boxes": {"owner": "` + owner.String() + `", "denom": "!"}}`,
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			db := newDB(t)

			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			conf, err := NewStore().LoadConfig(db)
			if !tc.wantConfig {
				assert.IsErr(t, ErrNotInitialized, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, owner, conf.Owner)
			assert.Equal(t, "ujuno", conf.Denom)
			assert.Equal(t, true, conf.RejectReopen)
		})
	}
}
