package boxes

import (
	"context"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
)

const optKey = "boxes"

// GenesisConfig is the optional escrow configuration in the genesis file.
// The escrow can be initialized later with InitMsg if it is not present.
type GenesisConfig struct {
	Owner        weave.Address `json:"owner"`
	Denom        string        `json:"denom"`
	RejectReopen bool          `json:"reject_reopen"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis initializes the escrow if the genesis declares it.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf *GenesisConfig
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return err
	}
	if conf == nil {
		return nil
	}
	if err := conf.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	_, err := NewEngine(NewStore()).Initialize(context.Background(), db, conf.Owner, conf.Denom, conf.RejectReopen)
	return err
}
