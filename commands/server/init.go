package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/junobox/crypto"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// AppStateKey is the genesis file key holding the application state.
	AppStateKey = "app_state"
	// DirConfig is the tendermint configuration directory.
	DirConfig = "config"
	// GenesisFile is the name of the tendermint genesis file.
	GenesisFile = "genesis.json"
)

// GenOptions can parse command-line and flag to generate default app_state
// for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenerateCoinKey returns the address of a new key along with the private
// key itself. You can give coins to this address and return the key to the
// user to access them.
func GenerateCoinKey() (weave.Address, *crypto.PrivateKey) {
	privKey := crypto.GenPrivKeyEd25519()
	return privKey.PublicKey().Address(), privKey
}

// InitCmd will add the app_state to the genesis file created by
// `tendermint init` in the home directory.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, DirConfig, GenesisFile)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s: %s, run `tendermint init` first", genFile, err)
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "generate app state")
	}
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written", "file", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't want to
// parse, so we just grab it into a raw object format, so we can add one
// line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	if _, ok := doc[AppStateKey]; ok {
		return errors.Wrap(errors.ErrState, "app_state already set in genesis file")
	}

	doc[AppStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
