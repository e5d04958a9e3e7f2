package junoboxd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/commands/server"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/boxes"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// AppName is returned by the abci Info call.
	AppName = "junobox"

	// DefaultDenom is used by the genesis generator when no
	// denomination is given.
	DefaultDenom = "ujuno"

	genesisBalance = 1000000000000
)

// GenInitOptions produces the app_state for a development chain. A single
// account is funded and configured as the escrow owner and the migration
// admin.
//
//   init [denom] [address]
//
// When no address is given, a new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	denom := DefaultDenom
	if len(args) > 0 {
		denom = args[0]
		if !coin.IsDenom(denom) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid denom %q", denom)
		}
	}

	var addr weave.Address
	if len(args) > 1 {
		a, err := weave.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		addr = a
	} else {
		a, key := server.GenerateCoinKey()
		raw, err := json.MarshalIndent(key, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		fmt.Println(string(raw))
		addr = a
	}

	return genesisState(addr, denom)
}

func genesisState(addr weave.Address, denom string) (json.RawMessage, error) {
	type schema struct {
		Pkg string `json:"pkg"`
		Ver uint32 `json:"ver"`
	}
	type account struct {
		Address weave.Address `json:"address"`
		Coins   coin.Coins    `json:"coins"`
	}
	state := map[string]interface{}{
		"initialize_schema": []schema{
			{Pkg: "bank", Ver: 1},
			{Pkg: "boxes", Ver: 1},
			{Pkg: "sigs", Ver: 1},
		},
		"conf": map[string]interface{}{
			"migration": map[string]interface{}{
				"metadata": weave.Metadata{Schema: 1},
				"admin":    addr,
			},
		},
		"bank": []account{
			{Address: addr, Coins: coin.Coins{coin.NewCoinp(genesisBalance, denom)}},
		},
		"boxes": boxes.GenesisConfig{
			Owner: addr,
			Denom: denom,
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "junobox.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return InlineApp(kv, logger, debug), nil
}

// InlineApp will take a previously prepared CommitKVStore and return a
// complete Application.
func InlineApp(kv weave.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	engine := boxes.NewEngine(boxes.NewStore())
	application := Application(AppName, Stack(engine), TxDecoder, kv, debug)
	application.WithLogger(logger)
	return application
}
