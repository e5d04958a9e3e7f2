package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/boxes"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized, process is terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Address {
	var a addressFlag
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q weave.Address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return (*weave.Address)(&a)
}

type addressFlag weave.Address

func (a addressFlag) String() string {
	if len(a) == 0 {
		return ""
	}
	return weave.Address(a).String()
}

func (a *addressFlag) Set(raw string) error {
	addr, err := weave.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addressFlag(addr)
	return nil
}

// flCoin returns a coin flag value, initialized with the default value.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c coin.Coin
	if defaultVal != "" {
		var err error
		c, err = coin.ParseHumanFormat(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q coin.Coin flag value. %s", name, err)
		}
	}
	fl.Var(&c, name, usage)
	return &c
}

// boxSpecs collects repeated "<amount>:<password>" flag values. Passwords
// are hashed when the flag is parsed, so that only hashes are kept in the
// transaction.
type boxSpecs []boxes.BoxSpec

func (s boxSpecs) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.Funds.String() + ":" + b.HashedPassword
	}
	return strings.Join(parts, ",")
}

func (s *boxSpecs) Set(raw string) error {
	chunks := strings.SplitN(raw, ":", 2)
	if len(chunks) != 2 || chunks[1] == "" {
		return errors.Wrapf(errors.ErrInput, "box must be <amount>:<password>, got %q", raw)
	}
	amount, err := coin.ParseAmount(chunks[0])
	if err != nil {
		return errors.Wrap(err, "amount")
	}
	*s = append(*s, boxes.BoxSpec{
		Funds:          amount,
		HashedPassword: boxes.HashPassword(chunks[1]),
	})
	return nil
}

// flagDie terminates the program when a flag is invalid.
func flagDie(description string, args ...interface{}) {
	if !strings.HasSuffix(description, "\n") {
		description += "\n"
	}
	fmt.Fprintf(os.Stderr, description, args...)
	os.Exit(2)
}
