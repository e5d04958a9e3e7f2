package main

import (
	"flag"
	"fmt"
	"io"

	junoboxd "github.com/iov-one/junobox/cmd/junoboxd/app"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/boxes"
)

func cmdHashPassword(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the hash of a password, as expected by a box.
`)
		fl.PrintDefaults()
	}
	var (
		passwordFl = fl.String("password", "", "Password to be hashed.")
	)
	fl.Parse(args)

	if *passwordFl == "" {
		flagDie("password is required")
	}
	_, err := fmt.Fprintln(output, boxes.HashPassword(*passwordFl))
	return err
}

func cmdInitBoxes(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction initializing the escrow. The signer becomes the owner.
This can be done only once per chain.
`)
		fl.PrintDefaults()
	}
	var (
		denomFl  = fl.String("denom", junoboxd.DefaultDenom, "Denomination boxes are funded with.")
		rejectFl = fl.Bool("reject-reopen", false, "Reject opening of an already opened box.")
	)
	fl.Parse(args)

	if !coin.IsDenom(*denomFl) {
		flagDie("invalid denomination %q", *denomFl)
	}

	tx := junoboxd.NewTx(&boxes.InitMsg{
		Metadata:     &weave.Metadata{Schema: 1},
		Denom:        *denomFl,
		RejectReopen: *rejectFl,
	})
	_, err := writeTx(output, tx)
	return err
}

func cmdCreateBoxes(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction creating one or more boxes. Each box is declared with a
separate -box flag, in the form <amount>:<password>. Passwords are hashed
before being put into the transaction.

Attached funds default to the sum of all boxes.
`)
		fl.PrintDefaults()
	}
	var specs boxSpecs
	fl.Var(&specs, "box", "A box in the form <amount>:<password>. Can be repeated.")
	var (
		denomFl = fl.String("denom", junoboxd.DefaultDenom, "Denomination of the attached funds.")
		fundsFl = flCoin(fl, "funds", "", "Funds attached to the request. Defaults to the sum of all boxes.")
	)
	fl.Parse(args)

	if len(specs) == 0 {
		flagDie("at least one box is required")
	}

	funds := fundsFl
	if coin.IsEmpty(funds) {
		total, err := totalFunds(specs)
		if err != nil {
			return err
		}
		funds = &coin.Coin{Denom: *denomFl, Amount: total}
	}

	tx := junoboxd.NewTx(&boxes.CreateBoxesMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Boxes:    specs,
		Funds:    coin.Coins{funds},
	})
	_, err := writeTx(output, tx)
	return err
}

func totalFunds(specs []boxes.BoxSpec) (coin.Amount, error) {
	var total coin.Amount
	for _, s := range specs {
		var err error
		if total, err = total.Add(s.Funds); err != nil {
			return total, err
		}
	}
	return total, nil
}

func cmdOpenBox(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction opening a box. When the password is correct, the box
funds are paid to the signer.
`)
		fl.PrintDefaults()
	}
	var (
		idFl       = fl.Uint64("id", 0, "ID of the box to open.")
		passwordFl = fl.String("password", "", "Password of the box.")
	)
	fl.Parse(args)

	if *idFl == 0 {
		flagDie("box id is required")
	}

	tx := junoboxd.NewTx(&boxes.OpenBoxMsg{
		Metadata: &weave.Metadata{Schema: 1},
		BoxID:    *idFl,
		Password: *passwordFl,
	})
	_, err := writeTx(output, tx)
	return err
}
