package main

import (
	"flag"
	"fmt"
	"io"

	junoboxd "github.com/iov-one/junobox/cmd/junoboxd/app"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/bank"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transfering funds from the source account to the
destination account.
		`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source account address that the funds are sent from.")
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the funds are sent to.")
		amountFl = flCoin(fl, "amount", "1 "+junoboxd.DefaultDenom, "An amount that is to be transferred.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Parse(args)

	tx := junoboxd.NewTx(&bank.SendMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      amountFl,
		Memo:        *memoFl,
	})
	_, err := writeTx(output, tx)
	return err
}
