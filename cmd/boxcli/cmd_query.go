package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/junobox/client"
)

func queryFlags(name, description string) (*flag.FlagSet, *string) {
	fl := flag.NewFlagSet(name, flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), description)
		fl.PrintDefaults()
	}
	tmAddr := fl.String("tm", defaultTMAddr(),
		"Tendermint node address. You can use BOXCLI_TM_ADDR environment variable to set it.")
	return fl, tmAddr
}

func cmdQueryBoxCount(input io.Reader, output io.Writer, args []string) error {
	fl, tmAddrFl := queryFlags("box-count", `
Print the number of boxes created so far.
`)
	fl.Parse(args)

	cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	n, err := cli.BoxCount(context.Background())
	if err != nil {
		return fmt.Errorf("cannot query box count: %s", err)
	}
	_, err = fmt.Fprintln(output, n)
	return err
}

func cmdQueryBox(input io.Reader, output io.Writer, args []string) error {
	fl, tmAddrFl := queryFlags("box", `
Print the box with the given ID as JSON.
`)
	idFl := fl.Uint64("id", 0, "ID of the box.")
	fl.Parse(args)

	if *idFl == 0 {
		flagDie("box id is required")
	}
	cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	box, err := cli.Box(context.Background(), *idFl)
	if err != nil {
		return fmt.Errorf("cannot query box: %s", err)
	}
	return printJSON(output, box)
}

func cmdQueryConfig(input io.Reader, output io.Writer, args []string) error {
	fl, tmAddrFl := queryFlags("config", `
Print the escrow configuration as JSON.
`)
	fl.Parse(args)

	cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	conf, err := cli.Config(context.Background())
	if err != nil {
		return fmt.Errorf("cannot query configuration: %s", err)
	}
	return printJSON(output, conf)
}

func cmdQueryWallet(input io.Reader, output io.Writer, args []string) error {
	fl, tmAddrFl := queryFlags("wallet", `
Print the balance of an account as JSON.
`)
	addrFl := flAddress(fl, "addr", "", "Account address.")
	fl.Parse(args)

	if len(*addrFl) == 0 {
		flagDie("address is required")
	}
	cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	w, err := cli.Wallet(context.Background(), *addrFl)
	if err != nil {
		return fmt.Errorf("cannot query wallet: %s", err)
	}
	return printJSON(output, w)
}

func printJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
