package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/junobox/client"
	"github.com/iov-one/junobox/x/sigs"
)

func defaultTMAddr() string {
	return env("BOXCLI_TM_ADDR", "http://localhost:26657")
}

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain ID and the signer sequence are fetched from the node, unless both
are provided.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(),
			"Tendermint node address. You can use BOXCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use BOXCLI_PRIV_KEY environment variable to set it.")
		chainFl = fl.String("chain", "", "Chain ID. Fetched from the node when empty.")
		seqFl   = fl.Int64("seq", -1, "Signer sequence. Fetched from the node when negative.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	ctx := context.Background()
	chainID, seq := *chainFl, *seqFl
	if chainID == "" || seq < 0 {
		cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
		if chainID == "" {
			if chainID, err = cli.ChainID(ctx); err != nil {
				return fmt.Errorf("cannot fetch chain ID: %s", err)
			}
		}
		if seq < 0 {
			if seq, err = cli.NextNonce(ctx, key.PublicKey().Address()); err != nil {
				return fmt.Errorf("cannot get the next sequence number: %s", err)
			}
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
