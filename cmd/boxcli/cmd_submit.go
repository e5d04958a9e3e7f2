package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/junobox/client"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/boxes"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it. The
command waits until the transaction is included in a block.

For certain transactions the response is written out.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTMAddr(),
			"Tendermint node address. You can use BOXCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	cli := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	res, err := cli.CommitTx(context.Background(), tx)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction failed: %s", res.Err)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	pretty, err := formatResponse(msg, res.Result.Data)
	if err != nil {
		return fmt.Errorf("cannot format result data %x: %s", res.Result.Data, err)
	}
	if pretty != "" {
		_, err = fmt.Fprintln(output, pretty)
	}
	return err
}

// formatResponse returns a human readable representation of the data
// returned by a message. An empty string is returned for messages whose
// result is not worth showing.
func formatResponse(msg weave.Msg, data []byte) (string, error) {
	format, ok := formatters[msg.Path()]
	if !ok {
		return "", nil
	}
	return format(data)
}

var formatters = map[string]func([]byte) (string, error){
	boxes.CreateBoxesMsg{}.Path(): fmtCreated,
	boxes.OpenBoxMsg{}.Path():     fmtTransfer,
}

func fmtCreated(raw []byte) (string, error) {
	var res boxes.CreateBoxesResult
	if err := res.Unmarshal(raw); err != nil {
		return "", err
	}
	return fmt.Sprint(res.BoxIDs), nil
}

func fmtTransfer(raw []byte) (string, error) {
	var t boxes.Transfer
	if err := t.Unmarshal(raw); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s paid to %s", t.Amount, t.To), nil
}
