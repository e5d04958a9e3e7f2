package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iov-one/junobox/commands/server"
	junoboxd "github.com/iov-one/junobox/cmd/junoboxd/app"
	"github.com/iov-one/junobox/weave"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	flagMetrics  = "metrics"
	varHome      *string
	varLogLevel  *string
	varMetrics   *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".junoboxd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "minimum log level: debug, info, error or none")
	varMetrics = flag.String(flagMetrics, "", "address to expose prometheus metrics on, disabled when empty")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Fprintln(flag.CommandLine.Output(), `junoboxd
        Password gated escrow boxes

help      Print this message
init      Initialize app options in genesis file
start     Run the abci server
getblock  Extract a block from blockchain.db
retry     Run the last block again to ensure it produces the same result
validate  Parse the genesis file and run its initializers on a memory store
version   Print the app version

Global flags:`)
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if *varMetrics != "" {
		go serveMetrics(logger, *varMetrics)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(junoboxd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(junoboxd.GenerateApp, logger, *varHome, rest)
	case "getblock":
		err = server.GetBlockCmd(logger, *varHome, rest)
	case "retry":
		err = server.RetryCmd(junoboxd.InlineApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(junoboxd.Initializers(), rest)
	case "version":
		fmt.Println(weave.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "junobox")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}

func serveMetrics(logger log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "err", err)
	}
}
