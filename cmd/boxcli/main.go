package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/junobox/weave"
)

// commands is a register of all available commands. The name is matched
// with the first argument given.
//
// A command function reads only from the given input and writes only to
// the given output. Arguments exclude the program and command names and
// are parsed with the flag package. Commands can be combined into a
// pipeline:
//
//   $ boxcli open-box -id 1 -password secret \
//       | boxcli sign \
//       | boxcli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"box":           cmdQueryBox,
	"box-count":     cmdQueryBoxCount,
	"config":        cmdQueryConfig,
	"create-boxes":  cmdCreateBoxes,
	"hash-password": cmdHashPassword,
	"init-boxes":    cmdInitBoxes,
	"keyaddr":       cmdKeyaddr,
	"keygen":        cmdKeygen,
	"open-box":      cmdOpenBox,
	"send-tokens":   cmdSendTokens,
	"sign":          cmdSignTransaction,
	"submit":        cmdSubmitTransaction,
	"version":       cmdVersion,
	"view":          cmdTransactionView,
	"wallet":        cmdQueryWallet,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the junobox application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, weave.Version())
	return err
}
