package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[stkd] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "stkd"
	app.Usage = "Staking Ledger Daemon (stkd)."
	app.Commands = append(app.Commands, initCommand, startCommand)
	app.Commands = append(app.Commands, adminCommands...)
	app.Commands = append(app.Commands, txCommands...)
	app.Commands = append(app.Commands, queryCommands...)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
