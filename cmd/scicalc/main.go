package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/zephyrtronium/scicalc/cmd/scicalc/commands"
)

func main() {
	if err := commands.NewRoot().Execute(); err != nil {
		fmt.Fprint(os.Stderr, pterm.Error.Sprintln(err))
		os.Exit(1)
	}
}
