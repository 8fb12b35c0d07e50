// Package main is the entry point for the nova CLI.
package main

import (
	"os"

	"github.com/novahq/nova/cmd/nova/commands"
)

func main() {
	os.Exit(commands.Execute())
}
