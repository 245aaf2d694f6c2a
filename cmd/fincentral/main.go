package main

import (
	"os"

	"github.com/fincentral/backend/cmd/fincentral/commands"
)

// main is the entry point for the FinCentral CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
