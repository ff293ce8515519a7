// Package main is the entry point for mwb-server.
package main

import (
	"os"

	"github.com/donaldgifford/mwb-pricing/cmd/mwb-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
