// Package main is the entry point for the mwbctl CLI client.
package main

import (
	"github.com/donaldgifford/mwb-pricing/cmd/mwbctl/cmd"
)

func main() {
	cmd.Execute()
}
