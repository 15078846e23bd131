package main

import (
	"os"

	"github.com/ArtemKolodko/band-oracle-updater/cmd/updater/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
