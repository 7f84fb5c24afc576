package main

import (
	"os"

	"github.com/modelchk/go-utap/cmd/utap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
