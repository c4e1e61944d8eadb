package main

import (
	"os"

	"github.com/ha1tch/orbview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
