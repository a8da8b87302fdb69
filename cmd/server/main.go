package main

import (
	"os"

	"github.com/magicboy5300/exchange/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
