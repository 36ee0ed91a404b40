package main

import (
	"os"

	"github.com/amirhossein-jamali/credit-exchange/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
