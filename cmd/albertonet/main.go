package main

import (
	"os"

	"github.com/tizor98/albertonet-sub000/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
