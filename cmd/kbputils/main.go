package main

import (
	"os"

	"github.com/nomadkaraoke/kbputils/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
