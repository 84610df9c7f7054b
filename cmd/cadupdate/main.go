package main

import (
	"os"

	"github.com/mark43/cadupdate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
