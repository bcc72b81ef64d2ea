package main

import (
	"os"

	"github.com/unclog-go/unclog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
