package main

import (
	"os"

	"github.com/kailas-cloud/wikisearch/internal/transport/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.Build).Execute(); err != nil {
		os.Exit(1)
	}
}
