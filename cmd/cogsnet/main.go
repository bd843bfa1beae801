package main

import (
	"os"

	"github.com/cogsnet/cogsnet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
