package main

import (
	"os"

	"github.com/resume-goat/resume-goat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
