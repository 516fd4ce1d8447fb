package main

import (
	"os"

	"github.com/arthur-debert/dunc/cmd/dunc/commands"
	"github.com/arthur-debert/dunc/pkg/output"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.NewPrinter(os.Stderr, output.DetectFormat(os.Stderr)).Error(err)
		os.Exit(1)
	}
}
