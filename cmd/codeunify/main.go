// Package main provides the entry point for the codeunify CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/codeunify/cmd/codeunify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
