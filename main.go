// ABOUTME: Entry point for the collabform CLI
// ABOUTME: Terminal client for the CollabForm collaborative forms backend

package main

import (
	"fmt"
	"os"

	"github.com/collabform/collabform-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
