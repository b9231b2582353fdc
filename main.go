// main is the entry point for the rotorpost CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rotorpost/rotorpost/cmd"
	"github.com/rotorpost/rotorpost/internal/archive"
	"github.com/rotorpost/rotorpost/internal/contract"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and releases shared resources afterwards. Kept
// separate from main so the deferred cleanup still runs before os.Exit.
func run() int {
	defer archive.CloseArchive()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Profiling shutdown failed", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		return 1
	}
	return 0
}
