// Command corelevels reports core-level energies per atom from QM calculations.
package main

import (
	"os"

	"github.com/rmera/corelevels/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
