package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/plate/cmd/plate"
	"github.com/arthur-debert/plate/internal/version"
	"github.com/arthur-debert/plate/pkg/ui"
)

// Writes the plate(1) man page to stdout, for packaging.
func main() {
	rootCmd := plate.NewRootCmd(ui.NewConsole())

	err := doc.GenMan(rootCmd, plate.ManHeader(version.Version), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
