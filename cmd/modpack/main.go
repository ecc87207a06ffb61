package main

import (
	"fmt"
	"os"

	"github.com/soulcrysis/modpack/internal/cli"
	"github.com/soulcrysis/modpack/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := style.Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		os.Exit(1)
	}
}
