package main

import (
	"fmt"
	"os"

	"github.com/soulcrysis/modpack/internal/cli"
	"github.com/soulcrysis/modpack/internal/version"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MODPACK",
		Section: "1",
		Source:  "modpack " + version.Version,
		Manual:  "modpack manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
