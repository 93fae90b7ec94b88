package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rank_agent version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("rank_agent %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
