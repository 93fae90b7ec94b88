// Package main provides the rank_agent CLI for fuzzy candidate evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rank_agent",
	Short: "Fuzzy candidate evaluation and ranking",
	Long:  "rank_agent scores candidates against weighted job criteria using fuzzy membership functions, builds consensus weights from evaluator proposals, and produces a deterministic ranking via REST API or offline JSON files.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
