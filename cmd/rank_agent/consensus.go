package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/consensus"
)

var consensusCmd = &cobra.Command{
	Use:   "consensus",
	Short: "Build consensus weights from evaluator proposals",
	Long:  "Reads a weight proposals JSON file, rejects outlier opinions per criterion using median absolute deviation, and prints the normalized consensus weight set.",
	RunE:  runConsensus,
}

var (
	consensusProposals string
	consensusTolerance float64
)

func init() {
	consensusCmd.Flags().StringVarP(&consensusProposals, "proposals", "p", "", "Path to input weight proposals JSON file (required)")
	consensusCmd.Flags().Float64VarP(&consensusTolerance, "tolerance", "t", 2.0, "Outlier tolerance in scaled MAD units")

	if err := consensusCmd.MarkFlagRequired("proposals"); err != nil {
		panic(fmt.Sprintf("failed to mark proposals flag as required: %v", err))
	}

	rootCmd.AddCommand(consensusCmd)
}

func runConsensus(_ *cobra.Command, _ []string) error {
	if consensusTolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %f", consensusTolerance)
	}

	proposals, err := loadProposals(consensusProposals)
	if err != nil {
		return err
	}
	if len(proposals) == 0 {
		return fmt.Errorf("proposals file %s contains no proposals", consensusProposals)
	}

	weights := consensus.NewEngine(consensusTolerance).Consensus(proposals)

	jsonOutput, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weights to JSON: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(jsonOutput))
	return nil
}
