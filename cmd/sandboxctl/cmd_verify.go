package main

import (
	"github.com/spf13/cobra"

	"github.com/akulearn/sandbox/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <attempt-file>",
	Short: "Verify a learner attempt and print the verification result",
	Long: `Verify checks a finished attempt (YAML or JSON: akuId, sandboxState,
hintsUsed, startTime, endTime) against the certification requirements and
prints the verification result as JSON, including the struggle score.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	attempt, err := readAttemptFile(args[0])
	if err != nil {
		return err
	}

	result, err := verify.Verify(attempt)
	if err != nil {
		return err
	}
	return printJSON(result)
}
