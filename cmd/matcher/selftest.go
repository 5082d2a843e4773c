package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var selfTestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Score the built-in reference candidate-job pair",
	Long: `Run one full scoring pass over a fixed candidate and job. Useful for
verifying database, cache and LLM connectivity after deployment.`,
	RunE: runSelfTest,
}

func init() {
	rootCmd.AddCommand(selfTestCmd)
}

func runSelfTest(cmd *cobra.Command, _ []string) error {
	ctx, cancel := bootTimeout()
	a, err := newApp(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	result := a.matcher.SelfTest(runCtx)
	return printJSON(result)
}
