package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seedtech/candidate-matcher/internal/matching"
)

var (
	matchTopN         int
	matchActivateTags bool
	matchExport       bool
)

var matchCmd = &cobra.Command{
	Use:   "match <job-shortcode> [candidate-id]",
	Short: "Match candidates against a job posting",
	Long: `Score every candidate attached to a job posting and print the ranked
results as JSON. With a candidate id, score only that candidate. Requires
WORKABLE_API_KEY and WORKABLE_SUBDOMAIN.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&matchTopN, "top-n", 10, "Number of top matches to report")
	matchCmd.Flags().BoolVar(&matchActivateTags, "tags", false, "Require at least one shared tag before scoring")
	matchCmd.Flags().BoolVar(&matchExport, "export", false, "Print a markdown report instead of JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := bootTimeout()
	a, err := newApp(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	if a.ats == nil {
		return fmt.Errorf("WORKABLE_API_KEY environment variable is required")
	}

	shortcode := args[0]
	opts := matching.Options{ActivateTags: matchActivateTags}
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	if len(args) == 2 {
		report, err := a.matcher.MatchCandidate(runCtx, a.ats, args[1], shortcode, opts)
		if err != nil {
			return err
		}
		return printJSON(report)
	}

	if matchExport {
		export, err := a.matcher.ExportReport(runCtx, a.ats, shortcode, matchTopN, opts)
		if err != nil {
			return err
		}
		fmt.Println(export.MatchSummary)
		return nil
	}

	report, err := a.matcher.MatchJobCandidates(runCtx, a.ats, shortcode, matchTopN, opts)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
