package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leasematch/internal/audit"
	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/report"
)

// createMatchCmd creates the match subcommand
func createMatchCmd() *cobra.Command {
	var input, dealID, output string
	var summary, record bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Reconcile the documents of one deal",
		Long: `Reconcile the documents of one deal and print the JSON report.

Examples:
  leasematch match --input deal.json
  leasematch match --deal 42 --output report.json --summary
  leasematch match --deal 42 --record`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if record && dealID == "" {
				return fmt.Errorf("--record requires --deal")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			deal, err := loadDeal(cmd.Context(), cfg, input, dealID)
			if err != nil {
				return err
			}

			start := time.Now()
			result := eng.Matcher.Match(deal)
			elapsed := time.Since(start)

			if record {
				if err := recordRun(cmd.Context(), cfg, dealID, result, elapsed); err != nil {
					return err
				}
			}

			if err := writeReport(result, output); err != nil {
				return err
			}
			if summary {
				printSummary(os.Stderr, result, elapsed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Deal JSON file")
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal id to load from the database")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a coloured summary to stderr")
	cmd.Flags().BoolVar(&record, "record", false, "Save the run to the deal's run history")
	return cmd
}

func recordRun(ctx context.Context, cfg *config.Config, dealID string, result *report.Report, elapsed time.Duration) error {
	conn, err := db.NewConnection(cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	tracker := audit.NewTracker(conn.DB)
	tracker.Debug = cfg.Debug
	return tracker.RecordRun(ctx, dealID, result, elapsed)
}

func writeReport(result *report.Report, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer file.Close()
		w = file
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, result *report.Report, elapsed time.Duration) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "\n%s %s (%v)\n", bold("Run"), result.RunID, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Buckets with a rent roll: %d\n", len(result.MappingResult))

	unitIssues := 0
	for _, property := range result.MissingReportOnProperty {
		unitIssues += len(property.Issues)
	}
	fmt.Fprintf(w, "  Unit issues:              %s\n", countColor(unitIssues, green, yellow))

	v := result.DocumentVersionValidator
	categories := []struct {
		name   string
		failed bool
		err    string
	}{
		{"tax_to_current_year", v.TaxToCurrentYear.Failed(), errorOf(v.TaxToCurrentYear)},
		{"lease_to_rent", v.LeaseToRent.Failed(), errorOf(v.LeaseToRent)},
		{"rent_to_tax", v.RentToTax.Failed(), errorOf(v.RentToTax)},
	}
	for _, c := range categories {
		switch {
		case c.failed:
			fmt.Fprintf(w, "  %-25s %s\n", c.name+":", red(c.err))
		case c.err != "":
			fmt.Fprintf(w, "  %-25s %s\n", c.name+":", yellow(c.err))
		default:
			fmt.Fprintf(w, "  %-25s %s\n", c.name+":", green("evaluated"))
		}
	}

	fmt.Fprintf(w, "  Missing deal documents:   %s\n", countColor(len(result.MissingFilesOnDeal), green, yellow))
	for _, issue := range result.MissingFilesOnDeal {
		fmt.Fprintf(w, "    - %s\n", issue.Message)
	}
	fmt.Fprintf(w, "  %s %s\n", bold("Total issues:"), countColor(result.IssueCount(), green, red))
}

func countColor(n int, ok, bad func(a ...interface{}) string) string {
	if n == 0 {
		return ok("0")
	}
	return bad(fmt.Sprint(n))
}

func errorOf[T any](r *report.Result[T]) string {
	if r == nil {
		return "not evaluated"
	}
	return r.Error
}
