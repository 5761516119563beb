package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leasematch/internal/audit"
	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/source"
)

// createDBCmd creates the database management subcommand
func createDBCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database operations",
	}

	dbCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the extracted_document and run history tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := source.NewPostgres(conn).EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			if err := audit.NewTracker(conn.DB).EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(color.GreenString("Schema ready"))
			return nil
		},
	})

	dbCmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Println(color.GreenString("Database connection successful!"))

			var count int
			err = conn.DB.QueryRowContext(cmd.Context(), "SELECT COUNT(*) FROM extracted_document").Scan(&count)
			if err != nil {
				fmt.Printf("Error counting extracted_document records: %v\n", err)
			} else {
				fmt.Printf("Extracted documents loaded: %d\n", count)
			}
			return nil
		},
	})

	dbCmd.AddCommand(createRunsCmd())

	return dbCmd
}

// createRunsCmd lists the recorded runs of a deal
func createRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs <deal-id>",
		Short: "List recorded reconciliation runs of a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			conn, err := db.NewConnection(cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			runs, err := audit.NewTracker(conn.DB).History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Printf("No runs recorded for deal %s\n", args[0])
				return nil
			}
			for _, run := range runs {
				issues := color.GreenString("%d issues", run.IssueCount)
				if run.IssueCount > 0 {
					issues = color.YellowString("%d issues", run.IssueCount)
				}
				fmt.Printf("%s  %s  %s  (%v)\n", run.RecordedAt.Format("2006-01-02 15:04:05"), run.RunID, issues, run.Elapsed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
