package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/engine"
	"github.com/leasematch/internal/postal"
	"github.com/leasematch/internal/source"
)

var (
	configPath string
	debugMode  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leasematch",
		Short: "Lease, rent roll and tax document reconciliation",
		Long: `Reconciles the lease, rent roll and tax documents extracted for a real-estate
deal: groups documents by property address, finds units missing a lease or a
rent roll, checks document periods and reports missing required documents.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "leasematch.yaml", "Configuration file (falls back to environment)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createStandardizeCmd())
	rootCmd.AddCommand(createCompareCmd())
	rootCmd.AddCommand(createCountCmd())
	rootCmd.AddCommand(createDBCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrEnv(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if debugMode {
		cfg.Debug = true
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	return engine.New(cfg, postal.NewTagger(cfg.Debug))
}

// loadDeal reads the deal from --input when given, otherwise from the
// database by deal id
func loadDeal(ctx context.Context, cfg *config.Config, input, dealID string) (*document.Deal, error) {
	switch {
	case input != "":
		return source.JSONFile{Path: input}.Load(ctx, "")
	case dealID != "":
		conn, err := db.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		pg := source.NewPostgres(conn)
		pg.Debug = cfg.Debug
		return pg.Load(ctx, dealID)
	}
	return nil, fmt.Errorf("either --input or --deal is required")
}
