package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// createStandardizeCmd creates the standardize subcommand
func createStandardizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standardize <address> [address...]",
		Short: "Print the canonical form of addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			for _, addr := range args {
				standardized, err := eng.Standardizer.Standardize(addr)
				if err != nil {
					fmt.Printf("%s -> %s\n", addr, color.RedString("error: %v", err))
					continue
				}
				fmt.Printf("%s -> %s\n", addr, color.GreenString(standardized))
			}
			return nil
		},
	}
}

// createCompareCmd creates the compare subcommand
func createCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <address1> <address2>",
		Short: "Decide whether two addresses denote the same property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			decision, err := eng.Comparator.Evaluate(args[0], args[1])
			if err != nil {
				return err
			}

			verdict := color.GreenString("MATCH")
			if !decision.Match {
				verdict = color.RedString("NO MATCH")
			}
			fmt.Printf("%s (score %.3f, threshold %.2f)\n", verdict, decision.Score, eng.Comparator.Threshold())
			if decision.Field != "" {
				fmt.Printf("  field:  %s\n", decision.Field)
			}
			fmt.Printf("  reason: %s\n", strings.TrimSpace(decision.Reason))
			return nil
		},
	}
}
