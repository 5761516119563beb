package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/units"
)

// createCountCmd creates the count subcommand
func createCountCmd() *cobra.Command {
	var input, dealID string
	var byAddress bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Coarse count of leases and units without a counterpart",
		Long: `Count lease addresses that no rent roll declares and rent-roll units that no
lease declares, using exact comparison instead of address bucketing.

By default units are matched on their identifier alone; --by-address also
requires the lease and rent roll addresses to agree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			deal, err := loadDeal(cmd.Context(), cfg, input, dealID)
			if err != nil {
				return err
			}

			leases, rentRolls, _ := deal.Records()
			printCounts(os.Stdout, leases, rentRolls, byAddress)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Deal JSON file")
	cmd.Flags().StringVar(&dealID, "deal", "", "Deal id to load from the database")
	cmd.Flags().BoolVar(&byAddress, "by-address", false, "Match units on address and unit")
	return cmd
}

func printCounts(w io.Writer, leases, rentRolls []document.Record, byAddress bool) {
	leaseAddrs := make([]string, 0, len(leases))
	for _, l := range leases {
		leaseAddrs = append(leaseAddrs, l.Address())
	}
	rentAddrs := make([]string, 0, len(rentRolls))
	for _, rr := range rentRolls {
		rentAddrs = append(rentAddrs, rr.Address())
	}

	missingRent, n := units.FindRentMissing(leaseAddrs, rentAddrs)
	fmt.Fprintf(w, "Lease addresses without a rent roll: %s\n", color.YellowString("%d", n))
	for _, addr := range missingRent {
		fmt.Fprintf(w, "  - %s\n", addr)
	}

	leaseUnits, rentUnits := units.CountInputs(leases, rentRolls)
	counted := units.FindLeaseMissing(leaseUnits, rentUnits)
	if byAddress {
		counted = units.FindLeaseMissingByAddress(leaseUnits, rentUnits)
	}
	fmt.Fprintf(w, "Rent roll units without a lease: %s\n", color.YellowString("%d", counted.Total))
	for _, line := range counted.Missing {
		fmt.Fprintf(w, "  - %s\n", line)
	}
}
