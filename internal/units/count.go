package units

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leasematch/internal/document"
)

var countPunctuation = regexp.MustCompile(`[.,]`)

// NormalizeForCount strips periods and commas, lower-cases and trims
func NormalizeForCount(addr string) string {
	return strings.TrimSpace(strings.ToLower(countPunctuation.ReplaceAllString(addr, "")))
}

// FindRentMissing returns the distinct lease addresses with no rent-roll
// address equal after NormalizeForCount, in first-seen order, and their count.
func FindRentMissing(leaseAddrs, rentAddrs []string) ([]string, int) {
	rent := make(map[string]bool, len(rentAddrs))
	for _, addr := range rentAddrs {
		rent[NormalizeForCount(addr)] = true
	}

	seen := make(map[string]bool)
	missing := []string{}
	for _, addr := range leaseAddrs {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		if !rent[NormalizeForCount(addr)] {
			missing = append(missing, addr)
		}
	}
	return missing, len(missing)
}

// LeaseUnit is one leased unit at a declared address
type LeaseUnit struct {
	Address string
	Unit    string
}

// RentRollUnits is the unit list of one rent roll
type RentRollUnits struct {
	Address string
	Units   []string
}

// CountReport is the outcome of a coarse lease-gap count
type CountReport struct {
	// Missing holds one "address, unit(s) X" line per unleased unit
	Missing []string `json:"missing"`
	// Counts holds the number of unleased units per rent roll with gaps
	Counts []int `json:"counts"`
	Total  int   `json:"total"`
}

func (c *CountReport) add(lines []string) {
	if len(lines) == 0 {
		return
	}
	c.Missing = append(c.Missing, lines...)
	c.Counts = append(c.Counts, len(lines))
	c.Total += len(lines)
}

func foldUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// FindLeaseMissing matches on unit identifiers alone: every rent-roll unit
// that no lease declares, regardless of address.
func FindLeaseMissing(leases []LeaseUnit, rentRolls []RentRollUnits) CountReport {
	leased := make(map[string]bool, len(leases))
	for _, l := range leases {
		leased[foldUnit(l.Unit)] = true
	}

	result := CountReport{Missing: []string{}, Counts: []int{}}
	for _, rr := range rentRolls {
		addr := strings.TrimSpace(rr.Address)
		var lines []string
		for _, unit := range rr.Units {
			if u := foldUnit(unit); !leased[u] {
				lines = append(lines, fmt.Sprintf("%s, units %s", addr, u))
			}
		}
		result.add(lines)
	}
	return result
}

// FindLeaseMissingByAddress matches on address (case and surrounding
// whitespace ignored) plus unit. Rent rolls at addresses no lease mentions
// are skipped.
func FindLeaseMissingByAddress(leases []LeaseUnit, rentRolls []RentRollUnits) CountReport {
	leased := make(map[string]map[string]bool)
	for _, l := range leases {
		addr := foldUnit(l.Address)
		if leased[addr] == nil {
			leased[addr] = make(map[string]bool)
		}
		leased[addr][foldUnit(l.Unit)] = true
	}

	result := CountReport{Missing: []string{}, Counts: []int{}}
	for _, rr := range rentRolls {
		addr := foldUnit(rr.Address)
		units, ok := leased[addr]
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		var lines []string
		for _, unit := range rr.Units {
			u := foldUnit(unit)
			if seen[u] || units[u] {
				continue
			}
			seen[u] = true
			lines = append(lines, fmt.Sprintf("%s, unit %s", addr, u))
		}
		result.add(lines)
	}
	return result
}

// CountInputs flattens records into the coarse count inputs. A lease
// declaring several units contributes one LeaseUnit per unit.
func CountInputs(leases, rentRolls []document.Record) ([]LeaseUnit, []RentRollUnits) {
	var leaseUnits []LeaseUnit
	for _, l := range leases {
		for _, unit := range l.Units() {
			leaseUnits = append(leaseUnits, LeaseUnit{Address: l.Address(), Unit: unit})
		}
	}
	rentUnits := make([]RentRollUnits, 0, len(rentRolls))
	for _, rr := range rentRolls {
		rentUnits = append(rentUnits, RentRollUnits{Address: rr.Address(), Units: rr.Units()})
	}
	return leaseUnits, rentUnits
}
