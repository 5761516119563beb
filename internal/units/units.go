// Package units reconciles unit identifiers between rent rolls and leases.
package units

import (
	"github.com/leasematch/internal/bucket"
	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/report"
)

// unitIndex records units in first-seen order with their source documents
type unitIndex struct {
	order []string
	docs  map[string][]document.DocID
}

func indexUnits(records []document.Record) *unitIndex {
	idx := &unitIndex{docs: make(map[string][]document.DocID)}
	for _, rec := range records {
		seenInDoc := make(map[string]bool)
		for _, unit := range rec.Units() {
			if seenInDoc[unit] {
				continue
			}
			seenInDoc[unit] = true
			if _, ok := idx.docs[unit]; !ok {
				idx.order = append(idx.order, unit)
			}
			idx.docs[unit] = append(idx.docs[unit], rec.DocID)
		}
	}
	return idx
}

func (idx *unitIndex) has(unit string) bool {
	_, ok := idx.docs[unit]
	return ok
}

// FindMissingUnits compares the rent-roll unit_numbers of b against its lease
// unit_number values. Units only on the rent-roll side produce missing_lease
// issues, units only on the lease side produce missing_rentroll issues.
func FindMissingUnits(b *bucket.Bucket, ids *report.IDGenerator) []report.UnitIssue {
	rent := indexUnits(b.RentRolls)
	leases := indexUnits(b.Leases)

	var issues []report.UnitIssue
	for _, unit := range rent.order {
		if !leases.has(unit) {
			issues = append(issues, report.NewUnitIssue(ids.Next(), report.SubtagMissingLease, rent.docs[unit], unit))
		}
	}
	for _, unit := range leases.order {
		if !rent.has(unit) {
			issues = append(issues, report.NewUnitIssue(ids.Next(), report.SubtagMissingRentRoll, leases.docs[unit], unit))
		}
	}
	return issues
}

// Reconcile runs FindMissingUnits over every bucket. Buckets without issues
// are left out of the report.
func Reconcile(set *bucket.Set, ids *report.IDGenerator) report.UnitReport {
	result := report.UnitReport{}
	for _, b := range set.All() {
		if issues := FindMissingUnits(b, ids); len(issues) > 0 {
			result[b.Address] = report.PropertyUnits{Issues: issues}
		}
	}
	return result
}
