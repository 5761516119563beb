// Package matcher composes address bucketing, unit reconciliation, the
// time-period checks and the document checklist into one reconciliation run.
package matcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leasematch/internal/bucket"
	"github.com/leasematch/internal/checklist"
	"github.com/leasematch/internal/debug"
	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/period"
	"github.com/leasematch/internal/report"
	"github.com/leasematch/internal/units"
)

// Validation categories
const (
	CategoryTaxToCurrentYear = report.CategoryTaxToCurrentYear
	CategoryLeaseToRent      = report.CategoryLeaseToRent
	CategoryRentToTax        = report.CategoryRentToTax
)

// Observer receives run outcomes, typically for metrics
type Observer interface {
	RunCompleted(r *report.Report, elapsed time.Duration)
	CategoryFailed(category string)
}

// Matcher runs reconciliations. It holds no per-run state and may be shared.
type Matcher struct {
	strategy bucket.Strategy
	now      func() time.Time
	observer Observer
	Debug    bool
}

// New creates a matcher. A nil clock selects time.Now.
func New(strategy bucket.Strategy, now func() time.Time) *Matcher {
	if now == nil {
		now = time.Now
	}
	return &Matcher{strategy: strategy, now: now}
}

// WithObserver attaches an observer and returns m
func (m *Matcher) WithObserver(o Observer) *Matcher {
	m.observer = o
	return m
}

// Match reconciles the documents of deal. Every report category is always
// present; a category that cannot be evaluated carries an error message
// instead of findings. When the deal has neither leases nor rent rolls the
// report is empty.
func (m *Matcher) Match(deal *document.Deal) *report.Report {
	start := time.Now()
	runID := uuid.NewString()
	debug.Header(m.Debug, "MATCH "+runID)
	defer debug.Footer(m.Debug, "MATCH "+runID)

	leases, rentRolls, taxes := deal.Records()
	debug.Output(m.Debug, "Input: %d leases, %d rent rolls, %d tax documents, %d tags",
		len(leases), len(rentRolls), len(taxes), len(deal.Tags))

	if len(leases) == 0 && len(rentRolls) == 0 {
		debug.Output(m.Debug, "No leases or rent rolls, nothing to reconcile")
		result := report.Empty(runID)
		m.completed(result, start)
		return result
	}

	ids := report.NewIDGenerator()

	done := debug.Timing(m.Debug, "address bucketing")
	set := m.strategy.Build(rentRolls, leases)
	done()
	debug.Output(m.Debug, "Built %d buckets", set.Len())

	result := &report.Report{
		RunID:                   runID,
		MappingResult:           Summarize(set),
		MissingReportOnProperty: units.Reconcile(set, ids),
	}
	result.DocumentVersionValidator = m.validate(set, leases, rentRolls, taxes, ids)

	checker := checklist.NewChecker(ids)
	checklistIssues := checker.CheckMissingFiles(deal.Tags)
	taxYearIssues := checker.HandleMissingTaxYear(result.DocumentVersionValidator.TaxToCurrentYear)
	result.MissingFilesOnDeal = append(taxYearIssues, checklistIssues...)

	m.completed(result, start)
	return result
}

func (m *Matcher) validate(set *bucket.Set, leases, rentRolls, taxes []document.Record, ids *report.IDGenerator) report.VersionReport {
	validator := period.NewValidator(ids, m.now)
	var v report.VersionReport

	if len(taxes) == 0 {
		v.TaxToCurrentYear = &report.Result[report.TaxReport]{Error: "Tax Document is missing."}
	} else {
		v.TaxToCurrentYear = guard("An error occurred in tax validation", func() (report.TaxReport, error) {
			return validator.TaxToCurrentYear(taxes), nil
		})
	}

	if len(leases) == 0 || len(rentRolls) == 0 {
		v.LeaseToRent = &report.Result[report.LeaseRentReport]{Error: "Lease or Rent Roll Document is missing."}
	} else {
		v.LeaseToRent = guard("An error occurred in lease-to-rent validation", func() (report.LeaseRentReport, error) {
			return validator.LeaseToRent(set)
		})
	}

	if len(rentRolls) == 0 || len(taxes) == 0 {
		v.RentToTax = &report.Result[report.RentTaxReport]{Error: "Rentroll or Tax data is missing."}
	} else {
		v.RentToTax = guard("An error occurred in rent-to-tax validation", func() (report.RentTaxReport, error) {
			return validator.RentToTax(rentRolls, taxes)
		})
	}

	m.categoryErrors(v)
	return v
}

func (m *Matcher) categoryErrors(v report.VersionReport) {
	failed := map[string]bool{
		CategoryTaxToCurrentYear: v.TaxToCurrentYear.Failed(),
		CategoryLeaseToRent:      v.LeaseToRent.Failed(),
		CategoryRentToTax:        v.RentToTax.Failed(),
	}
	for _, category := range []string{CategoryTaxToCurrentYear, CategoryLeaseToRent, CategoryRentToTax} {
		if !failed[category] {
			continue
		}
		debug.Output(m.Debug, "Category %s failed", category)
		if m.observer != nil {
			m.observer.CategoryFailed(category)
		}
	}
}

func (m *Matcher) completed(r *report.Report, start time.Time) {
	if m.observer != nil {
		m.observer.RunCompleted(r, time.Since(start))
	}
}

// guard runs one validation category, converting an error or a panic into
// the category's error entry
func guard[T any](prefix string, run func() (T, error)) (result *report.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = &report.Result[T]{Error: fmt.Sprintf("%s: %v", prefix, r)}
		}
	}()

	value, err := run()
	if err != nil {
		return &report.Result[T]{Error: fmt.Sprintf("%s: %v", prefix, err)}
	}
	return &report.Result[T]{Report: value}
}

// Summarize lists, for every bucket holding a rent roll, the first rent roll
// and all leases of the bucket
func Summarize(set *bucket.Set) []report.BucketSummary {
	summaries := []report.BucketSummary{}
	for _, b := range set.All() {
		if len(b.RentRolls) == 0 {
			continue
		}
		first := b.RentRolls[0]
		summary := report.BucketSummary{
			RentRoll:  first.Key,
			RentDocID: first.DocID,
			Leases:    []string{},
			LeaseIDs:  []document.DocID{},
		}
		for _, lease := range b.Leases {
			summary.Leases = append(summary.Leases, lease.Key)
			summary.LeaseIDs = append(summary.LeaseIDs, lease.DocID)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
