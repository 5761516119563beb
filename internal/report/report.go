// Package report defines the structured findings returned by a
// reconciliation run and the run-scoped issue id generator.
package report

import (
	"encoding/json"
	"sync/atomic"

	"github.com/leasematch/internal/document"
)

// Issue tags and relevancy states
const (
	TagMissingDocument = "missing_document"
	TagTimePeriod      = "Time_Period_Validator"

	SubtagTaxToCurrentYear = "tax_to_current_year"
	SubtagLeaseToRent      = "lease_to_rent"
	SubtagRentToTax        = "Rent-to-Tax"
	SubtagMissingLease     = "missing_lease"
	SubtagMissingRentRoll  = "missing_rentroll"
	SubtagMissingTaxYear   = "missing_tax_year"

	Relevant        = "Relevant"
	NonRelevant     = "Non-Relevant"
	MissingRentRoll = "Missing Rent Roll"
	MissingLease    = "Missing Lease"
)

// IDGenerator hands out issue ids unique within one run, starting at 1
type IDGenerator struct {
	last atomic.Int64
}

// NewIDGenerator creates a generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next issue id
func (g *IDGenerator) Next() int {
	return int(g.last.Add(1))
}

// Nullable is a string that marshals to JSON null when empty
type Nullable string

// MarshalJSON implements json.Marshaler
func (n Nullable) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(n))
}

// Result holds one validation category: either a report or an error message
type Result[T any] struct {
	Report T
	Error  string
}

// Failed reports whether the category could not be evaluated
func (r *Result[T]) Failed() bool {
	return r != nil && r.Error != ""
}

// MarshalJSON renders {"error": "..."} for failed categories
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	return json.Marshal(r.Report)
}

// Report is the combined output of one reconciliation run
type Report struct {
	RunID                    string          `json:"run_id,omitempty"`
	MappingResult            []BucketSummary `json:"mapping_result"`
	MissingReportOnProperty  UnitReport      `json:"missing_report_on_property"`
	DocumentVersionValidator VersionReport   `json:"document_version_validator"`
	MissingFilesOnDeal       []FileIssue     `json:"missing_files_on_deal"`
}

// Empty returns a report with every category present and empty
func Empty(runID string) *Report {
	return &Report{
		RunID:                   runID,
		MappingResult:           []BucketSummary{},
		MissingReportOnProperty: UnitReport{},
		MissingFilesOnDeal:      []FileIssue{},
	}
}

// Issue categories counted by IssuesByCategory
const (
	CategoryMissingUnit      = "missing_unit"
	CategoryMissingFiles     = "missing_files"
	CategoryTaxToCurrentYear = "tax_to_current_year"
	CategoryLeaseToRent      = "lease_to_rent"
	CategoryRentToTax        = "rent_to_tax"
)

// IssuesByCategory counts the issues of every category. Validation
// categories that could not be evaluated are left out.
func (r *Report) IssuesByCategory() map[string]int {
	counts := map[string]int{
		CategoryMissingUnit:  0,
		CategoryMissingFiles: len(r.MissingFilesOnDeal),
	}
	for _, property := range r.MissingReportOnProperty {
		counts[CategoryMissingUnit] += len(property.Issues)
	}

	v := r.DocumentVersionValidator
	if v.TaxToCurrentYear != nil && !v.TaxToCurrentYear.Failed() {
		counts[CategoryTaxToCurrentYear] = 0
		if v.TaxToCurrentYear.Report.Issues != nil {
			counts[CategoryTaxToCurrentYear] = len(v.TaxToCurrentYear.Report.Issues.NonRelevant)
		}
	}
	if v.LeaseToRent != nil && !v.LeaseToRent.Failed() {
		counts[CategoryLeaseToRent] = 0
		for _, property := range v.LeaseToRent.Report {
			counts[CategoryLeaseToRent] += len(property.Issues)
		}
	}
	if v.RentToTax != nil && !v.RentToTax.Failed() {
		counts[CategoryRentToTax] = 0
		for _, group := range v.RentToTax.Report {
			counts[CategoryRentToTax] += len(group.Issues)
		}
	}
	return counts
}

// IssueCount totals the issues across all categories
func (r *Report) IssueCount() int {
	total := 0
	for _, n := range r.IssuesByCategory() {
		total += n
	}
	return total
}

// BucketSummary describes one address bucket that has a rent roll. Only the
// first rent roll of the bucket is surfaced.
type BucketSummary struct {
	RentRoll  string           `json:"rent_roll"`
	RentDocID document.DocID   `json:"rent_doc_id"`
	Leases    []string         `json:"leases"`
	LeaseIDs  []document.DocID `json:"lease_id"`
}

// FileIssue is a deal-level missing document finding
type FileIssue struct {
	IssueID     int    `json:"issue_id"`
	IssueTag    string `json:"issue_tag"`
	IssueSubtag string `json:"issue_sub_tag"`
	Message     string `json:"message"`
}
