// Package checklist verifies that a deal carries every required document type.
package checklist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leasematch/internal/report"
)

// Requirement is one required document type and the tag that marks it
type Requirement struct {
	Name string
	Tag  string
}

// Required is the fixed deal checklist, in reporting order
var Required = []Requirement{
	{"Application form", "application_form"},
	{"T12 Document", "t12"},
	{"Personal Financial Statement", "pfs"},
	{"Purchase Agreement", "purchase_agreement"},
	{"Schedule of Real Estate Owned", "sreo"},
	{"Tax Returns", "tax_returns"},
	{"Preliminary Title", "title_prelims"},
	{"Lease Agreement", "lease_doc"},
	{"Rent Roll", "rent_roll"},
}

// Checker emits missing-document issues
type Checker struct {
	ids *report.IDGenerator
}

// NewChecker creates a checker drawing issue ids from ids
func NewChecker(ids *report.IDGenerator) *Checker {
	if ids == nil {
		ids = report.NewIDGenerator()
	}
	return &Checker{ids: ids}
}

// CheckMissingFiles returns one missing_<tag> issue for every required tag
// absent from tags
func (c *Checker) CheckMissingFiles(tags []string) []report.FileIssue {
	present := make(map[string]bool, len(tags))
	for _, tag := range tags {
		present[strings.TrimSpace(tag)] = true
	}

	issues := []report.FileIssue{}
	for _, req := range Required {
		if present[req.Tag] {
			continue
		}
		issues = append(issues, report.FileIssue{
			IssueID:     c.ids.Next(),
			IssueTag:    report.TagMissingDocument,
			IssueSubtag: "missing_" + req.Tag,
			Message:     fmt.Sprintf("Missing %s document.", req.Name),
		})
	}
	return issues
}

// HandleMissingTaxYear turns the missing years of a tax report into a single
// missing_tax_year issue. Failed or clean reports yield nothing.
func (c *Checker) HandleMissingTaxYear(tax *report.Result[report.TaxReport]) []report.FileIssue {
	if tax == nil || tax.Failed() || tax.Report.Issues == nil || len(tax.Report.Issues.MissingYears) == 0 {
		return []report.FileIssue{}
	}

	years := make([]string, 0, len(tax.Report.Issues.MissingYears))
	for _, y := range tax.Report.Issues.MissingYears {
		years = append(years, strconv.Itoa(y))
	}
	return []report.FileIssue{{
		IssueID:     c.ids.Next(),
		IssueTag:    report.TagMissingDocument,
		IssueSubtag: report.SubtagMissingTaxYear,
		Message:     fmt.Sprintf("Missing tax document for the following year(s): %s.", strings.Join(years, ", ")),
	}}
}
