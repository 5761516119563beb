package period

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/report"
)

// TaxToCurrentYear classifies tax documents against the two most recent
// completed tax years. Documents without an all-digit calendar_year are
// ignored. When no document is out of window the report collapses to the
// details with a summary message, missing years included.
func (v *Validator) TaxToCurrentYear(taxes []document.Record) report.TaxReport {
	cy := v.CurrentYear()
	relevantYears := v.RelevantTaxYears()
	isRelevant := make(map[int]bool, len(relevantYears))
	for _, y := range relevantYears {
		isRelevant[y] = true
	}

	present := make(map[int]bool)
	relevant := []report.TaxDocument{}
	nonRelevant := []report.TaxIssue{}

	for _, tax := range taxes {
		calendarYear := strings.TrimSpace(tax.Fields.String(document.FieldCalendarYear))
		if !isDigits(calendarYear) {
			continue
		}
		year, err := strconv.Atoi(calendarYear)
		if err != nil {
			continue
		}
		present[year] = true

		if isRelevant[year] {
			relevant = append(relevant, report.TaxDocument{
				TaxFile:         tax.FileName,
				DocID:           tax.DocID,
				CalendarYear:    calendarYear,
				RelevancyStatus: report.Relevant,
			})
			continue
		}
		nonRelevant = append(nonRelevant, report.TaxIssue{
			IssueID:         v.ids.Next(),
			TaxFileName:     tax.FileName,
			DocID:           tax.DocID,
			TaxYear:         calendarYear,
			RelevancyStatus: report.NonRelevant,
			Message: fmt.Sprintf("The submitted tax file, (%s) does not align with the application form. "+
				"The tax year (%s) must fall within the two most recent tax years, which are %d and %d, "+
				"based on the application form date (%d).",
				tax.FileName, calendarYear, cy-1, cy-2, cy),
		})
	}

	missing := []int{}
	for _, y := range relevantYears {
		if !present[y] {
			missing = append(missing, y)
		}
	}
	sort.Ints(missing)

	result := report.TaxReport{Details: report.TaxDetails{Relevant: relevant}}
	if len(nonRelevant) == 0 {
		result.Details.Message = "All tax documents are relevant."
		return result
	}
	result.Issues = &report.TaxIssues{
		IssueTag:     report.TagTimePeriod,
		IssueSubtag:  report.SubtagTaxToCurrentYear,
		MissingYears: missing,
		NonRelevant:  nonRelevant,
	}
	return result
}
