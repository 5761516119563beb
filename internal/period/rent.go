package period

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/report"
)

// RentToTax checks every rent roll against every tax document: a pair is
// relevant when the rent roll year equals the tax calendar_year. A rent roll
// whose year cannot be read is non-relevant against every tax document.
func (v *Validator) RentToTax(rentRolls, taxes []document.Record) (report.RentTaxReport, error) {
	taxYears := make([]int, len(taxes))
	for i, tax := range taxes {
		raw := tax.Fields.String(document.FieldCalendarYear)
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %s", ErrInvalidTaxYear, raw, tax.FileName)
		}
		taxYears[i] = year
	}

	result := report.RentTaxReport{}
	for _, rr := range rentRolls {
		date := rr.Fields.String(document.FieldRentRollDate)
		if strings.TrimSpace(date) == "" {
			return nil, fmt.Errorf("%w: rent roll %s", ErrMissingRentDate, rr.FileName)
		}

		var rentYear *int
		if year, ok := ExtractYear(date); ok {
			rentYear = &year
		}

		group := report.RentTaxGroup{
			RentKey: rr.FileName,
			Details: []report.RentTaxEntry{},
			Issues:  []report.RentTaxEntry{},
		}
		for i, tax := range taxes {
			entry := report.RentTaxEntry{
				RentKey:         rr.FileName,
				RentID:          rr.DocID,
				RentYear:        rentYear,
				TaxFile:         tax.FileName,
				TaxYear:         taxYears[i],
				RelevancyStatus: report.Relevant,
			}
			if rentYear != nil && *rentYear == taxYears[i] {
				group.Details = append(group.Details, entry)
				continue
			}

			entry.RelevancyStatus = report.NonRelevant
			entry.IssueID = v.ids.Next()
			entry.IssueTag = report.TagTimePeriod
			entry.IssueSubtag = report.SubtagRentToTax
			entry.Message = fmt.Sprintf("The submitted tax file (%s) does not align with the rent roll file (%s). "+
				"The rent roll year (%s) and tax year (%d) must match, but they differ. "+
				"Please upload the correct tax file that aligns with the rent roll year.",
				tax.FileName, rr.FileName, yearText(rentYear), taxYears[i])
			group.Issues = append(group.Issues, entry)
		}
		result = append(result, group)
	}
	return result, nil
}

func yearText(year *int) string {
	if year == nil {
		return "unknown"
	}
	return strconv.Itoa(*year)
}
