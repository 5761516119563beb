package period

import (
	"fmt"

	"github.com/leasematch/internal/bucket"
	"github.com/leasematch/internal/document"
	"github.com/leasematch/internal/report"
)

// LeaseToRent checks, per bucket, that every rent roll date falls inside the
// term of every lease in the bucket. A bucket without rent rolls yields one
// missing rent roll issue; a rent roll in a bucket without leases yields a
// missing lease issue. Any malformed date fails the whole check.
func (v *Validator) LeaseToRent(set *bucket.Set) (report.LeaseRentReport, error) {
	result := report.LeaseRentReport{}

	for _, b := range set.All() {
		property := &report.LeaseRentProperty{
			Issues:  []report.LeaseRentEntry{},
			Details: []report.LeaseRentEntry{},
		}

		if len(b.RentRolls) == 0 {
			property.Issues = append(property.Issues, report.LeaseRentEntry{
				IssueID:         v.ids.Next(),
				IssueTag:        report.TagTimePeriod,
				IssueSubtag:     report.SubtagLeaseToRent,
				MissingRentRoll: true,
				RelevancyStatus: report.MissingRentRoll,
				Message:         fmt.Sprintf("No rent roll was submitted for the lease(s) at %s.", b.Address),
			})
			result[b.Address] = property
			continue
		}

		for _, rr := range b.RentRolls {
			rentDate, err := parseISODate(rr.Fields.String(document.FieldRentRollDate), "rent roll "+rr.Key+" date")
			if err != nil {
				return nil, err
			}

			if len(b.Leases) == 0 {
				property.Issues = append(property.Issues, report.LeaseRentEntry{
					IssueID:          v.ids.Next(),
					IssueTag:         report.TagTimePeriod,
					IssueSubtag:      report.SubtagLeaseToRent,
					MissingLease:     true,
					RentRollFileName: report.Nullable(rr.Key),
					RentRollFileID:   rr.DocID,
					RelevancyStatus:  report.MissingLease,
					Message:          fmt.Sprintf("No lease was submitted for the rent roll file, (%s).", rr.Key),
				})
				continue
			}

			for _, lease := range b.Leases {
				start, err := parseISODate(lease.Fields.String(document.FieldStartDate), "lease "+lease.Key+" start_date")
				if err != nil {
					return nil, err
				}
				end, err := parseISODate(lease.Fields.String(document.FieldEndDate), "lease "+lease.Key+" end_date")
				if err != nil {
					return nil, err
				}

				entry := report.LeaseRentEntry{
					RentRollFileName: report.Nullable(rr.Key),
					RentRollFileID:   rr.DocID,
					LeaseFileName:    report.Nullable(lease.Key),
					LeaseID:          lease.DocID,
					RelevancyStatus:  report.Relevant,
				}
				if !start.After(rentDate) && !rentDate.After(end) {
					property.Details = append(property.Details, entry)
					continue
				}

				entry.RelevancyStatus = report.NonRelevant
				entry.IssueID = v.ids.Next()
				entry.IssueTag = report.TagTimePeriod
				entry.IssueSubtag = report.SubtagLeaseToRent
				entry.Message = fmt.Sprintf("The submitted rent roll file, (%s), for the lease, (%s) does not align with the lease period. "+
					"The lease starts on %s and ends on %s, while the rent roll was prepared on %s. "+
					"Please ensure the rent roll corresponds to the correct lease dates.",
					rr.Key, lease.Key, start.Format("2006-01-02"), end.Format("2006-01-02"), rentDate.Format("2006-01-02"))
				property.Issues = append(property.Issues, entry)
			}
		}
		result[b.Address] = property
	}
	return result, nil
}
