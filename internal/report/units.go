package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leasematch/internal/document"
)

// UnitReport maps a bucket address to its missing-unit findings. Buckets
// without findings are absent.
type UnitReport map[string]PropertyUnits

// PropertyUnits holds the missing-unit issues of one property
type PropertyUnits struct {
	Issues []UnitIssue `json:"issues"`
}

// UnitIssue reports a unit present on only one side of a bucket
type UnitIssue struct {
	IssueID     int
	IssueSubtag string
	DocIDs      []document.DocID
	UnitNumber  string
	Message     string
}

// NewUnitIssue builds a missing_lease or missing_rentroll issue
func NewUnitIssue(id int, subtag string, docIDs []document.DocID, unit string) UnitIssue {
	return UnitIssue{
		IssueID:     id,
		IssueSubtag: subtag,
		DocIDs:      docIDs,
		UnitNumber:  unit,
		Message:     fmt.Sprintf("%s identified for Unit %s.", titleWords(subtag), unit),
	}
}

// MarshalJSON nests the payload under a key named after the subtag
func (u UnitIssue) MarshalJSON() ([]byte, error) {
	docIDs := u.DocIDs
	if docIDs == nil {
		docIDs = []document.DocID{}
	}
	return json.Marshal(map[string]any{
		"issue_id":     u.IssueID,
		"issue_tag":    TagMissingDocument,
		"issue_subtag": u.IssueSubtag,
		u.IssueSubtag: map[string]any{
			"doc_id":      docIDs,
			"unit_number": u.UnitNumber,
		},
		"message": u.Message,
	})
}

// titleWords turns "missing_lease" into "Missing Lease"
func titleWords(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
