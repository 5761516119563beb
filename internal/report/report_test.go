package report

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch/internal/document"
)

func TestIDGeneratorIsUniqueAcrossGoroutines(t *testing.T) {
	ids := NewIDGenerator()

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := ids.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
	assert.True(t, seen[1])
	assert.True(t, seen[800])
}

func TestResultJSON(t *testing.T) {
	failed := Result[TaxReport]{Error: "Tax Document is missing."}
	data, err := json.Marshal(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Tax Document is missing."}`, string(data))

	ok := Result[RentTaxReport]{Report: RentTaxReport{}}
	data, err = json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestUnitIssueJSON(t *testing.T) {
	issue := NewUnitIssue(3, SubtagMissingLease, []document.DocID{"11", ""}, "101")
	assert.Equal(t, "Missing Lease identified for Unit 101.", issue.Message)

	data, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"issue_id": 3,
		"issue_tag": "missing_document",
		"issue_subtag": "missing_lease",
		"missing_lease": {"doc_id": ["11", null], "unit_number": "101"},
		"message": "Missing Lease identified for Unit 101."
	}`, string(data))

	assert.Equal(t, "Missing Rentroll identified for Unit 7.",
		NewUnitIssue(1, SubtagMissingRentRoll, nil, "7").Message)
}

func TestEmptyReportJSON(t *testing.T) {
	data, err := json.Marshal(Empty(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"mapping_result": [],
		"missing_report_on_property": {},
		"document_version_validator": {},
		"missing_files_on_deal": []
	}`, string(data))
}

func TestIssueCount(t *testing.T) {
	r := Empty("run")
	r.MissingFilesOnDeal = []FileIssue{{IssueID: 1}}
	r.MissingReportOnProperty["1 Main St"] = PropertyUnits{Issues: []UnitIssue{{}, {}}}
	r.DocumentVersionValidator = VersionReport{
		TaxToCurrentYear: &Result[TaxReport]{Report: TaxReport{Issues: &TaxIssues{NonRelevant: []TaxIssue{{}}}}},
		LeaseToRent:      &Result[LeaseRentReport]{Error: "Lease or Rent Roll Document is missing."},
		RentToTax:        &Result[RentTaxReport]{Report: RentTaxReport{{Issues: []RentTaxEntry{{}, {}}}}},
	}

	assert.Equal(t, 6, r.IssueCount())
	assert.Equal(t, map[string]int{
		CategoryMissingUnit:      2,
		CategoryMissingFiles:     1,
		CategoryTaxToCurrentYear: 1,
		CategoryRentToTax:        2,
	}, r.IssuesByCategory(), "failed categories are left out")
}
