package report

import "github.com/leasematch/internal/document"

// VersionReport groups the three time-period checks. A nil category was not
// run, which only happens for short-circuited runs.
type VersionReport struct {
	TaxToCurrentYear *Result[TaxReport]       `json:"tax_to_current_year,omitempty"`
	LeaseToRent      *Result[LeaseRentReport] `json:"lease_to_rent,omitempty"`
	RentToTax        *Result[RentTaxReport]   `json:"rent_to_tax,omitempty"`
}

// TaxReport is the tax-to-current-year outcome. Issues is nil when every
// tax document is relevant, even if a relevant year has no document.
type TaxReport struct {
	Issues  *TaxIssues `json:"issues,omitempty"`
	Details TaxDetails `json:"details"`
}

// TaxIssues lists missing relevant years and out-of-window tax documents
type TaxIssues struct {
	IssueTag     string     `json:"issue_tag"`
	IssueSubtag  string     `json:"issue_subtag"`
	MissingYears []int      `json:"missing_years"`
	NonRelevant  []TaxIssue `json:"non_relevant_tax_documents"`
}

// TaxIssue flags one tax document outside the relevant window
type TaxIssue struct {
	IssueID         int            `json:"issue_id"`
	TaxFileName     string         `json:"tax_file_name"`
	DocID           document.DocID `json:"doc_id"`
	TaxYear         string         `json:"tax_year"`
	RelevancyStatus string         `json:"relevancy_status"`
	Message         string         `json:"message"`
}

// TaxDetails lists the relevant tax documents
type TaxDetails struct {
	Relevant []TaxDocument `json:"relevant_tax_documents"`
	Message  string        `json:"message,omitempty"`
}

// TaxDocument is one classified tax filing
type TaxDocument struct {
	TaxFile         string         `json:"tax_file"`
	DocID           document.DocID `json:"doc_id"`
	CalendarYear    string         `json:"calendar_year"`
	RelevancyStatus string         `json:"relevancy_status"`
}

// LeaseRentReport maps a bucket address to its lease-to-rent-roll outcome
type LeaseRentReport map[string]*LeaseRentProperty

// LeaseRentProperty splits one bucket's pairs into issues and details
type LeaseRentProperty struct {
	Issues  []LeaseRentEntry `json:"issues"`
	Details []LeaseRentEntry `json:"details"`
}

// LeaseRentEntry classifies one rent roll against one lease. Issue fields
// are only set for entries placed under issues.
type LeaseRentEntry struct {
	IssueID          int            `json:"issue_id,omitempty"`
	IssueTag         string         `json:"issue_tag,omitempty"`
	IssueSubtag      string         `json:"issue_subtag,omitempty"`
	MissingRentRoll  bool           `json:"missing_rent_roll,omitempty"`
	MissingLease     bool           `json:"missing_lease,omitempty"`
	RentRollFileName Nullable       `json:"rent_roll_file_name"`
	RentRollFileID   document.DocID `json:"rent_roll_file_id"`
	LeaseFileName    Nullable       `json:"lease_file_name"`
	LeaseID          document.DocID `json:"lease_id"`
	RelevancyStatus  string         `json:"relevancy_status"`
	Message          string         `json:"message,omitempty"`
}

// RentTaxReport holds one group per rent roll, in input order
type RentTaxReport []RentTaxGroup

// RentTaxGroup classifies one rent roll against every tax document
type RentTaxGroup struct {
	RentKey string         `json:"rent_key"`
	Details []RentTaxEntry `json:"details"`
	Issues  []RentTaxEntry `json:"issues"`
}

// RentTaxEntry classifies one rent roll against one tax document. RentYear
// is nil when no year could be read from the rent roll date.
type RentTaxEntry struct {
	RentKey         string         `json:"rent_key"`
	RentID          document.DocID `json:"rent_id"`
	RentYear        *int           `json:"rent_year"`
	TaxFile         string         `json:"tax_file"`
	TaxYear         int            `json:"tax_year"`
	RelevancyStatus string         `json:"relevancy_status"`
	IssueID         int            `json:"issue_id,omitempty"`
	IssueTag        string         `json:"issue_tag,omitempty"`
	IssueSubtag     string         `json:"issue_subtag,omitempty"`
	Message         string         `json:"message,omitempty"`
}
