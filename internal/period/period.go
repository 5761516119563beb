// Package period checks that leases, rent rolls and tax filings cover
// consistent time periods.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leasematch/internal/report"
)

var (
	// ErrMalformedDate is returned when a lease or rent roll date is not YYYY-MM-DD
	ErrMalformedDate = errors.New("malformed date")
	// ErrMissingRentDate is returned when a rent roll has no date at all
	ErrMissingRentDate = errors.New("missing rent roll date")
	// ErrInvalidTaxYear is returned when a tax calendar_year is not an integer
	ErrInvalidTaxYear = errors.New("invalid tax calendar year")
)

// isoDate accepts single-digit months and days
const isoDate = "2006-1-2"

// yearLayouts are tried in order by ExtractYear
var yearLayouts = []string{
	"2006-1-2", "2006-2-1", "2006/1/2", "2006/2/1",
	"1-2-2006", "2-1-2006", "1/2/2006", "2/1/2006",
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// Validator runs the time-period checks. Now is the clock used to derive the
// current year.
type Validator struct {
	Now func() time.Time
	ids *report.IDGenerator
}

// NewValidator creates a validator. A nil clock selects time.Now.
func NewValidator(ids *report.IDGenerator, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = report.NewIDGenerator()
	}
	return &Validator{Now: now, ids: ids}
}

// CurrentYear returns the calendar year of the validator clock
func (v *Validator) CurrentYear() int {
	return v.Now().Year()
}

// RelevantTaxYears returns the two most recent completed tax years, oldest first
func (v *Validator) RelevantTaxYears() []int {
	cy := v.CurrentYear()
	return []int{cy - 2, cy - 1}
}

// ExtractYear reads a calendar year from a date string. Fixed layouts are
// tried first, then the first standalone four-digit run.
func ExtractYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Year(), true
		}
	}
	if m := yearPattern.FindStringSubmatch(value); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return year, true
		}
	}
	return 0, false
}

func parseISODate(value, what string) (time.Time, error) {
	t, err := time.Parse(isoDate, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", ErrMalformedDate, what, value)
	}
	return t, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
