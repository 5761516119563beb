package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/report"
)

type stubComparer struct{}

func (stubComparer) Compare(a, b string) (bool, error) { return a == b, nil }

func (stubComparer) Evaluate(a, b string) (address.Decision, error) {
	if a == "" || b == "" {
		return address.Decision{}, errors.New("empty address")
	}
	return address.Decision{Match: a == b, Score: 1}, nil
}

func TestObservedComparatorCountsOutcomes(t *testing.T) {
	r := New()
	cmp := r.Observe(stubComparer{})

	same, err := cmp.Compare("a", "a")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = cmp.Compare("a", "b")
	require.NoError(t, err)
	assert.False(t, same)

	_, err = cmp.Compare("", "b")
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.comparisons.WithLabelValues("match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.comparisons.WithLabelValues("no_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.comparisons.WithLabelValues("error")))
}

func TestRunCompleted(t *testing.T) {
	r := New()

	rep := report.Empty("run")
	rep.MissingFilesOnDeal = []report.FileIssue{{}, {}}
	rep.MissingReportOnProperty["1 Main St"] = report.PropertyUnits{Issues: []report.UnitIssue{{}}}
	rep.DocumentVersionValidator.LeaseToRent = &report.Result[report.LeaseRentReport]{Error: "boom"}

	r.RunCompleted(rep, 20*time.Millisecond)
	r.CategoryFailed("lease_to_rent")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.issues.WithLabelValues("missing_files")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.issues.WithLabelValues("missing_unit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.categoryErrors.WithLabelValues("lease_to_rent")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.CategoryFailed("rent_to_tax")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `leasematch_category_errors_total{category="rent_to_tax"} 1`))
}
