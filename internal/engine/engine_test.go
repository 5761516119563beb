package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/document"
)

// streetTagger reads "<number> <street words>" and nothing else
var streetTagger = address.TaggerFunc(func(raw string) (address.Parsed, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return address.Parsed{}, nil
	}
	labels := []address.Label{{Name: address.LabelHouseNumber, Value: fields[0]}}
	if len(fields) > 1 {
		labels = append(labels, address.Label{Name: address.LabelRoad, Value: strings.Join(fields[1:], " ")})
	}
	return address.FromLabels(raw, labels)
})

func TestNewWiresEveryMethod(t *testing.T) {
	for _, method := range []string{"embedding", "jaro_winkler", "levenshtein", "ngram"} {
		t.Run(method, func(t *testing.T) {
			cfg := config.Default()
			cfg.Matching.SimilarityMethod = method

			e, err := New(cfg, streetTagger)
			require.NoError(t, err)

			same, err := e.Comparator.Compare("12 Oak Ave", "12 oak ave")
			require.NoError(t, err)
			assert.True(t, same)

			got, err := e.Standardizer.Standardize("12 N Oak Ave")
			require.NoError(t, err)
			assert.Equal(t, "12 North Oak Avenue", got)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Matching.BucketStrategy = "random"

	_, err := New(cfg, streetTagger)
	assert.Error(t, err)
}

func TestEngineMatch(t *testing.T) {
	e, err := New(config.Default(), streetTagger)
	require.NoError(t, err)

	result := e.Matcher.Match(&document.Deal{
		RentRolls: []document.Entry{{"rr.xlsx": {"property_address": "12 Oak Ave", "unit_numbers": []any{"1"}, "date": "2023-06-01"}}},
		Leases:    []document.Entry{{"lease.pdf": {"address": "12 OAK AVE", "unit_number": "1", "start_date": "2023-01-01", "end_date": "2023-12-31"}}},
	})

	require.Len(t, result.MappingResult, 1)
	assert.Equal(t, []string{"lease"}, result.MappingResult[0].Leases)
	assert.Empty(t, result.MissingReportOnProperty)
}
