package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	standardizer := NewStandardizer(fakeTagger, nil, DirectionalStrict)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "abbreviated directional and street type",
			input: "123 N Main St, Apt 5, Springfield, IL 62704",
			want:  "123 North Main Street, Apt 5, Springfield, IL, 62704",
		},
		{
			name:  "misspelled state resolves by similarity",
			input: "456 Oak Ave, Austin, Texs 78701",
			want:  "456 Oak Avenue, Austin, TX, 78701",
		},
		{
			name:  "full state name becomes abbreviation",
			input: "77 Lake Shore Dr, Columbus, Ohio 43004",
			want:  "77 Lake Shore Drive, Columbus, OH, 43004",
		},
		{
			name:  "periods stripped before lookup",
			input: "8 S. Elm Blvd., Denver, CO 80202",
			want:  "8 South Elm Boulevard, Denver, CO, 80202",
		},
		{
			name:  "unknown street type passes through",
			input: "9 Elm Way, Boise, ID 83702",
			want:  "9 Elm Way, Boise, ID, 83702",
		},
		{
			name:  "long forms kept",
			input: "10 West Pine Street, Reno, NV 89501",
			want:  "10 West Pine Street, Reno, NV, 89501",
		},
		{
			name:  "no state leaves state empty",
			input: "5 Birch Ln",
			want:  "5 Birch Lane",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := standardizer.Standardize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardizeIsIdempotent(t *testing.T) {
	standardizer := NewStandardizer(fakeTagger, nil, DirectionalStrict)

	inputs := []string{
		"123 N Main St, Apt 5, Springfield, IL 62704",
		"456 Oak Ave, Austin, Texs 78701",
		"8 S. Elm Blvd., Denver, CO 80202",
		"42 E Market Sq, Suite 200, Harrisburg, Pennsylvania 17101",
		"9 Elm Way, Boise, ID 83702",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once, err := standardizer.Standardize(input)
			require.NoError(t, err)
			twice, err := standardizer.Standardize(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestStandardizeUnknownDirectional(t *testing.T) {
	input := "12 NE Pine Rd, Reno, NV 89501"

	strict := NewStandardizer(fakeTagger, nil, DirectionalStrict)
	_, err := strict.Standardize(input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDirectional))

	lenient := NewStandardizer(fakeTagger, nil, DirectionalPassThrough)
	got, err := lenient.Standardize(input)
	require.NoError(t, err)
	assert.Equal(t, "12 NE Pine Road, Reno, NV, 89501", got)
}

func TestStandardizePropagatesTaggerFailure(t *testing.T) {
	standardizer := NewStandardizer(fakeTagger, nil, DirectionalStrict)

	_, err := standardizer.Standardize("1 DUP Main St, Reno, NV 89501")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepeatedLabel))
}

func TestParseDirectionalPolicy(t *testing.T) {
	policy, err := ParseDirectionalPolicy("pass_through")
	require.NoError(t, err)
	assert.Equal(t, DirectionalPassThrough, policy)

	policy, err = ParseDirectionalPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DirectionalStrict, policy)

	_, err = ParseDirectionalPolicy("guess")
	assert.Error(t, err)
}

func TestFromLabels(t *testing.T) {
	parsed, err := FromLabels("raw", []Label{
		{LabelHouseNumber, "1600"},
		{LabelRoad, "n lake shore dr"},
		{LabelUnit, "#12"},
		{LabelSuburb, "hyde park"},
		{LabelState, "il"},
		{LabelPostcode, "60615"},
	})
	require.NoError(t, err)

	assert.Equal(t, Parsed{
		AddressNumber:  "1600",
		PreDirectional: "n",
		StreetName:     "lake shore",
		PostType:       "dr",
		OccupancyType:  "#",
		OccupancyID:    "12",
		PlaceName:      "hyde park",
		StateName:      "il",
		ZipCode:        "60615",
	}, parsed)

	_, err = FromLabels("raw", []Label{{LabelCity, "a"}, {LabelCity, "b"}})
	assert.True(t, errors.Is(err, ErrRepeatedLabel))
}

func TestSplitStreet(t *testing.T) {
	tests := []struct {
		road, pre, name, post string
	}{
		{"main", "", "main", ""},
		{"n main st", "n", "main", "st"},
		{"north", "", "north", ""},
		{"west end", "west", "end", ""},
		{"martin luther king jr blvd", "", "martin luther king jr", "blvd"},
		{"avenue", "", "avenue", ""},
	}

	for _, tt := range tests {
		t.Run(tt.road, func(t *testing.T) {
			pre, name, post := SplitStreet(tt.road)
			assert.Equal(t, tt.pre, pre)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.post, post)
		})
	}
}
