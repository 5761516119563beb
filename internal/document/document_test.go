package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnits(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"nil", nil, nil},
		{"decoded list", []any{"101", 102.0, " 103 "}, []string{"101", "102", "103"}},
		{"string slice", []string{"A", "N/A", ""}, []string{"A"}},
		{"json list string", `["101", "102"]`, []string{"101", "102"}},
		{"python list string", `['101', '102']`, []string{"101", "102"}},
		{"numeric list string", `[1, 2]`, []string{"1", "2"}},
		{"tuple string", `('7', '8')`, []string{"7", "8"}},
		{"scalar string", "4B", []string{"4B"}},
		{"scalar number", 12.0, []string{"12"}},
		{"malformed list", `['101', `, []string{}},
		{"not applicable", "N/A", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Units(tt.value)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "lease_a", Stem("deal-7/leases/lease_a.pdf"))
	assert.Equal(t, "lease_a.pdf", BaseName("deal-7/leases/lease_a.pdf"))
	assert.Equal(t, "rent.roll", Stem("rent.roll.xlsx"))
	assert.Equal(t, "noext", Stem("noext"))
}

func TestResolver(t *testing.T) {
	resolver := NewResolver(IDMap{
		"101": "deal/lease_a.pdf",
		"102": "deal/rent_2023.xlsx",
		"200": "other/lease_a.docx",
	})

	assert.Equal(t, DocID("200"), resolver.Resolve("lease_a.pdf"), "later id wins on a shared stem")
	assert.Equal(t, DocID("102"), resolver.Resolve("uploads/rent_2023.pdf"))
	assert.Equal(t, DocID(""), resolver.Resolve("unknown.pdf"))
	assert.Equal(t, 2, resolver.Len())

	var nilResolver *Resolver
	assert.Equal(t, DocID(""), nilResolver.Resolve("lease_a.pdf"))
}

func TestDocIDJSON(t *testing.T) {
	data, err := json.Marshal([]DocID{"101", ""})
	require.NoError(t, err)
	assert.JSONEq(t, `["101", null]`, string(data))
}

func TestRecords(t *testing.T) {
	resolver := NewResolver(IDMap{"9": "b.pdf"})
	entries := []Entry{
		{"deal/b.pdf": Fields{"address": "1 Main St"}, "deal/a.pdf": nil},
		{"c.pdf": Fields{"lease_property_address": "2 Oak Ave", "unit_number": "5"}},
	}

	records := Records(FamilyLease, entries, resolver)
	require.Len(t, records, 3)

	assert.Equal(t, "a.pdf", records[0].FileName)
	assert.Equal(t, "a", records[0].Key)
	assert.Equal(t, DocID(""), records[0].DocID)
	assert.NotNil(t, records[0].Fields)

	assert.Equal(t, DocID("9"), records[1].DocID)
	assert.Equal(t, "1 Main St", records[1].Address())

	assert.Equal(t, "2 Oak Ave", records[2].Address(), "falls back to lease_property_address")
	assert.Equal(t, []string{"5"}, records[2].Units())
}

func TestFieldsString(t *testing.T) {
	fields := Fields{"calendar_year": 2023.0, "date": "2023-06-15", "flag": true}
	assert.Equal(t, "2023", fields.String("calendar_year"))
	assert.Equal(t, "2023-06-15", fields.String("date"))
	assert.Equal(t, "true", fields.String("flag"))
	assert.Equal(t, "", fields.String("missing"))
}
