// Package document models the per-file extraction results consumed by the
// reconciliation engine.
package document

import (
	"encoding/json"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Family identifies which kind of source document a record came from
type Family string

const (
	FamilyLease    Family = "lease"
	FamilyRentRoll Family = "rent_roll"
	FamilyTax      Family = "tax"
)

// Field names produced by the extraction collaborator
const (
	FieldLeaseAddress         = "address"
	FieldLeasePropertyAddress = "lease_property_address"
	FieldLeaseUnit            = "unit_number"
	FieldStartDate            = "start_date"
	FieldEndDate              = "end_date"
	FieldRentRollAddress      = "property_address"
	FieldRentRollUnits        = "unit_numbers"
	FieldRentRollDate         = "date"
	FieldCalendarYear         = "calendar_year"
	FieldTaxName              = "name"
	FieldTaxAddress           = "full_address"
)

// DocID is an external document identifier. The zero value means the file
// could not be resolved and marshals to JSON null.
type DocID string

// MarshalJSON implements json.Marshaler
func (id DocID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// Fields is the extracted field mapping of one file
type Fields map[string]any

// String returns the field as a string. Numbers are formatted without
// exponent; missing or null fields yield "".
func (f Fields) String(key string) string {
	return Stringify(f[key])
}

// Stringify converts a decoded JSON scalar to its string form
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Entry is one element of a family's input sequence: filename to fields
type Entry map[string]Fields

// Record is one extracted file with its resolved identifier
type Record struct {
	Family Family
	// FileName is the base name including extension
	FileName string
	// Key is FileName without its extension
	Key    string
	DocID  DocID
	Fields Fields
}

// Address returns the property address declared by the record
func (r Record) Address() string {
	switch r.Family {
	case FamilyLease:
		if addr := r.Fields.String(FieldLeaseAddress); addr != "" {
			return addr
		}
		return r.Fields.String(FieldLeasePropertyAddress)
	case FamilyRentRoll:
		return r.Fields.String(FieldRentRollAddress)
	case FamilyTax:
		return r.Fields.String(FieldTaxAddress)
	}
	return ""
}

// Units returns the unit identifiers declared by the record
func (r Record) Units() []string {
	switch r.Family {
	case FamilyLease:
		return Units(r.Fields[FieldLeaseUnit])
	case FamilyRentRoll:
		return Units(r.Fields[FieldRentRollUnits])
	}
	return nil
}

// BaseName strips any directory prefix from filename
func BaseName(filename string) string {
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		return filename[i+1:]
	}
	return filename
}

// Stem returns the base name of filename without its extension
func Stem(filename string) string {
	base := BaseName(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Records flattens a family's entries into records in input order. Filenames
// within one entry are visited in sorted order.
func Records(family Family, entries []Entry, ids *Resolver) []Record {
	var records []Record
	for _, entry := range entries {
		names := make([]string, 0, len(entry))
		for name := range entry {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fields := entry[name]
			if fields == nil {
				fields = Fields{}
			}
			records = append(records, Record{
				Family:   family,
				FileName: BaseName(name),
				Key:      Stem(name),
				DocID:    ids.Resolve(name),
				Fields:   fields,
			})
		}
	}
	return records
}

// Deal is the full input of one reconciliation run
type Deal struct {
	Leases    []Entry  `json:"leases"`
	RentRolls []Entry  `json:"rent_rolls"`
	Taxes     []Entry  `json:"taxes"`
	IDMap     IDMap    `json:"id_map"`
	Tags      []string `json:"tags"`
}

// Records resolves every family of the deal against its id-map
func (d *Deal) Records() (leases, rentRolls, taxes []Record) {
	ids := NewResolver(d.IDMap)
	return Records(FamilyLease, d.Leases, ids),
		Records(FamilyRentRoll, d.RentRolls, ids),
		Records(FamilyTax, d.Taxes, ids)
}
