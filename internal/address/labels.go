package address

import (
	"fmt"
	"strings"
)

// Label is one tagged span produced by a sequence-tagging parser
type Label struct {
	Name  string
	Value string
}

// Parser label names (libpostal vocabulary)
const (
	LabelHouseNumber  = "house_number"
	LabelRoad         = "road"
	LabelUnit         = "unit"
	LabelCity         = "city"
	LabelCityDistrict = "city_district"
	LabelSuburb       = "suburb"
	LabelState        = "state"
	LabelPostcode     = "postcode"
)

// FromLabels maps tagged spans onto Parsed. The road span is split into
// pre-directional, street name and post-type; the unit span into occupancy
// type and identifier. A label seen twice yields ErrRepeatedLabel.
func FromLabels(raw string, labels []Label) (Parsed, error) {
	seen := make(map[string]string, len(labels))
	for _, label := range labels {
		if prev, dup := seen[label.Name]; dup {
			return Parsed{}, fmt.Errorf("%w: %s (%q and %q) in %q", ErrRepeatedLabel, label.Name, prev, label.Value, raw)
		}
		seen[label.Name] = strings.TrimSpace(label.Value)
	}

	var p Parsed
	p.AddressNumber = seen[LabelHouseNumber]
	p.PreDirectional, p.StreetName, p.PostType = SplitStreet(seen[LabelRoad])
	p.OccupancyType, p.OccupancyID = splitOccupancy(seen[LabelUnit])
	p.PlaceName = firstNonEmpty(seen[LabelCity], seen[LabelSuburb], seen[LabelCityDistrict])
	p.StateName = seen[LabelState]
	p.ZipCode = seen[LabelPostcode]
	return p, nil
}

// SplitStreet separates a leading directional and a trailing street type
// from the street name. Both are only split off when a name remains.
func SplitStreet(road string) (preDirectional, name, postType string) {
	tokens := strings.Fields(road)
	if len(tokens) > 1 && isDirectionalToken(tokens[0]) {
		preDirectional = tokens[0]
		tokens = tokens[1:]
	}
	if len(tokens) > 1 && isPostTypeToken(tokens[len(tokens)-1]) {
		postType = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}
	return preDirectional, strings.Join(tokens, " "), postType
}

func splitOccupancy(unit string) (occupancyType, occupancyID string) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "", ""
	}
	if strings.HasPrefix(unit, "#") {
		return "#", strings.TrimSpace(strings.TrimPrefix(unit, "#"))
	}
	tokens := strings.Fields(unit)
	if len(tokens) == 1 {
		return "", tokens[0]
	}
	return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
