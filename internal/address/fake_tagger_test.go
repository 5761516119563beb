package address

import (
	"strings"
	"unicode"
)

// fakeTagger understands "number road[, unit], city, state [zip][, zip]"
// which covers both raw fixtures and canonical output. Addresses containing
// "DUP" produce two road labels.
var fakeTagger = TaggerFunc(func(raw string) (Parsed, error) {
	return FromLabels(raw, fakeLabels(raw))
})

func fakeLabels(raw string) []Label {
	var segs []string
	for _, seg := range strings.Split(raw, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		return nil
	}

	var labels []Label
	street := strings.Fields(segs[0])
	if len(street) > 0 && strings.IndexFunc(street[0], unicode.IsDigit) >= 0 {
		labels = append(labels, Label{LabelHouseNumber, street[0]})
		street = street[1:]
	}
	if len(street) > 0 {
		labels = append(labels, Label{LabelRoad, strings.Join(street, " ")})
	}
	if strings.Contains(raw, "DUP") {
		labels = append(labels, Label{LabelRoad, "dup"})
	}

	rest := segs[1:]
	if len(rest) > 0 {
		lower := strings.ToLower(rest[0])
		for _, prefix := range []string{"apt", "suite", "unit", "#"} {
			if strings.HasPrefix(lower, prefix) {
				labels = append(labels, Label{LabelUnit, rest[0]})
				rest = rest[1:]
				break
			}
		}
	}

	zip := ""
	if len(rest) > 0 && isDigits(rest[len(rest)-1]) {
		zip = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	if len(rest) >= 2 {
		fields := strings.Fields(rest[len(rest)-1])
		if n := len(fields); n > 1 && isDigits(fields[n-1]) {
			zip = fields[n-1]
			fields = fields[:n-1]
		}
		labels = append(labels, Label{LabelState, strings.Join(fields, " ")})
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 0 {
		labels = append(labels, Label{LabelCity, strings.Join(rest, ", ")})
	}
	if zip != "" {
		labels = append(labels, Label{LabelPostcode, zip})
	}
	return labels
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
