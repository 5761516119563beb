package address

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/leasematch/internal/debug"
	"github.com/leasematch/internal/similarity"
)

// DefaultThreshold is the minimum per-field similarity for a match
const DefaultThreshold = 0.8

// Decision explains the outcome of one address comparison
type Decision struct {
	Match bool `json:"match"`
	// Score is the mean similarity of the fuzzy-compared fields, 1 when
	// every fuzzy field was skipped and 0 on a hard rejection.
	Score  float64 `json:"score"`
	Field  string  `json:"field,omitempty"`
	Reason string  `json:"reason"`
}

// Comparator decides whether two addresses denote the same property
type Comparator struct {
	tagger    Tagger
	sim       similarity.Similarity
	threshold float64
	Debug     bool
}

// NewComparator creates a comparator. A non-positive threshold selects
// DefaultThreshold.
func NewComparator(tagger Tagger, sim similarity.Similarity, threshold float64) *Comparator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Comparator{tagger: tagger, sim: sim, threshold: threshold}
}

// Threshold returns the per-field acceptance threshold
func (c *Comparator) Threshold() float64 {
	return c.threshold
}

// Compare reports whether a and b describe the same property. A tagging
// failure (ErrRepeatedLabel among them) is returned as an error rather than
// as a boolean verdict.
func (c *Comparator) Compare(a, b string) (bool, error) {
	decision, err := c.Evaluate(a, b)
	if err != nil {
		return false, err
	}
	return decision.Match, nil
}

// Evaluate compares a and b and explains the verdict
func (c *Comparator) Evaluate(a, b string) (Decision, error) {
	parsedA, err := c.tagger.Tag(a)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to tag %q: %w", a, err)
	}
	parsedB, err := c.tagger.Tag(b)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to tag %q: %w", b, err)
	}
	moveStateOutOfPlace(&parsedA)
	moveStateOutOfPlace(&parsedB)

	if parsedA.AddressNumber != parsedB.AddressNumber {
		return c.reject("address_number", 0, "address number mismatch: %q vs %q", parsedA.AddressNumber, parsedB.AddressNumber), nil
	}
	if parsedA.ZipCode != parsedB.ZipCode {
		return c.reject("zip_code", 0, "zip code mismatch: %q vs %q", parsedA.ZipCode, parsedB.ZipCode), nil
	}

	fields := []struct {
		name   string
		valueA string
		valueB string
	}{
		{"pre_directional", parsedA.PreDirectional, parsedB.PreDirectional},
		{"street_name", parsedA.StreetName, parsedB.StreetName},
		{"post_type", parsedA.PostType, parsedB.PostType},
		{"place_name", parsedA.PlaceName, parsedB.PlaceName},
		{"state_name", parsedA.StateName, parsedB.StateName},
	}

	total, compared := 0.0, 0
	for _, field := range fields {
		valueA := foldField(field.valueA)
		valueB := foldField(field.valueB)
		if valueA == "" || valueB == "" {
			continue
		}

		score := c.sim.Similarity(valueA, valueB)
		debug.Output(c.Debug, "%s: %q vs %q = %.4f", field.name, valueA, valueB, score)
		if score < c.threshold {
			return c.reject(field.name, score, "%s similarity %.2f below %.2f (%q vs %q)", field.name, score, c.threshold, valueA, valueB), nil
		}
		total += score
		compared++
	}

	decision := Decision{Match: true, Score: 1, Reason: "all compared fields above threshold"}
	if compared > 0 {
		decision.Score = total / float64(compared)
	}
	return decision, nil
}

func (c *Comparator) reject(field string, score float64, format string, args ...interface{}) Decision {
	reason := fmt.Sprintf(format, args...)
	debug.Output(c.Debug, "REJECT: %s", reason)
	return Decision{Match: false, Score: score, Field: field, Reason: reason}
}

// moveStateOutOfPlace splits "City, ST" tagged as a place name. The trailing
// fragment becomes the state when the state is empty or already equal to it.
func moveStateOutOfPlace(p *Parsed) {
	city, state, found := strings.Cut(p.PlaceName, ", ")
	if !found {
		return
	}
	p.PlaceName = city
	if p.StateName == "" || p.StateName == state {
		p.StateName = state
	}
}

// foldField lower-cases value and strips combining marks, so "Café" and
// "cafe" compare equal
func foldField(value string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	return strings.ToLower(folded)
}
