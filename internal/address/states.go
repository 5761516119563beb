package address

import (
	"strings"

	"github.com/leasematch/internal/similarity"
)

// stateAbbreviations is the fixed enumeration order used for tie-breaking
var stateAbbreviations = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// StateResolver maps any state token onto a two-letter abbreviation
type StateResolver struct {
	sim similarity.Similarity
}

// NewStateResolver creates a resolver. A nil sim selects character n-gram
// cosine similarity.
func NewStateResolver(sim similarity.Similarity) *StateResolver {
	if sim == nil {
		sim = similarity.NewCharNGram(1, 2)
	}
	return &StateResolver{sim: sim}
}

// IsValidState reports whether token is a two-letter state abbreviation
func IsValidState(token string) bool {
	_, ok := stateNames[strings.ToUpper(strings.TrimSpace(token))]
	return ok
}

// StateName returns the full name for an abbreviation
func StateName(abbreviation string) string {
	return stateNames[strings.ToUpper(abbreviation)]
}

// Resolve returns the abbreviation for token. Valid abbreviations and exact
// full names resolve directly; anything else resolves to the state scoring
// highest against either its abbreviation or full name. Ties go to the
// earlier state in enumeration order. Empty input stays empty.
func (r *StateResolver) Resolve(token string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(token, ".", ""))
	if cleaned == "" {
		return ""
	}
	if IsValidState(cleaned) {
		return strings.ToUpper(cleaned)
	}
	for _, abbr := range stateAbbreviations {
		if strings.EqualFold(stateNames[abbr], cleaned) {
			return abbr
		}
	}
	return r.mostSimilar(cleaned)
}

func (r *StateResolver) mostSimilar(token string) string {
	best := stateAbbreviations[0]
	bestScore := -1.0
	lowered := strings.ToLower(token)
	for _, abbr := range stateAbbreviations {
		score := max(
			r.sim.Similarity(lowered, strings.ToLower(abbr)),
			r.sim.Similarity(lowered, strings.ToLower(stateNames[abbr])),
		)
		if score > bestScore {
			best, bestScore = abbr, score
		}
	}
	return best
}
