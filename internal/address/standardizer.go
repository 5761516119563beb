package address

import (
	"fmt"

	"github.com/leasematch/internal/debug"
)

// DirectionalPolicy decides what happens to a pre-directional that is not in
// the lookup table
type DirectionalPolicy int

const (
	// DirectionalStrict fails standardization with ErrUnknownDirectional
	DirectionalStrict DirectionalPolicy = iota
	// DirectionalPassThrough keeps the token unmodified
	DirectionalPassThrough
)

// ParseDirectionalPolicy maps a config value onto a policy
func ParseDirectionalPolicy(value string) (DirectionalPolicy, error) {
	switch value {
	case "", "strict":
		return DirectionalStrict, nil
	case "pass_through":
		return DirectionalPassThrough, nil
	}
	return DirectionalStrict, fmt.Errorf("unknown directional policy %q", value)
}

// Standardizer rewrites free-text addresses into a canonical form
type Standardizer struct {
	tagger Tagger
	states *StateResolver
	policy DirectionalPolicy
	Debug  bool
}

// NewStandardizer creates a standardizer
func NewStandardizer(tagger Tagger, states *StateResolver, policy DirectionalPolicy) *Standardizer {
	if states == nil {
		states = NewStateResolver(nil)
	}
	return &Standardizer{tagger: tagger, states: states, policy: policy}
}

// Standardize parses address and returns its canonical string. Tagger
// failures are returned unchanged in the error chain.
func (s *Standardizer) Standardize(address string) (string, error) {
	parsed, err := s.Parse(address)
	if err != nil {
		return "", err
	}
	return parsed.Canonical(), nil
}

// Parse tags address and normalizes the directional, street type and state
func (s *Standardizer) Parse(address string) (Parsed, error) {
	parsed, err := s.tagger.Tag(address)
	if err != nil {
		return Parsed{}, fmt.Errorf("failed to tag %q: %w", address, err)
	}
	debug.Output(s.Debug, "Tagged %q: %s", address, parsed)

	if parsed.PreDirectional != "" {
		normalized, ok := NormalizePreDirectional(parsed.PreDirectional)
		if !ok && s.policy == DirectionalStrict {
			return Parsed{}, fmt.Errorf("%w: %q in %q", ErrUnknownDirectional, parsed.PreDirectional, address)
		}
		parsed.PreDirectional = normalized
	}
	if parsed.PostType != "" {
		parsed.PostType = NormalizePostType(parsed.PostType)
	}
	parsed.StateName = s.states.Resolve(parsed.StateName)

	debug.Output(s.Debug, "Normalized %q: %s", address, parsed)
	return parsed, nil
}
