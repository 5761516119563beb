package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveExactStates(t *testing.T) {
	resolver := NewStateResolver(nil)

	for _, abbr := range stateAbbreviations {
		assert.Equal(t, abbr, resolver.Resolve(abbr), "abbreviation %s", abbr)
		assert.Equal(t, abbr, resolver.Resolve(StateName(abbr)), "full name of %s", abbr)
	}
	assert.Equal(t, "TX", resolver.Resolve("tx"))
	assert.Equal(t, "NY", resolver.Resolve("new york"))
}

func TestResolveFuzzyStates(t *testing.T) {
	resolver := NewStateResolver(nil)

	tests := map[string]string{
		"Texs":        "TX",
		"Californa":   "CA",
		"Pensylvania": "PA",
		"Ilinois":     "IL",
		"Masachusets": "MA",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, resolver.Resolve(input))
		})
	}
}

func TestResolveIsTotal(t *testing.T) {
	resolver := NewStateResolver(nil)

	for _, junk := range []string{"zzz", "Q", "12345", "Province of Nowhere"} {
		got := resolver.Resolve(junk)
		assert.NotEmpty(t, got, junk)
		assert.True(t, IsValidState(got), junk)
	}
	for _, empty := range []string{"", "  ", "."} {
		assert.Equal(t, "", resolver.Resolve(empty), "empty state %q must not resolve to a real state", empty)
	}
}
