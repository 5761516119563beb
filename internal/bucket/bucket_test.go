package bucket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/document"
)

// prefixComparer treats addresses as equal when their first n lower-cased
// characters agree; addresses containing "broken" fail to compare.
type prefixComparer struct{ n int }

func (p prefixComparer) key(s string) string {
	s = strings.ToLower(s)
	if len(s) > p.n {
		s = s[:p.n]
	}
	return s
}

func (p prefixComparer) Compare(a, b string) (bool, error) {
	if strings.Contains(a, "broken") || strings.Contains(b, "broken") {
		return false, address.ErrRepeatedLabel
	}
	return p.key(a) == p.key(b), nil
}

func (p prefixComparer) Evaluate(a, b string) (address.Decision, error) {
	same, err := p.Compare(a, b)
	if err != nil {
		return address.Decision{}, err
	}
	score := 0.0
	if same {
		// longer shared prefixes score higher
		for i := 0; i < len(a) && i < len(b) && a[i] == b[i]; i++ {
			score++
		}
	}
	return address.Decision{Match: same, Score: score}, nil
}

func rentRoll(key, addr string) document.Record {
	return document.Record{Family: document.FamilyRentRoll, Key: key, Fields: document.Fields{"property_address": addr}}
}

func lease(key, addr string) document.Record {
	return document.Record{Family: document.FamilyLease, Key: key, Fields: document.Fields{"address": addr}}
}

func TestFirstMatch(t *testing.T) {
	strategy := &FirstMatch{Comparer: prefixComparer{n: 6}}

	rentRolls := []document.Record{
		rentRoll("rr1", "12 Oak Ave, Austin"),
		rentRoll("rr2", "12 Oak Avenue, Austin"),
		rentRoll("rr3", "99 Elm St"),
	}
	leases := []document.Record{
		lease("l1", "12 OAK Avenue"),
		lease("l2", "7 Pine Rd"),
		lease("l3", "7 Pine Road"),
		lease("l4", "broken address"),
	}

	set := strategy.Build(rentRolls, leases)

	assert.Equal(t, []string{
		"12 Oak Ave, Austin",
		"12 Oak Avenue, Austin",
		"99 Elm St",
		"7 Pine Rd",
		"broken address",
	}, set.Keys(), "rent rolls are never merged; unmatched leases open buckets")

	assert.Equal(t, "l1", set.Get("12 Oak Ave, Austin").Leases[0].Key, "first matching bucket wins")
	assert.Empty(t, set.Get("12 Oak Avenue, Austin").Leases)
	require.Len(t, set.Get("7 Pine Rd").Leases, 2, "later leases join a lease-created bucket")
	assert.Equal(t, "l4", set.Get("broken address").Leases[0].Key, "comparison errors count as no match")
}

func TestBestMatchPrefersHigherScore(t *testing.T) {
	strategy := &BestMatch{Evaluator: prefixComparer{n: 6}}

	set := strategy.Build(
		[]document.Record{
			rentRoll("rr1", "12 Oak Ave"),
			rentRoll("rr2", "12 Oak Avenue"),
		},
		[]document.Record{lease("l1", "12 Oak Avenue, Unit 3")},
	)

	assert.Empty(t, set.Get("12 Oak Ave").Leases)
	require.Len(t, set.Get("12 Oak Avenue").Leases, 1)
}

func TestBuildIsComplete(t *testing.T) {
	rentRolls := []document.Record{
		rentRoll("rr1", "1 Main St"), rentRoll("rr2", "1 Main St"), rentRoll("rr3", "2 Main St"),
	}
	leases := []document.Record{
		lease("l1", "1 Main St"), lease("l2", "3 Main St"), lease("l3", ""), lease("l4", "2 Main Street"),
	}

	strategies := map[string]Strategy{
		StrategyFirstMatch: &FirstMatch{Comparer: prefixComparer{n: 4}},
		StrategyBestMatch:  &BestMatch{Evaluator: prefixComparer{n: 4}},
	}
	for name, strategy := range strategies {
		t.Run(name, func(t *testing.T) {
			set := strategy.Build(rentRolls, leases)

			seen := make(map[string]int)
			for _, b := range set.All() {
				for _, r := range b.RentRolls {
					seen[r.Key]++
				}
				for _, l := range b.Leases {
					seen[l.Key]++
				}
			}
			assert.Len(t, seen, len(rentRolls)+len(leases))
			for key, n := range seen {
				assert.Equal(t, 1, n, "record %s placed %d times", key, n)
			}
		})
	}
}

func TestNewStrategy(t *testing.T) {
	comparator := address.NewComparator(nil, nil, 0)

	s, err := NewStrategy("", comparator, false)
	require.NoError(t, err)
	assert.IsType(t, &FirstMatch{}, s)

	s, err = NewStrategy(StrategyBestMatch, comparator, false)
	require.NoError(t, err)
	assert.IsType(t, &BestMatch{}, s)

	_, err = NewStrategy("optimal", comparator, false)
	assert.Error(t, err)
}
