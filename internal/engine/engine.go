// Package engine wires the reconciliation components from configuration.
package engine

import (
	"fmt"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/bucket"
	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/matcher"
	"github.com/leasematch/internal/metrics"
	"github.com/leasematch/internal/similarity"
)

// Engine holds the process-wide reconciliation components. The similarity
// primitive is built once here and shared read-only by every caller.
type Engine struct {
	Config       *config.Config
	Similarity   similarity.Similarity
	Standardizer *address.Standardizer
	Comparator   *address.Comparator
	Matcher      *matcher.Matcher
	Metrics      *metrics.Recorder
}

// New builds an engine around tagger, which wraps the address parser
func New(cfg *config.Config, tagger address.Tagger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sim, err := similarity.New(cfg.Matching.SimilarityMethod, cfg.Matching.EmbeddingDimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to create similarity: %w", err)
	}

	policy, err := address.ParseDirectionalPolicy(cfg.Matching.DirectionalPolicy)
	if err != nil {
		return nil, err
	}

	standardizer := address.NewStandardizer(tagger, address.NewStateResolver(nil), policy)
	standardizer.Debug = cfg.Debug

	comparator := address.NewComparator(tagger, sim, cfg.Matching.Threshold)
	comparator.Debug = cfg.Debug

	recorder := metrics.New()
	strategy, err := bucket.NewStrategy(cfg.Matching.BucketStrategy, recorder.Observe(comparator), cfg.Debug)
	if err != nil {
		return nil, err
	}

	m := matcher.New(strategy, nil).WithObserver(recorder)
	m.Debug = cfg.Debug

	return &Engine{
		Config:       cfg,
		Similarity:   sim,
		Standardizer: standardizer,
		Comparator:   comparator,
		Matcher:      m,
		Metrics:      recorder,
	}, nil
}
