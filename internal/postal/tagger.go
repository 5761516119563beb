// Package postal tags free-text addresses with libpostal.
//
// libpostal must be installed on the host (cgo). The core packages only see
// the address.Tagger interface, so they can be tested without it.
package postal

import (
	postal "github.com/openvenues/gopostal/parser"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/debug"
)

// Tagger implements address.Tagger on top of libpostal's CRF parser
type Tagger struct {
	Debug bool
}

// NewTagger creates a libpostal-backed tagger
func NewTagger(debugMode bool) *Tagger {
	return &Tagger{Debug: debugMode}
}

// Tag parses address and maps libpostal labels onto address.Parsed. A label
// produced twice for one input is reported as address.ErrRepeatedLabel.
func (t *Tagger) Tag(raw string) (address.Parsed, error) {
	components := postal.ParseAddress(raw)

	labels := make([]address.Label, 0, len(components))
	for _, component := range components {
		debug.Output(t.Debug, "  %s: %s", component.Label, component.Value)
		labels = append(labels, address.Label{Name: component.Label, Value: component.Value})
	}
	return address.FromLabels(raw, labels)
}

var _ address.Tagger = (*Tagger)(nil)
