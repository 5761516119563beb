package address

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRepeatedLabel is returned when the tagger assigns the same label to
	// two separate parts of one address, leaving the parse ambiguous.
	ErrRepeatedLabel = errors.New("repeated address label")

	// ErrUnknownDirectional is returned by the strict standardizer when a
	// street pre-directional is not in the lookup table.
	ErrUnknownDirectional = errors.New("unknown street pre-directional")
)

// Parsed holds the tagged components of a single address
type Parsed struct {
	AddressNumber  string `json:"address_number,omitempty"`
	PreDirectional string `json:"street_name_pre_directional,omitempty"`
	StreetName     string `json:"street_name,omitempty"`
	PostType       string `json:"street_name_post_type,omitempty"`
	OccupancyType  string `json:"occupancy_type,omitempty"`
	OccupancyID    string `json:"occupancy_identifier,omitempty"`
	PlaceName      string `json:"place_name,omitempty"`
	StateName      string `json:"state_name,omitempty"`
	ZipCode        string `json:"zip_code,omitempty"`
}

// Tagger splits a free-text address into labelled components. Implementations
// wrap a trained sequence-tagging parser.
type Tagger interface {
	Tag(address string) (Parsed, error)
}

// TaggerFunc adapts a function to the Tagger interface
type TaggerFunc func(address string) (Parsed, error)

// Tag implements Tagger
func (f TaggerFunc) Tag(address string) (Parsed, error) {
	return f(address)
}

// Canonical reconstructs the address as
// "number predir street posttype, occupancy, place, state, zip",
// skipping empty parts.
func (p Parsed) Canonical() string {
	street := joinNonEmpty(" ", p.AddressNumber, p.PreDirectional, p.StreetName, p.PostType)
	occupancy := strings.TrimSpace(p.OccupancyType + " " + p.OccupancyID)
	cityStateZip := joinNonEmpty(", ", p.PlaceName, p.StateName, p.ZipCode)
	return joinNonEmpty(", ", street, occupancy, cityStateZip)
}

func (p Parsed) String() string {
	return fmt.Sprintf("Number: %s, Street: %s, Place: %s, State: %s, Zip: %s",
		p.AddressNumber, joinNonEmpty(" ", p.PreDirectional, p.StreetName, p.PostType),
		p.PlaceName, p.StateName, p.ZipCode)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
