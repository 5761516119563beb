// Package source loads deal documents for reconciliation from a JSON file or
// from the extracted-document table in PostgreSQL.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leasematch/internal/document"
)

// ErrDealNotFound is returned when a source holds no documents for a deal
var ErrDealNotFound = errors.New("deal not found")

// Source loads the documents of one deal
type Source interface {
	Load(ctx context.Context, dealID string) (*document.Deal, error)
}

// Decode reads a deal in the JSON input format
func Decode(r io.Reader) (*document.Deal, error) {
	var deal document.Deal
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&deal); err != nil {
		return nil, fmt.Errorf("failed to decode deal: %w", err)
	}
	return &deal, nil
}

// JSONFile reads a deal from a file on disk. The deal id is ignored.
type JSONFile struct {
	Path string
}

// Load implements Source
func (f JSONFile) Load(_ context.Context, _ string) (*document.Deal, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	deal, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return deal, nil
}
