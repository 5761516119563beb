package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/debug"
	"github.com/leasematch/internal/document"
)

// Postgres loads deals from the extracted_document table:
//
//	extracted_document(doc_id text, filename text, family text,
//	                   fields jsonb, tags text[], deal_id text)
//
// The three families and the tag list are read concurrently.
type Postgres struct {
	conn  *db.Connection
	Debug bool
}

// NewPostgres creates a source over conn
func NewPostgres(conn *db.Connection) *Postgres {
	return &Postgres{conn: conn}
}

// Schema creates the extracted_document table when it does not exist
const Schema = `
CREATE TABLE IF NOT EXISTS extracted_document (
	doc_id   TEXT PRIMARY KEY,
	deal_id  TEXT NOT NULL,
	filename TEXT NOT NULL,
	family   TEXT NOT NULL CHECK (family IN ('lease', 'rent_roll', 'tax', 'other')),
	fields   JSONB NOT NULL DEFAULT '{}',
	tags     TEXT[]
);
CREATE INDEX IF NOT EXISTS idx_extracted_document_deal ON extracted_document (deal_id, family);
`

// EnsureSchema creates the table and index used by Load
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.conn.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type familyRows struct {
	entries []document.Entry
	ids     document.IDMap
}

// Load implements Source
func (p *Postgres) Load(ctx context.Context, dealID string) (*document.Deal, error) {
	defer debug.Timing(p.Debug, "load deal "+dealID)()

	families := []document.Family{document.FamilyLease, document.FamilyRentRoll, document.FamilyTax}
	rows := make([]familyRows, len(families))
	var tags []string

	g, gCtx := errgroup.WithContext(ctx)
	for i, family := range families {
		i, family := i, family
		g.Go(func() error {
			loaded, err := p.loadFamily(gCtx, dealID, family)
			if err != nil {
				return fmt.Errorf("failed to load %s documents for deal %s: %w", family, dealID, err)
			}
			rows[i] = loaded
			return nil
		})
	}
	g.Go(func() error {
		loaded, err := p.loadTags(gCtx, dealID)
		if err != nil {
			return fmt.Errorf("failed to load tags for deal %s: %w", dealID, err)
		}
		tags = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(rows[0].entries)+len(rows[1].entries)+len(rows[2].entries) == 0 && len(tags) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDealNotFound, dealID)
	}

	deal := &document.Deal{
		Leases:    rows[0].entries,
		RentRolls: rows[1].entries,
		Taxes:     rows[2].entries,
		IDMap:     document.IDMap{},
		Tags:      tags,
	}
	for _, r := range rows {
		for id, filename := range r.ids {
			deal.IDMap[id] = filename
		}
	}
	debug.Output(p.Debug, "Deal %s: %d leases, %d rent rolls, %d taxes, %d tags",
		dealID, len(deal.Leases), len(deal.RentRolls), len(deal.Taxes), len(deal.Tags))
	return deal, nil
}

func (p *Postgres) loadFamily(ctx context.Context, dealID string, family document.Family) (familyRows, error) {
	result := familyRows{ids: document.IDMap{}}

	rows, err := p.conn.DB.QueryContext(ctx, `
		SELECT doc_id, filename, fields
		FROM extracted_document
		WHERE deal_id = $1 AND family = $2
		ORDER BY filename
	`, dealID, string(family))
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var docID, filename string
		var raw []byte
		if err := rows.Scan(&docID, &filename, &raw); err != nil {
			return result, err
		}

		fields := document.Fields{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return result, fmt.Errorf("invalid fields for %s: %w", filename, err)
			}
		}
		result.entries = append(result.entries, document.Entry{filename: fields})
		if docID != "" {
			result.ids[docID] = filename
		}
	}
	return result, rows.Err()
}

func (p *Postgres) loadTags(ctx context.Context, dealID string) ([]string, error) {
	rows, err := p.conn.DB.QueryContext(ctx, `
		SELECT tags
		FROM extracted_document
		WHERE deal_id = $1 AND tags IS NOT NULL
		ORDER BY filename
	`, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var docTags []string
		if err := rows.Scan(pq.Array(&docTags)); err != nil {
			return nil, err
		}
		tags = append(tags, docTags...)
	}
	return tags, rows.Err()
}
