package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/document"
)

const sampleDeal = `{
	"leases": [{"deal/lease_a.pdf": {"address": "1 Main St", "unit_number": 101}}],
	"rent_rolls": [{"deal/rr.xlsx": {"property_address": "1 Main St", "unit_numbers": [101, "102"], "date": "2023-06-15"}}],
	"taxes": [{"deal/tax.pdf": {"calendar_year": 2023}}],
	"id_map": {"7": "deal/lease_a.pdf"},
	"tags": ["lease_doc", "rent_roll"]
}`

func TestDecode(t *testing.T) {
	deal, err := Decode(strings.NewReader(sampleDeal))
	require.NoError(t, err)

	leases, rentRolls, taxes := deal.Records()
	require.Len(t, leases, 1)
	require.Len(t, rentRolls, 1)
	require.Len(t, taxes, 1)

	assert.Equal(t, document.DocID("7"), leases[0].DocID)
	assert.Equal(t, []string{"101"}, leases[0].Units())
	assert.Equal(t, []string{"101", "102"}, rentRolls[0].Units())
	assert.Equal(t, "2023", taxes[0].Fields.String("calendar_year"))
	assert.Equal(t, []string{"lease_doc", "rent_roll"}, deal.Tags)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"leases": {`))
	assert.Error(t, err)
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deal.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeal), 0o600))

	deal, err := JSONFile{Path: path}.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, deal.Leases, 1)

	_, err = JSONFile{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background(), "")
	assert.Error(t, err)
}

// TestPostgresLoad needs a scratch database named by LEASEMATCH_TEST_DATABASE_URL
func TestPostgresLoad(t *testing.T) {
	url := os.Getenv("LEASEMATCH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LEASEMATCH_TEST_DATABASE_URL not set")
	}

	conn, err := db.NewConnection(config.DatabaseConfig{URL: url, MaxConnections: 4})
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	pg := NewPostgres(conn)
	require.NoError(t, pg.EnsureSchema(ctx))

	_, err = conn.DB.ExecContext(ctx, `DELETE FROM extracted_document WHERE deal_id = 'test-deal'`)
	require.NoError(t, err)
	_, err = conn.DB.ExecContext(ctx, `
		INSERT INTO extracted_document (doc_id, deal_id, filename, family, fields, tags) VALUES
		('t-1', 'test-deal', 'deal/lease_a.pdf', 'lease', '{"address": "1 Main St", "unit_number": "101"}', '{lease_doc}'),
		('t-2', 'test-deal', 'deal/rr.xlsx', 'rent_roll', '{"property_address": "1 Main St", "date": "2023-06-15"}', '{rent_roll}'),
		('t-3', 'test-deal', 'deal/tax.pdf', 'tax', '{"calendar_year": "2023"}', '{tax_returns,pfs}')
	`)
	require.NoError(t, err)

	deal, err := pg.Load(ctx, "test-deal")
	require.NoError(t, err)

	assert.Len(t, deal.Leases, 1)
	assert.Len(t, deal.RentRolls, 1)
	assert.Len(t, deal.Taxes, 1)
	assert.Equal(t, "deal/rr.xlsx", deal.IDMap["t-2"])
	assert.ElementsMatch(t, []string{"lease_doc", "rent_roll", "tax_returns", "pfs"}, deal.Tags)

	_, err = pg.Load(ctx, "no-such-deal")
	assert.ErrorIs(t, err, ErrDealNotFound)
}
