package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"milkledger/internal/domain/ledger"
)

func TestExtractDBColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "module", "name", "phone", "rate_per_liter",
			"opening_balance", "created_at", "updated_at"},
		ExtractDBColumns[ledger.Contact]())

	assert.Equal(t,
		[]string{"id", "contact_id", "date", "amount", "note", "created_at"},
		ExtractDBColumns[ledger.Payment]())
}

func TestExtractDBColumnsEmbedded(t *testing.T) {
	type base struct {
		ID string `db:"id"`
	}
	type row struct {
		base
		Name    string `db:"name"`
		Skipped string `db:"-"`
		NoTag   string
	}

	assert.Equal(t, []string{"id", "name"}, ExtractDBColumns[row]())
}
