package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fiipulse/pkg/contracts/domain"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	entries := []domain.LedgerEntry{
		entry("2026-08-25", "HGLG11", 4, domain.VerdictAttractive),
		entry("2026-08-26", "MXRF11", 1, domain.VerdictFair),
	}
	require.NoError(t, WriteXLSX(path, entries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "HGLG11", rows[1][1])
	assert.Equal(t, "MXRF11", rows[2][1])
}
