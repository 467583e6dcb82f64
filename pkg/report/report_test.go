package report

import (
	"bytes"
	"testing"

	"asset-management-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func cellValues(t *testing.T, sheet *xlsx.Sheet, idx int) []string {
	t.Helper()
	row, err := sheet.Row(idx)
	require.NoError(t, err)
	values := make([]string, len(Columns))
	for i := range Columns {
		values[i] = row.GetCell(i).Value
	}
	return values
}

func TestWriteAssets(t *testing.T) {
	year := 2023
	expiry := models.NewDate(2026, 3, 1)
	assets := []models.AssetView{
		{
			Asset: models.Asset{
				AssetCode:    "LAP-001",
				SerialNumber: "SN001",
				Make:         models.StringPtr("Lenovo"),
				Status:       models.StringPtr("Active"),
				Year:         &year,
				ExpiryDate:   &expiry,
			},
			CategoryName: models.StringPtr("Laptops"),
			LocationName: models.StringPtr("HQ"),
			UserName:     models.StringPtr("Ada"),
		},
		{
			Asset: models.Asset{AssetCode: "MON-002", SerialNumber: "SN002"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssets(&buf, assets))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok, "sheet %q missing", SheetName)
	assert.Equal(t, 3, sheet.MaxRow)

	assert.Equal(t, Columns, cellValues(t, sheet, 0))

	first := cellValues(t, sheet, 1)
	assert.Equal(t, []string{
		"LAP-001", "SN001", "", "Lenovo", "",
		"Ada", "Active", "Laptops", "HQ", "", "2026-03-01",
		"N/A", "2023", "", "", "", "",
	}, first)

	second := cellValues(t, sheet, 2)
	assert.Equal(t, "MON-002", second[0])
	assert.Equal(t, "N/A", second[5], "assigned user")
	assert.Equal(t, "N/A", second[7], "category")
	assert.Equal(t, "N/A", second[8], "location")
	assert.Equal(t, "N/A", second[10], "expiry date")
	assert.Equal(t, "", second[12], "year")
}

func TestWriteAssetsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAssets(&buf, nil))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := f.Sheet[SheetName]
	require.NotNil(t, sheet)
	assert.Equal(t, 1, sheet.MaxRow)
}
