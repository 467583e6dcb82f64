package internal

import (
	"net/http"
	"strconv"
	"testing"

	"asset-management-api/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func TestWarrantyAlerts(t *testing.T) {
	s := newTestServer(t)
	for code, expiry := range map[string]string{
		"W1": "2025-06-01", // expired
		"W2": "2025-07-10", // within 30 days
		"W3": "2025-09-01", // outside 30 days
	} {
		payload := assetPayload(code)
		payload["expiry_date"] = expiry
		create(t, s, "/api/assets", payload)
	}
	create(t, s, "/api/assets", assetPayload("W4"))

	rec := do(t, s, http.MethodGet, "/api/assets/warranty-alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	alerts := decodeList(t, rec)
	require.Len(t, alerts, 2)
	assert.Equal(t, "W1", alerts[0]["asset_code"])
	assert.Equal(t, "expired", alerts[0]["alert"])
	assert.Equal(t, float64(-14), alerts[0]["days_remaining"])
	assert.Equal(t, "Laptops", alerts[0]["category_name"])
	assert.Equal(t, "W2", alerts[1]["asset_code"])
	assert.Equal(t, "expiring", alerts[1]["alert"])
	assert.Equal(t, float64(25), alerts[1]["days_remaining"])

	rec = do(t, s, http.MethodGet, "/api/assets/warranty-alerts?days=90", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 3)

	rec = do(t, s, http.MethodGet, "/api/assets/warranty-alerts?days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportAssets(t *testing.T) {
	s := newTestServer(t)
	payload := assetPayload("X1")
	payload["make"] = "Apple"
	create(t, s, "/api/assets", payload)

	rec := do(t, s, http.MethodGet, "/api/reports/assets.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asset_report_2025-06-15.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))

	f, err := xlsx.OpenBinary(rec.Body.Bytes())
	require.NoError(t, err)
	sheet := f.Sheet[report.SheetName]
	require.NotNil(t, sheet)
	assert.Equal(t, 2, sheet.MaxRow)

	row, err := sheet.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "X1", row.GetCell(0).Value)
	assert.Equal(t, "Apple", row.GetCell(3).Value)
	assert.Equal(t, "N/A", row.GetCell(5).Value)
	assert.Equal(t, "Laptops", row.GetCell(7).Value)
}

func TestExportAssetsFailureIsJSON(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Store.Close())

	rec := do(t, s, http.MethodGet, "/api/reports/assets.xlsx", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, errorMessage(t, rec), "Failed to retrieve assets")
}
