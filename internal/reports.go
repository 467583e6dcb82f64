package internal

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"asset-management-api/internal/models"
	"asset-management-api/pkg/report"

	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// warrantyAlerts lists assets whose warranty has expired or expires within
// ?days= days (the configured default when omitted).
func (s *Server) warrantyAlerts(w http.ResponseWriter, r *http.Request) {
	days := s.warrantyAlertDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid days parameter: must be a non-negative integer")
			return
		}
		days = n
	}

	assets, err := s.Store.ListAssets(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve assets: "+err.Error(), err)
		return
	}
	today := models.DateOf(s.now())
	writeJSON(w, http.StatusOK, report.WarrantyAlerts(assetViews(assets), today, days))
}

// exportAssets sends the asset report as an XLSX download. The workbook is
// rendered in full before any header goes out, so a failure is still a 500.
func (s *Server) exportAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.Store.ListAssets(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve assets: "+err.Error(), err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteAssets(&buf, assetViews(assets)); err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to build report: "+err.Error(), err)
		return
	}

	filename := fmt.Sprintf("asset_report_%s.xlsx", models.DateOf(s.now()))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write report")
	}
}
