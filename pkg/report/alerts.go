package report

import (
	"sort"

	"asset-management-api/internal/models"
)

const (
	AlertExpired  = "expired"
	AlertExpiring = "expiring"
)

// disposedStatus marks assets that have left the inventory; they never alert.
const disposedStatus = "Disposed"

// WarrantyAlert is an asset whose warranty has lapsed or is about to.
type WarrantyAlert struct {
	models.AssetView
	Alert         string `json:"alert"`
	DaysRemaining int    `json:"days_remaining"`
}

// WarrantyAlerts selects the assets whose expiry date is before today, or
// falls within the next days days (inclusive). Assets without an expiry date
// or with status Disposed are skipped. The result is ordered by expiry date,
// soonest first.
func WarrantyAlerts(assets []models.AssetView, today models.Date, days int) []WarrantyAlert {
	out := []WarrantyAlert{}
	for _, a := range assets {
		if a.ExpiryDate == nil || a.ExpiryDate.IsZero() {
			continue
		}
		if a.Status != nil && *a.Status == disposedStatus {
			continue
		}
		remaining := today.DaysUntil(*a.ExpiryDate)
		switch {
		case remaining < 0:
			out = append(out, WarrantyAlert{AssetView: a, Alert: AlertExpired, DaysRemaining: remaining})
		case remaining <= days:
			out = append(out, WarrantyAlert{AssetView: a, Alert: AlertExpiring, DaysRemaining: remaining})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out
}
