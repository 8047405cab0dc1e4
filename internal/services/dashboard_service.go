// internal/services/dashboard_service.go
package services

import (
	"time"

	"github.com/noodl/inventory/internal/models"
)

const recentBatchLimit = 5

type DashboardService struct {
	catalog   *CatalogService
	purchases *PurchaseService
	waste     *WasteService
	alerts    *AlertService
	now       Clock
}

type DashboardStats struct {
	TotalProducts int64                  `json:"total_products"`
	ActiveBatches int64                  `json:"active_batches"`
	WastedToday   int64                  `json:"wasted_today"`
	ActiveAlerts  int                    `json:"active_alerts"`
	ExpiredAlerts int                    `json:"expired_alerts"`
	RecentBatches []models.PurchaseBatch `json:"recent_batches"`
	Alerts        []models.Alert         `json:"alerts"`
	GeneratedAt   time.Time              `json:"generated_at"`
}

func NewDashboardService(catalog *CatalogService, purchases *PurchaseService, waste *WasteService, alerts *AlertService, now Clock) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		catalog:   catalog,
		purchases: purchases,
		waste:     waste,
		alerts:    alerts,
		now:       now,
	}
}

func (s *DashboardService) Stats() (*DashboardStats, error) {
	now := s.now()
	stats := &DashboardStats{GeneratedAt: now}

	var err error
	if stats.TotalProducts, err = s.catalog.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveBatches, err = s.purchases.CountInStock(); err != nil {
		return nil, err
	}
	if stats.WastedToday, err = s.waste.CountSince(startOfDay(now)); err != nil {
		return nil, err
	}
	if stats.RecentBatches, err = s.purchases.Recent(recentBatchLimit); err != nil {
		return nil, err
	}

	snapshot, err := s.alerts.Snapshot()
	if err != nil {
		return nil, err
	}
	stats.Alerts = s.alerts.Evaluate(snapshot, now)
	stats.ActiveAlerts = len(stats.Alerts)
	for _, alert := range stats.Alerts {
		if alert.Type == models.AlertTypeExpired {
			stats.ExpiredAlerts++
		}
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
