// internal/services/alert_service.go
package services

import (
	"time"

	"github.com/noodl/inventory/internal/models"
)

// AlertService runs the alert engine over the current ledgers. Nothing is
// cached; every call rescans.
type AlertService struct {
	catalog   *CatalogService
	purchases *PurchaseService
	thaws     *ThawService
	policy    AlertPolicy
	metrics   *Metrics
	now       Clock
}

func NewAlertService(catalog *CatalogService, purchases *PurchaseService, thaws *ThawService, policy AlertPolicy, metrics *Metrics, now Clock) *AlertService {
	if now == nil {
		now = time.Now
	}
	return &AlertService{
		catalog:   catalog,
		purchases: purchases,
		thaws:     thaws,
		policy:    policy,
		metrics:   metrics,
		now:       now,
	}
}

func (s *AlertService) Policy() AlertPolicy {
	return s.policy
}

// Snapshot loads the three ledgers the alert engine reads.
func (s *AlertService) Snapshot() (LedgerSnapshot, error) {
	products, err := s.catalog.List()
	if err != nil {
		return LedgerSnapshot{}, err
	}
	purchases, err := s.purchases.List()
	if err != nil {
		return LedgerSnapshot{}, err
	}
	thawed, err := s.thaws.List()
	if err != nil {
		return LedgerSnapshot{}, err
	}
	return LedgerSnapshot{
		Products:  products,
		Purchases: purchases,
		Thawed:    thawed,
	}, nil
}

// Active returns the alerts for the ledgers as they are now.
func (s *AlertService) Active() ([]models.Alert, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Evaluate(snapshot, s.now()), nil
}

// Evaluate runs the engine over an already loaded snapshot and records the
// alert gauges.
func (s *AlertService) Evaluate(snapshot LedgerSnapshot, now time.Time) []models.Alert {
	alerts := GenerateAlerts(snapshot, now, s.policy)

	var expired, expiringSoon int
	for _, alert := range alerts {
		if alert.Type == models.AlertTypeExpired {
			expired++
		} else {
			expiringSoon++
		}
	}
	s.metrics.AlertsScanned(expired, expiringSoon)

	return alerts
}
