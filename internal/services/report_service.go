// internal/services/report_service.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/noodl/inventory/internal/models"
)

const (
	reportName        = "inventory.csv"
	reportContentType = "text/csv"
)

var reportHeader = []string{
	"product",
	"batch_type",
	"batch_id",
	"remaining_portions",
	"expiry_date",
	"days_until_expiry",
	"alert",
}

// ReportService renders the stock-on-hand sheet kitchens print or archive.
type ReportService struct {
	alerts  *AlertService
	storage *StorageService
	now     Clock
}

func NewReportService(alerts *AlertService, storage *StorageService, now Clock) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		alerts:  alerts,
		storage: storage,
		now:     now,
	}
}

// Build renders every batch that still holds portions as CSV, purchase
// batches first, with the alert type of any batch inside the alert window.
func (s *ReportService) Build() ([]byte, time.Time, error) {
	now := s.now()
	snapshot, err := s.alerts.Snapshot()
	if err != nil {
		return nil, now, err
	}

	alertTypes := make(map[string]models.AlertType)
	for _, alert := range s.alerts.Evaluate(snapshot, now) {
		alertTypes[alert.ID] = alert.Type
	}
	names := newProductNames(snapshot)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeader); err != nil {
		return nil, now, fmt.Errorf("failed to write report: %w", err)
	}

	for i := range snapshot.Purchases {
		batch := &snapshot.Purchases[i]
		if batch.RemainingPortions <= 0 {
			continue
		}
		expiry := batch.BestBeforeDate.Time
		row := []string{
			names.forPurchase(batch),
			string(models.BatchTypePurchase),
			batch.ID.String(),
			strconv.Itoa(batch.RemainingPortions),
			batch.BestBeforeDate.String(),
			strconv.Itoa(DaysUntilExpiry(expiry, now)),
			string(alertTypes[fmt.Sprintf("alert_%s", batch.ID)]),
		}
		if err := w.Write(row); err != nil {
			return nil, now, fmt.Errorf("failed to write report: %w", err)
		}
	}

	for i := range snapshot.Thawed {
		batch := &snapshot.Thawed[i]
		if batch.RemainingPortions <= 0 {
			continue
		}
		row := []string{
			names.forThawed(batch),
			string(models.BatchTypeThawed),
			batch.ID.String(),
			strconv.Itoa(batch.RemainingPortions),
			batch.ExpiryDate.Format(time.RFC3339),
			strconv.Itoa(DaysUntilExpiry(batch.ExpiryDate, now)),
			string(alertTypes[fmt.Sprintf("alert_thaw_%s", batch.ID)]),
		}
		if err := w.Write(row); err != nil {
			return nil, now, fmt.Errorf("failed to write report: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, now, fmt.Errorf("failed to write report: %w", err)
	}
	return buf.Bytes(), now, nil
}

// Archive builds the report and uploads it to S3.
func (s *ReportService) Archive(ctx context.Context) (*UploadResult, error) {
	if !s.storage.Enabled() {
		return nil, ErrStorageDisabled
	}

	body, generatedAt, err := s.Build()
	if err != nil {
		return nil, err
	}

	result, err := s.storage.UploadReport(ctx, reportName, generatedAt, reportContentType, body)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"key":  result.Key,
		"size": result.Size,
	}).Info("Inventory report archived")
	return result, nil
}
