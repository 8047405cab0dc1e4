// internal/services/report_service_test.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodl/inventory/internal/config"
	"github.com/noodl/inventory/internal/models"
)

type fakeS3 struct {
	s3iface.S3API
	err     error
	uploads []*s3.PutObjectInput
	bodies  [][]byte
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.uploads = append(f.uploads, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

var reportAWSConfig = config.AWSConfig{
	Region:       "ap-northeast-1",
	ReportBucket: "kitchen-reports",
	ReportPrefix: "/reports/",
}

func TestReportBuild(t *testing.T) {
	f := newFixture(t)
	prawns := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)
	chicken := f.createProduct(t, "Chicken Thigh", models.ReceivedStateCold, "150", 0)

	frozen := f.createPurchase(t, prawns.ID, "250", f.now.AddDate(0, 1, 0))
	f.createPurchase(t, chicken.ID, "100", f.now.AddDate(0, 0, 1))
	thawed, err := f.thaws.Thaw(&ThawRequest{PurchaseBatchID: frozen.ID, PortionsThawed: 3})
	require.NoError(t, err)

	reports := NewReportService(f.alerts, nil, func() time.Time { return f.now })
	body, generatedAt, err := reports.Build()
	require.NoError(t, err)
	assert.True(t, generatedAt.Equal(f.now))

	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)

	// 100g of 150g portions leaves nothing in stock, so that batch is skipped
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeader, rows[0])

	assert.Equal(t, []string{"Prawns", "purchase", frozen.ID.String(), "7", frozen.BestBeforeDate.String(), "31", ""}, rows[1])

	assert.Equal(t, "Prawns", rows[2][0])
	assert.Equal(t, "thawed", rows[2][1])
	assert.Equal(t, thawed.ID.String(), rows[2][2])
	assert.Equal(t, "3", rows[2][3])
	assert.Equal(t, "2", rows[2][5])
	assert.Equal(t, "expiring_soon", rows[2][6])
}

func TestReportArchive(t *testing.T) {
	f := newFixture(t)
	prawns := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)
	f.createPurchase(t, prawns.ID, "250", f.now.AddDate(0, 1, 0))

	client := &fakeS3{}
	storage := NewStorageServiceWithClient(client, reportAWSConfig)
	reports := NewReportService(f.alerts, storage, func() time.Time { return f.now })

	result, err := reports.Archive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "reports/2025/03/10/20250310T140000Z_inventory.csv", result.Key)
	assert.Equal(t, "https://kitchen-reports.s3.ap-northeast-1.amazonaws.com/"+result.Key, result.URL)
	assert.Equal(t, "text/csv", result.MimeType)

	require.Len(t, client.uploads, 1)
	assert.Equal(t, "kitchen-reports", aws.StringValue(client.uploads[0].Bucket))
	assert.Equal(t, result.Key, aws.StringValue(client.uploads[0].Key))
	assert.Equal(t, int64(len(client.bodies[0])), result.Size)
	assert.Contains(t, string(client.bodies[0]), "Prawns,purchase")
}

func TestReportArchiveErrors(t *testing.T) {
	f := newFixture(t)

	disabled, err := NewStorageService(config.AWSConfig{})
	require.NoError(t, err)
	assert.False(t, disabled.Enabled())

	_, err = NewReportService(f.alerts, disabled, nil).Archive(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = NewReportService(f.alerts, nil, nil).Archive(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)

	failing := NewStorageServiceWithClient(&fakeS3{err: errors.New("access denied")}, reportAWSConfig)
	_, err = NewReportService(f.alerts, failing, nil).Archive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
