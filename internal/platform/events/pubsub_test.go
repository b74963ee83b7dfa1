package events_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
	"github.com/SscSPs/vetpos_backend/internal/platform/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisherWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := middleware.WithLogger(context.Background(), logger)

	err := events.LogPublisher{}.PublishDeliveryCreated(ctx, domain.DeliveryCreatedEvent{
		DeliveryID:   "d1",
		SaleID:       "s1",
		BranchID:     "b1",
		ShippingCost: decimal.NewFromInt(3500),
		OccurredAt:   time.Now(),
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"delivery_id":"d1"`)
	assert.Contains(t, out, `"type":"delivery.created"`)
	assert.Contains(t, out, `"shipping_cost":"3500"`)
}

func TestNewPubSubPublisherRequiresTopic(t *testing.T) {
	_, err := events.NewPubSubPublisher(context.Background(), "project", "", "")
	assert.Error(t, err)
}
