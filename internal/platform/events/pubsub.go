// Package events publishes delivery events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

const eventTypeDeliveryCreated = "delivery.created"

// PubSubPublisher publishes delivery events to a Google Pub/Sub topic.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

var _ portssvc.DeliveryPublisher = (*PubSubPublisher)(nil)

// NewPubSubPublisher connects to projectID. credentialsJSON may be empty to
// use application default credentials.
func NewPubSubPublisher(ctx context.Context, projectID, credentialsJSON, topicID string) (*PubSubPublisher, error) {
	if projectID == "" || topicID == "" {
		return nil, fmt.Errorf("pubsub project and topic are required")
	}
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	topic := client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to check topic %q: %w", topicID, err)
	}
	if !ok {
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("create topic %q: %w", topicID, err)
		}
	}
	return &PubSubPublisher{client: client, topic: topic}, nil
}

// PublishDeliveryCreated blocks until the server acknowledges the message.
func (p *PubSubPublisher) PublishDeliveryCreated(ctx context.Context, event domain.DeliveryCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode delivery event: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":      eventTypeDeliveryCreated,
			"branch_id": event.BranchID,
			"sale_id":   event.SaleID,
		},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish delivery event: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Delivery event published",
		slog.String("message_id", id),
		slog.String("delivery_id", event.DeliveryID))
	return nil
}

// Close flushes pending messages and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

// LogPublisher writes delivery events to the request logger.
type LogPublisher struct{}

var _ portssvc.DeliveryPublisher = LogPublisher{}

func (LogPublisher) PublishDeliveryCreated(ctx context.Context, event domain.DeliveryCreatedEvent) error {
	middleware.GetLoggerFromCtx(ctx).Info("Delivery created",
		slog.String("type", eventTypeDeliveryCreated),
		slog.String("delivery_id", event.DeliveryID),
		slog.String("sale_id", event.SaleID),
		slog.String("branch_id", event.BranchID),
		slog.String("shipping_cost", event.ShippingCost.String()))
	return nil
}
