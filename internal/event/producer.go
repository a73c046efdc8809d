package event

import (
	"context"
	"log/slog"

	"github.com/Kolanot/catalog-service/internal/domain"
	"github.com/Kolanot/catalog-service/pkg/kafka"
	"github.com/Kolanot/catalog-service/pkg/logger"
)

const (
	TopicLineCreated = "catalogue.line.created"
	TopicLineUpdated = "catalogue.line.updated"
	TopicLineDeleted = "catalogue.line.deleted"

	aggregateTypeLine = "catalogue_line"
	source            = "catalog-service"
)

// Publisher publishes catalogue domain events.
type Publisher interface {
	LineCreated(ctx context.Context, line *domain.CatalogueLine)
	LineUpdated(ctx context.Context, line *domain.CatalogueLine)
	LineDeleted(ctx context.Context, catalogueUUID, lineID string)
}

// Producer publishes catalogue events to Kafka. Publish failures are logged
// and swallowed so event delivery never fails the originating request.
type Producer struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewProducer creates a catalogue event producer.
func NewProducer(producer *kafka.Producer, log *slog.Logger) *Producer {
	return &Producer{producer: producer, logger: log}
}

var _ Publisher = (*Producer)(nil)

type linePayload struct {
	CatalogueUUID string `json:"catalogue_uuid"`
	LineID        string `json:"line_id"`
	Name          string `json:"name,omitempty"`
}

func (p *Producer) LineCreated(ctx context.Context, line *domain.CatalogueLine) {
	p.publish(ctx, TopicLineCreated, "catalogue.line.created", linePayload{
		CatalogueUUID: line.CatalogueUUID,
		LineID:        line.ID,
		Name:          line.Name,
	}, line.ID)
}

func (p *Producer) LineUpdated(ctx context.Context, line *domain.CatalogueLine) {
	p.publish(ctx, TopicLineUpdated, "catalogue.line.updated", linePayload{
		CatalogueUUID: line.CatalogueUUID,
		LineID:        line.ID,
		Name:          line.Name,
	}, line.ID)
}

func (p *Producer) LineDeleted(ctx context.Context, catalogueUUID, lineID string) {
	p.publish(ctx, TopicLineDeleted, "catalogue.line.deleted", linePayload{
		CatalogueUUID: catalogueUUID,
		LineID:        lineID,
	}, lineID)
}

func (p *Producer) publish(ctx context.Context, topic, eventType string, payload linePayload, aggregateID string) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateTypeLine, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) LineCreated(context.Context, *domain.CatalogueLine) {}
func (NopPublisher) LineUpdated(context.Context, *domain.CatalogueLine) {}
func (NopPublisher) LineDeleted(context.Context, string, string)        {}
