package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/redis/go-redis/v9"

	"sorteos/correlation"
)

// NewEventBus returns a cqrs event bus publishing to redis streams, one
// topic per event name.
func NewEventBus(rdb *redis.Client, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	eventBus, err := cqrs.NewEventBusWithConfig(publisher, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		OnPublish: tagCorrelationID,
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	return eventBus, nil
}

// tagCorrelationID carries the publishing request's correlation ID into
// the message metadata, where the consumer middleware reads it back.
func tagCorrelationID(params cqrs.OnEventSendParams) error {
	middleware.SetCorrelationID(correlation.IDFromContext(params.Message.Context()), params.Message)
	return nil
}
