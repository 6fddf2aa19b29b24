package message

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorteos/correlation"
)

func TestPublishedMessageCarriesCorrelationID(t *testing.T) {
	ctx := correlation.ContextWithID(context.Background(), "req-42")

	msg := message.NewMessage(watermill.NewUUID(), []byte("{}"))
	msg.SetContext(ctx)

	require.NoError(t, tagCorrelationID(cqrs.OnEventSendParams{Message: msg}))

	assert.Equal(t, "req-42", middleware.MessageCorrelationID(msg))
}

func TestCorrelationIDRoundTripsToHandlerContext(t *testing.T) {
	published := message.NewMessage(watermill.NewUUID(), []byte("{}"))
	published.SetContext(correlation.ContextWithID(context.Background(), "req-42"))
	require.NoError(t, tagCorrelationID(cqrs.OnEventSendParams{Message: published}))

	// The subscriber side sees a fresh message whose only link to the
	// request is the metadata.
	received := message.NewMessage(published.UUID, published.Payload)
	received.Metadata = published.Metadata
	received.SetContext(context.Background())

	var handlerID string
	handle := correlationIDMiddleware(func(msg *message.Message) ([]*message.Message, error) {
		handlerID = correlation.IDFromContext(msg.Context())
		return nil, nil
	})

	_, err := handle(received)
	require.NoError(t, err)
	assert.Equal(t, "req-42", handlerID)
}

func TestCorrelationIDGeneratedWhenMetadataMissing(t *testing.T) {
	msg := message.NewMessage(watermill.NewUUID(), []byte("{}"))
	msg.SetContext(context.Background())

	var handlerID string
	handle := correlationIDMiddleware(func(msg *message.Message) ([]*message.Message, error) {
		handlerID = correlation.IDFromContext(msg.Context())
		return nil, nil
	})

	_, err := handle(msg)
	require.NoError(t, err)
	assert.NotEmpty(t, handlerID)
	assert.Contains(t, handlerID, "gen_")
}
