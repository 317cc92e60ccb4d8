package events

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilProducerDropsEvents(t *testing.T) {
	p := NewProducer("", "topic", "", "")
	assert.Nil(t, p)
	assert.NoError(t, p.Publish(context.Background(), "key", Event{Type: EnrollmentRecorded}))
	assert.NoError(t, p.Close())
}

func TestProducerUsesSASLOnlyWithCredentials(t *testing.T) {
	plain := NewProducer("broker:9092", "topic", "", "")
	require.NotNil(t, plain)
	assert.Equal(t, "topic", plain.writer.Topic)
	transport, ok := plain.writer.Transport.(*kafka.Transport)
	require.True(t, ok)
	assert.Nil(t, transport.SASL)
	assert.Nil(t, transport.TLS)

	secured := NewProducer("broker:9092", "topic", "user", "pass")
	transport, ok = secured.writer.Transport.(*kafka.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.SASL)
	assert.NotNil(t, transport.TLS)
}
