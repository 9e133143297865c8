package kafka_test

import (
	"renthubber/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settledEvent struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "b-1", Value: settledEvent{BookingID: "b-1", AmountCents: 7000}}

	msg, err := message.ToKafkaMessage("booking.settled")
	require.NoError(t, err)

	assert.Equal(t, "booking.settled", msg.Topic)
	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","amount_cents":7000}`, string(msg.Value))

	decoded, err := kafka.Decode[settledEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), decoded.AmountCents)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := kafka.Decode[settledEvent](kafkaGo.Message{Value: []byte("{")})

	assert.Error(t, err)
}

func TestToKafkaMessageRejectsUnmarshalable(t *testing.T) {
	message := kafka.Message{Key: "x", Value: make(chan int)}

	_, err := message.ToKafkaMessage("t")

	assert.Error(t, err)
}
