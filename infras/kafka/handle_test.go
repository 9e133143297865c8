package kafka

import (
	"context"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	msg := kafkaGo.Message{Topic: "booking.completed", Key: []byte("b-1"), Offset: 7}

	t.Run("retries the same message until it succeeds", func(t *testing.T) {
		var offsets []int64

		err := handle(context.Background(), func(_ context.Context, got kafkaGo.Message) error {
			offsets = append(offsets, got.Offset)
			if len(offsets) == 1 {
				return errors.New("db down")
			}

			return nil
		}, msg)

		require.NoError(t, err)
		assert.Equal(t, []int64{7, 7}, offsets)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		calls := 0
		err := handle(ctx, func(_ context.Context, _ kafkaGo.Message) error {
			calls++
			cancel()

			return errors.New("db down")
		}, msg)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
