package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"renthubber/config"
	kafkaMocks "renthubber/infras/kafka/mocks"
	"renthubber/infras/otel/mocks"
	"renthubber/internal/domains/booking/model"
	"renthubber/internal/domains/booking/model/dto"
	settlementModel "renthubber/internal/domains/settlement/model"
	settlementMocks "renthubber/internal/domains/settlement/service/mocks"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	"renthubber/transport/event"
)

func completedMessage(t *testing.T, eventType, bookingID string) kafka.Message {
	t.Helper()

	value, err := json.Marshal(model.Event{Type: eventType, BookingID: bookingID, OccurredAt: time.Now()})
	require.NoError(t, err)

	return kafka.Message{Topic: "booking.completed", Key: []byte(bookingID), Value: value}
}

func TestWorker_HandleBookingCompleted(t *testing.T) {
	tests := []struct {
		name      string
		msg       func(t *testing.T) kafka.Message
		setupMock func(settlement *settlementMocks.MockSettlement)
		wantErr   bool
	}{
		{
			name: "settles as the platform",
			msg:  func(t *testing.T) kafka.Message { return completedMessage(t, model.EventCompleted, "booking-1") },
			setupMock: func(settlement *settlementMocks.MockSettlement) {
				settlement.EXPECT().Complete(gomock.Any(), "booking-1").
					DoAndReturn(func(ctx context.Context, _ string) (dto.BookingResponse, error) {
						assert.Equal(t, constant.ContextSystem, ctx.Value(constant.ContextKeyUserID))

						return dto.BookingResponse{ID: "booking-1"}, nil
					})
			},
		},
		{
			name: "already settled is committed",
			msg:  func(t *testing.T) kafka.Message { return completedMessage(t, model.EventCompleted, "booking-1") },
			setupMock: func(settlement *settlementMocks.MockSettlement) {
				settlement.EXPECT().Complete(gomock.Any(), "booking-1").Return(dto.BookingResponse{}, failure.AlreadySettled("already settled"))
			},
		},
		{
			name: "account not ready is left for the reconciler",
			msg:  func(t *testing.T) kafka.Message { return completedMessage(t, model.EventCompleted, "booking-1") },
			setupMock: func(settlement *settlementMocks.MockSettlement) {
				settlement.EXPECT().Complete(gomock.Any(), "booking-1").Return(dto.BookingResponse{}, failure.AccountNotReady("payouts disabled"))
			},
		},
		{
			name: "database errors are redelivered",
			msg:  func(t *testing.T) kafka.Message { return completedMessage(t, model.EventCompleted, "booking-1") },
			setupMock: func(settlement *settlementMocks.MockSettlement) {
				settlement.EXPECT().Complete(gomock.Any(), "booking-1").Return(dto.BookingResponse{}, errors.New("connection reset"))
			},
			wantErr: true,
		},
		{
			name:      "other event types are skipped",
			msg:       func(t *testing.T) kafka.Message { return completedMessage(t, model.EventCancelled, "booking-1") },
			setupMock: func(_ *settlementMocks.MockSettlement) {},
		},
		{
			name:      "garbage is skipped",
			msg:       func(_ *testing.T) kafka.Message { return kafka.Message{Value: []byte("{not json")} },
			setupMock: func(_ *settlementMocks.MockSettlement) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settlement := settlementMocks.NewMockSettlement(ctrl)
			tt.setupMock(settlement)

			worker := event.New(&config.Config{}, kafkaMocks.NewMockClient(ctrl), settlement, mocks.NewOtel())

			err := worker.HandleBookingCompleted(context.Background(), tt.msg(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	settlement := settlementMocks.NewMockSettlement(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "settlement"
	cfg.Kafka.Topics.BookingCompleted = "booking.completed"
	cfg.Settlement.ReconcileIntervalSeconds = 1

	ctx, cancel := context.WithCancel(context.Background())

	client.EXPECT().Consume(gomock.Any(), "settlement", "booking.completed", gomock.Any()).
		Do(func(ctx context.Context, _, _ string, _ any) { <-ctx.Done() })
	settlement.EXPECT().Reconcile(gomock.Any()).
		DoAndReturn(func(context.Context) (settlementModel.ReconcileResult, error) {
			cancel()

			return settlementModel.ReconcileResult{Resolved: 1}, nil
		})
	client.EXPECT().Close().Return(nil)

	done := make(chan struct{})

	go func() {
		event.New(cfg, client, settlement, mocks.NewOtel()).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}
