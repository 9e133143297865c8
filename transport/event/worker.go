package event

import (
	"context"
	"renthubber/config"
	"renthubber/infras/kafka"
	"renthubber/infras/otel"
	"renthubber/internal/domains/booking/model"
	settlementService "renthubber/internal/domains/settlement/service"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const defaultReconcileInterval = 5 * time.Minute

// Worker settles completed bookings from the event stream and periodically
// reconciles whatever got stuck in processing.
type Worker struct {
	cfg        *config.Config
	kafka      kafka.Client
	settlement settlementService.Settlement
	otel       otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, settlement settlementService.Settlement, otel otel.Otel) *Worker {
	return &Worker{
		cfg:        cfg,
		kafka:      kafka,
		settlement: settlement,
		otel:       otel,
	}
}

// Run blocks until ctx is done and both loops have returned.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		log.Info().Str("topic", w.cfg.Kafka.Topics.BookingCompleted).Msg("Consuming completed bookings.")
		w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.BookingCompleted, w.HandleBookingCompleted)
	}()

	go func() {
		defer wg.Done()

		w.reconcileLoop(ctx)
	}()

	wg.Wait()

	if err := w.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka writer.")
	}
}

func (w *Worker) reconcileInterval() time.Duration {
	if secs := w.cfg.Settlement.ReconcileIntervalSeconds; secs > 0 {
		return time.Duration(secs) * time.Second
	}

	return defaultReconcileInterval
}

func (w *Worker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.reconcileInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Reconcile(ctx)
		}
	}
}

// Reconcile runs a single pass. Errors are logged and retried on the next tick.
func (w *Worker) Reconcile(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".Reconcile")
	defer scope.End()

	result, err := w.settlement.Reconcile(shared.SystemContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("reconciliation pass failed")

		return
	}

	log.Info().
		Int("resolved", result.Resolved).
		Int("unresolved", result.Unresolved).
		Str("report", result.ReportLocation).
		Msg("reconciliation pass finished")
}

// HandleBookingCompleted settles the booking named by the event. Returning an
// error leaves the offset uncommitted so the event is delivered again, which
// is only done for failures that a retry can fix.
func (w *Worker) HandleBookingCompleted(ctx context.Context, msg kafkaGo.Message) error {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleBookingCompleted")
	defer scope.End()

	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		scope.TraceError(err)

		// malformed payloads never decode, redelivery would block the partition
		return nil
	}

	if event.Type != model.EventCompleted || event.BookingID == "" {
		log.Warn().Str("type", event.Type).Str("key", string(msg.Key)).Msg("skipping unexpected event")

		return nil
	}

	logger := log.With().Str("booking_id", event.BookingID).Logger()

	_, err = w.settlement.Complete(shared.SystemContext(ctx), event.BookingID)

	switch {
	case err == nil:
		logger.Info().Msg("booking settled")

		return nil
	case failure.HasReason(err, failure.ReasonAlreadySettled):
		logger.Debug().Msg("booking already settled")

		return nil
	case failure.HasReason(err, failure.ReasonAccountNotReady),
		failure.HasReason(err, failure.ReasonInvalidState),
		failure.HasReason(err, failure.ReasonInvalidAmount),
		failure.HasReason(err, failure.ReasonExternalProcessor):
		// left for the reconciler or an admin, see settlement_state
		scope.TraceError(err)
		logger.Warn().Err(err).Msg("booking not settled")

		return nil
	default:
		scope.TraceError(err)
		logger.Error().Err(err).Msg("failed to settle booking")

		return err //nolint:wrapcheck
	}
}
