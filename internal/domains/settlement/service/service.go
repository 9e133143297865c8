package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"renthubber/config"
	"renthubber/infras/kafka"
	"renthubber/infras/metrics"
	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/infras/s3"
	"renthubber/infras/stripe"
	accountService "renthubber/internal/domains/account/service"
	bookingModel "renthubber/internal/domains/booking/model"
	"renthubber/internal/domains/booking/model/dto"
	bookingRepo "renthubber/internal/domains/booking/repository"
	feeService "renthubber/internal/domains/fee/service"
	ledgerModel "renthubber/internal/domains/ledger/model"
	ledgerService "renthubber/internal/domains/ledger/service"
	payoutService "renthubber/internal/domains/payout/service"
	"renthubber/internal/domains/settlement/model"
	userService "renthubber/internal/domains/user/service"
	"renthubber/shared"
	"renthubber/shared/cache"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/money"
	"renthubber/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Settlement interface {
	// Complete pays the hubber exactly once: the net of a completed booking or
	// the compensation of a cancelled one. A second call returns AlreadySettled.
	Complete(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	// Cancel cancels the booking for the calling party and refunds the renter
	// according to the booking's cancellation policy.
	Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) (dto.BookingResponse, error)
	Preview(ctx context.Context, bookingID string) (dto.CancellationPreview, error)
	// Reconcile finishes settlements, refunds and payouts stuck in processing.
	Reconcile(ctx context.Context) (model.ReconcileResult, error)
}

type serviceImpl struct {
	repo       bookingRepo.Booking
	users      userService.User
	account    accountService.Account
	ledger     ledgerService.Ledger
	fee        feeService.Fee
	payouts    payoutService.Payout
	processor  stripe.Processor
	transactor postgres.Transactor
	kafka      kafka.Client
	s3         s3.S3
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo bookingRepo.Booking,
	users userService.User,
	account accountService.Account,
	ledger ledgerService.Ledger,
	fee feeService.Fee,
	payouts payoutService.Payout,
	processor stripe.Processor,
	transactor postgres.Transactor,
	kafka kafka.Client,
	s3 s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Settlement {
	return &serviceImpl{
		repo:       repo,
		users:      users,
		account:    account,
		ledger:     ledger,
		fee:        fee,
		payouts:    payouts,
		processor:  processor,
		transactor: transactor,
		kafka:      kafka,
		s3:         s3,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) load(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(bookingModel.CachePrefixGet, id), bookingModel.CachePrefixList)
}

func (s *serviceImpl) publish(ctx context.Context, topic string, event bookingModel.Event) {
	if err := s.kafka.SendMessages(ctx, topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		log.Warn().Err(err).Str("booking_id", event.BookingID).Str("type", event.Type).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) persist(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	return shared.Persist(ctx, s.cfg.Settlement.FinalizeMaxRetries, //nolint:wrapcheck
		time.Duration(s.cfg.Settlement.FinalizeBackoffMillis)*time.Millisecond,
		func(ctx context.Context) error {
			return s.transactor.WithinTx(ctx, fn) //nolint:wrapcheck
		})
}

func processing(id string, status bookingModel.Status) gDto.FilterGroup {
	return shared.FilterByFields(bookingModel.TableName, map[string]any{
		bookingModel.FieldID:              id,
		bookingModel.FieldStatus:          status,
		bookingModel.FieldSettlementState: bookingModel.SettlementProcessing,
	})
}

// setState moves a processing booking to state. A failed transfer also moves
// the booking to its next processor attempt so the retry gets a fresh key.
func (s *serviceImpl) setState(ctx context.Context, booking bookingModel.Booking, state bookingModel.SettlementState) {
	fields := map[string]any{
		bookingModel.FieldSettlementState: state,
		constant.FieldModifiedAt:          timezone.Now(),
	}

	if state == bookingModel.SettlementFailed {
		fields[bookingModel.FieldProcessorAttempt] = booking.ProcessorAttempt + 1
	}

	_, err := s.repo.ConditionalUpdate(context.WithoutCancel(ctx), fields, processing(booking.ID, booking.Status))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("state", string(state)).Msg("failed to update settlement state")
	}
}

func (s *serviceImpl) Complete(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".settlement.Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, _ := shared.Actor(ctx)

	booking, err := s.claimCompletion(ctx, bookingID, actorID)
	if err != nil {
		return res, err
	}

	if amount := booking.Payable(); !amount.IsPositive() {
		s.setState(ctx, booking, bookingModel.SettlementNone)
		metrics.Settlement(metrics.OutcomeRejected)

		return res, failure.InvalidAmount(fmt.Sprintf("amount owed to hubber %s is not positive", amount)) //nolint:wrapcheck
	}

	hubber, err := s.account.EnsureReady(ctx, booking.HubberID)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", bookingID).Msg("hubber account cannot receive transfers")
		s.setState(ctx, booking, bookingModel.SettlementNone)
		metrics.Settlement(metrics.OutcomeRejected)

		return res, err //nolint:wrapcheck
	}

	transferID, err := s.transfer(ctx, booking, hubber.ConnectedAccount())
	if err != nil {
		return res, err
	}

	booking, err = s.finalizeCompletion(ctx, booking, transferID)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// claimCompletion moves an unpaid booking into processing. Completed bookings
// owe the hubber net, cancelled ones the compensation left after the refund.
func (s *serviceImpl) claimCompletion(ctx context.Context, id, actorID string) (bookingModel.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    []bookingModel.Status{bookingModel.StatusCompleted, bookingModel.StatusCancelled},
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{Field: bookingModel.FieldTransferCompleted, Value: false, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{
				Field:    bookingModel.FieldSettlementState,
				Value:    []bookingModel.SettlementState{bookingModel.SettlementNone, bookingModel.SettlementFailed},
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
	}

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		bookingModel.FieldSettlementState: bookingModel.SettlementProcessing,
		constant.FieldModifiedAt:          timezone.Now(),
		constant.FieldModifiedBy:          actorID,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to claim booking for settlement")

		return bookingModel.Booking{}, fmt.Errorf("failed to claim booking for settlement: %w", err)
	}

	booking, err := s.load(ctx, id)
	if err != nil {
		return booking, err
	}

	if affected == 1 {
		return booking, nil
	}

	if booking.TransferCompleted ||
		booking.SettlementState == bookingModel.SettlementSettled ||
		booking.SettlementState == bookingModel.SettlementProcessing {
		return booking, failure.AlreadySettled("booking transfer is completed or in flight") //nolint:wrapcheck
	}

	return booking, failure.InvalidState(fmt.Sprintf("booking is %s and cannot be settled", booking.Status)) //nolint:wrapcheck
}

// transfer sends what the hubber is owed to destination. A definite rejection
// marks the settlement failed, an unknown outcome leaves it processing.
func (s *serviceImpl) transfer(ctx context.Context, booking bookingModel.Booking, destination string) (string, error) {
	transferID, err := s.processor.Transfer(ctx, stripe.TransferRequest{
		IdempotencyKey: bookingModel.TransferIdempotencyKey(booking.ID, booking.ProcessorAttempt),
		Destination:    destination,
		Amount:         booking.Payable(),
		EntityID:       booking.ID,
	})
	if err == nil {
		return transferID, nil
	}

	if failure.OutcomeUnknown(err) {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("transfer outcome unknown, left for reconciliation")
		metrics.Settlement(metrics.OutcomeUnknown)

		return "", err //nolint:wrapcheck
	}

	log.Warn().Err(err).Str("booking_id", booking.ID).Int("attempt", booking.ProcessorAttempt).Msg("processor rejected transfer")
	s.setState(ctx, booking, bookingModel.SettlementFailed)
	metrics.Settlement(metrics.OutcomeFailed)

	return "", err //nolint:wrapcheck
}

func (s *serviceImpl) finalizeCompletion(ctx context.Context, booking bookingModel.Booking, transferID string) (bookingModel.Booking, error) {
	now := timezone.Now()
	amount := booking.Payable()
	completed := booking.Status == bookingModel.StatusCompleted

	posting := ledgerModel.Posting{
		UserID:      booking.HubberID,
		Account:     ledgerModel.AccountBalance,
		Direction:   ledgerModel.DirectionCredit,
		Amount:      amount,
		Type:        ledgerModel.TypeBookingPayout,
		BookingID:   booking.ID,
		ExternalRef: transferID,
		Description: "earnings for completed booking",
	}

	if !completed {
		posting.Type = ledgerModel.TypeHubberCompensation
		posting.Description = "compensation for late cancellation"
	}

	var overrides []string

	err := s.persist(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		overrides = nil

		affected, err := s.repo.ConditionalUpdateTx(ctx, tx, map[string]any{
			bookingModel.FieldSettlementState:     bookingModel.SettlementSettled,
			bookingModel.FieldTransferCompleted:   true,
			bookingModel.FieldTransferID:          transferID,
			bookingModel.FieldTransferCompletedAt: now,
			constant.FieldModifiedAt:              now,
		}, processing(booking.ID, booking.Status))
		if err != nil {
			return fmt.Errorf("failed to mark booking settled: %w", err)
		}

		if affected == 0 {
			return failure.AlreadySettled("booking is no longer processing") //nolint:wrapcheck
		}

		if err := s.ledger.Post(ctx, tx, posting); err != nil {
			return err //nolint:wrapcheck
		}

		if !completed {
			return nil
		}

		if booking.DepositCents.IsPositive() {
			err = s.ledger.Post(ctx, tx, ledgerModel.Posting{
				UserID:      booking.RenterID,
				Account:     ledgerModel.AccountWallet,
				Direction:   ledgerModel.DirectionCredit,
				Amount:      booking.DepositCents,
				Type:        ledgerModel.TypeDepositReturn,
				BookingID:   booking.ID,
				Description: "deposit returned after completed booking",
			})
			if err != nil {
				return err //nolint:wrapcheck
			}
		}

		for _, overrideID := range []string{booking.RenterOverride(), booking.HubberOverride()} {
			if overrideID == "" {
				continue
			}

			if err := s.fee.RecordUsage(ctx, tx, overrideID, booking.BasePriceCents); err != nil {
				return err //nolint:wrapcheck
			}

			overrides = append(overrides, overrideID)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("transfer_id", transferID).
			Msg("transfer sent but bookkeeping failed, left for reconciliation")
		metrics.Settlement(metrics.OutcomeUnknown)

		return booking, fmt.Errorf("failed to record settlement: %w", err)
	}

	metrics.Settlement(metrics.OutcomeSuccess)
	s.invalidate(ctx, booking.ID)

	if len(overrides) > 0 {
		s.fee.ForgetOverrides(ctx, booking.RenterID, booking.HubberID)
	}

	log.Info().Str("booking_id", booking.ID).Str("transfer_id", transferID).
		Str("status", string(booking.Status)).Int64("amount_cents", amount.Int64()).Msg("booking settled")

	booking.SettlementState = bookingModel.SettlementSettled
	booking.TransferCompleted = true
	booking.TransferID = &transferID
	booking.TransferCompletedAt = &now
	booking.ModifiedAt = now

	event := bookingModel.NewEvent(bookingModel.EventSettled, booking, now)
	event.AmountCents = amount.Int64()
	event.TransferID = transferID
	s.publish(ctx, s.cfg.Kafka.Topics.BookingSettled, event)

	return booking, nil
}

// party resolves who is cancelling. Admins who are not on the booking cancel as admin.
func party(booking bookingModel.Booking, userID, role string) (bookingModel.Party, error) {
	if p, ok := booking.PartyOf(userID); ok {
		return p, nil
	}

	if shared.IsAdmin(role) {
		return bookingModel.PartyAdmin, nil
	}

	return "", failure.ResourceRestrictedError
}

func (s *serviceImpl) decide(ctx context.Context, id string) (bookingModel.Booking, bookingModel.Party, bookingModel.RefundDecision, bookingModel.Refund, error) {
	userID, role := shared.Actor(ctx)

	var (
		decision bookingModel.RefundDecision
		refund   bookingModel.Refund
	)

	booking, err := s.load(ctx, id)
	if err != nil {
		return booking, "", decision, refund, err
	}

	who, err := party(booking, userID, role)
	if err != nil {
		return booking, "", decision, refund, err
	}

	if !booking.Status.Cancellable() {
		return booking, who, decision, refund, failure.InvalidState( //nolint:wrapcheck
			fmt.Sprintf("booking is %s and can no longer be cancelled", booking.Status))
	}

	decision, err = bookingModel.DecideRefund(booking, who, timezone.Now())
	if err != nil {
		return booking, who, decision, refund, err //nolint:wrapcheck
	}

	refund, err = bookingModel.CalculateRefund(booking.Payment(), decision.Percentage)

	return booking, who, decision, refund, err //nolint:wrapcheck
}

func (s *serviceImpl) Preview(ctx context.Context, bookingID string) (res dto.CancellationPreview, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".settlement.Preview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, who, decision, refund, err := s.decide(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, who, decision, refund)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".settlement.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.Actor(ctx)

	booking, who, decision, refund, err := s.decide(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if refund.Card.IsPositive() && booking.PaymentIntent() == "" {
		return res, failure.InvalidState("booking has no card payment to refund") //nolint:wrapcheck
	}

	previous := booking.Status
	before := string(previous)
	now := timezone.Now()
	pct := refund.Percentage
	cancelledBy := string(who)

	cancelled := booking
	cancelled.Status = bookingModel.StatusCancelled
	cancelled.StatusBeforeCancel = &before
	cancelled.SettlementState = bookingModel.SettlementProcessing
	cancelled.CancelledBy = &cancelledBy
	cancelled.CancelledAt = &now
	cancelled.RefundPercentage = &pct
	cancelled.RefundWalletCents = refund.Wallet
	cancelled.RefundCardCents = refund.Card
	cancelled.ModifiedAt = now
	cancelled.ModifiedBy = userID

	if req.Reason != "" {
		cancelled.CancellationReason = &req.Reason
	}

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		bookingModel.FieldStatus:             bookingModel.StatusCancelled,
		bookingModel.FieldSettlementState:    bookingModel.SettlementProcessing,
		bookingModel.FieldCancelledBy:        cancelledBy,
		bookingModel.FieldCancelledAt:        now,
		bookingModel.FieldCancellationReason: cancelled.CancellationReason,
		bookingModel.FieldRefundPercentage:   pct,
		bookingModel.FieldRefundWalletCents:  refund.Wallet,
		bookingModel.FieldRefundCardCents:    refund.Card,
		bookingModel.FieldStatusBeforeCancel: before,
		constant.FieldModifiedAt:             now,
		constant.FieldModifiedBy:             userID,
	}, shared.FilterByFields(bookingModel.TableName, map[string]any{
		bookingModel.FieldID:     bookingID,
		bookingModel.FieldStatus: previous,
	}))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidState("booking was changed by another request") //nolint:wrapcheck
	}

	refundID, err := s.refundCard(ctx, cancelled, refund.Card)
	if err != nil {
		if !failure.OutcomeUnknown(err) {
			s.restore(ctx, cancelled)
		}

		return res, err
	}

	cancelled, err = s.finalizeCancellation(ctx, cancelled, refundID)
	if err != nil {
		return res, err
	}

	if cancelled.SettlementState == bookingModel.SettlementNone {
		settled, err := s.Complete(ctx, bookingID)
		if err != nil {
			log.Warn().Err(err).Str("booking_id", bookingID).Msg("hubber compensation not transferred yet, left for reconciliation")
		} else {
			res = settled
		}
	}

	log.Info().
		Str("booking_id", bookingID).
		Str("cancelled_by", string(who)).
		Int("refund_percentage", pct).
		Str("message_key", decision.MessageKey).
		Msg("booking cancelled")

	if res.ID == "" {
		res.FromModel(cancelled)
	}

	return res, nil
}

// refundCard reverses the card share of a cancelled booking. It returns an
// empty id when nothing was paid by card.
func (s *serviceImpl) refundCard(ctx context.Context, booking bookingModel.Booking, amount money.Cents) (string, error) {
	if !amount.IsPositive() {
		return "", nil
	}

	pct := booking.RefundPct()

	refundID, err := s.processor.Refund(ctx, stripe.RefundRequest{
		IdempotencyKey:  bookingModel.RefundIdempotencyKey(booking.ID, booking.ProcessorAttempt),
		PaymentIntentID: booking.PaymentIntent(),
		Amount:          amount,
		EntityID:        booking.ID,
	})
	if err == nil {
		return refundID, nil
	}

	if failure.OutcomeUnknown(err) {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("refund outcome unknown, left for reconciliation")
		metrics.Refund(pct, metrics.OutcomeUnknown)

		return "", err //nolint:wrapcheck
	}

	log.Warn().Err(err).Str("booking_id", booking.ID).Int("attempt", booking.ProcessorAttempt).Msg("processor rejected refund")
	metrics.Refund(pct, metrics.OutcomeFailed)

	return "", err //nolint:wrapcheck
}

// restore undoes a cancellation whose card refund was rejected. The booking
// returns to the status it was cancelled from and moves to its next processor
// attempt, so cancelling again refunds under a fresh key.
func (s *serviceImpl) restore(ctx context.Context, booking bookingModel.Booking) {
	previous := booking.PreviousStatus()

	_, err := s.repo.ConditionalUpdate(context.WithoutCancel(ctx), map[string]any{
		bookingModel.FieldStatus:             previous,
		bookingModel.FieldSettlementState:    bookingModel.SettlementNone,
		bookingModel.FieldProcessorAttempt:   booking.ProcessorAttempt + 1,
		bookingModel.FieldStatusBeforeCancel: nil,
		bookingModel.FieldCancelledBy:        nil,
		bookingModel.FieldCancelledAt:        nil,
		bookingModel.FieldCancellationReason: nil,
		bookingModel.FieldRefundPercentage:   nil,
		bookingModel.FieldRefundWalletCents:  money.Cents(0),
		bookingModel.FieldRefundCardCents:    money.Cents(0),
		constant.FieldModifiedAt:             timezone.Now(),
	}, processing(booking.ID, bookingModel.StatusCancelled))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to restore booking after rejected refund")

		return
	}

	log.Warn().Str("booking_id", booking.ID).Str("status", string(previous)).Msg("cancellation rolled back after rejected refund")
}

// finalizeCancellation records the refund. When the hubber keeps a
// compensation the booking goes back to none, waiting for its transfer.
func (s *serviceImpl) finalizeCancellation(ctx context.Context, booking bookingModel.Booking, refundID string) (bookingModel.Booking, error) {
	pct := booking.RefundPct()
	compensation := booking.Payable()
	now := timezone.Now()

	state := bookingModel.SettlementSettled
	if compensation.IsPositive() {
		state = bookingModel.SettlementNone
	}

	var ref *string
	if refundID != "" {
		ref = &refundID
	}

	err := s.persist(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		affected, err := s.repo.ConditionalUpdateTx(ctx, tx, map[string]any{
			bookingModel.FieldSettlementState: state,
			bookingModel.FieldRefundID:        ref,
			bookingModel.FieldRefundedAt:      now,
			constant.FieldModifiedAt:          now,
		}, processing(booking.ID, bookingModel.StatusCancelled))
		if err != nil {
			return fmt.Errorf("failed to record refund: %w", err)
		}

		if affected == 0 {
			return failure.InvalidState("booking refund is no longer processing") //nolint:wrapcheck
		}

		if !booking.RefundWalletCents.IsPositive() {
			return nil
		}

		return s.ledger.Post(ctx, tx, ledgerModel.Posting{ //nolint:wrapcheck
			UserID:      booking.RenterID,
			Account:     ledgerModel.AccountWallet,
			Direction:   ledgerModel.DirectionCredit,
			Amount:      booking.RefundWalletCents,
			Type:        ledgerModel.TypeRefund,
			BookingID:   booking.ID,
			Description: "wallet refund for cancelled booking",
		})
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("refund issued but bookkeeping failed, left for reconciliation")
		metrics.Refund(pct, metrics.OutcomeUnknown)

		return booking, fmt.Errorf("failed to record cancellation: %w", err)
	}

	metrics.Refund(pct, metrics.OutcomeSuccess)
	metrics.RefundedCents("wallet", booking.RefundWalletCents.Int64())
	metrics.RefundedCents("card", booking.RefundCardCents.Int64())
	s.invalidate(ctx, booking.ID)

	booking.SettlementState = state
	booking.RefundID = ref
	booking.RefundedAt = &now
	booking.ModifiedAt = now

	event := bookingModel.NewEvent(bookingModel.EventCancelled, booking, now)
	event.RefundPercentage = booking.RefundPercentage
	event.RefundWallet = booking.RefundWalletCents.Int64()
	event.RefundCard = booking.RefundCardCents.Int64()
	event.AmountCents = compensation.Int64()

	if booking.CancelledBy != nil {
		event.CancelledBy = *booking.CancelledBy
	}

	s.publish(ctx, s.cfg.Kafka.Topics.BookingCancelled, event)

	return booking, nil
}

func (s *serviceImpl) Reconcile(ctx context.Context) (res model.ReconcileResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".settlement.Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	report := model.Report{
		GeneratedAt: now,
		StaleBefore: now.Add(-time.Duration(s.cfg.Settlement.StaleAfterSeconds) * time.Second),
	}

	stuck, err := s.stale(ctx, report.StaleBefore, map[string]any{
		bookingModel.FieldSettlementState: bookingModel.SettlementProcessing,
	})
	if err != nil {
		return res, err
	}

	for _, booking := range stuck {
		kind := model.KindTransfer
		if refunding(booking) {
			kind = model.KindRefund
		}

		s.record(&res, &report, booking, kind, s.replay(ctx, booking))
	}

	unsettled, err := s.stale(ctx, report.StaleBefore, map[string]any{
		bookingModel.FieldSettlementState:   bookingModel.SettlementNone,
		bookingModel.FieldTransferCompleted: false,
	}, gDto.Filter{
		Field:    bookingModel.FieldStatus,
		Value:    []bookingModel.Status{bookingModel.StatusCompleted, bookingModel.StatusCancelled},
		Operator: gDto.FilterOperatorIn,
		Table:    bookingModel.TableName,
	})
	if err != nil {
		return res, err
	}

	for _, booking := range unsettled {
		_, err := s.Complete(ctx, booking.ID)
		if failure.HasReason(err, failure.ReasonAlreadySettled) {
			err = nil
		}

		s.record(&res, &report, booking, model.KindPending, err)
	}

	payouts, err := s.payouts.Reconcile(ctx, report.StaleBefore)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Resolved += payouts.Resolved
	res.Unresolved += len(payouts.Unresolved)
	report.Payouts = payouts.Unresolved

	if !report.Empty() {
		res.ReportLocation, err = s.upload(ctx, report)
		if err != nil {
			return res, err
		}
	}

	log.Info().Int("resolved", res.Resolved).Int("unresolved", res.Unresolved).Str("report", res.ReportLocation).Msg("reconciliation finished")

	return res, nil
}

func (s *serviceImpl) stale(ctx context.Context, staleBefore time.Time, fields map[string]any, extra ...gDto.Filter) ([]bookingModel.Booking, error) {
	filter := shared.FilterByFields(bookingModel.TableName, fields)

	for _, f := range extra {
		filter.Filters = append(filter.Filters, f)
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    constant.FieldModifiedAt,
		ArgName:  "stale_before",
		Value:    staleBefore,
		Operator: gDto.FilterOperatorLessEq,
		Table:    bookingModel.TableName,
	})

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings for reconciliation")

		return nil, fmt.Errorf("failed to list bookings for reconciliation: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) record(res *model.ReconcileResult, report *model.Report, booking bookingModel.Booking, kind string, err error) {
	if err == nil {
		res.Resolved++
		metrics.Reconciled(kind, metrics.OutcomeSuccess)

		return
	}

	res.Unresolved++
	metrics.Reconciled(kind, metrics.OutcomeFailed)

	report.Bookings = append(report.Bookings, model.Unresolved{
		BookingID: booking.ID,
		Kind:      kind,
		Status:    string(booking.Status),
		State:     string(booking.SettlementState),
		Reason:    err.Error(),
	})
}

// refunding reports whether a processing booking is still waiting for its
// refund rather than for the hubber transfer.
func refunding(booking bookingModel.Booking) bool {
	return booking.Status == bookingModel.StatusCancelled && booking.RefundedAt == nil
}

// replay repeats the processor call of a stuck booking with its current
// idempotency key, then records the result.
func (s *serviceImpl) replay(ctx context.Context, booking bookingModel.Booking) error {
	if refunding(booking) {
		refundID, err := s.refundCard(ctx, booking, booking.RefundCardCents)
		if err != nil {
			if !failure.OutcomeUnknown(err) {
				s.restore(ctx, booking)
			}

			return err
		}

		_, err = s.finalizeCancellation(ctx, booking, refundID)

		return err
	}

	hubber, err := s.users.Get(ctx, booking.HubberID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	transferID, err := s.transfer(ctx, booking, hubber.ConnectedAccount())
	if err != nil {
		return err
	}

	_, err = s.finalizeCompletion(ctx, booking, transferID)

	return err
}

func (s *serviceImpl) upload(ctx context.Context, report model.Report) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode reconciliation report: %w", err)
	}

	bucket := s.cfg.Settlement.ReportBucket

	location, err := s.s3.Put(ctx, s3.Object{
		Bucket:      bucket,
		Directory:   model.ReportDirectory,
		Name:        report.FileName(),
		ContentType: model.ReportContentType,
		Body:        data,
	})
	if err != nil {
		log.Error().Err(err).Int("bookings", len(report.Bookings)).Int("payouts", len(report.Payouts)).
			Msg("failed to upload reconciliation report")

		return "", fmt.Errorf("failed to upload reconciliation report: %w", err)
	}

	log.Warn().Str("location", location).Int("bookings", len(report.Bookings)).Int("payouts", len(report.Payouts)).
		Msg("reconciliation left unresolved items")

	return location, nil
}
