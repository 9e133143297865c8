package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/config"
	"renthubber/infras/kafka"
	"renthubber/infras/metrics"
	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/infras/stripe"
	accountService "renthubber/internal/domains/account/service"
	disputeService "renthubber/internal/domains/dispute/service"
	ledgerModel "renthubber/internal/domains/ledger/model"
	ledgerService "renthubber/internal/domains/ledger/service"
	"renthubber/internal/domains/payout/model"
	"renthubber/internal/domains/payout/model/dto"
	"renthubber/internal/domains/payout/repository"
	userService "renthubber/internal/domains/user/service"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	gModel "renthubber/shared/model"
	"renthubber/shared/money"
	"renthubber/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// oneInFlight keeps a second payout of the same user out of processing while
// one is being paid, so the balance check below holds until the debit.
const oneInFlight = "NOT EXISTS (SELECT 1 FROM payout_requests other WHERE other.user_id = payout_requests.user_id " +
	"AND other.status = 'processing')"

type Payout interface {
	Create(ctx context.Context, req dto.CreatePayoutRequest) (dto.PayoutResponse, error)
	Get(ctx context.Context, id string) (dto.PayoutResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetPayoutsResponse, error)
	// Approve pays the request out of the hubber's connected account and
	// debits their balance. Failed preconditions leave it pending with the
	// reason in last_error.
	Approve(ctx context.Context, id string) (dto.PayoutResponse, error)
	Reject(ctx context.Context, id string, req dto.RejectPayoutRequest) (dto.PayoutResponse, error)
	// Reconcile replays approvals left in processing since before staleBefore.
	Reconcile(ctx context.Context, staleBefore time.Time) (model.ReconcileResult, error)
}

type serviceImpl struct {
	repo       repository.Payout
	users      userService.User
	account    accountService.Account
	disputes   disputeService.Dispute
	ledger     ledgerService.Ledger
	processor  stripe.Processor
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Payout,
	users userService.User,
	account accountService.Account,
	disputes disputeService.Dispute,
	ledger ledgerService.Ledger,
	processor stripe.Processor,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Payout {
	return &serviceImpl{
		repo:       repo,
		users:      users,
		account:    account,
		disputes:   disputes,
		ledger:     ledger,
		processor:  processor,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func byIDAndStatus(id string, status model.Status) gDto.FilterGroup {
	return shared.FilterByFields(model.TableName, map[string]any{
		model.FieldID:     id,
		model.FieldStatus: status,
	})
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePayoutRequest) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.Actor(ctx)
	amount := money.Cents(req.AmountCents)

	if !amount.IsPositive() {
		return res, failure.InvalidAmount("payout amount must be positive") //nolint:wrapcheck
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if amount > user.BalanceCents {
		return res, failure.InsufficientBalance(fmt.Sprintf("requested %s but balance is %s", amount, user.BalanceCents)) //nolint:wrapcheck
	}

	now := timezone.Now()
	request := model.Request{
		ID:          uuid.NewString(),
		UserID:      userID,
		AmountCents: amount,
		Status:      model.StatusPending,
		RequestedAt: now,
		Metadata:    gModel.NewMetadata(userID, now),
	}

	if err = s.repo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to insert payout request")

		return res, fmt.Errorf("failed to create payout request: %w", err)
	}

	log.Info().Str("payout_id", request.ID).Int64("amount_cents", amount.Int64()).Msg("payout requested")

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Request, error) {
	request, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("payout_id", id).Msg("failed to get payout request")

		return request, fmt.Errorf("failed to get payout request: %w", err)
	}

	if request.ID == "" {
		return request, failure.NotFound("payout request not found") //nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.Actor(ctx)

	request, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if request.UserID != userID && !shared.IsAdmin(role) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetPayoutsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.Actor(ctx)

	fields := map[string]any{}
	if !shared.IsAdmin(role) {
		fields[model.FieldUserID] = userID
	}

	if status != "" {
		fields[model.FieldStatus] = status
	}

	filter := shared.FilterByFields(model.TableName, fields)

	if params.SortBy == "" {
		params.SortBy = model.FieldRequestedAt
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payout requests")

		return res, fmt.Errorf("failed to count payout requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payout requests")

		return res, fmt.Errorf("failed to get payout requests: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// claim moves id from pending to processing.
func (s *serviceImpl) claim(ctx context.Context, request model.Request, adminID string) error {
	filter := byIDAndStatus(request.ID, model.StatusPending)
	filter.Filters = append(filter.Filters, gDto.Filter{Value: oneInFlight, Operator: gDto.FilterPlainQuery})

	var affected int64

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		affected, err = s.repo.ConditionalUpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        model.StatusProcessing,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: adminID,
		}, filter)

		return err //nolint:wrapcheck
	})
	if postgres.IsUniqueViolation(err) {
		return failure.InvalidState("another payout of this user is processing") //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("payout_id", request.ID).Msg("failed to claim payout request")

		return fmt.Errorf("failed to claim payout request: %w", err)
	}

	if affected == 0 {
		return failure.InvalidState("payout request is not pending or another payout of this user is processing") //nolint:wrapcheck
	}

	return nil
}

// release returns a processing request to pending and records why.
func (s *serviceImpl) release(ctx context.Context, request model.Request, cause error) {
	_, err := s.repo.ConditionalUpdate(context.WithoutCancel(ctx), map[string]any{
		model.FieldStatus:        model.StatusPending,
		model.FieldLastError:     cause.Error(),
		model.FieldAttempts:      request.Attempts + 1,
		constant.FieldModifiedAt: timezone.Now(),
	}, byIDAndStatus(request.ID, model.StatusProcessing))
	if err != nil {
		log.Error().Err(err).Str("payout_id", request.ID).Msg("failed to release payout request")
	}
}

// check verifies the approval preconditions and returns the destination account.
func (s *serviceImpl) check(ctx context.Context, request model.Request) (string, error) {
	user, err := s.account.EnsureReady(ctx, request.UserID)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	open, err := s.disputes.CountOpenAgainst(ctx, request.UserID)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	if open > 0 {
		return "", failure.OpenDisputeBlock(fmt.Sprintf("user has %d open dispute(s)", open)) //nolint:wrapcheck
	}

	if user.BalanceCents < request.AmountCents {
		return "", failure.InsufficientBalance( //nolint:wrapcheck
			fmt.Sprintf("requested %s but balance is %s", request.AmountCents, user.BalanceCents))
	}

	return user.ConnectedAccount(), nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	adminID, _ := shared.Actor(ctx)

	request, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if request.Status != model.StatusPending {
		return res, failure.InvalidState(fmt.Sprintf("payout request is %s", request.Status)) //nolint:wrapcheck
	}

	if err = s.claim(ctx, request, adminID); err != nil {
		return res, err
	}

	destination, err := s.check(ctx, request)
	if err != nil {
		log.Warn().Err(err).Str("payout_id", id).Msg("payout preconditions failed")
		s.release(ctx, request, err)
		metrics.Payout(metrics.OutcomeRejected)

		return res, err
	}

	payoutRef, err := s.pay(ctx, request, destination)
	if err != nil {
		return res, err
	}

	request, err = s.finalize(ctx, request, payoutRef, adminID)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	return res, nil
}

// pay calls the processor. A definite rejection releases the request, an
// unknown outcome leaves it processing for Reconcile.
func (s *serviceImpl) pay(ctx context.Context, request model.Request, destination string) (string, error) {
	payoutRef, err := s.processor.Payout(ctx, stripe.PayoutRequest{
		IdempotencyKey: model.IdempotencyKey(request.ID, request.Attempts),
		Account:        destination,
		Amount:         request.AmountCents,
		EntityID:       request.ID,
	})
	if err == nil {
		return payoutRef, nil
	}

	if failure.OutcomeUnknown(err) {
		log.Error().Err(err).Str("payout_id", request.ID).Msg("payout outcome unknown, left for reconciliation")
		metrics.Payout(metrics.OutcomeUnknown)

		return "", err //nolint:wrapcheck
	}

	log.Warn().Err(err).Str("payout_id", request.ID).Msg("processor rejected payout")
	s.release(ctx, request, err)
	metrics.Payout(metrics.OutcomeFailed)

	return "", err //nolint:wrapcheck
}

// finalize debits the balance and marks the request approved in one transaction.
func (s *serviceImpl) finalize(ctx context.Context, request model.Request, payoutRef, adminID string) (model.Request, error) {
	now := timezone.Now()

	err := shared.Persist(ctx, s.cfg.Settlement.FinalizeMaxRetries,
		time.Duration(s.cfg.Settlement.FinalizeBackoffMillis)*time.Millisecond,
		func(ctx context.Context) error {
			return s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error { //nolint:wrapcheck
				affected, err := s.repo.ConditionalUpdateTx(ctx, tx, map[string]any{
					model.FieldStatus:         model.StatusApproved,
					model.FieldStripePayoutID: payoutRef,
					model.FieldProcessedBy:    adminID,
					model.FieldProcessedAt:    now,
					model.FieldPaidAt:         now,
					model.FieldLastError:      nil,
					constant.FieldModifiedAt:  now,
					constant.FieldModifiedBy:  adminID,
				}, byIDAndStatus(request.ID, model.StatusProcessing))
				if err != nil {
					return fmt.Errorf("failed to mark payout approved: %w", err)
				}

				if affected == 0 {
					return failure.InvalidState("payout request is no longer processing") //nolint:wrapcheck
				}

				return s.ledger.Post(ctx, tx, ledgerModel.Posting{ //nolint:wrapcheck
					UserID:      request.UserID,
					Account:     ledgerModel.AccountBalance,
					Direction:   ledgerModel.DirectionDebit,
					Amount:      request.AmountCents,
					Type:        ledgerModel.TypePayout,
					PayoutID:    request.ID,
					ExternalRef: payoutRef,
					Description: "payout to bank account",
				})
			})
		})
	if err != nil {
		log.Error().Err(err).Str("payout_id", request.ID).Str("stripe_payout_id", payoutRef).
			Msg("payout sent but bookkeeping failed, left for reconciliation")
		metrics.Payout(metrics.OutcomeUnknown)

		return request, fmt.Errorf("failed to record payout: %w", err)
	}

	metrics.Payout(metrics.OutcomeSuccess)

	log.Info().Str("payout_id", request.ID).Str("stripe_payout_id", payoutRef).
		Int64("amount_cents", request.AmountCents.Int64()).Msg("payout approved")

	request.Status = model.StatusApproved
	request.StripePayoutID = &payoutRef
	request.ProcessedBy = &adminID
	request.ProcessedAt = &now
	request.PaidAt = &now
	request.LastError = nil
	request.ModifiedAt = now
	request.ModifiedBy = adminID

	s.publish(ctx, model.Event{
		Type:        model.EventApproved,
		PayoutID:    request.ID,
		UserID:      request.UserID,
		AmountCents: request.AmountCents.Int64(),
		PayoutRef:   payoutRef,
		OccurredAt:  now,
	})

	return request, nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.PayoutProcessed, kafka.Message{Key: event.PayoutID, Value: event})
	if err != nil {
		log.Warn().Err(err).Str("payout_id", event.PayoutID).Str("type", event.Type).Msg("failed to publish payout event")
	}
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectPayoutRequest) (res dto.PayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	adminID, _ := shared.Actor(ctx)

	request, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		model.FieldStatus:          model.StatusRejected,
		model.FieldRejectionReason: req.Reason,
		model.FieldProcessedBy:     adminID,
		model.FieldProcessedAt:     now,
		constant.FieldModifiedAt:   now,
		constant.FieldModifiedBy:   adminID,
	}, byIDAndStatus(id, model.StatusPending))
	if err != nil {
		log.Error().Err(err).Str("payout_id", id).Msg("failed to reject payout request")

		return res, fmt.Errorf("failed to reject payout request: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidState("only pending payout requests can be rejected") //nolint:wrapcheck
	}

	request.Status = model.StatusRejected
	request.RejectionReason = &req.Reason
	request.ProcessedBy = &adminID
	request.ProcessedAt = &now
	request.ModifiedAt = now
	request.ModifiedBy = adminID

	log.Info().Str("payout_id", id).Str("reason", req.Reason).Msg("payout rejected")

	s.publish(ctx, model.Event{
		Type:        model.EventRejected,
		PayoutID:    request.ID,
		UserID:      request.UserID,
		AmountCents: request.AmountCents.Int64(),
		Reason:      req.Reason,
		OccurredAt:  now,
	})

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) Reconcile(ctx context.Context, staleBefore time.Time) (res model.ReconcileResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payout.Reconcile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	adminID, _ := shared.Actor(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusProcessing, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				Field: constant.FieldModifiedAt, ArgName: "stale_before", Value: staleBefore,
				Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
			},
		},
	}

	stuck, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stuck payout requests")

		return res, fmt.Errorf("failed to list stuck payout requests: %w", err)
	}

	for _, request := range stuck {
		if err := s.replay(ctx, request, adminID); err != nil {
			metrics.Reconciled("payout", metrics.OutcomeFailed)
			res.Unresolved = append(res.Unresolved, model.Unresolved{
				ID:     request.ID,
				State:  string(request.Status),
				Reason: err.Error(),
			})

			continue
		}

		metrics.Reconciled("payout", metrics.OutcomeSuccess)
		res.Resolved++
	}

	return res, nil
}

// replay repeats the processor call with the original idempotency key, so a
// payout the processor already made is returned instead of made twice.
func (s *serviceImpl) replay(ctx context.Context, request model.Request, adminID string) error {
	user, err := s.users.Get(ctx, request.UserID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	payoutRef, err := s.pay(ctx, request, user.ConnectedAccount())
	if err != nil {
		if failure.OutcomeUnknown(err) {
			return err
		}

		// Released back to pending: nothing was paid, so the item is settled.
		return nil
	}

	_, err = s.finalize(ctx, request, payoutRef, adminID)

	return err
}
