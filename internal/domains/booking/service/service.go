package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/config"
	"renthubber/infras/kafka"
	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/internal/domains/booking/model"
	"renthubber/internal/domains/booking/model/dto"
	"renthubber/internal/domains/booking/repository"
	feeService "renthubber/internal/domains/fee/service"
	ledgerModel "renthubber/internal/domains/ledger/model"
	ledgerService "renthubber/internal/domains/ledger/service"
	"renthubber/shared"
	"renthubber/shared/cache"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	gModel "renthubber/shared/model"
	"renthubber/shared/money"
	"renthubber/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	// Create prices the booking, stores it and takes the wallet part of the
	// payment from the renter in one transaction.
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Accept(ctx context.Context, id string) (dto.BookingResponse, error)
	Start(ctx context.Context, id string) (dto.BookingResponse, error)
	// Complete marks the rental finished and announces it so the hubber gets paid.
	Complete(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	fee        feeService.Fee
	ledger     ledgerService.Ledger
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	fee feeService.Fee,
	ledger ledgerService.Ledger,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		fee:        fee,
		ledger:     ledger,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func canView(renterID, hubberID, userID, role string) bool {
	return shared.IsAdmin(role) || userID == renterID || userID == hubberID
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	renterID, _ := shared.Actor(ctx)

	if renterID == req.HubberID {
		return res, failure.BadRequestFromString("renter and hubber must differ") //nolint:wrapcheck
	}

	start, end, err := req.Period()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if !end.After(start) {
		return res, failure.BadRequestFromString("end_at must be after start_at") //nolint:wrapcheck
	}

	quote, err := s.fee.Quote(ctx, renterID, req.HubberID, money.Cents(req.BasePriceCents))
	if err != nil {
		log.Error().Err(err).Msg("failed to quote booking fees")

		return res, err
	}

	cleaning := money.Cents(req.CleaningFeeCents)
	deposit := money.Cents(req.DepositCents)
	wallet := money.Cents(req.WalletPaidCents)
	total := quote.BasePrice + quote.RenterServiceFee + quote.PlatformFee + cleaning + deposit

	if wallet < 0 || wallet > total {
		return res, failure.InvalidAmount(fmt.Sprintf("wallet payment %s exceeds total %s", wallet, total)) //nolint:wrapcheck
	}

	card := total - wallet
	if card.IsPositive() && req.PaymentIntentID == "" {
		return res, failure.BadRequestFromString("payment_intent_id is required when paying by card") //nolint:wrapcheck
	}

	status := model.StatusPending
	if req.InstantBook {
		status = model.StatusConfirmed
	}

	booking := model.Booking{
		ID:                  uuid.NewString(),
		ListingID:           req.ListingID,
		RenterID:            renterID,
		HubberID:            req.HubberID,
		Status:              status,
		CancellationPolicy:  model.CancellationPolicy(req.CancellationPolicy),
		StartAt:             start,
		EndAt:               end,
		TotalPriceCents:     total,
		BasePriceCents:      quote.BasePrice,
		ServiceFeeCents:     quote.RenterServiceFee,
		PlatformFeeCents:    quote.PlatformFee,
		CleaningFeeCents:    cleaning,
		DepositCents:        deposit,
		WalletPaidCents:     wallet,
		CardPaidCents:       card,
		HubberNetCents:      quote.HubberNet + cleaning,
		PaymentIntentID:     optional(req.PaymentIntentID),
		RenterFeeOverrideID: optional(quote.Renter.OverrideID),
		HubberFeeOverrideID: optional(quote.Hubber.OverrideID),
		SettlementState:     model.SettlementNone,
		Metadata:            gModel.NewMetadata(renterID, timezone.Now()),
	}

	if !booking.CancellationPolicy.Valid() {
		return res, failure.BadRequestFromString("unknown cancellation policy") //nolint:wrapcheck
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if !wallet.IsPositive() {
			return nil
		}

		return s.ledger.Post(ctx, tx, ledgerModel.Posting{ //nolint:wrapcheck
			UserID:      renterID,
			Account:     ledgerModel.AccountWallet,
			Direction:   ledgerModel.DirectionDebit,
			Amount:      wallet,
			Type:        ledgerModel.TypeWalletPayment,
			BookingID:   booking.ID,
			Description: "wallet payment for booking",
		})
	})
	if err != nil {
		log.Error().Err(err).Str("renter_id", renterID).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, model.CachePrefixList)

	log.Info().
		Str("booking_id", booking.ID).
		Int64("total_cents", total.Int64()).
		Int64("wallet_cents", wallet.Int64()).
		Int64("card_cents", card.Int64()).
		Msg("booking created")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.Actor(ctx)
	cacheKey := shared.BuildCacheKey(model.CachePrefixGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")
	} else {
		booking, err := s.load(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Msg("failed to save booking to cache")
		}
	}

	if !canView(res.RenterID, res.HubberID, userID, role) {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.Actor(ctx)

	owner := userID
	if shared.IsAdmin(role) {
		owner = "all"
	}

	cacheKey := shared.BuildCacheKeyWithQuery(model.CachePrefixList, params, owner, status)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if !shared.IsAdmin(role) {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldRenterID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldHubberID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		})
	}

	if status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

// transition moves booking id to next when the caller is the hubber or an admin.
func (s *serviceImpl) transition(ctx context.Context, id string, next model.Status) (model.Booking, error) {
	userID, role := shared.Actor(ctx)

	booking, err := s.load(ctx, id)
	if err != nil {
		return booking, err
	}

	if userID != booking.HubberID && !shared.IsAdmin(role) {
		return booking, failure.ResourceRestrictedError
	}

	if !booking.Status.CanTransition(next) {
		return booking, failure.InvalidState(fmt.Sprintf("booking is %s and cannot become %s", booking.Status, next)) //nolint:wrapcheck
	}

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldID:     id,
		model.FieldStatus: booking.Status,
	})

	now := timezone.Now()

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: userID,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return booking, failure.InvalidState("booking was changed by another request") //nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CachePrefixGet, id), model.CachePrefixList)

	log.Info().Str("booking_id", id).Str("from", string(booking.Status)).Str("to", string(next)).Msg("booking status changed")

	booking.Status = next
	booking.ModifiedAt = now
	booking.ModifiedBy = userID

	return booking, nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Accept")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, model.StatusAccepted)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Start(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, model.StatusActive)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, model.StatusCompleted)
	if err != nil {
		return res, err
	}

	event := model.NewEvent(model.EventCompleted, booking, timezone.Now())
	event.AmountCents = booking.HubberNetCents.Int64()

	// The reconciler settles completed bookings whose event never arrived.
	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCompleted, kafka.Message{Key: booking.ID, Value: event}); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to publish booking completed event")
	}

	res.FromModel(booking)

	return res, nil
}
