package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/config"
	"renthubber/infras/otel"
	"renthubber/internal/domains/fee/model"
	"renthubber/internal/domains/fee/model/dto"
	"renthubber/internal/domains/fee/repository"
	"renthubber/shared"
	"renthubber/shared/cache"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/money"
	"renthubber/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheOverrides = "fee:overrides"

type Fee interface {
	Resolve(ctx context.Context, userID string, role model.Role) (model.Resolution, error)
	// Quote prices a booking between renter and hubber for the given base price.
	Quote(ctx context.Context, renterID, hubberID string, basePrice money.Cents) (model.Quote, error)
	// RecordUsage counts amount against the override cap and marks the override
	// exhausted once the cap is reached. Callers run ForgetOverrides for the
	// owners once tx commits.
	RecordUsage(ctx context.Context, tx *sqlx.Tx, overrideID string, amount money.Cents) error
	ForgetOverrides(ctx context.Context, userIDs ...string)
	CreateOverride(ctx context.Context, req dto.CreateOverrideRequest) (dto.OverrideResponse, error)
	ListOverrides(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetOverridesResponse, error)
	DeactivateOverride(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Override
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Override, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Fee {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) defaultPercent(role model.Role) (decimal.Decimal, error) {
	value := s.cfg.Fee.DefaultRenterPercent
	if role == model.RoleHubber {
		value = s.cfg.Fee.DefaultHubberPercent
	}

	pct, err := money.ParsePercent(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid default %s fee %q: %w", role, value, err)
	}

	return pct, nil
}

// overrides returns the user's active overrides, served from cache when possible.
func (s *serviceImpl) overrides(ctx context.Context, userID string) ([]model.Override, error) {
	cacheKey := shared.BuildCacheKey(cacheOverrides, userID)

	var res []model.Override

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for fee overrides")

		return res, nil
	}

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldUserID: userID,
		model.FieldStatus: model.StatusActive,
	})

	res, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee overrides: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to save fee overrides to cache")
	}

	return res, nil
}

func (s *serviceImpl) Resolve(ctx context.Context, userID string, role model.Role) (res model.Resolution, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !role.Valid() {
		return res, failure.BadRequestFromString("role must be renter or hubber") //nolint:wrapcheck
	}

	defaultPct, err := s.defaultPercent(role)
	if err != nil {
		log.Error().Err(err).Msg("fee defaults are misconfigured")

		return res, err
	}

	overrides, err := s.overrides(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load fee overrides")

		return res, err
	}

	res = model.Resolve(overrides, role, defaultPct, timezone.Now())

	scope.SetAttributes(map[string]any{
		"fee.role":        string(role),
		"fee.percent":     res.Percent.String(),
		"fee.fees_waived": res.FeesWaived,
	})

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, renterID, hubberID string, basePrice money.Cents) (quote model.Quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !basePrice.IsPositive() {
		return quote, failure.InvalidAmount("base price must be positive") //nolint:wrapcheck
	}

	renter, err := s.Resolve(ctx, renterID, model.RoleRenter)
	if err != nil {
		return quote, err
	}

	hubber, err := s.Resolve(ctx, hubberID, model.RoleHubber)
	if err != nil {
		return quote, err
	}

	quote = model.Quote{
		BasePrice:        basePrice,
		RenterServiceFee: basePrice.Percent(renter.Percent),
		HubberCommission: basePrice.Percent(hubber.Percent),
		Renter:           renter,
		Hubber:           hubber,
	}

	if !renter.FeesWaived {
		quote.PlatformFee = money.Cents(s.cfg.Fee.PlatformFixedCents)
	}

	quote.HubberNet = basePrice - quote.HubberCommission

	return quote, nil
}

func (s *serviceImpl) RecordUsage(ctx context.Context, tx *sqlx.Tx, overrideID string, amount money.Cents) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.RecordUsage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if overrideID == "" || !amount.IsPositive() {
		return nil
	}

	byID := shared.FilterByID(overrideID, model.FieldID, model.TableName)

	if _, err = s.repo.IncrementTx(ctx, tx, model.FieldCurrentTransactionAmount, amount.Int64(), byID); err != nil {
		log.Error().Err(err).Str("override_id", overrideID).Msg("failed to record fee override usage")

		return fmt.Errorf("failed to record fee override usage: %w", err)
	}

	reached := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			byID,
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldMaxTransactionAmount, Operator: gDto.FilterIsNotNull, Table: model.TableName},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    fmt.Sprintf("%s >= %s", model.FieldCurrentTransactionAmount, model.FieldMaxTransactionAmount),
			},
		},
	}

	exhausted, err := s.repo.ConditionalUpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusExhausted,
		constant.FieldModifiedAt: timezone.Now(),
	}, reached)
	if err != nil {
		log.Error().Err(err).Str("override_id", overrideID).Msg("failed to mark fee override exhausted")

		return fmt.Errorf("failed to mark fee override exhausted: %w", err)
	}

	if exhausted > 0 {
		log.Info().Str("override_id", overrideID).Msg("fee override cap reached")
	}

	return nil
}

// ForgetOverrides drops the cached overrides of each user.
func (s *serviceImpl) ForgetOverrides(ctx context.Context, userIDs ...string) {
	for _, userID := range userIDs {
		cacheKey := shared.BuildCacheKey(cacheOverrides, userID)

		if err := s.cache.Clear(ctx, cacheKey); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to invalidate fee overrides")
		}
	}
}

func (s *serviceImpl) CreateOverride(ctx context.Context, req dto.CreateOverrideRequest) (res dto.OverrideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.CreateOverride")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	override, err := req.ToModel(uuid.NewString(), admin)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, override); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create fee override")

		return res, fmt.Errorf("failed to create fee override: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheOverrides, override.UserID))

	res.FromModel(override)

	return res, nil
}

func (s *serviceImpl) ListOverrides(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetOverridesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.ListOverrides")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var filter gDto.FilterGroup
	if userID != "" {
		filter = shared.FilterByID(userID, model.FieldUserID, model.TableName)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count fee overrides")

		return res, fmt.Errorf("failed to count fee overrides: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get fee overrides")

		return res, fmt.Errorf("failed to get fee overrides: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) DeactivateOverride(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fee.DeactivateOverride")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	override, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("override_id", id).Msg("failed to get fee override")

		return fmt.Errorf("failed to get fee override: %w", err)
	}

	if override.ID == "" {
		return failure.NotFound("fee override not found") //nolint:wrapcheck
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := shared.FilterByFields(model.TableName, map[string]any{
		model.FieldID:     id,
		model.FieldStatus: model.StatusActive,
	})

	affected, err := s.repo.ConditionalUpdate(ctx, map[string]any{
		model.FieldStatus:        model.StatusRevoked,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: admin,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("override_id", id).Msg("failed to deactivate fee override")

		return fmt.Errorf("failed to deactivate fee override: %w", err)
	}

	if affected == 0 {
		return failure.InvalidState(fmt.Sprintf("fee override is %s", override.Status)) //nolint:wrapcheck
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheOverrides, override.UserID))

	return nil
}
