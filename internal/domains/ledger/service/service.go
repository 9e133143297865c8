package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/infras/otel"
	"renthubber/internal/domains/ledger/model"
	"renthubber/internal/domains/ledger/model/dto"
	"renthubber/internal/domains/ledger/repository"
	userModel "renthubber/internal/domains/user/model"
	userRepo "renthubber/internal/domains/user/repository"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Ledger interface {
	// Post moves the user's running balance and appends the matching entry
	// inside tx. A debit larger than the balance fails with InsufficientBalance
	// and changes nothing.
	Post(ctx context.Context, tx *sqlx.Tx, posting model.Posting) error
	List(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetTransactionsResponse, error)
}

type serviceImpl struct {
	repo     repository.Transaction
	userRepo userRepo.User
	otel     otel.Otel
}

func New(repo repository.Transaction, userRepo userRepo.User, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Post(ctx context.Context, tx *sqlx.Tx, posting model.Posting) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ledger.Post")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	logger := log.With().
		Str("user_id", posting.UserID).
		Str("type", string(posting.Type)).
		Str("direction", string(posting.Direction)).
		Int64("amount_cents", posting.Amount.Int64()).
		Logger()

	if !posting.Amount.IsPositive() {
		return failure.InvalidAmount("ledger amount must be positive") //nolint:wrapcheck
	}

	column := posting.Account.Column()
	filter := shared.FilterByID(posting.UserID, userModel.FieldID, userModel.TableName)

	if posting.Direction == model.DirectionDebit {
		filter.Operator = gDto.FilterGroupOperatorAnd
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    column,
			ArgName:  "min_" + column,
			Value:    posting.Amount.Int64(),
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    userModel.TableName,
		})
	}

	affected, err := s.userRepo.IncrementTx(ctx, tx, column, posting.Delta(), filter)
	if err != nil {
		logger.Error().Err(err).Msg("failed to adjust balance")

		return fmt.Errorf("failed to adjust %s: %w", column, err)
	}

	if affected == 0 {
		if posting.Direction == model.DirectionDebit {
			logger.Warn().Msg("balance too low for debit")

			return failure.InsufficientBalance(fmt.Sprintf("%s is lower than %s", posting.Account, posting.Amount)) //nolint:wrapcheck
		}

		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	entry := posting.ToModel(uuid.NewString(), timezone.Now())
	if err = s.repo.InsertTx(ctx, tx, entry); err != nil {
		logger.Error().Err(err).Msg("failed to append ledger entry")

		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	logger.Info().Str("transaction_id", entry.ID).Msg("ledger entry posted")

	return nil
}

func (s *serviceImpl) List(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ledger.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	if params.SortBy == "" {
		params.SortBy = model.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
