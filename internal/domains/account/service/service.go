package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"renthubber/infras/otel"
	"renthubber/infras/stripe"
	"renthubber/internal/domains/account/model/dto"
	userModel "renthubber/internal/domains/user/model"
	userRepo "renthubber/internal/domains/user/repository"
	userService "renthubber/internal/domains/user/service"
	"renthubber/shared"
	"renthubber/shared/constant"
	gDto "renthubber/shared/dto"
	"renthubber/shared/failure"
	"renthubber/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Account interface {
	// Onboard creates the user's connected account when missing and returns a
	// fresh onboarding link for it.
	Onboard(ctx context.Context, userID string) (dto.OnboardingResponse, error)
	// Status refreshes the capability flags from the processor.
	Status(ctx context.Context, userID string) (dto.StatusResponse, error)
	// EnsureReady returns the user when their connected account can both take
	// charges and pay out, and AccountNotReady otherwise.
	EnsureReady(ctx context.Context, userID string) (userModel.User, error)
}

type serviceImpl struct {
	users     userService.User
	userRepo  userRepo.User
	processor stripe.Processor
	otel      otel.Otel
}

func New(users userService.User, userRepo userRepo.User, processor stripe.Processor, otel otel.Otel) Account {
	return &serviceImpl{
		users:     users,
		userRepo:  userRepo,
		processor: processor,
		otel:      otel,
	}
}

func (s *serviceImpl) Onboard(ctx context.Context, userID string) (res dto.OnboardingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Onboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	accountID := user.ConnectedAccount()

	if accountID == "" {
		accountID, err = s.processor.CreateConnectedAccount(ctx, user.ID, user.Email)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to create connected account")

			return res, err //nolint:wrapcheck
		}

		// Only the first account created for a user is kept.
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: userModel.FieldID, Value: userID, Operator: gDto.FilterOperatorEq, Table: userModel.TableName},
				gDto.Filter{Field: userModel.FieldStripeAccountID, Operator: gDto.FilterIsNull, Table: userModel.TableName},
			},
		}

		var affected int64

		affected, err = s.userRepo.ConditionalUpdate(ctx, map[string]any{
			userModel.FieldStripeAccountID: accountID,
			constant.FieldModifiedAt:       timezone.Now(),
		}, filter)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("account_id", accountID).Msg("failed to store connected account")

			return res, fmt.Errorf("failed to store connected account: %w", err)
		}

		if affected == 0 {
			user, err = s.users.Get(ctx, userID)
			if err != nil {
				return res, err //nolint:wrapcheck
			}

			log.Warn().Str("user_id", userID).Str("discarded_account_id", accountID).Msg("connected account created concurrently")

			accountID = user.ConnectedAccount()
		}
	}

	link, err := s.processor.CreateOnboardingLink(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("failed to create onboarding link")

		return res, err //nolint:wrapcheck
	}

	res.FromModel(accountID, link)

	return res, nil
}

// refresh copies the live capability flags of the user's account onto the user row.
func (s *serviceImpl) refresh(ctx context.Context, user userModel.User) (userModel.User, error) {
	account, err := s.processor.GetAccount(ctx, user.ConnectedAccount())
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to fetch connected account")

		return user, err //nolint:wrapcheck
	}

	if account.ChargesEnabled == user.ChargesEnabled && account.PayoutsEnabled == user.PayoutsEnabled {
		return user, nil
	}

	err = s.userRepo.Update(ctx, map[string]any{
		userModel.FieldChargesEnabled: account.ChargesEnabled,
		userModel.FieldPayoutsEnabled: account.PayoutsEnabled,
		constant.FieldModifiedAt:      timezone.Now(),
	}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store account capabilities")

		return user, fmt.Errorf("failed to store account capabilities: %w", err)
	}

	user.ChargesEnabled = account.ChargesEnabled
	user.PayoutsEnabled = account.PayoutsEnabled

	return user, nil
}

func (s *serviceImpl) Status(ctx context.Context, userID string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.Status")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if user.HasConnectedAccount() {
		if user, err = s.refresh(ctx, user); err != nil {
			return res, err
		}
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) EnsureReady(ctx context.Context, userID string) (user userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".account.EnsureReady")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err = s.users.Get(ctx, userID)
	if err != nil {
		return user, err //nolint:wrapcheck
	}

	if !user.HasConnectedAccount() {
		return user, failure.AccountNotReady("user has no connected payment account") //nolint:wrapcheck
	}

	user, err = s.refresh(ctx, user)
	if err != nil {
		return user, err
	}

	if !user.ChargesEnabled || !user.PayoutsEnabled {
		return user, failure.AccountNotReady(fmt.Sprintf("connected account charges_enabled=%t payouts_enabled=%t", user.ChargesEnabled, user.PayoutsEnabled)) //nolint:wrapcheck
	}

	return user, nil
}
