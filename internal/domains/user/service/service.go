package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"renthubber/infras/otel"
	"renthubber/internal/domains/user/model"
	"renthubber/internal/domains/user/model/dto"
	"renthubber/internal/domains/user/repository"
	"renthubber/shared"
	"renthubber/shared/constant"
	"renthubber/shared/failure"
)

// User reads platform users. Balances and payment capabilities are written by
// the ledger and account services.
type User interface {
	// Get returns the user or a NotFound failure.
	Get(ctx context.Context, id string) (model.User, error)
	Profile(ctx context.Context, id string) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{repo: repo, otel: otel}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("user.id", id)

	if user, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("lookup failed")

		return model.User{}, fmt.Errorf("get user %s: %w", id, err)
	}

	if user.ID == "" {
		return user, failure.NotFound("user not found") //nolint:wrapcheck
	}

	return user, nil
}

// Profile is the caller's own view: identity, capabilities and balances.
func (s *serviceImpl) Profile(ctx context.Context, id string) (dto.ProfileResponse, error) {
	var res dto.ProfileResponse

	user, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}
