package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/internal/domains/dispute/model"
	gDto "renthubber/shared/dto"
	gRepo "renthubber/shared/repository"
)

type Dispute interface {
	Insert(ctx context.Context, model model.Dispute) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Dispute, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ConditionalUpdate(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Dispute]
}

func New(db *postgres.Connection, otel otel.Otel) Dispute {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Dispute](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
