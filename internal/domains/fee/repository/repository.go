package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/internal/domains/fee/model"
	gDto "renthubber/shared/dto"
	gRepo "renthubber/shared/repository"
)

type Override interface {
	Insert(ctx context.Context, model model.Override) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Override, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Override, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ConditionalUpdate(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	ConditionalUpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	IncrementTx(ctx context.Context, tx *sqlx.Tx, column string, delta int64, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Override]
}

func New(db *postgres.Connection, otel otel.Otel) Override {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Override](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
