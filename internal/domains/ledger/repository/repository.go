package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"renthubber/infras/otel"
	"renthubber/infras/postgres"
	"renthubber/internal/domains/ledger/model"
	gDto "renthubber/shared/dto"
	gRepo "renthubber/shared/repository"
)

type Transaction interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Transaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
