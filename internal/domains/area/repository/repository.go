package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"ihome/infras/otel"
	"ihome/infras/postgres"
	"ihome/internal/domains/area/model"
	gDto "ihome/shared/dto"
	gRepo "ihome/shared/repository"
)

type Area interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Area, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Area]
}

func New(db *postgres.Connection, otel otel.Otel) Area {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Area](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
