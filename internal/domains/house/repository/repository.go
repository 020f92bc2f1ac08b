package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"ihome/infras/otel"
	"ihome/infras/postgres"
	"ihome/internal/domains/house/model"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/logger"
	gRepo "ihome/shared/repository"
	"ihome/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	argCurrentIndexImage = "current_index_image"

	queryHouseFacilities = `SELECT facilities.id, facilities.name FROM facilities
		JOIN house_facilities ON house_facilities.facility_id = facilities.id
		WHERE house_facilities.house_id = $1 ORDER BY facilities.id ASC`
)

type House interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.House, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.House, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	CreateWithFacilities(ctx context.Context, house model.House, facilityIDs []int) error
	AddImage(ctx context.Context, image model.HouseImage, actor string) error
	Images(ctx context.Context, houseID string) ([]model.HouseImage, error)
	Facilities(ctx context.Context, houseID string) ([]model.Facility, error)
	CountFacilities(ctx context.Context, ids []int) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.House]
	images          gRepo.Repository[model.HouseImage]
	facilities      gRepo.Repository[model.Facility]
	houseFacilities gRepo.Repository[model.HouseFacility]
	db              *postgres.Connection
	otel            otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) House {
	return &repositoryImpl{
		Repository:      gRepo.NewRepository[model.House](model.EntityName, model.TableName, model.FieldID, db, otel),
		images:          gRepo.NewRepository[model.HouseImage](model.ImageEntityName, model.ImageTableName, model.FieldImageID, db, otel),
		facilities:      gRepo.NewRepository[model.Facility](model.FacilityEntityName, model.FacilityTableName, model.FieldFacilityID, db, otel),
		houseFacilities: gRepo.NewRepository[model.HouseFacility](model.HouseFacilityEntityName, model.HouseFacilityTableName, model.FieldHouseFacilityHouseID, db, otel),
		db:              db,
		otel:            otel,
	}
}

// CreateWithFacilities inserts the house and its facility links in one transaction.
func (r *repositoryImpl) CreateWithFacilities(ctx context.Context, house model.House, facilityIDs []int) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".house.CreateWithFacilities")
	defer scope.End()

	links := make([]model.HouseFacility, len(facilityIDs))
	for i, id := range facilityIDs {
		links[i] = model.HouseFacility{HouseID: house.ID, FacilityID: id}
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, house); err != nil {
			return err
		}

		return r.houseFacilities.InsertBulkTx(ctx, tx, links)
	})
}

// AddImage stores the image and promotes it to index image when the house has none yet.
func (r *repositoryImpl) AddImage(ctx context.Context, image model.HouseImage, actor string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".house.AddImage")
	defer scope.End()

	fields := map[string]any{
		model.FieldIndexImageURL: image.URL,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: image.HouseID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argCurrentIndexImage, Field: model.FieldIndexImageURL, Value: constant.Empty, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.images.InsertTx(ctx, tx, image); err != nil {
			return err
		}

		_, err := r.UpdateAffectedTx(ctx, tx, fields, filter)

		return err
	})
}

func (r *repositoryImpl) Images(ctx context.Context, houseID string) ([]model.HouseImage, error) {
	params := gDto.QueryParams{
		SortBy:  model.ImageTableName + "." + model.FieldImageCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	return r.images.GetAll(ctx, params, imagesOf(houseID)) //nolint:wrapcheck
}

func (r *repositoryImpl) Facilities(ctx context.Context, houseID string) ([]model.Facility, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".house.Facilities")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryHouseFacilities)

	var facilities []model.Facility
	if err := r.db.Read.SelectContext(ctx, &facilities, queryHouseFacilities, houseID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get house facilities: %w", err)
	}

	return facilities, nil
}

// CountFacilities counts how many of ids exist.
func (r *repositoryImpl) CountFacilities(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldFacilityID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.FacilityTableName},
		},
	}

	return r.facilities.Count(ctx, filter) //nolint:wrapcheck
}

func imagesOf(houseID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldImageHouseID, Value: houseID, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
		},
	}
}
