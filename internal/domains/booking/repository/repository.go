package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ihome/infras/otel"
	"ihome/infras/postgres"
	"ihome/internal/domains/booking/model"
	houseModel "ihome/internal/domains/house/model"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/logger"
	gRepo "ihome/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	argCurrentStatus = "current_status"

	queryLockHouse       = "SELECT id FROM " + houseModel.TableName + " WHERE id = $1 FOR UPDATE"
	queryIncrementOrders = "UPDATE " + houseModel.TableName + " SET order_count = order_count + 1 WHERE id = $1"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	HasConflict(ctx context.Context, houseID string, interval model.Interval) (bool, error)
	CreateIfAvailable(ctx context.Context, booking model.Booking) error
	UpdateStatus(ctx context.Context, id, from string, fields map[string]any) (bool, error)
	CompleteWithComment(ctx context.Context, booking model.Booking, fields map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// HasConflict checks every booking of the house regardless of status.
func (r *repositoryImpl) HasConflict(ctx context.Context, houseID string, interval model.Interval) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasConflict")
	defer scope.End()

	return r.Exist(ctx, model.HouseConflictFilter(houseID, interval)) //nolint:wrapcheck
}

// CreateIfAvailable serialises creators of one house on the house row lock, then re-checks
// the conflict predicate inside the same transaction before inserting.
func (r *repositoryImpl) CreateIfAvailable(ctx context.Context, booking model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateIfAvailable")
	defer scope.End()

	interval := model.Interval{Begin: booking.BeginDate, End: booking.EndDate}

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var locked string
		if err := tx.GetContext(ctx, &locked, queryLockHouse, booking.HouseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return houseModel.ErrNotFound
			}

			return fmt.Errorf("failed to lock house: %w", err)
		}

		conflict, err := r.conflictTx(ctx, tx, booking.HouseID, interval)
		if err != nil {
			return err
		}

		if conflict {
			return model.ErrConflict
		}

		return r.InsertTx(ctx, tx, booking)
	})

	if isExclusionViolation(err) {
		return model.ErrConflict
	}

	if err != nil {
		scope.TraceError(err)
	}

	return err
}

func (r *repositoryImpl) conflictTx(ctx context.Context, tx *sqlx.Tx, houseID string, interval model.Interval) (bool, error) {
	where, args := r.BuildWhereClause(ctx, model.HouseConflictFilter(houseID, interval))

	query, params, err := sqlx.Named(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", model.TableName, where), args)
	if err != nil {
		return false, fmt.Errorf("failed to bind conflict query: %w", err)
	}

	var exist bool
	if err = tx.GetContext(ctx, &exist, tx.Rebind(query), params...); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}

	return exist, nil
}

// UpdateStatus applies fields only while the booking is still in status from.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, id, from string, fields map[string]any) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()

	affected, err := r.UpdateAffected(ctx, fields, statusFilter(id, from))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

// CompleteWithComment moves a WAIT_COMMENT booking to COMPLETE and bumps the house order count atomically.
func (r *repositoryImpl) CompleteWithComment(ctx context.Context, booking model.Booking, fields map[string]any) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompleteWithComment")
	defer scope.End()

	completed := false

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := r.UpdateAffectedTx(ctx, tx, fields, statusFilter(booking.ID, model.StatusWaitComment))
		if err != nil {
			return err
		}

		if affected == 0 {
			return nil
		}

		if _, err = tx.ExecContext(ctx, queryIncrementOrders, booking.HouseID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to increment order count: %w", err)
		}

		completed = true

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	return completed, nil
}

func statusFilter(id, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argCurrentStatus, Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
	}

	return false
}
