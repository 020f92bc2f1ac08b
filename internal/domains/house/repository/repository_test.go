package repository_test

import (
	"context"
	"database/sql/driver"
	"ihome/infras/otel/mocks"
	"ihome/infras/postgres"
	bookingModel "ihome/internal/domains/booking/model"
	"ihome/internal/domains/house/model"
	"ihome/internal/domains/house/repository"
	gDto "ihome/shared/dto"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	houseColumns = "houses.id, houses.user_id, houses.area_id, houses.title, houses.price, houses.address, " +
		"houses.room_count, houses.acreage, houses.unit, houses.capacity, houses.beds, houses.deposit, " +
		"houses.min_days, houses.max_days, houses.order_count, houses.index_image_url, " +
		"areas.name AS area_name, users.username AS owner_name, users.avatar_url AS owner_avatar, " +
		"houses.created_at, houses.modified_at, houses.created_by, houses.modified_by"
	houseJoin = "JOIN areas ON areas.id = houses.area_id JOIN users ON users.id = houses.user_id"
)

func newRepository(t *testing.T) (repository.House, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func selectByArea(tail string) string {
	return "SELECT " + houseColumns + " FROM houses " + houseJoin + " WHERE (houses.area_id = $1) " + tail
}

func areaFilter(areaID int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAreaID, Value: areaID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func TestRepository_GetAll_Ordering(t *testing.T) {
	tests := []struct {
		name   string
		params gDto.QueryParams
		query  string
		args   []driver.Value
	}{
		{
			name:   "sort column then id as tie-break, paginated",
			params: gDto.QueryParams{Page: 2, Limit: 2, SortBy: "houses.price", SortDir: gDto.SortDirAsc},
			query:  selectByArea("ORDER BY houses.price ASC, houses.id ASC LIMIT $2 OFFSET $3"),
			args:   []driver.Value{3, 2, 2},
		},
		{
			name:   "descending sort keeps the ascending tie-break",
			params: gDto.QueryParams{Page: 1, Limit: 5, SortBy: "houses.created_at", SortDir: gDto.SortDirDesc},
			query:  selectByArea("ORDER BY houses.created_at DESC, houses.id ASC LIMIT $2 OFFSET $3"),
			args:   []driver.Value{3, 5, 0},
		},
		{
			name:   "limit without page",
			params: gDto.QueryParams{Limit: 5, SortBy: "houses.order_count", SortDir: gDto.SortDirDesc},
			query:  selectByArea("ORDER BY houses.order_count DESC, houses.id ASC LIMIT $2"),
			args:   []driver.Value{3, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			mock.ExpectPrepare(tt.query).
				ExpectQuery().
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow("h-1", 100).AddRow("h-2", 100))

			houses, err := repo.GetAll(context.Background(), tt.params, areaFilter(3))

			require.NoError(t, err)
			assert.Len(t, houses, 2)
			assert.Equal(t, "h-1", houses[0].ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count_ExcludesConflictingHouses(t *testing.T) {
	repo, mock := newRepository(t)

	begin := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	conflicting, ok := bookingModel.ConflictingHouses(&begin, nil)
	require.True(t, ok)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: conflicting, Operator: gDto.FilterOperatorNotIn, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	mock.ExpectPrepare("SELECT COUNT(houses.id) FROM houses " + houseJoin +
		" WHERE (houses.id NOT IN (SELECT bookings.house_id FROM bookings WHERE (bookings.end_date > $1)) )").
		ExpectQuery().
		WithArgs(begin).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
