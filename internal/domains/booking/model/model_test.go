package model_test

import (
	"errors"
	"ihome/internal/domains/booking/model"
	"ihome/shared/failure"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return d
}

func interval(begin, end string) model.Interval {
	return model.Interval{Begin: day(begin), End: day(end)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        model.Interval
		b        model.Interval
		expected bool
	}{
		{name: "partial overlap", a: interval("2024-01-01", "2024-01-05"), b: interval("2024-01-04", "2024-01-10"), expected: true},
		{name: "touching end to begin", a: interval("2024-01-01", "2024-01-05"), b: interval("2024-01-05", "2024-01-10"), expected: false},
		{name: "contained", a: interval("2024-01-01", "2024-01-31"), b: interval("2024-01-10", "2024-01-12"), expected: true},
		{name: "identical", a: interval("2024-02-01", "2024-02-03"), b: interval("2024-02-01", "2024-02-03"), expected: true},
		{name: "disjoint", a: interval("2024-01-01", "2024-01-02"), b: interval("2024-03-01", "2024-03-02"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.expected, model.Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	got, err := model.NewInterval(day("2024-01-01"), day("2024-01-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Days())

	_, err = model.NewInterval(day("2024-01-04"), day("2024-01-04"))
	assert.True(t, errors.Is(err, model.ErrInvalidRange))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = model.NewInterval(day("2024-01-05"), day("2024-01-04"))
	assert.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestConflictFilter(t *testing.T) {
	begin := day("2024-01-01")
	end := day("2024-01-05")

	tests := []struct {
		name      string
		begin     *time.Time
		end       *time.Time
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "both bounds",
			begin:     &begin,
			end:       &end,
			wantWhere: "(bookings.end_date > :conflict_begin AND bookings.begin_date < :conflict_end)",
			wantArgs:  map[string]any{"conflict_begin": begin, "conflict_end": end},
		},
		{
			name:      "only begin",
			begin:     &begin,
			wantWhere: "(bookings.end_date > :conflict_begin)",
			wantArgs:  map[string]any{"conflict_begin": begin},
		},
		{
			name:      "only end",
			end:       &end,
			wantWhere: "(bookings.begin_date < :conflict_end)",
			wantArgs:  map[string]any{"conflict_end": end},
		},
		{
			name:     "no bounds",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := model.ConflictFilter(tt.begin, tt.end)
			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestHouseConflictFilter(t *testing.T) {
	filter := model.HouseConflictFilter("house-1", interval("2024-01-01", "2024-01-05"))
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.house_id = :house_id AND (bookings.end_date > :conflict_begin AND bookings.begin_date < :conflict_end))", where)
	assert.Equal(t, "house-1", args["house_id"])
}

func TestConflictingHouses(t *testing.T) {
	begin := day("2024-01-01")
	end := day("2024-01-05")

	_, ok := model.ConflictingHouses(nil, nil)
	assert.False(t, ok)

	sub, ok := model.ConflictingHouses(&begin, &end)
	require.True(t, ok)

	query, args := sub.GetQuery()

	assert.Equal(t, "SELECT bookings.house_id FROM bookings WHERE (bookings.end_date > :conflict_begin AND bookings.begin_date < :conflict_end)", query)
	assert.Equal(t, map[string]any{"conflict_begin": begin, "conflict_end": end}, args)
}

func TestEvent_Recipient(t *testing.T) {
	event := model.Event{RenterID: "renter", LandlordID: "landlord"}

	for eventType, expected := range map[string]string{
		model.EventCreated:   "landlord",
		model.EventCompleted: "landlord",
		model.EventAccepted:  "renter",
		model.EventRejected:  "renter",
	} {
		event.Type = eventType
		assert.Equal(t, expected, event.Recipient(), eventType)
	}
}
