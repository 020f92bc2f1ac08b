package model

import (
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"time"
)

const (
	argConflictBegin = "conflict_begin"
	argConflictEnd   = "conflict_end"
)

// Interval is a half-open range of calendar days [Begin, End).
type Interval struct {
	Begin time.Time
	End   time.Time
}

func NewInterval(begin, end time.Time) (Interval, error) {
	if !begin.Before(end) {
		return Interval{}, ErrInvalidRange
	}

	return Interval{Begin: begin, End: end}, nil
}

// Days counts the nights covered by the interval.
func (i Interval) Days() int {
	return int(i.End.Sub(i.Begin).Hours() / constant.HoursPerDay)
}

// Overlaps is symmetric. Touching intervals do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Begin.Before(b.End) && b.Begin.Before(a.End)
}

// ConflictFilter matches bookings that collide with the given bounds. A nil bound is open.
// With both bounds nil the group is empty and matches nothing on its own.
func ConflictFilter(begin, end *time.Time) gDto.FilterGroup {
	filters := []any{}

	if begin != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  argConflictBegin,
			Field:    FieldEndDate,
			Value:    *begin,
			Operator: gDto.FilterOperatorGreater,
			Table:    TableName,
		})
	}

	if end != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  argConflictEnd,
			Field:    FieldBeginDate,
			Value:    *end,
			Operator: gDto.FilterOperatorLess,
			Table:    TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// HouseConflictFilter narrows ConflictFilter to a single house.
func HouseConflictFilter(houseID string, interval Interval) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    FieldHouseID,
				Value:    houseID,
				Operator: gDto.FilterOperatorEq,
				Table:    TableName,
			},
			ConflictFilter(&interval.Begin, &interval.End),
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// ConflictingHouses selects the houses holding a booking that collides with the bounds.
// It reports false when both bounds are open, since then nothing can collide.
func ConflictingHouses(begin, end *time.Time) (gDto.Subquery, bool) {
	where := ConflictFilter(begin, end)
	if len(where.Filters) == 0 {
		return gDto.Subquery{}, false
	}

	return gDto.Subquery{
		Column: TableName + "." + FieldHouseID,
		Table:  TableName,
		Where:  where,
	}, true
}
