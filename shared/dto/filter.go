package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotIn     = "not_in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterPlainQuery        = "plan"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_in not_eq less less_eq greater greater_eq"`
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = fmt.Sprintf("%s.%s", f.Table, f.Field)
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	switch f.Operator {
	case FilterOperatorEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s = :%s", column, argName), args
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%s%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s) ", column, argName), args
	case FilterOperatorIn:
		return f.listClause(column, argName, "IN", args)
	case FilterOperatorNotIn:
		return f.listClause(column, argName, "NOT IN", args)
	case FilterOperatorNotEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s != :%s", column, argName), args
	case FilterOperatorLess:
		args[argName] = f.Value

		return fmt.Sprintf("%s < :%s", column, argName), args
	case FilterOperatorLessEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s <= :%s", column, argName), args
	case FilterOperatorGreater:
		args[argName] = f.Value

		return fmt.Sprintf("%s > :%s", column, argName), args
	case FilterOperatorGreaterEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s >= :%s", column, argName), args
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// listClause expands slice values into one named argument per element. A Subquery value
// is inlined and its arguments are merged.
func (f *Filter) listClause(column, argName, keyword string, args map[string]any) (string, map[string]any) {
	if sub, ok := f.Value.(Subquery); ok {
		query, subArgs := sub.GetQuery()
		maps.Copy(args, subArgs)

		return fmt.Sprintf("%s %s (%s) ", column, keyword, query), args
	}

	val := reflect.ValueOf(f.Value)

	switch val.Kind() {
	case reflect.Array, reflect.Slice:
		named := make([]string, val.Len())

		for idx := range val.Len() {
			args[fmt.Sprintf("%s_%d", argName, idx)] = val.Index(idx).Interface()

			named[idx] = fmt.Sprintf(":%s_%d", argName, idx)
		}

		return fmt.Sprintf("%s %s (%s) ", column, keyword, strings.Join(named, ", ")), args
	default:
		return fmt.Sprintf("%s %s (%s) ", column, keyword, f.Value), args
	}
}

// Subquery selects a single column to feed an IN or NOT IN filter.
type Subquery struct {
	Column string
	Table  string
	Where  FilterGroup
}

func (s Subquery) GetQuery() (string, map[string]any) {
	where, args := s.Where.GetWhereClause()
	if where == "" {
		return fmt.Sprintf("SELECT %s FROM %s", s.Column, s.Table), args
	}

	return fmt.Sprintf("SELECT %s FROM %s WHERE %s", s.Column, s.Table, where), args
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			where, arg := fill.GetWhereClause()
			whereClause = append(whereClause, where)

			maps.Copy(args, arg)
		case FilterGroup:
			where, arg := fill.GetWhereClause()
			whereClause = append(whereClause, where)

			maps.Copy(args, arg)
		}
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}
