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
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterPlainQuery        = "plan"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Filter is a single condition rendered with named sqlx parameters. ArgName
// defaults to Field and must be unique within a FilterGroup.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less less_eq greater_eq plan is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table != "" {
		return f.Table + "." + f.Field
	}

	return f.Field
}

func (f *Filter) argName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

func (f *Filter) compare(operator string) (string, map[string]any) {
	return fmt.Sprintf("%s %s :%s", f.column(), operator, f.argName()), map[string]any{f.argName(): f.Value}
}

// in binds every element separately. An empty slice matches nothing.
func (f *Filter) in() (string, map[string]any) {
	args := map[string]any{}
	name := f.argName()

	val := reflect.ValueOf(f.Value)
	if !val.IsValid() || (val.Kind() != reflect.Array && val.Kind() != reflect.Slice) {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", f.column(), name), args
	}

	if val.Len() == 0 {
		return "FALSE", args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = val.Index(idx).Interface()
		named[idx] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(named, ", ")), args
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	switch f.Operator {
	case FilterOperatorEq:
		return f.compare("=")
	case FilterOperatorNotEq:
		return f.compare("!=")
	case FilterOperatorLess:
		return f.compare("<")
	case FilterOperatorLessEq:
		return f.compare("<=")
	case FilterOperatorGreaterEq:
		return f.compare(">=")
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf(`LOWER(%s) LIKE LOWER(:%s) ESCAPE '\'`, f.column(), f.argName()), map[string]any{f.argName(): pattern}
	case FilterOperatorIn:
		return f.in()
	case FilterPlainQuery:
		query, _ := f.Value.(string)

		return fmt.Sprintf("(%s)", query), map[string]any{}
	case FilterIsNotNull:
		return f.column() + " IS NOT NULL", map[string]any{}
	case FilterIsNull:
		return f.column() + " IS NULL", map[string]any{}
	default:
		return "", map[string]any{}
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

// GetWhereClause joins the conditions with Operator. Unknown operators and
// empty nested groups are left out.
func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" ")), args
}
