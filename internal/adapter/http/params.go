package http

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/query"
)

var validate = validator.New()

// selectionQuery holds the repeated selection parameters of a query request.
type selectionQuery struct {
	Stations []string `validate:"max=100,dive,required,max=200"`
	Months   []int    `validate:"max=12,dive,min=1,max=12"`
}

// parseCriteria reads station (repeatable), month (repeatable) and min_temp.
// Missing station or month parameters select nothing. A missing min_temp
// defaults to the lowest temperature in the table.
func parseCriteria(values url.Values, table *domain.PreparedTable) (query.Criteria, error) {
	sel := selectionQuery{
		Stations: lo.Uniq(lo.Map(values["station"], func(s string, _ int) string {
			return strings.TrimSpace(s)
		})),
		Months: []int{},
	}

	for _, raw := range values["month"] {
		m, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return query.Criteria{}, fmt.Errorf("month: %q is not an integer", raw)
		}
		sel.Months = append(sel.Months, m)
	}
	sel.Months = lo.Uniq(sel.Months)

	if err := validate.Struct(sel); err != nil {
		return query.Criteria{}, describeValidation(err)
	}

	c := query.Criteria{Stations: sel.Stations, Months: sel.Months}

	if raw := values.Get("min_temp"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
			return query.Criteria{}, fmt.Errorf("min_temp: %q is not a finite number", raw)
		}
		c.MinTemp = t
	} else if low, _ := query.TempRange(table); low.Valid {
		c.MinTemp = low.Float64
	}

	return c, nil
}

func parseIncludeRecords(values url.Values) (bool, error) {
	raw := values.Get("include_records")
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("include_records: %q is not a boolean", raw)
	}
	return b, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if strings.HasPrefix(fe.StructField(), "Months") {
		return fmt.Errorf("month: %s", tagMessage(fe))
	}
	return fmt.Errorf("station: %s", tagMessage(fe))
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min", "max":
		if fe.Kind() == reflect.Slice {
			return "too many values"
		}
		return fmt.Sprintf("%v is out of range", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
