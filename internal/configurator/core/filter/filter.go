// Package filter derives filtered views of the catalog.
package filter

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

// Input is the raw, unvalidated filter form as typed by a visitor.
type Input struct {
	BodyType   string `json:"bodyType"`
	Drivetrain string `json:"drivetrain"`
	PriceMin   string `json:"priceMin"`
	PriceMax   string `json:"priceMax"`
}

// Apply returns the vehicles matching criteria, in catalog order.
// It never modifies catalog.
func Apply(catalog []model.Vehicle, criteria model.FilterCriteria) []model.Vehicle {
	out := make([]model.Vehicle, 0, len(catalog))
	for _, v := range catalog {
		if Matches(&v, criteria) {
			out = append(out, v)
		}
	}
	return out
}

// Matches reports whether a single vehicle satisfies criteria.
func Matches(v *model.Vehicle, criteria model.FilterCriteria) bool {
	if criteria.BodyType != "" && !strings.EqualFold(v.BodyType, criteria.BodyType) {
		return false
	}
	if criteria.Drivetrain != "" && !strings.EqualFold(v.Drivetrain, criteria.Drivetrain) {
		return false
	}
	return criteria.PriceMin <= v.BasePrice && v.BasePrice <= criteria.PriceMax
}

// Parse turns raw form input into criteria. It never fails: an empty or
// non-numeric bound falls back to 0 for the minimum and math.MaxInt64 for
// the maximum.
func Parse(in Input) model.FilterCriteria {
	c := model.DefaultFilterCriteria()
	c.BodyType = strings.TrimSpace(in.BodyType)
	c.Drivetrain = strings.TrimSpace(in.Drivetrain)

	if f, ok := parseBound(in.PriceMin); ok {
		c.PriceMin = toInt64(math.Ceil(f))
	}
	if f, ok := parseBound(in.PriceMax); ok {
		c.PriceMax = toInt64(math.Floor(f))
	}
	return c
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// toInt64 clamps f into the int64 range.
func toInt64(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}
