package model

import "math"

// FilterCriteria is built fresh for every filter action and never persisted.
// Empty string criteria match everything.
type FilterCriteria struct {
	BodyType   string `json:"bodyType"`
	Drivetrain string `json:"drivetrain"`
	PriceMin   int64  `json:"priceMin"`
	PriceMax   int64  `json:"priceMax"`
}

// DefaultFilterCriteria matches the whole catalog.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PriceMin: 0,
		PriceMax: math.MaxInt64,
	}
}
