package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

func testCatalog() []model.Vehicle {
	return []model.Vehicle{
		{ID: "suv-60", BodyType: "SUV", Drivetrain: "AWD", BasePrice: 60000},
		{ID: "sedan-45", BodyType: "sedan", Drivetrain: "RWD", BasePrice: 45000},
		{ID: "suv-95", BodyType: "suv", Drivetrain: "awd", BasePrice: 95000},
		{ID: "hatch-30", BodyType: "hatchback", Drivetrain: "FWD", BasePrice: 30000},
		{ID: "suv-50", BodyType: "Suv", Drivetrain: "FWD", BasePrice: 50000},
	}
}

func ids(vs []model.Vehicle) []string {
	out := []string{}
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     []string
	}{
		{
			name:     "identity",
			criteria: model.DefaultFilterCriteria(),
			want:     []string{"suv-60", "sedan-45", "suv-95", "hatch-30", "suv-50"},
		},
		{
			name:     "suv within price range",
			criteria: model.FilterCriteria{BodyType: "suv", PriceMin: 50000, PriceMax: 90000},
			want:     []string{"suv-60", "suv-50"},
		},
		{
			name:     "drivetrain is case-insensitive",
			criteria: model.FilterCriteria{Drivetrain: "AwD", PriceMax: math.MaxInt64},
			want:     []string{"suv-60", "suv-95"},
		},
		{
			name:     "bounds are inclusive",
			criteria: model.FilterCriteria{PriceMin: 45000, PriceMax: 60000},
			want:     []string{"suv-60", "sedan-45", "suv-50"},
		},
		{
			name:     "exact match only",
			criteria: model.FilterCriteria{BodyType: "su", PriceMax: math.MaxInt64},
			want:     []string{},
		},
		{
			name:     "empty range",
			criteria: model.FilterCriteria{PriceMin: 90000, PriceMax: 10000},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(testCatalog(), tt.criteria)))
		})
	}
}

func TestApplyIsStableSubsequence(t *testing.T) {
	catalog := testCatalog()
	criteria := model.FilterCriteria{Drivetrain: "fwd", PriceMin: 0, PriceMax: math.MaxInt64}

	got := Apply(catalog, criteria)

	j := 0
	for _, v := range got {
		for j < len(catalog) && catalog[j].ID != v.ID {
			j++
		}
		assert.Less(t, j, len(catalog), "%s out of order or not in catalog", v.ID)
		assert.True(t, Matches(&v, criteria))
		j++
	}
	assert.Equal(t, testCatalog(), catalog, "catalog must not be modified")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want model.FilterCriteria
	}{
		{
			name: "empty input is the identity filter",
			in:   Input{},
			want: model.DefaultFilterCriteria(),
		},
		{
			name: "numeric bounds",
			in:   Input{BodyType: " suv ", PriceMin: "50000", PriceMax: "90000"},
			want: model.FilterCriteria{BodyType: "suv", PriceMin: 50000, PriceMax: 90000},
		},
		{
			name: "category whitespace is trimmed",
			in:   Input{BodyType: "   ", Drivetrain: "\tAWD\n"},
			want: model.FilterCriteria{Drivetrain: "AWD", PriceMax: math.MaxInt64},
		},
		{
			name: "non-numeric bounds fall back to defaults",
			in:   Input{PriceMin: "cheap", PriceMax: "NaN"},
			want: model.DefaultFilterCriteria(),
		},
		{
			name: "fractions round inward",
			in:   Input{PriceMin: "100.2", PriceMax: "200.8"},
			want: model.FilterCriteria{PriceMin: 101, PriceMax: 200},
		},
		{
			name: "leading zeros are decimal",
			in:   Input{PriceMin: "010"},
			want: model.FilterCriteria{PriceMin: 10, PriceMax: math.MaxInt64},
		},
		{
			name: "huge values clamp",
			in:   Input{PriceMax: "1e30"},
			want: model.FilterCriteria{PriceMax: math.MaxInt64},
		},
		{
			name: "zero maximum is honoured",
			in:   Input{PriceMax: "0"},
			want: model.FilterCriteria{PriceMax: 0},
		},
		{
			name: "negative minimum is kept",
			in:   Input{PriceMin: "-5"},
			want: model.FilterCriteria{PriceMin: -5, PriceMax: math.MaxInt64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestParseThenApply(t *testing.T) {
	got := Apply(testCatalog(), Parse(Input{BodyType: "suv", PriceMin: "50000", PriceMax: "90000"}))
	assert.Equal(t, []string{"suv-60", "suv-50"}, ids(got))
}
