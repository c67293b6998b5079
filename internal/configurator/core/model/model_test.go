package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestParseSource(t *testing.T) {
	src, err := ParseSource("dealer")
	require.NoError(t, err)
	assert.Equal(t, SourceDealer, src)

	src, err = ParseSource("sales-points")
	require.NoError(t, err)
	assert.Equal(t, SourceSalesPoints, src)

	_, err = ParseSource("showroom")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestRecordJSONShape(t *testing.T) {
	rec := SavedConfigurationRecord{
		Timestamp: "2025-11-03T10:00:00.000Z",
		Source:    SourceDealer,
		ModelID:   "m1",
		ModelName: "Voltura One",
		Version:   NewRef("v2", "Long Range"),
		Color:     Ref{},
		Addons:    []Option{{ID: "a1", Label: "Tow hitch"}},
		Price:     107000,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"timestamp": "2025-11-03T10:00:00.000Z",
		"source": "dealer",
		"modelId": "m1",
		"modelName": "Voltura One",
		"version": {"id": "v2", "label": "Long Range"},
		"color": {"id": null, "label": null},
		"addons": [{"id": "a1", "label": "Tow hitch"}],
		"price": 107000
	}`, string(data))
}

func TestVehicleNormalize(t *testing.T) {
	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","basePrice":100000}`), &v))
	v.Normalize()

	assert.NotNil(t, v.Gallery)
	assert.NotNil(t, v.Versions)
	assert.NotNil(t, v.Colors)
	assert.NotNil(t, v.Addons)
	assert.NotNil(t, v.Features)
	assert.Equal(t, "", v.MainImage())
}

func TestSelectedAddonsFollowsCatalogOrder(t *testing.T) {
	v := &Vehicle{Addons: []Addon{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}}
	cfg := ActiveConfiguration{Addons: sets.New("a3", "a1", "ghost")}

	got := cfg.SelectedAddons(v)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a3", got[1].ID)
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := ActiveConfiguration{VehicleID: "m1", Addons: sets.New("a1")}
	cp := cfg.Clone()
	cp.Addons.Insert("a2")

	assert.False(t, cfg.Addons.Has("a2"))
	assert.NotNil(t, ActiveConfiguration{}.Clone().Addons)
}

func TestDefaultFilterCriteria(t *testing.T) {
	c := DefaultFilterCriteria()
	assert.Equal(t, int64(0), c.PriceMin)
	assert.Equal(t, int64(math.MaxInt64), c.PriceMax)
}
