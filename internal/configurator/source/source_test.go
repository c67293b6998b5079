package source

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSONC = `[
  // flagship
  {
    "id": "m1",
    "name": "Voltura M1",
    "bodyType": "suv",
    "drivetrain": "AWD",
    "basePrice": 100000,
    "rangeKm": 520,
    "heroImage": "m1.jpg",
    "gallery": ["m1-front.jpg", "m1-side.jpg"],
    "versions": [{"id": "v1", "label": "Standard", "priceDelta": 0}],
    "colors": [{"id": "c1", "label": "Arctic White", "hex": "#ffffff"}],
    "addons": [{"id": "a1", "label": "Tow hitch", "priceDelta": 2000}],
    "features": [{"label": "0-100", "value": "4.1 s"}]
  },
  /* entry level, no options */
  {"id": "s1", "name": "Voltura S1", "bodyType": "sedan", "drivetrain": "RWD", "basePrice": 60000}
]`

func TestDecode(t *testing.T) {
	vehicles, err := Decode([]byte(catalogJSONC))
	require.NoError(t, err)
	require.Len(t, vehicles, 2)

	m1 := vehicles[0]
	assert.Equal(t, "m1", m1.ID)
	assert.Equal(t, int64(100000), m1.BasePrice)
	assert.Equal(t, []string{"m1-front.jpg", "m1-side.jpg"}, m1.Gallery)
	assert.Equal(t, "4.1 s", m1.Features[0].Value)

	s1 := vehicles[1]
	assert.NotNil(t, s1.Versions)
	assert.NotNil(t, s1.Addons)
	assert.Empty(t, s1.Colors)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		empty bool
	}{
		{"empty", "", true},
		{"whitespace", "  \n", true},
		{"null", "null", true},
		{"comment only", "// nothing", true},
		{"object", `{"id":"m1"}`, false},
		{"garbage", `not json`, false},
		{"string price", `[{"id":"m1","basePrice":"100000"}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyPayload)
			} else {
				assert.NotErrorIs(t, err, ErrEmptyPayload)
			}
		})
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	vehicles, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cars.json")
	require.NoError(t, os.WriteFile(p, []byte(catalogJSONC), 0o644))

	src := NewFile(p)
	assert.Equal(t, "file:"+p, src.Name())

	vehicles, err := src.Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.json")).Load(t.Context())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cars.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(catalogJSONC))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	vehicles, err := NewHTTP(srv.URL+"/cars.json", time.Second).Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)

	_, err = NewHTTP(srv.URL+"/missing", time.Second).Load(t.Context())
	assert.ErrorContains(t, err, "404")

	_, err = NewHTTP(srv.URL+"/slow", 20*time.Millisecond).Load(t.Context())
	assert.Error(t, err)
}
