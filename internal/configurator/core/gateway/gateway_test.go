package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/pkg/log"
)

type fakeStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	putErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.data[key] = value
	return nil
}

func record(id string, price int64) model.SavedConfigurationRecord {
	return model.SavedConfigurationRecord{
		Timestamp: "2025-03-14T08:26:53.589Z",
		Source:    model.SourceDealer,
		ModelID:   id,
		ModelName: "Voltura " + id,
		Version:   model.NewRef("v1", "Standard"),
		Color:     model.Ref{},
		Addons:    []model.Option{{ID: "a1", Label: "Tow hitch"}},
		Price:     price,
	}
}

func TestAppendRoundTrip(t *testing.T) {
	store := newFakeStore()
	g := New(store, WithLogger(log.NewNopLogger()))

	first := record("m1", 100000)
	second := record("m2", 70000)
	require.NoError(t, g.Append(t.Context(), first))
	require.NoError(t, g.Append(t.Context(), second))

	got, err := g.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])

	_, ok := store.data[DefaultKey]
	assert.True(t, ok)
}

func TestAppendPreservesExistingRecords(t *testing.T) {
	store := newFakeStore()
	g := New(store, WithLogger(log.NewNopLogger()))

	for i := range 5 {
		require.NoError(t, g.Append(t.Context(), record("m1", int64(i))))
	}

	got, err := g.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, int64(i), r.Price)
	}
}

func TestWireFormat(t *testing.T) {
	store := newFakeStore()
	g := New(store, WithKey("custom"), WithLogger(log.NewNopLogger()))
	assert.Equal(t, "custom", g.Key())

	require.NoError(t, g.Append(t.Context(), record("m1", 100000)))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(store.data["custom"], &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, map[string]any{
		"timestamp": "2025-03-14T08:26:53.589Z",
		"source":    "dealer",
		"modelId":   "m1",
		"modelName": "Voltura m1",
		"version":   map[string]any{"id": "v1", "label": "Standard"},
		"color":     map[string]any{"id": nil, "label": nil},
		"addons":    []any{map[string]any{"id": "a1", "label": "Tow hitch"}},
		"price":     float64(100000),
	}, raw[0])
}

func TestAppendReplacesMalformedContent(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "definitely not json"},
		{"json object", `{"timestamp":"x"}`},
		{"null", `null`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.data[DefaultKey] = []byte(tt.data)
			g := New(store, WithLogger(log.NewNopLogger()))

			r := record("m1", 1)
			require.NoError(t, g.Append(t.Context(), r))

			got, err := g.Records(t.Context())
			require.NoError(t, err)
			assert.Equal(t, []model.SavedConfigurationRecord{r}, got)
		})
	}
}

func TestRecordsEmpty(t *testing.T) {
	g := New(newFakeStore(), WithLogger(log.NewNopLogger()))
	got, err := g.Records(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStoreErrors(t *testing.T) {
	boom := errors.New("boom")

	store := newFakeStore()
	store.getErr = boom
	g := New(store, WithLogger(log.NewNopLogger()))
	assert.ErrorIs(t, g.Append(t.Context(), record("m1", 1)), boom)

	store.getErr = nil
	store.putErr = boom
	assert.ErrorIs(t, g.Append(t.Context(), record("m1", 1)), boom)
	assert.Empty(t, store.data)
}

func TestConcurrentAppends(t *testing.T) {
	g := New(newFakeStore(), WithLogger(log.NewNopLogger()))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Append(context.Background(), record("m1", int64(i))))
		}()
	}
	wg.Wait()

	got, err := g.Records(t.Context())
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestAppendKeepsPriorElementsVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		prior string
	}{
		{"extra field", `{"timestamp":"2025-01-01T00:00:00.000Z","source":"dealer","modelId":"m1","price":5,"note":"keep"}`},
		{"fractional price", `{"modelId":"m1","price":100000.5,"note":"x"}`},
		{"not a record", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.data[DefaultKey] = []byte("[" + tt.prior + "]")
			g := New(store, WithLogger(log.NewNopLogger()))

			r := record("m2", 1)
			require.NoError(t, g.Append(t.Context(), r))

			var raw []json.RawMessage
			require.NoError(t, json.Unmarshal(store.data[DefaultKey], &raw))
			require.Len(t, raw, 2)
			assert.JSONEq(t, tt.prior, string(raw[0]))

			var last model.SavedConfigurationRecord
			require.NoError(t, json.Unmarshal(raw[1], &last))
			assert.Equal(t, r, last)
		})
	}
}

func TestRecordsSkipsUnreadableElements(t *testing.T) {
	store := newFakeStore()
	store.data[DefaultKey] = []byte(`[{"modelId":"m0","price":1.5},{"modelId":"m1","price":5,"note":"keep"}]`)
	g := New(store, WithLogger(log.NewNopLogger()))

	got, err := g.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ModelID)
	assert.Equal(t, int64(5), got[0].Price)
}
