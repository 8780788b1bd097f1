package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockFetcher counts how often the upstream is hit
type mockFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (m *mockFetcher) FetchHealth(ctx context.Context, component, landscape string) ([]byte, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.payload, nil
}

// mapCache is an in-memory StatusCache
type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (m *mapCache) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *mapCache) SetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func TestComponentHealth_FlattensPayload(t *testing.T) {
	fetcher := &mockFetcher{payload: []byte(`{"status":"UP","checks":{"db":"DOWN"}}`)}

	rows, err := ComponentHealth(context.Background(), fetcher, nil, zap.NewNop(), "payments", "production")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"checks"}, rows[0].Path)
	assert.Equal(t, "DOWN", rows[1].Value)
	assert.Equal(t, []string{"status"}, rows[2].Path)
}

func TestComponentHealth_ServedFromCacheOnSecondCall(t *testing.T) {
	fetcher := &mockFetcher{payload: []byte(`{"status":"UP"}`)}
	c := newMapCache()

	first, err := ComponentHealth(context.Background(), fetcher, c, zap.NewNop(), "payments", "staging")
	require.NoError(t, err)

	second, err := ComponentHealth(context.Background(), fetcher, c, zap.NewNop(), "payments", "staging")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls, "second call must be a cache hit")
}

func TestComponentHealth_CacheKeyedByComponentAndLandscape(t *testing.T) {
	fetcher := &mockFetcher{payload: []byte(`{"status":"UP"}`)}
	c := newMapCache()

	_, err := ComponentHealth(context.Background(), fetcher, c, zap.NewNop(), "payments", "staging")
	require.NoError(t, err)
	_, err = ComponentHealth(context.Background(), fetcher, c, zap.NewNop(), "payments", "production")
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls, "different landscapes must not share entries")
}

func TestComponentHealth_FetchError(t *testing.T) {
	fetcher := &mockFetcher{err: fmt.Errorf("upstream down")}

	_, err := ComponentHealth(context.Background(), fetcher, nil, zap.NewNop(), "payments", "production")
	assert.Error(t, err)
}

func TestComponentHealth_MalformedPayload(t *testing.T) {
	fetcher := &mockFetcher{payload: []byte(`{"status":`)}

	_, err := ComponentHealth(context.Background(), fetcher, nil, zap.NewNop(), "payments", "production")
	assert.Error(t, err)
}
