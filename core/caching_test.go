package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjaygg/teampulse/schema"
)

// stubCacheStore is an in-memory CacheStore for cache-path tests.
type stubCacheStore struct {
	data    []byte
	version int
	ts      int64
	missing bool

	sets int
}

func (s *stubCacheStore) Get(key string) ([]byte, int, int64, error) {
	if s.missing {
		return nil, 0, 0, errors.New("not found")
	}
	return s.data, s.version, s.ts, nil
}

func (s *stubCacheStore) Set(key string, data []byte, version int, ts int64) error {
	s.data, s.version, s.ts = data, version, ts
	s.missing = false
	s.sets++
	return nil
}

func (s *stubCacheStore) Clear() error                         { return nil }
func (s *stubCacheStore) Status() (schema.StoreStatus, error)  { return schema.StoreStatus{}, nil }
func (s *stubCacheStore) Close() error                         { return nil }

func cachedPayload(t *testing.T, items []schema.WorkItem, updates []schema.UpdateEvent) []byte {
	t.Helper()
	itemsJSON, err := json.Marshal(items)
	require.NoError(t, err)
	updatesJSON, err := json.Marshal(updates)
	require.NoError(t, err)
	data, err := json.Marshal(cachedDataset{Items: itemsJSON, Updates: updatesJSON})
	require.NoError(t, err)
	return data
}

func TestCheckCacheHit(t *testing.T) {
	items := []schema.WorkItem{testItem(1, "Jordan Rivera", "Active", nil)}
	updates := []schema.UpdateEvent{testTransition(1, 2, testDay(2), "New", "Active")}
	payload := cachedPayload(t, items, updates)

	store := &stubCacheStore{data: payload, version: currentCacheVersion, ts: time.Now().Unix()}
	ds := checkCacheHit(store, "key")
	require.NotNil(t, ds, "fresh matching-version entry should hit")
	assert.Len(t, ds.Items, 1)
	assert.Len(t, ds.ByItem[1], 1, "the per-item index should be rebuilt on load")
}

func TestCheckCacheMiss(t *testing.T) {
	items := []schema.WorkItem{testItem(1, "Jordan Rivera", "Active", nil)}
	payload := cachedPayload(t, items, nil)
	fresh := time.Now().Unix()

	tests := []struct {
		name  string
		store *stubCacheStore
	}{
		{"absent entry", &stubCacheStore{missing: true}},
		{"version mismatch", &stubCacheStore{data: payload, version: currentCacheVersion + 1, ts: fresh}},
		{"stale entry", &stubCacheStore{data: payload, version: currentCacheVersion, ts: time.Now().Add(-25 * time.Hour).Unix()}},
		{"corrupt payload", &stubCacheStore{data: []byte("{not json"), version: currentCacheVersion, ts: fresh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, checkCacheHit(tt.store, "key"), "expected a cache miss")
		})
	}
}

func TestGenerateCacheKey(t *testing.T) {
	a := testConfig()
	a.OrgURL = "https://dev.azure.com/acme"
	a.Project = "Platform"

	b := testConfig()
	b.OrgURL = a.OrgURL
	b.Project = "Mobile"

	assert.NotEqual(t, generateCacheKey(a), generateCacheKey(b), "different projects should key differently")
	assert.Equal(t, generateCacheKey(a), generateCacheKey(a), "the key should be stable")

	// Policy knobs must not affect the key; they do not change what is
	// fetched.
	c := testConfig()
	c.OrgURL = a.OrgURL
	c.Project = a.Project
	c.Policy.MaxPlausibleIntervalDays = 30
	assert.Equal(t, generateCacheKey(a), generateCacheKey(c))
}
