package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjaygg/teampulse/core/timeline"
	"github.com/arjaygg/teampulse/internal/contract"
)

// currentCacheVersion defines the version of the cached dataset schema.
// Bump it whenever Dataset's serialized shape changes.
const currentCacheVersion = 1

// cacheMaxAge caps how long a cached dataset stays valid.
const cacheMaxAge = 24 * time.Hour

// cachedDataset is the serialized form of a dataset. ByItem is derived and
// rebuilt on load rather than stored.
type cachedDataset struct {
	Items   json.RawMessage `json:"items"`
	Updates json.RawMessage `json:"updates"`
}

// cachedBuildDataset fetches the dataset through the cache when one is
// configured. Offline file datasets never touch the cache; reading the
// files again is cheaper than a database round trip.
func cachedBuildDataset(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) (*Dataset, error) {
	if cfg.OfflineMode() || mgr == nil {
		return buildDataset(ctx, cfg, client)
	}
	store := mgr.GetDatasetStore()
	if store == nil {
		return buildDataset(ctx, cfg, client)
	}

	key := generateCacheKey(cfg)

	if ds := checkCacheHit(store, key); ds != nil {
		return ds, nil
	}

	// Cache miss: fetch and store
	ds, err := buildDataset(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(cachedDataset{
		Items:   mustMarshal(ds.Items),
		Updates: mustMarshal(ds.Updates),
	}); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return ds, nil
}

// checkCacheHit attempts to retrieve and validate a cached dataset.
func checkCacheHit(store contract.CacheStore, key string) *Dataset {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion {
		return nil
	}
	if time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return nil
	}

	var cached cachedDataset
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	ds := &Dataset{}
	if err := json.Unmarshal(cached.Items, &ds.Items); err != nil {
		return nil
	}
	if len(cached.Updates) > 0 {
		if err := json.Unmarshal(cached.Updates, &ds.Updates); err != nil {
			return nil
		}
	}
	ds.ByItem = timeline.GroupUpdates(ds.Updates)
	return ds
}

// generateCacheKey creates a unique key based on the fetch parameters.
// Policy knobs are excluded deliberately: they shape the derived metrics,
// not the fetched data.
func generateCacheKey(cfg *contract.Config) string {
	key := fmt.Sprintf("%s:%s:%s:%d:%d",
		cfg.OrgURL,
		cfg.Project,
		cfg.Team,
		cfg.GetAnalysisStartTime().Unix(),
		cfg.GetAnalysisEndTime().Unix(),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}
