package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheMaxAge is how long a cached history stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// CachedCollectFixCommits serves CollectFixCommits from the history cache when possible.
// Cache problems are logged and never fail the analysis.
func CachedCollectFixCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.FixHistory, error) {
	if mgr == nil {
		return CollectFixCommits(ctx, cfg, client)
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		// Fallback to direct computation
		return CollectFixCommits(ctx, cfg, client)
	}

	key, err := generateCacheKey(ctx, cfg, client)
	if err != nil {
		contract.LogWarn("Cannot build cache key, skipping cache", err)
		return CollectFixCommits(ctx, cfg, client)
	}

	// Check for cache hit
	if result := checkCacheHit(store, key); result != nil {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, client, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.FixHistory {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var result schema.FixHistory
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, key string) (*schema.FixHistory, error) {
	result, err := CollectFixCommits(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		contract.LogWarn("Cannot encode fix history for cache", err)
		return result, nil
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Cannot write fix history to cache", err)
	}

	return result, nil
}

// generateCacheKey creates a unique key based on analysis parameters
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, error) {
	// Include the resolved commit so the cache follows the ref as it moves
	tip, err := client.GetRepoHash(ctx, cfg.RepoPath, cfg.Ref)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s:%s:%s:%s:%s",
		cfg.RepoPath,
		cfg.Ref,
		tip,
		cfg.Marker,
		cfg.HistoryBackend,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
