// Package iocache is for caching I/O calls.
package iocache

import (
	"sync"

	"github.com/bekerk/hotspot/internal/contract"
)

// CacheStoreManager manages the CacheStore instances used by an analysis.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	history      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetHistoryStore returns the fix history CacheStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
