package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SearchKey generates a cache key for a news-search request.
func SearchKey(provider, query, startDate, endDate string) string {
	hash := sha256.Sum256([]byte(provider + "|" + query + "|" + startDate + "|" + endDate))
	return "ecosift:v1:" + hex.EncodeToString(hash[:])
}
