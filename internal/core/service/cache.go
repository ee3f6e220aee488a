package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/campusops/api/internal/core/domain"
)

// Cache abstracts the result cache (Redis). Generation round-trips are slow
// and paid per call, so identical inputs within the TTL reuse the stored
// output. A cache failure is never fatal; callers treat it as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Archiver enqueues generation records for background persistence.
type Archiver interface {
	Enqueue(rec *domain.GenerationRecord)
}

const resultCacheTTL = time.Hour

// cacheKey builds a namespaced key from the canonical request input.
func cacheKey(prefix, input string) string {
	sum := sha256.Sum256([]byte(input))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
