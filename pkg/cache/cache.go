// Package cache stores rendered artifacts keyed by the inputs that produced
// them, so repeated requests for the same drawer skip layout and encoding.
//
// Three backends are provided: [FileCache] persists entries across server
// restarts, [MemoryCache] keeps a bounded set in process, and [NullCache]
// is used when caching is disabled.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
)

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKey identifies one rendered output. Two requests with the same
// drawer, constants, format, title and raster scale produce identical bytes.
func ArtifactKey(d baseplate.Drawer, c baseplate.Constants, format, title string, scale float64) string {
	return hashKey("artifact", d, c, format, title, scale)
}

// hashKey builds "prefix:sha256(json(parts))". Struct field order keeps the
// encoding stable across runs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
