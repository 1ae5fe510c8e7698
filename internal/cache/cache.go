// Package cache stores rendered conversions keyed by a hash of their inputs.
// Redis is used when configured; otherwise an in-process map serves.
package cache

import (
	"context"
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Cache is a byte-value store with expiry. Misses and backend failures both
// report false; callers recompute.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
}

// Key hashes parts into a hex BLAKE3 digest. Each part is length-prefixed
// so ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := blake3.New()
	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
