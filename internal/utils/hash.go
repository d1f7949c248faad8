package utils

import "hash/fnv"

// HashStringToUint64 returns a stable fnv-1a hash of s, used to derive
// deterministic per-text jitter in the mock sentiment classifier.
func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
