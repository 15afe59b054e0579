package ssz

import "sync"

// maxZeroHashDepth bounds the precomputed zero-subtree ladder. Depth 64
// covers any generalized index representable in a uint64.
const maxZeroHashDepth = 64

var (
	zeroHashOnce  sync.Once
	zeroHashCache [maxZeroHashDepth + 1][32]byte
)

func initZeroHashCache() {
	for i := 1; i <= maxZeroHashDepth; i++ {
		zeroHashCache[i] = Hash(zeroHashCache[i-1], zeroHashCache[i-1])
	}
}

// ZeroHash returns the root of an all-zero subtree of the given depth.
// ZeroHash(0) is the zero chunk; ZeroHash(i) = H(ZeroHash(i-1) || ZeroHash(i-1)).
func ZeroHash(depth int) [32]byte {
	zeroHashOnce.Do(initZeroHashCache)
	if depth < 0 {
		return [32]byte{}
	}
	if depth > maxZeroHashDepth {
		depth = maxZeroHashDepth
	}
	return zeroHashCache[depth]
}
