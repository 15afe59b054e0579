// Package ssz implements the subset of SSZ (SimpleSerialize) merkleization
// that the light-client verifier consumes: chunk packing, Merkle tree
// computation over 32-byte chunks, and hash-tree-root helpers for the basic
// types appearing in consensus containers. Hashing is SHA-256 throughout,
// as defined by the consensus specification.
package ssz

import (
	"crypto/sha256"
	"encoding/binary"
)

// BytesPerChunk is the number of bytes in each leaf chunk for merkleization.
const BytesPerChunk = 32

// Hash combines two 32-byte nodes into their SHA-256 parent.
func Hash(a, b [32]byte) [32]byte {
	var combined [64]byte
	copy(combined[:32], a[:])
	copy(combined[32:], b[:])
	return sha256.Sum256(combined[:])
}

// Sum256 hashes arbitrary bytes with SHA-256.
func Sum256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// nextPowerOfTwo returns the smallest power of 2 >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pack splits serialized bytes into 32-byte chunks, right-padding the last
// chunk with zeros. An empty input packs to a single zero chunk.
func Pack(serialized []byte) [][32]byte {
	if len(serialized) == 0 {
		return [][32]byte{{}}
	}
	numChunks := (len(serialized) + BytesPerChunk - 1) / BytesPerChunk
	chunks := make([][32]byte, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * BytesPerChunk
		end := start + BytesPerChunk
		if end > len(serialized) {
			end = len(serialized)
		}
		copy(chunks[i][:], serialized[start:end])
	}
	return chunks
}

// Merkleize computes the Merkle root of chunks padded with zero subtrees up
// to limit leaves. A limit of 0 means the next power of two of the chunk
// count. Padding uses the precomputed zero-hash ladder, so merkleizing a few
// chunks into a wide tree stays cheap.
func Merkleize(chunks [][32]byte, limit int) [32]byte {
	count := len(chunks)
	if limit < count {
		limit = count
	}
	limit = nextPowerOfTwo(limit)

	if count == 0 {
		return ZeroHash(depthOf(limit))
	}

	layer := make([][32]byte, count)
	copy(layer, chunks)

	depth := depthOf(limit)
	for d := 0; d < depth; d++ {
		odd := len(layer)%2 == 1
		if odd {
			layer = append(layer, ZeroHash(d))
		}
		next := layer[:len(layer)/2]
		for i := 0; i < len(layer)/2; i++ {
			next[i] = Hash(layer[2*i], layer[2*i+1])
		}
		layer = next
	}
	return layer[0]
}

// depthOf returns log2 of a power-of-two leaf count.
func depthOf(leaves int) int {
	d := 0
	for 1<<d < leaves {
		d++
	}
	return d
}

// MixInLength mixes a length into a root, producing the hash tree root of a
// list type.
func MixInLength(root [32]byte, length uint64) [32]byte {
	var lenChunk [32]byte
	binary.LittleEndian.PutUint64(lenChunk[:8], length)
	return Hash(root, lenChunk)
}

// HashTreeRootUint64 returns the hash tree root of a uint64: the value
// little-endian encoded in the first 8 bytes of a zero chunk.
func HashTreeRootUint64(v uint64) [32]byte {
	var chunk [32]byte
	binary.LittleEndian.PutUint64(chunk[:8], v)
	return chunk
}

// HashTreeRootBytes32 returns the hash tree root of a 32-byte vector, which
// is the value itself.
func HashTreeRootBytes32(b [32]byte) [32]byte {
	return b
}

// HashTreeRootByteVector returns the hash tree root of a fixed-length byte
// vector: packed chunks merkleized at the vector's chunk count.
func HashTreeRootByteVector(data []byte) [32]byte {
	return Merkleize(Pack(data), 0)
}

// HashTreeRootByteList returns the hash tree root of a variable-length byte
// list bounded by maxLen bytes: packed chunks merkleized at the bound's
// chunk count, with the byte length mixed in.
func HashTreeRootByteList(data []byte, maxLen int) [32]byte {
	limit := (maxLen + BytesPerChunk - 1) / BytesPerChunk
	return MixInLength(Merkleize(Pack(data), limit), uint64(len(data)))
}

// HashTreeRootVector merkleizes element roots as a fixed-length vector of
// composite values.
func HashTreeRootVector(elementRoots [][32]byte) [32]byte {
	return Merkleize(elementRoots, 0)
}

// HashTreeRootContainer merkleizes field roots; the leaf count is padded to
// the next power of two of the field count.
func HashTreeRootContainer(fieldRoots [][32]byte) [32]byte {
	return Merkleize(fieldRoots, 0)
}
