// Package merkle verifies generalized-index Merkle branches against SSZ
// hash tree roots. Generalized indices follow the standard scheme: the tree
// root has gindex 1, and a node with gindex g has children 2g and 2g+1.
package merkle

import (
	"fmt"
	"math/bits"

	"github.com/ethereum/go-ethereum/common"

	"github.com/klave-network/evm-light-client/ssz"
)

// MaxBranchDepth bounds the work a single branch verification may do.
const MaxBranchDepth = 64

// BranchErrorKind discriminates branch verification failures.
type BranchErrorKind int

const (
	// KindInvalidGeneralIndex means the gindex was zero or out of range.
	KindInvalidGeneralIndex BranchErrorKind = iota
	// KindTooLongBranch means the branch exceeded MaxBranchDepth.
	KindTooLongBranch
	// KindWrongBranchLength means the branch length did not match the
	// depth implied by the gindex.
	KindWrongBranchLength
	// KindRootMismatch means the recomputed root differed from the
	// expected root.
	KindRootMismatch
)

func (k BranchErrorKind) String() string {
	switch k {
	case KindInvalidGeneralIndex:
		return "invalid general index"
	case KindTooLongBranch:
		return "too long merkle branch"
	case KindWrongBranchLength:
		return "invalid merkle branch length"
	case KindRootMismatch:
		return "invalid merkle branch"
	default:
		return fmt.Sprintf("branch error kind(%d)", int(k))
	}
}

// BranchError reports a failed branch verification with the full context of
// the attempt.
type BranchError struct {
	Kind     BranchErrorKind
	Leaf     common.Hash
	Branch   []common.Hash
	GIndex   uint64
	Expected common.Hash
	Actual   common.Hash
}

func (e *BranchError) Error() string {
	switch e.Kind {
	case KindInvalidGeneralIndex:
		return fmt.Sprintf("merkle: invalid general index gindex=%d", e.GIndex)
	case KindRootMismatch:
		return fmt.Sprintf("merkle: invalid branch leaf=%s gindex=%d expected=%s actual=%s",
			e.Leaf, e.GIndex, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("merkle: %s leaf=%s gindex=%d depth=%d branch_len=%d",
			e.Kind, e.Leaf, e.GIndex, Depth(e.GIndex), len(e.Branch))
	}
}

// Depth returns floor(log2(gindex)), the number of tree levels between the
// node and the root. Depth(0) is 0 by convention; callers must reject
// gindex 0 first.
func Depth(gindex uint64) int {
	if gindex == 0 {
		return 0
	}
	return bits.Len64(gindex) - 1
}

// IndexAtDepth returns the position of the node among its depth's siblings:
// gindex - 2^depth.
func IndexAtDepth(gindex uint64) uint64 {
	if gindex == 0 {
		return 0
	}
	return gindex - 1<<uint(Depth(gindex))
}

// VerifyBranch checks that leaf is the value at gindex in a tree rooted at
// root, using branch as the sibling path ordered leaf-first. The branch
// length must equal the depth implied by the gindex.
func VerifyBranch(leaf common.Hash, branch []common.Hash, gindex uint64, root common.Hash) error {
	if gindex == 0 {
		return &BranchError{Kind: KindInvalidGeneralIndex, Leaf: leaf, Branch: branch, GIndex: gindex}
	}
	if len(branch) > MaxBranchDepth {
		return &BranchError{Kind: KindTooLongBranch, Leaf: leaf, Branch: branch, GIndex: gindex, Expected: root}
	}
	depth := Depth(gindex)
	if len(branch) != depth {
		return &BranchError{Kind: KindWrongBranchLength, Leaf: leaf, Branch: branch, GIndex: gindex, Expected: root}
	}

	index := IndexAtDepth(gindex)
	value := [32]byte(leaf)
	for i := 0; i < depth; i++ {
		sibling := [32]byte(branch[i])
		if (index>>uint(i))&1 == 0 {
			value = ssz.Hash(value, sibling)
		} else {
			value = ssz.Hash(sibling, value)
		}
	}
	if common.Hash(value) != root {
		return &BranchError{
			Kind:     KindRootMismatch,
			Leaf:     leaf,
			Branch:   branch,
			GIndex:   gindex,
			Expected: root,
			Actual:   common.Hash(value),
		}
	}
	return nil
}

// ComputeRoot recomputes the root implied by a leaf, branch and gindex
// without comparing it to anything. Useful for constructing fixtures.
func ComputeRoot(leaf common.Hash, branch []common.Hash, gindex uint64) (common.Hash, error) {
	if gindex == 0 {
		return common.Hash{}, &BranchError{Kind: KindInvalidGeneralIndex, Leaf: leaf, Branch: branch, GIndex: gindex}
	}
	depth := Depth(gindex)
	if len(branch) != depth {
		return common.Hash{}, &BranchError{Kind: KindWrongBranchLength, Leaf: leaf, Branch: branch, GIndex: gindex}
	}
	index := IndexAtDepth(gindex)
	value := [32]byte(leaf)
	for i := 0; i < depth; i++ {
		sibling := [32]byte(branch[i])
		if (index>>uint(i))&1 == 0 {
			value = ssz.Hash(value, sibling)
		} else {
			value = ssz.Hash(sibling, value)
		}
	}
	return common.Hash(value), nil
}
