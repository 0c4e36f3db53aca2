// Package subsetrank implements the pluggable subset-rank capability that
// the sbwt query engine is built on: for a column range and a DNA base,
// count how many columns in the range carry that base in their outgoing
// subset label.
//
// This is the concrete stand-in for the subset_rank_t template parameter
// of the original SBWT implementation. Other subset-rank layouts (a
// shared RRR-compressed encoding, a packed wavelet tree over the four
// columns) could implement the same contract; the query engine in
// package sbwt only ever calls Rank, so any of them could be swapped in
// without touching the search algorithms.
package subsetrank

import (
	"fmt"
	"io"

	"github.com/shenwei356/sbwt/bitvector"
)

// CharIndex maps a DNA base to its column index in the A,C,G,T ordering
// used throughout this package. It returns -1 for anything else.
func CharIndex(c byte) int {
	switch c {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	default:
		return -1
	}
}

// SubsetRank stores, for each of the four DNA bases, an independent
// rank-indexed bit vector over the column space.
type SubsetRank struct {
	bits [4]*bitvector.BitVector
}

// New builds a SubsetRank from four frozen bit vectors, one per base in
// A,C,G,T order. All four must have the same length.
func New(a, c, g, t *bitvector.BitVector) (*SubsetRank, error) {
	n := a.Len()
	if c.Len() != n || g.Len() != n || t.Len() != n {
		return nil, fmt.Errorf("subsetrank: bit vector length mismatch: A=%d C=%d G=%d T=%d",
			n, c.Len(), g.Len(), t.Len())
	}
	return &SubsetRank{bits: [4]*bitvector.BitVector{a, c, g, t}}, nil
}

// Len returns the number of columns.
func (sr *SubsetRank) Len() int64 { return sr.bits[0].Len() }

// Contains reports whether column i's subset contains base c.
func (sr *SubsetRank) Contains(i int64, c byte) bool {
	idx := CharIndex(c)
	if idx < 0 {
		return false
	}
	return sr.bits[idx].Get(i)
}

// Rank returns the number of columns in [0, i) whose subset contains c.
// The caller guarantees c is one of A/C/G/T (upper or lower case); behavior
// for other characters is unspecified.
func (sr *SubsetRank) Rank(i int64, c byte) int64 {
	idx := CharIndex(c)
	if idx < 0 {
		return 0
	}
	return sr.bits[idx].Rank(i)
}

// TotalRank returns the number of columns whose subset contains c, i.e.
// Rank(Len(), c).
func (sr *SubsetRank) TotalRank(c byte) int64 {
	return sr.Rank(sr.Len(), c)
}

// Serialize writes the four bit vectors in A,C,G,T order and returns the
// number of bytes written.
func (sr *SubsetRank) Serialize(w io.Writer) (int64, error) {
	var total int64
	for _, bv := range sr.bits {
		n, err := bv.Serialize(w)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Load reads a SubsetRank written by Serialize.
func Load(r io.Reader) (*SubsetRank, error) {
	var bvs [4]*bitvector.BitVector
	for i := range bvs {
		bv, err := bitvector.Load(r)
		if err != nil {
			return nil, fmt.Errorf("subsetrank: loading bit vector %d: %w", i, err)
		}
		bvs[i] = bv
	}
	return New(bvs[0], bvs[1], bvs[2], bvs[3])
}
