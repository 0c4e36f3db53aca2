// Package carray builds the cumulative-count array (C) that the query
// engine uses to translate a per-character rank into an absolute column
// offset.
package carray

import "github.com/shenwei356/sbwt/subsetrank"

// Build computes the length-4 cumulative-count array for a subset-rank
// structure of n columns:
//
//	C[0] = 1                          (one incoming ghost-dollar to the root)
//	C[1] = C[0] + total_rank('A')
//	C[2] = C[1] + total_rank('C')
//	C[3] = C[2] + total_rank('G')
func Build(sr *subsetrank.SubsetRank) [4]int64 {
	var c [4]int64
	c[0] = 1
	c[1] = c[0] + sr.TotalRank('A')
	c[2] = c[1] + sr.TotalRank('C')
	c[3] = c[2] + sr.TotalRank('G')
	return c
}
