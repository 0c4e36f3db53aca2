package sbwt

import (
	"github.com/shenwei356/sbwt/subsetrank"
)

// toUpper uppercases a single ASCII DNA character without pulling in the
// full unicode-aware strings.ToUpper machinery on the hot path.
func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Search walks kmer (the first GetK() bytes of it are read; it is the
// caller's responsibility to pass at least that many) through the index
// and returns the matching column index, or -1 if kmer is not indexed or
// contains a character outside {A,C,G,T} (case-insensitive).
func (idx *Index) Search(kmer []byte) (int64, error) {
	l, r := int64(0), idx.n-1
	k := idx.k

	for i := int64(0); i < k; i++ {
		var c byte
		if idx.colex {
			c = toUpper(kmer[i])
		} else {
			c = toUpper(kmer[k-1-i])
		}

		charIdx := subsetrank.CharIndex(c)
		if charIdx < 0 {
			return -1, nil
		}

		l = idx.c[charIdx] + idx.subsetRank.Rank(l, c)
		r = idx.c[charIdx] + idx.subsetRank.Rank(r+1, c) - 1

		if l > r {
			return -1, nil
		}
	}

	if l != r {
		return -1, ErrCorruptIndex
	}
	return l, nil
}

// StreamingSearch returns, for every length-k window of s read
// left-to-right, the column index search would have returned for that
// window (or -1), reusing work between overlapping windows via the
// suffix-group marks. It requires HasStreamingQuerySupport; otherwise it
// returns ErrStreamingUnsupported. If len(s) < k, it returns an empty,
// nil-error result.
func (idx *Index) StreamingSearch(s []byte) ([]int64, error) {
	if !idx.HasStreamingQuerySupport() {
		return nil, ErrStreamingUnsupported
	}

	k := idx.k
	length := int64(len(s))
	if length < k {
		return nil, nil
	}

	numWindows := length - k + 1
	ans := make([]int64, 0, numWindows)

	// The first window is searched from scratch: colex reads s[0:k],
	// lex reads the final k bytes of s (since lex walks the k-mer
	// right-to-left starting from its own last character).
	var firstWindow []byte
	if idx.colex {
		firstWindow = s[:k]
	} else {
		firstWindow = s[length-k:]
	}
	first, err := idx.Search(firstWindow)
	if err != nil {
		return nil, err
	}
	ans = append(ans, first)

	for i := int64(1); i < numWindows; i++ {
		prev := ans[len(ans)-1]
		if prev == -1 {
			var window []byte
			if idx.colex {
				window = s[i : i+k]
			} else {
				window = s[length-k-i : length-i]
			}
			next, err := idx.Search(window)
			if err != nil {
				return nil, err
			}
			ans = append(ans, next)
			continue
		}

		column := prev
		for !idx.sgStarts.Get(column) {
			column--
		}

		var c byte
		if idx.colex {
			c = toUpper(s[i+k-1])
		} else {
			c = toUpper(s[length-k-i])
		}

		charIdx := subsetrank.CharIndex(c)
		if charIdx < 0 {
			ans = append(ans, -1)
			continue
		}

		l := idx.c[charIdx] + idx.subsetRank.Rank(column, c)
		r := idx.c[charIdx] + idx.subsetRank.Rank(column+1, c) - 1
		if l == r {
			ans = append(ans, l)
		} else {
			ans = append(ans, -1)
		}
	}

	if !idx.colex {
		reverse(ans)
	}
	return ans, nil
}

func reverse(a []int64) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
