// Package sbwt implements a succinct index for k-mer sets: the query-time
// engine behind the Spectral Burrows-Wheeler Transform (SBWT), a BOSS/FM-index
// variant that answers k-mer membership and ordinal position through
// subset-rank queries over four parallel DNA bit vectors.
//
// The index is built once, from precomputed bit vectors (see the sibling
// construct package for a FASTA/FASTQ-driven builder), and is immutable and
// concurrency-safe thereafter. It implements two query algorithms: Search,
// for a single k-mer, and StreamingSearch, for every overlapping k-mer
// window of a longer string, reusing work between windows via suffix-group
// marks.
package sbwt

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/shenwei356/sbwt/bitvector"
	"github.com/shenwei356/sbwt/carray"
	"github.com/shenwei356/sbwt/subsetrank"
)

var be = binary.BigEndian

// Index is an immutable succinct k-mer set index.
type Index struct {
	subsetRank *subsetrank.SubsetRank
	sgStarts   *bitvector.BitVector // may be nil or zero-length: streaming disabled
	c          [4]int64
	n          int64 // number of columns
	k          int64
	nKmers     int64
	colex      bool
}

// New constructs an Index from precomputed components: the four DNA subset
// bit vectors, the suffix-group bit vector (pass nil or a zero-length
// vector to disable streaming support), k, the number of distinct k-mers
// indexed, and the reading orientation.
func New(a, c, g, t *bitvector.BitVector, sgStarts *bitvector.BitVector, k int64, nKmers int64, colex bool) (*Index, error) {
	sr, err := subsetrank.New(a, c, g, t)
	if err != nil {
		return nil, err
	}
	n := sr.Len()

	if sgStarts != nil && sgStarts.Len() > 0 {
		if sgStarts.Len() != n {
			return nil, fmt.Errorf("sbwt: suffix-group bit vector length %d does not match column count %d", sgStarts.Len(), n)
		}
		if !sgStarts.Get(0) {
			return nil, fmt.Errorf("sbwt: suffix-group bit vector must mark column 0 as a group start")
		}
	}

	if k <= 0 {
		return nil, fmt.Errorf("sbwt: k must be positive, got %d", k)
	}

	idx := &Index{
		subsetRank: sr,
		sgStarts:   sgStarts,
		n:          n,
		k:          k,
		nKmers:     nKmers,
		colex:      colex,
	}
	idx.c = carray.Build(sr)
	return idx, nil
}

// IsColex reports whether the index was built over colex-sorted k-mers.
func (idx *Index) IsColex() bool { return idx.colex }

// NumberOfSubsets returns N, the number of columns/nodes in the index.
func (idx *Index) NumberOfSubsets() int64 { return idx.n }

// NumberOfKmers returns the number of distinct k-mers indexed.
func (idx *Index) NumberOfKmers() int64 { return idx.nKmers }

// GetK returns the k-mer length.
func (idx *Index) GetK() int64 { return idx.k }

// GetCArray returns a copy of the cumulative-count array.
func (idx *Index) GetCArray() [4]int64 { return idx.c }

// GetSubsetRankStructure returns the underlying subset-rank capability.
func (idx *Index) GetSubsetRankStructure() *subsetrank.SubsetRank { return idx.subsetRank }

// GetStreamingSupport returns the suffix-group bit vector, which may be nil
// or zero-length when streaming support was not built.
func (idx *Index) GetStreamingSupport() *bitvector.BitVector { return idx.sgStarts }

// HasStreamingQuerySupport reports whether StreamingSearch can be used.
func (idx *Index) HasStreamingQuerySupport() bool {
	return idx.sgStarts != nil && idx.sgStarts.Len() > 0
}

// Validate independently re-derives the C array from the subset-rank
// structure and checks it against the stored one, along with the other
// structural invariants of the index. It is not on the hot query path;
// callers that want to validate a freshly loaded index call it explicitly.
func (idx *Index) Validate() error {
	want := carray.Build(idx.subsetRank)
	if want != idx.c {
		return fmt.Errorf("%w: stored C array %v does not match re-derived %v", ErrCorruptIndex, idx.c, want)
	}
	if idx.c[3]+idx.subsetRank.TotalRank('T') != idx.n+1 {
		return fmt.Errorf("%w: C[3] + total_rank(T) != N + 1", ErrCorruptIndex)
	}
	if idx.HasStreamingQuerySupport() {
		if idx.sgStarts.Len() != idx.n {
			return fmt.Errorf("%w: suffix-group bit vector length mismatch", ErrCorruptIndex)
		}
		if !idx.sgStarts.Get(0) {
			return fmt.Errorf("%w: suffix-group bit vector missing anchor at column 0", ErrCorruptIndex)
		}
	}
	return nil
}

// Serialize writes the index in the following order: the subset-rank
// payload, the suffix-group bit vector, the C array, N, k, and the colex
// flag. It returns the number of bytes written.
func (idx *Index) Serialize(w io.Writer) (int64, error) {
	var total int64

	n, err := idx.subsetRank.Serialize(w)
	if err != nil {
		return total, err
	}
	total += n

	sg := idx.sgStarts
	if sg == nil {
		sg = bitvector.New(0)
		sg.Freeze()
	}
	n, err = sg.Serialize(w)
	if err != nil {
		return total, err
	}
	total += n

	if err := binary.Write(w, be, int64(4*8)); err != nil {
		return total, err
	}
	total += 8
	for _, v := range idx.c {
		if err := binary.Write(w, be, v); err != nil {
			return total, err
		}
		total += 8
	}

	if err := binary.Write(w, be, idx.n); err != nil {
		return total, err
	}
	total += 8

	if err := binary.Write(w, be, idx.k); err != nil {
		return total, err
	}
	total += 8

	var flag byte
	if idx.colex {
		flag = 1
	}
	if err := binary.Write(w, be, flag); err != nil {
		return total, err
	}
	total++

	return total, nil
}

// Load reads an index written by Serialize. The persisted C array is
// treated as authoritative; call Validate afterward to check it against
// an independently re-derived one.
func Load(r io.Reader) (*Index, error) {
	sr, err := subsetrank.Load(r)
	if err != nil {
		return nil, fmt.Errorf("sbwt: loading subset-rank structure: %w", err)
	}

	sg, err := bitvector.Load(r)
	if err != nil {
		return nil, fmt.Errorf("sbwt: loading suffix-group bit vector: %w", err)
	}

	var cByteCount int64
	if err := binary.Read(r, be, &cByteCount); err != nil {
		return nil, fmt.Errorf("sbwt: reading C array byte count: %w", err)
	}
	if cByteCount != 4*8 {
		return nil, fmt.Errorf("%w: C array byte count %d, want 32", ErrInvalidIndexFile, cByteCount)
	}
	var c [4]int64
	for i := range c {
		if err := binary.Read(r, be, &c[i]); err != nil {
			return nil, fmt.Errorf("sbwt: reading C[%d]: %w", i, err)
		}
	}

	var n, k int64
	if err := binary.Read(r, be, &n); err != nil {
		return nil, fmt.Errorf("sbwt: reading N: %w", err)
	}
	if err := binary.Read(r, be, &k); err != nil {
		return nil, fmt.Errorf("sbwt: reading k: %w", err)
	}

	var flag byte
	if err := binary.Read(r, be, &flag); err != nil {
		return nil, fmt.Errorf("sbwt: reading colex flag: %w", err)
	}

	// n_kmers is not part of the persisted format (it never was, even in
	// the reference SBWT serializer); a loaded index reports 0 from
	// NumberOfKmers unless the caller tracks it separately alongside the
	// file, the way an outer metadata header would.
	idx := &Index{
		subsetRank: sr,
		sgStarts:   sg,
		c:          c,
		n:          n,
		k:          k,
		colex:      flag != 0,
	}
	return idx, nil
}
