package carray

import (
	"testing"

	"github.com/shenwei356/sbwt/bitvector"
	"github.com/shenwei356/sbwt/subsetrank"
)

func TestBuild(t *testing.T) {
	// column: 0    1    2    3    4
	// A:       1    0    1    0    0   -> total 2
	// C:       0    1    0    0    1   -> total 2
	// G:       0    0    0    1    0   -> total 1
	// T:       0    0    0    0    0   -> total 0
	sr, err := subsetrank.New(
		bitvector.NewFromBools([]bool{true, false, true, false, false}),
		bitvector.NewFromBools([]bool{false, true, false, false, true}),
		bitvector.NewFromBools([]bool{false, false, false, true, false}),
		bitvector.NewFromBools([]bool{false, false, false, false, false}),
	)
	if err != nil {
		t.Fatalf("subsetrank.New: %v", err)
	}

	got := Build(sr)
	want := [4]int64{1, 3, 5, 6}
	if got != want {
		t.Fatalf("Build() = %v, want %v", got, want)
	}

	// Since total_rank(A)+total_rank(C)+total_rank(G)+total_rank(T) = 5 = N,
	// C[3] + total_rank(T) must equal N + 1.
	if got[3]+sr.TotalRank('T') != sr.Len()+1 {
		t.Fatalf("C[3] + total_rank(T) = %d, want %d", got[3]+sr.TotalRank('T'), sr.Len()+1)
	}
}

func TestBuildAllZero(t *testing.T) {
	sr, err := subsetrank.New(
		bitvector.NewFromBools(make([]bool, 3)),
		bitvector.NewFromBools(make([]bool, 3)),
		bitvector.NewFromBools(make([]bool, 3)),
		bitvector.NewFromBools(make([]bool, 3)),
	)
	if err != nil {
		t.Fatalf("subsetrank.New: %v", err)
	}
	got := Build(sr)
	want := [4]int64{1, 1, 1, 1}
	if got != want {
		t.Fatalf("Build() = %v, want %v", got, want)
	}
}
