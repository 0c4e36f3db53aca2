package bitvector

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRankAgainstNaive(t *testing.T) {
	bits := make([]bool, 1000)
	r := rand.New(rand.NewSource(1))
	for i := range bits {
		bits[i] = r.Intn(2) == 1
	}
	bv := NewFromBools(bits)

	var cum int64
	for i := 0; i <= len(bits); i++ {
		if got := bv.Rank(int64(i)); got != cum {
			t.Fatalf("Rank(%d) = %d, want %d", i, got, cum)
		}
		if i < len(bits) && bits[i] {
			cum++
		}
	}
	if bv.OnesCount() != cum {
		t.Fatalf("OnesCount() = %d, want %d", bv.OnesCount(), cum)
	}
}

func TestGet(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true}
	bv := NewFromBools(bits)
	for i, want := range bits {
		if got := bv.Get(int64(i)); got != want {
			t.Fatalf("Get(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	bits := make([]bool, 200)
	r := rand.New(rand.NewSource(2))
	for i := range bits {
		bits[i] = r.Intn(2) == 1
	}
	bv := NewFromBools(bits)

	var buf bytes.Buffer
	n, err := bv.Serialize(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("Serialize reported %d bytes, buffer has %d", n, buf.Len())
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != bv.Len() {
		t.Fatalf("length mismatch: %d vs %d", loaded.Len(), bv.Len())
	}
	for i := int64(0); i < bv.Len(); i++ {
		if loaded.Get(i) != bv.Get(i) {
			t.Fatalf("bit %d mismatch after round trip", i)
		}
	}
	for i := int64(0); i <= bv.Len(); i++ {
		if loaded.Rank(i) != bv.Rank(i) {
			t.Fatalf("Rank(%d) mismatch after round trip: %d vs %d", i, loaded.Rank(i), bv.Rank(i))
		}
	}
}

func TestEmptyBitVector(t *testing.T) {
	bv := NewFromBools(nil)
	if bv.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", bv.Len())
	}
	if bv.Rank(0) != 0 {
		t.Fatalf("Rank(0) = %d, want 0", bv.Rank(0))
	}

	var buf bytes.Buffer
	if _, err := bv.Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("loaded.Len() = %d, want 0", loaded.Len())
	}
}
