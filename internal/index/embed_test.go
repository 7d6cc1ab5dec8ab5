package index

import (
	"math"
	"testing"
)

func TestEmbed_Deterministic(t *testing.T) {
	a := Embed("resting heart rate trending up")
	b := Embed("resting heart rate trending up")

	if len(a) != Dimensions {
		t.Fatalf("len(Embed()) = %d, want %d", len(a), Dimensions)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Embed() not deterministic at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEmbed_L2Normalized(t *testing.T) {
	v := Embed("sleep quality and HRV recovery")
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if math.Abs(norm-1) > 1e-9 {
		t.Fatalf("||Embed()|| = %v, want ~1", norm)
	}
}

func TestCosineDistance_IdenticalVectorsAreZero(t *testing.T) {
	v := Embed("latest LDL and cholesterol")
	if d := CosineDistance(v, v); d > 1e-9 {
		t.Fatalf("CosineDistance(v, v) = %v, want ~0", d)
	}
}

func TestCosineDistance_OrthogonalIsOne(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	if d := CosineDistance(a, b); math.Abs(d-1) > 1e-9 {
		t.Fatalf("CosineDistance(orthogonal) = %v, want 1", d)
	}
}
