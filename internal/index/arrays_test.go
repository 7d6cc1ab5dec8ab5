package index

import "testing"

func TestFloat64SliceToArray_RoundTrip(t *testing.T) {
	in := []float64{0.5, -0.25, 1}
	literal := float64SliceToArray(in)

	out := parseFloatArray([]byte(literal))
	if len(out) != len(in) {
		t.Fatalf("round trip length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestParseFloatArray_Empty(t *testing.T) {
	if got := parseFloatArray([]byte("{}")); got != nil {
		t.Fatalf("parseFloatArray(empty) = %v, want nil", got)
	}
}

func TestPqTextArray(t *testing.T) {
	got := pqTextArray([]string{"daily", "lab"})
	want := `{"daily","lab"}`
	if got != want {
		t.Fatalf("pqTextArray() = %q, want %q", got, want)
	}
}
