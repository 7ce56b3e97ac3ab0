package vectors

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a    Sparse
		b    Sparse
		want float64
	}{
		{
			name: "overlapping indices",
			a:    Sparse{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}, Dim: 6},
			b:    Sparse{Indices: []int{2, 5}, Values: []float64{4, 5}, Dim: 6},
			want: 23,
		},
		{
			name: "disjoint indices",
			a:    Sparse{Indices: []int{0, 1}, Values: []float64{1, 1}, Dim: 4},
			b:    Sparse{Indices: []int{2, 3}, Values: []float64{1, 1}, Dim: 4},
			want: 0,
		},
		{
			name: "empty vector",
			a:    Sparse{},
			b:    Sparse{Indices: []int{0}, Values: []float64{1}, Dim: 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); math.Abs(got-tt.want) > floatTolerance {
				t.Errorf("Dot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    Sparse
		b    Sparse
		want float64
	}{
		{
			name: "identical vectors",
			a:    Sparse{Indices: []int{0, 1}, Values: []float64{3, 4}, Dim: 2},
			b:    Sparse{Indices: []int{0, 1}, Values: []float64{3, 4}, Dim: 2},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    Sparse{Indices: []int{0}, Values: []float64{1}, Dim: 2},
			b:    Sparse{Indices: []int{1}, Values: []float64{1}, Dim: 2},
			want: 0,
		},
		{
			name: "zero norm resolves to zero",
			a:    Sparse{},
			b:    Sparse{Indices: []int{0}, Values: []float64{1}, Dim: 1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > floatTolerance {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSquaredDistance(t *testing.T) {
	a := Sparse{Indices: []int{0, 1}, Values: []float64{1, 2}, Dim: 2}
	b := Sparse{Indices: []int{0, 1}, Values: []float64{4, 6}, Dim: 2}

	// (1-4)^2 + (2-6)^2 = 25
	if got := SquaredDistance(a, b); math.Abs(got-25) > floatTolerance {
		t.Errorf("SquaredDistance() = %v, want 25", got)
	}

	if got := SquaredDistance(a, a); math.Abs(got) > floatTolerance {
		t.Errorf("SquaredDistance(a, a) = %v, want 0", got)
	}
}

func TestBuilder_OffsetsBlocks(t *testing.T) {
	var builder Builder

	builder.Append(Sparse{Indices: []int{1}, Values: []float64{2}, Dim: 3}, 3)
	builder.Append(Sparse{Indices: []int{0, 2}, Values: []float64{5, 0}, Dim: 4}, 4)

	vec := builder.Vector()

	if vec.Dim != 7 {
		t.Fatalf("Vector().Dim = %d, want 7", vec.Dim)
	}

	wantIndices := []int{1, 3}
	wantValues := []float64{2, 5}

	if len(vec.Indices) != len(wantIndices) {
		t.Fatalf("Vector() has %d entries, want %d", len(vec.Indices), len(wantIndices))
	}

	for i := range wantIndices {
		if vec.Indices[i] != wantIndices[i] || vec.Values[i] != wantValues[i] {
			t.Errorf("Vector() entry %d = (%d, %v), want (%d, %v)",
				i, vec.Indices[i], vec.Values[i], wantIndices[i], wantValues[i])
		}
	}
}

func TestScale(t *testing.T) {
	vec := Sparse{Indices: []int{0, 1}, Values: []float64{1, 2}, Dim: 2}
	vec.Scale(3)

	if vec.Values[0] != 3 || vec.Values[1] != 6 {
		t.Errorf("Scale(3) values = %v, want [3 6]", vec.Values)
	}
}
