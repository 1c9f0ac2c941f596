package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestMatMul(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b, _ := FromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})
	got, err := MatMul(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{58, 64, 139, 154}
	if got.Rows != 2 || got.Cols != 2 {
		t.Fatalf("expected 2x2, got %dx%d", got.Rows, got.Cols)
	}
	for i, w := range want {
		if got.Data[i] != w {
			t.Errorf("element %d: expected %.0f, got %.0f", i, w, got.Data[i])
		}
	}
}

func TestMatMul_DimensionMismatch(t *testing.T) {
	a := NewMatrix(2, 3)
	b := NewMatrix(2, 3)
	if _, err := MatMul(a, b); !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension, got %v", err)
	}
}

func TestFromRows_Ragged(t *testing.T) {
	if _, err := FromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrDimension) {
		t.Errorf("expected ErrDimension for ragged rows, got %v", err)
	}
}

func TestTransposeAndBroadcast(t *testing.T) {
	m, _ := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	tr := Transpose(m)
	if tr.Rows != 2 || tr.Cols != 3 || tr.At(1, 2) != 6 || tr.At(0, 1) != 3 {
		t.Errorf("unexpected transpose: %+v", tr)
	}

	bias, _ := FromRows([][]float64{{10, 20}})
	out, err := AddRowVector(m, bias)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.At(2, 1) != 26 || out.At(0, 0) != 11 {
		t.Errorf("unexpected broadcast result: %v", out.Data)
	}
	if m.At(0, 0) != 1 {
		t.Error("AddRowVector must not mutate its input")
	}

	sums := SumColumns(m)
	if sums.Data[0] != 9 || sums.Data[1] != 12 {
		t.Errorf("expected column sums [9 12], got %v", sums.Data)
	}
}

func TestSubScaledInPlace(t *testing.T) {
	p, _ := FromRows([][]float64{{1, 1}})
	g, _ := FromRows([][]float64{{10, -10}})
	if err := SubScaledInPlace(p, g, 0.1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Data[0] != 0 || p.Data[1] != 2 {
		t.Errorf("expected [0 2], got %v", p.Data)
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		maxAbs float64
	}{
		{"empty", nil, 0, 0},
		{"mixed", []float64{2, -8, 3, 7}, 1, 8},
		{"zeros", []float64{0, 0, 0}, 0, 0},
	}
	for _, tt := range tests {
		if got := Mean(tt.values); got != tt.mean {
			t.Errorf("%s: expected mean %.2f, got %.2f", tt.name, tt.mean, got)
		}
		if got := MaxAbs(tt.values); got != tt.maxAbs {
			t.Errorf("%s: expected max abs %.2f, got %.2f", tt.name, tt.maxAbs, got)
		}
	}

	if mse := MeanSquaredError([]float64{1, 2}, []float64{3, 2}); mse != 2 {
		t.Errorf("expected mse 2, got %.2f", mse)
	}

	high, low, ok := Extremes([]float64{3, -1, 9})
	if !ok || high != 9 || low != -1 {
		t.Errorf("expected (9, -1, true), got (%.0f, %.0f, %v)", high, low, ok)
	}
	if _, _, ok := Extremes(nil); ok {
		t.Error("expected ok=false for empty input")
	}
	if math.IsNaN(Mean([]float64{})) {
		t.Error("mean of empty input must not be NaN")
	}
}
