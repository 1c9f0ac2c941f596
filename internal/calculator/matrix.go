package calculator

import (
	"errors"
	"fmt"
)

// ErrDimension is returned when operand shapes are incompatible.
var ErrDimension = errors.New("matrix dimension mismatch")

// Matrix is a dense row-major matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromRows copies a slice of equal-length rows into a matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(r), cols)
		}
		copy(m.Data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// Column builds an n×1 matrix from v.
func Column(v []float64) *Matrix {
	m := NewMatrix(len(v), 1)
	copy(m.Data, v)
	return m
}

func (m *Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

func (m *Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.Cols)
	copy(out, m.Data[i*m.Cols:(i+1)*m.Cols])
	return out
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.Rows, m.Cols)
	copy(c.Data, m.Data)
	return c
}

// MatMul computes a·b.
func MatMul(a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimension, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := NewMatrix(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.Data[i*a.Cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.Data[i*out.Cols+j] += aik * b.Data[k*b.Cols+j]
			}
		}
	}
	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Matrix) *Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*out.Cols+i] = m.Data[i*m.Cols+j]
		}
	}
	return out
}

// AddRowVector adds the 1×cols vector v to every row of m.
func AddRowVector(m, v *Matrix) (*Matrix, error) {
	if v.Rows != 1 || v.Cols != m.Cols {
		return nil, fmt.Errorf("%w: broadcast %dx%d onto %dx%d", ErrDimension, v.Rows, v.Cols, m.Rows, m.Cols)
	}
	out := m.Clone()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[i*m.Cols+j] += v.Data[j]
		}
	}
	return out, nil
}

// Sub computes a − b element-wise.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return nil, fmt.Errorf("%w: %dx%d - %dx%d", ErrDimension, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := a.Clone()
	for i := range out.Data {
		out.Data[i] -= b.Data[i]
	}
	return out, nil
}

// Hadamard computes the element-wise product a ⊙ b.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return nil, fmt.Errorf("%w: %dx%d ⊙ %dx%d", ErrDimension, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := a.Clone()
	for i := range out.Data {
		out.Data[i] *= b.Data[i]
	}
	return out, nil
}

// Apply maps f over every element.
func Apply(m *Matrix, f func(float64) float64) *Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, v := range m.Data {
		out.Data[i] = f(v)
	}
	return out
}

// Scale multiplies every element by s.
func Scale(m *Matrix, s float64) *Matrix {
	return Apply(m, func(v float64) float64 { return v * s })
}

// SumColumns collapses m into a 1×cols row of column sums.
func SumColumns(m *Matrix) *Matrix {
	out := NewMatrix(1, m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j] += m.Data[i*m.Cols+j]
		}
	}
	return out
}

// SubScaledInPlace performs p -= rate*g.
func SubScaledInPlace(p, g *Matrix, rate float64) error {
	if p.Rows != g.Rows || p.Cols != g.Cols {
		return fmt.Errorf("%w: update %dx%d with %dx%d", ErrDimension, p.Rows, p.Cols, g.Rows, g.Cols)
	}
	for i := range p.Data {
		p.Data[i] -= rate * g.Data[i]
	}
	return nil
}
