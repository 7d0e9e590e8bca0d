// Package matrix wraps the sparse solver for the small complex linear
// systems behind the parameter-domain conversions.
package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

type Complex struct {
	Size     int
	mat      *sparse.Matrix
	rhs      []float64
	rhsImag  []float64
	factored bool
}

func NewComplex(size int) (*Complex, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("matrix create: %w", err)
	}

	return &Complex{
		Size:    size,
		mat:     mat,
		rhs:     make([]float64, size+1), // 1-based indexing
		rhsImag: make([]float64, size+1),
	}, nil
}

// Set assigns entry (i, j), 1-based as the solver indexes.
func (m *Complex) Set(i, j int, v complex128) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	element := m.mat.GetElement(int64(i), int64(j))
	element.Real = real(v)
	element.Imag = imag(v)
}

// Factor runs LU factorization. A singular system fails here.
func (m *Complex) Factor() error {
	if err := m.mat.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}
	m.factored = true
	return nil
}

// Solve solves the factored system for one right-hand side. rhs and the
// returned solution are 0-based with length Size.
func (m *Complex) Solve(rhs []complex128) ([]complex128, error) {
	if !m.factored {
		if err := m.Factor(); err != nil {
			return nil, err
		}
	}
	if len(rhs) != m.Size {
		return nil, fmt.Errorf("rhs length %d, want %d", len(rhs), m.Size)
	}

	for i, v := range rhs {
		m.rhs[i+1] = real(v)
		m.rhsImag[i+1] = imag(v)
	}

	sol, solImag, err := m.mat.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %v", err)
	}

	out := make([]complex128, m.Size)
	for i := range out {
		out[i] = complex(sol[i+1], solImag[i+1])
	}
	return out, nil
}

// Invert solves against unit vectors column by column. The result is
// 0-based, [row][col].
func (m *Complex) Invert() ([][]complex128, error) {
	if err := m.Factor(); err != nil {
		return nil, err
	}

	inv := make([][]complex128, m.Size)
	for i := range inv {
		inv[i] = make([]complex128, m.Size)
	}

	rhs := make([]complex128, m.Size)
	for col := 0; col < m.Size; col++ {
		for i := range rhs {
			rhs[i] = 0
		}
		rhs[col] = 1

		sol, err := m.Solve(rhs)
		if err != nil {
			return nil, err
		}
		for row := range sol {
			inv[row][col] = sol[row]
		}
	}
	return inv, nil
}

func (m *Complex) Destroy() {
	if m.mat != nil {
		m.mat.Destroy()
	}
}
