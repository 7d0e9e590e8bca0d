// Package network converts 2-port small-signal parameters between the
// S, Y and Z domains at a given reference impedance. All arithmetic is
// complex double precision.
package network

import (
	"math"
	"math/cmplx"

	"cs2cg/internal/consts"
	"cs2cg/pkg/matrix"
)

// TwoPort is a 2x2 complex parameter matrix, [row][col] so m[0][1] is
// the 12 entry.
type TwoPort [2][2]complex128

var identity = TwoPort{{1, 0}, {0, 1}}

// SToY converts S-parameters at reference impedance z0 to admittance
// parameters: Y = (1/z0) (I - S)(I + S)^-1.
func SToY(s TwoPort, z0 float64) (TwoPort, error) {
	inv, err := Invert(add(identity, s), "s-to-y")
	if err != nil {
		return TwoPort{}, err
	}
	y := mul(sub(identity, s), inv)
	return scale(y, complex(1/z0, 0)), nil
}

// YToS is the inverse conversion: S = (I - z0 Y)(I + z0 Y)^-1.
func YToS(y TwoPort, z0 float64) (TwoPort, error) {
	yn := scale(y, complex(z0, 0))
	inv, err := Invert(add(identity, yn), "y-to-s")
	if err != nil {
		return TwoPort{}, err
	}
	return mul(sub(identity, yn), inv), nil
}

// YToZ inverts the admittance matrix.
func YToZ(y TwoPort) (TwoPort, error) {
	return Invert(y, "y-to-z")
}

// ZToY inverts the impedance matrix.
func ZToY(z TwoPort) (TwoPort, error) {
	return Invert(z, "z-to-y")
}

// Invert inverts m through the sparse solver, guarding against matrices
// singular within tolerance. stage names the conversion for error reports.
func Invert(m TwoPort, stage string) (TwoPort, error) {
	scaleMag := 0.0
	for i := range 2 {
		for j := range 2 {
			scaleMag = math.Max(scaleMag, cmplx.Abs(m[i][j]))
		}
	}
	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	if scaleMag == 0 || cmplx.Abs(det) < consts.SingularTol*scaleMag*scaleMag {
		relDet := 0.0
		if scaleMag > 0 {
			relDet = cmplx.Abs(det) / (scaleMag * scaleMag)
		}
		return TwoPort{}, &SingularMatrixError{Stage: stage, Det: relDet}
	}

	sys, err := matrix.NewComplex(2)
	if err != nil {
		return TwoPort{}, err
	}
	defer sys.Destroy()

	for i := range 2 {
		for j := range 2 {
			sys.Set(i+1, j+1, m[i][j])
		}
	}
	inv, err := sys.Invert()
	if err != nil {
		// Zero pivot the tolerance guard did not catch.
		return TwoPort{}, &SingularMatrixError{Stage: stage, Det: cmplx.Abs(det) / (scaleMag * scaleMag)}
	}

	var out TwoPort
	for i := range 2 {
		for j := range 2 {
			out[i][j] = inv[i][j]
		}
	}
	return out, nil
}

// IsFinite reports whether every entry is finite.
func IsFinite(m TwoPort) bool {
	for i := range 2 {
		for j := range 2 {
			if cmplx.IsNaN(m[i][j]) || cmplx.IsInf(m[i][j]) {
				return false
			}
		}
	}
	return true
}

func mul(a, b TwoPort) TwoPort {
	var out TwoPort
	for i := range 2 {
		for j := range 2 {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

func add(a, b TwoPort) TwoPort {
	var out TwoPort
	for i := range 2 {
		for j := range 2 {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

func sub(a, b TwoPort) TwoPort {
	var out TwoPort
	for i := range 2 {
		for j := range 2 {
			out[i][j] = a[i][j] - b[i][j]
		}
	}
	return out
}

func scale(m TwoPort, k complex128) TwoPort {
	var out TwoPort
	for i := range 2 {
		for j := range 2 {
			out[i][j] = m[i][j] * k
		}
	}
	return out
}
