// Package transform re-references a common-source 2-port to common-gate
// viewing and applies a source-degeneration inductor in the common leg.
package transform

import (
	"math"

	"cs2cg/pkg/network"
)

// Terminal order in the indefinite matrix: gate, drain, source.
const (
	gate = iota
	drain
	source
)

// Indefinite expands a common-source Y-matrix (port 1 gate, port 2 drain,
// source as implicit reference) into the 3x3 indefinite-admittance matrix
// of the bare 3-terminal device. Rows and columns each sum to zero.
func Indefinite(y network.TwoPort) [3][3]complex128 {
	var n [3][3]complex128
	n[gate][gate] = y[0][0]
	n[gate][drain] = y[0][1]
	n[drain][gate] = y[1][0]
	n[drain][drain] = y[1][1]

	n[gate][source] = -(n[gate][gate] + n[gate][drain])
	n[drain][source] = -(n[drain][gate] + n[drain][drain])
	n[source][gate] = -(n[gate][gate] + n[drain][gate])
	n[source][drain] = -(n[gate][drain] + n[drain][drain])
	n[source][source] = -(n[source][gate] + n[source][drain])
	return n
}

// CommonGate selects the gate as the new reference terminal and drops its
// row and column, leaving a 2-port with the source as port 1 (input) and
// the drain as port 2 (output). Pure topology swap, no degeneration.
func CommonGate(y network.TwoPort) network.TwoPort {
	n := Indefinite(y)
	return network.TwoPort{
		{n[source][source], n[source][drain]},
		{n[drain][source], n[drain][drain]},
	}
}

// Apply converts the common-source Y-matrix at freq (Hz) to common-gate
// viewing with a series impedance Zs = j*2*pi*freq*L in the common leg.
// A series element shared by both ports adds Zs to every entry of the
// Z-matrix, which is how the degeneration enters after the swap. L = 0
// reduces to the pure re-reference.
func Apply(y network.TwoPort, freq, inductance float64) (network.TwoPort, error) {
	yg := CommonGate(y)
	if !network.IsFinite(yg) {
		return network.TwoPort{}, &network.NumericOverflowError{Frequency: freq, Stage: "common-gate re-reference"}
	}
	if inductance == 0 {
		return yg, nil
	}

	z, err := network.YToZ(yg)
	if err != nil {
		return network.TwoPort{}, err
	}

	zs := complex(0, 2*math.Pi*freq*inductance)
	for i := range 2 {
		for j := range 2 {
			z[i][j] += zs
		}
	}
	if !network.IsFinite(z) {
		return network.TwoPort{}, &network.NumericOverflowError{Frequency: freq, Stage: "degeneration"}
	}

	out, err := network.ZToY(z)
	if err != nil {
		return network.TwoPort{}, err
	}
	if !network.IsFinite(out) {
		return network.TwoPort{}, &network.NumericOverflowError{Frequency: freq, Stage: "degeneration"}
	}
	return out, nil
}
