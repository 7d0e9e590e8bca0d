package transform

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2cg/pkg/network"
)

func testS() network.TwoPort {
	return network.TwoPort{
		{cmplx.Rect(0.9, -10*math.Pi/180), cmplx.Rect(0.05, 80*math.Pi/180)},
		{cmplx.Rect(8.0, -100*math.Pi/180), cmplx.Rect(0.85, -15*math.Pi/180)},
	}
}

// Full chain: S -> Y -> topology transform -> S at z0 = 50.
func convertS(t *testing.T, s network.TwoPort, freq, inductance float64) network.TwoPort {
	t.Helper()

	y, err := network.SToY(s, 50)
	require.NoError(t, err)

	yg, err := Apply(y, freq, inductance)
	require.NoError(t, err)

	out, err := network.YToS(yg, 50)
	require.NoError(t, err)
	return out
}

func maxDeviation(a, b network.TwoPort) float64 {
	d := 0.0
	for i := range 2 {
		for j := range 2 {
			d = math.Max(d, cmplx.Abs(a[i][j]-b[i][j]))
		}
	}
	return d
}

func TestIndefiniteZeroSums(t *testing.T) {
	y, err := network.SToY(testS(), 50)
	require.NoError(t, err)

	n := Indefinite(y)
	for i := range 3 {
		rowSum, colSum := complex128(0), complex128(0)
		for j := range 3 {
			rowSum += n[i][j]
			colSum += n[j][i]
		}
		assert.InDelta(t, 0, cmplx.Abs(rowSum), 1e-15, "row %d", i)
		assert.InDelta(t, 0, cmplx.Abs(colSum), 1e-15, "col %d", i)
	}
}

// Hand-derived indefinite-admittance reduction for the gate-referenced
// 2-port with source as port 1 and drain as port 2.
func TestCommonGateReduction(t *testing.T) {
	y, err := network.SToY(testS(), 50)
	require.NoError(t, err)

	yg := CommonGate(y)

	assert.InDelta(t, 0, cmplx.Abs(yg[0][0]-(y[0][0]+y[0][1]+y[1][0]+y[1][1])), 1e-15)
	assert.InDelta(t, 0, cmplx.Abs(yg[0][1]+(y[0][1]+y[1][1])), 1e-15)
	assert.InDelta(t, 0, cmplx.Abs(yg[1][0]+(y[1][0]+y[1][1])), 1e-15)
	assert.InDelta(t, 0, cmplx.Abs(yg[1][1]-y[1][1]), 1e-15)
}

// A symmetric delta of admittances looks the same from every terminal, so
// the re-reference must leave it unchanged. Textbook sanity check for the
// reciprocal (S12 = S21) case.
func TestCommonGateSymmetricDeltaInvariant(t *testing.T) {
	y := network.TwoPort{{2, -1}, {-1, 2}}

	yg := CommonGate(y)
	assert.Equal(t, y, yg)
}

func TestApplyZeroInductanceIsPureSwap(t *testing.T) {
	y, err := network.SToY(testS(), 50)
	require.NoError(t, err)

	yg, err := Apply(y, 1e9, 0)
	require.NoError(t, err)
	assert.Equal(t, CommonGate(y), yg)
}

// Reference values for the common-gate conversion of the test device,
// computed independently through the normalized closed-form chain.
func TestConvertReferenceValues(t *testing.T) {
	wantSwap := network.TwoPort{
		{-0.849058570477 - 0.403045595005i, 0.0510476760506 - 0.0677395195092i},
		{1.8168579158 + 0.414245328002i, 0.937393858976 + 0.0154477093013i},
	}
	got := convertS(t, testS(), 1e9, 0)
	for i := range 2 {
		for j := range 2 {
			assert.InDelta(t, 0, cmplx.Abs(wantSwap[i][j]-got[i][j]), 1e-9, "swap S%d%d", i+1, j+1)
		}
	}

	want10G := network.TwoPort{
		{-0.847194700939 - 0.382966633204i, 0.0193809962787 - 0.0685193567439i},
		{1.81473723238 + 0.394764878766i, 0.968173988544 + 0.0157169823316i},
	}
	got10G := convertS(t, testS(), 1e10, 0.5e-9)
	for i := range 2 {
		for j := range 2 {
			assert.InDelta(t, 0, cmplx.Abs(want10G[i][j]-got10G[i][j]), 1e-9, "10GHz S%d%d", i+1, j+1)
		}
	}
}

// Zs = j*omega*L: at 1 MHz a 0.5 nH inductor is milliohms and barely moves
// the result; at 10 GHz the same inductor is tens of ohms and must not be.
func TestDegenerationScalesWithFrequency(t *testing.T) {
	s := testS()

	swapLow := convertS(t, s, 1e6, 0)
	lowDev := maxDeviation(convertS(t, s, 1e6, 0.5e-9), swapLow)

	swapHigh := convertS(t, s, 1e10, 0)
	highDev := maxDeviation(convertS(t, s, 1e10, 0.5e-9), swapHigh)

	assert.Less(t, lowDev, 1e-4)
	assert.Greater(t, highDev, 1e-2)
	assert.Greater(t, highDev, lowDev*100)
}

// A non-finite entry anywhere in the input must surface as
// NumericOverflowError carrying the offending frequency, never as silent
// NaN output.
func TestApplyNonFiniteInput(t *testing.T) {
	y := network.TwoPort{{complex(math.Inf(1), 0), 0}, {0, 0}}

	_, err := Apply(y, 1e9, 0)
	require.Error(t, err)

	var oerr *network.NumericOverflowError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, 1e9, oerr.Frequency)

	y = network.TwoPort{{complex(math.NaN(), 0), 0}, {0, 0}}
	_, err = Apply(y, 2.5e9, 0.5e-9)
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, 2.5e9, oerr.Frequency)
}

func TestApplyDegenerateInput(t *testing.T) {
	// Zero Y-matrix cannot be inverted for the Z-domain detour.
	_, err := Apply(network.TwoPort{}, 1e9, 0.5e-9)
	require.Error(t, err)

	var serr *network.SingularMatrixError
	assert.ErrorAs(t, err, &serr)
}
