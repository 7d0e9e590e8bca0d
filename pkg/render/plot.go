// Package render draws magnitude-vs-frequency curves for a converted
// sweep so the degeneration effect can be eyeballed next to the input.
package render

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cs2cg/pkg/touchstone"
)

// Magnitudes renders |S11| and |S21| in dB versus frequency for the input
// and converted sweeps into a PNG at path.
func Magnitudes(in, out *touchstone.NetworkFile, path string) error {
	p := plot.New()
	p.Title.Text = "Common-source vs common-gate S-parameters"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude (dB)"

	if logScaleUsable(in) && logScaleUsable(out) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	err := plotutil.AddLines(p,
		"S11 CS", magnitudeDB(in, 0, 0),
		"S21 CS", magnitudeDB(in, 1, 0),
		"S11 CG", magnitudeDB(out, 0, 0),
		"S21 CG", magnitudeDB(out, 1, 0),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func magnitudeDB(nf *touchstone.NetworkFile, row, col int) plotter.XYs {
	pts := make(plotter.XYs, 0, len(nf.Points))
	for _, pt := range nf.Points {
		mag := cmplx.Abs(pt.S[row][col])
		if mag == 0 {
			continue // -inf dB
		}
		pts = append(pts, plotter.XY{X: pt.Frequency, Y: 20 * math.Log10(mag)})
	}
	return pts
}

func logScaleUsable(nf *touchstone.NetworkFile) bool {
	for _, pt := range nf.Points {
		if pt.Frequency <= 0 {
			return false
		}
	}
	return true
}
