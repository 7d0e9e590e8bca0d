package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
)

// Write serializes nf in the same convention it was parsed with:
// frequencies in the declared unit, values in the declared format.
// 12 significant digits keep round-trip error below 1e-9 relative.
func Write(nf *NetworkFile, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, c := range nf.Comments {
		if _, err := fmt.Fprintf(bw, "! %s\n", c); err != nil {
			return fmt.Errorf("touchstone: write: %w", err)
		}
	}
	_, err := fmt.Fprintf(bw, "# %s S %s R %s\n",
		nf.Unit, nf.Format, formatValue(nf.RefImpedance))
	if err != nil {
		return fmt.Errorf("touchstone: write: %w", err)
	}

	factor := nf.Unit.Factor()
	for _, pt := range nf.Points {
		row := [9]float64{pt.Frequency / factor}
		row[1], row[2] = fromComplex(nf.Format, pt.S[0][0])
		row[3], row[4] = fromComplex(nf.Format, pt.S[0][1])
		row[5], row[6] = fromComplex(nf.Format, pt.S[1][0])
		row[7], row[8] = fromComplex(nf.Format, pt.S[1][1])

		for i, v := range row {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return fmt.Errorf("touchstone: write: %w", err)
				}
			}
			if _, err := bw.WriteString(formatValue(v)); err != nil {
				return fmt.Errorf("touchstone: write: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("touchstone: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("touchstone: write: %w", err)
	}
	return nil
}

// WriteFile writes nf to path, truncating any existing file.
func WriteFile(nf *NetworkFile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("touchstone: %w", err)
	}
	if err := Write(nf, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("touchstone: %w", err)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// fromComplex is the inverse of toComplex.
func fromComplex(format Format, c complex128) (float64, float64) {
	if format == FormatRI {
		return real(c), imag(c)
	}
	mag := cmplx.Abs(c)
	ang := cmplx.Phase(c) * 180 / math.Pi
	if format == FormatDB {
		mag = 20 * math.Log10(mag)
	}
	return mag, ang
}
