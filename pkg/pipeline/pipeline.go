// Package pipeline sequences a whole conversion run: parse the
// common-source sweep, re-reference every frequency point to common-gate
// with the degeneration inductor applied, and write the result in the
// input's own convention. The run is fail-fast: the first bad point aborts
// and no output file is written.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cs2cg/internal/consts"
	"cs2cg/pkg/network"
	"cs2cg/pkg/touchstone"
	"cs2cg/pkg/transform"
	"cs2cg/pkg/util"
)

type Options struct {
	Workers int // 1 = sequential
	Logger  zerolog.Logger
}

// Convert reads inputPath, applies the common-source to common-gate
// transform with a source-degeneration inductance given in nH, and writes
// the converted sweep to outputPath. The returned NetworkFile is the
// written output.
func Convert(inputPath string, inductanceNH float64, outputPath string, opts Options) (*touchstone.NetworkFile, error) {
	start := time.Now()
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	nf, err := touchstone.ParseFile(inputPath)
	if err != nil {
		return nil, err
	}

	inductance := inductanceNH * consts.HenriesPerNano
	points, err := convertPoints(nf, inductance, opts.Workers)
	if err != nil {
		opts.Logger.Error().Err(err).Str("input", inputPath).Msg("conversion aborted")
		return nil, err
	}

	out := &touchstone.NetworkFile{
		RefImpedance: nf.RefImpedance,
		Format:       nf.Format,
		Unit:         nf.Unit,
		Comments: []string{
			fmt.Sprintf("common-gate conversion of %s, source degeneration %s",
				filepath.Base(inputPath), util.FormatValueFactor(inductance, "H")),
		},
		Points: points,
	}

	if err := touchstone.WriteFile(out, outputPath); err != nil {
		return nil, err
	}

	opts.Logger.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("points", len(points)).
		Int("workers", opts.Workers).
		Str("inductance", util.FormatValueFactor(inductance, "H")).
		Dur("elapsed", time.Since(start)).
		Msg("conversion complete")
	return out, nil
}

// DefaultOutputPath derives "<base>_cg.s2p" in dir from the input name.
func DefaultOutputPath(inputPath, dir string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_cg.s2p")
}

// convertPoints maps the per-point transform across the sweep. Points are
// independent, so they may run on several workers; results land by index
// and keep file order.
func convertPoints(nf *touchstone.NetworkFile, inductance float64, workers int) ([]touchstone.FrequencyPoint, error) {
	n := len(nf.Points)
	out := make([]touchstone.FrequencyPoint, n)
	errs := make([]error, n)

	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := range nf.Points {
			out[i], errs[i] = convertPoint(nf.Points[i], nf.RefImpedance, inductance)
			if errs[i] != nil {
				break // fail fast
			}
		}
	} else {
		indexes := make(chan int)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					out[i], errs[i] = convertPoint(nf.Points[i], nf.RefImpedance, inductance)
				}
			}()
		}
		for i := range n {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	// First failing point in file order wins, so parallel runs report the
	// same error a sequential run would.
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("point %d (%s): %w",
				i+1, util.FormatFrequency(nf.Points[i].Frequency), err)
		}
	}
	return out, nil
}

func convertPoint(pt touchstone.FrequencyPoint, z0, inductance float64) (touchstone.FrequencyPoint, error) {
	y, err := network.SToY(network.TwoPort(pt.S), z0)
	if err != nil {
		return touchstone.FrequencyPoint{}, err
	}

	yg, err := transform.Apply(y, pt.Frequency, inductance)
	if err != nil {
		return touchstone.FrequencyPoint{}, err
	}

	s, err := network.YToS(yg, z0)
	if err != nil {
		return touchstone.FrequencyPoint{}, err
	}
	if !network.IsFinite(s) {
		return touchstone.FrequencyPoint{}, &network.NumericOverflowError{Frequency: pt.Frequency, Stage: "y-to-s"}
	}

	return touchstone.FrequencyPoint{Frequency: pt.Frequency, S: [2][2]complex128(s)}, nil
}
