package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders value with an SI prefix for log fields and
// output comments, e.g. 5e-10 H -> "0.5 nH".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case value == 0:
		return fmt.Sprintf("0 %s", unit)
	case absValue >= 1e9:
		return fmt.Sprintf("%g G%s", value/1e9, unit)
	case absValue >= 1e6:
		return fmt.Sprintf("%g M%s", value/1e6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%g k%s", value/1e3, unit)
	case absValue >= 1:
		return fmt.Sprintf("%g %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%g m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%g u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%g n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%g p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%g %s", value, unit)
	}
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e9:
		return fmt.Sprintf("%g GHz", freq/1e9)
	case freq >= 1e6:
		return fmt.Sprintf("%g MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%g kHz", freq/1e3)
	default:
		return fmt.Sprintf("%g Hz", freq)
	}
}
