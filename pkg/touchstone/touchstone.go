// Package touchstone reads and writes 2-port Touchstone-style S-parameter
// files: an option line declaring unit, format and reference impedance,
// followed by 9-column data rows (frequency plus four complex values).
package touchstone

import "fmt"

type Format int

const (
	FormatMA Format = iota // magnitude, angle (degrees)
	FormatDB               // 20*log10 magnitude, angle (degrees)
	FormatRI               // real, imaginary
)

func (f Format) String() string {
	switch f {
	case FormatMA:
		return "MA"
	case FormatDB:
		return "DB"
	case FormatRI:
		return "RI"
	}
	return "??"
}

type Unit int

const (
	UnitHz Unit = iota
	UnitKHz
	UnitMHz
	UnitGHz
)

func (u Unit) String() string {
	switch u {
	case UnitHz:
		return "Hz"
	case UnitKHz:
		return "kHz"
	case UnitMHz:
		return "MHz"
	case UnitGHz:
		return "GHz"
	}
	return "??"
}

// Factor is the multiplier from the declared unit to Hz.
func (u Unit) Factor() float64 {
	switch u {
	case UnitKHz:
		return 1e3
	case UnitMHz:
		return 1e6
	case UnitGHz:
		return 1e9
	}
	return 1
}

// FrequencyPoint is one data row. Frequency is in Hz regardless of the
// unit declared in the file. S is indexed [row][col], so S[0][1] is S12.
type FrequencyPoint struct {
	Frequency float64
	S         [2][2]complex128
}

// NetworkFile is a parsed sweep. Points keep file order; by convention
// that is ascending frequency, but the order is never changed here.
type NetworkFile struct {
	RefImpedance float64
	Format       Format
	Unit         Unit
	Comments     []string // written as leading "!" lines, not round-tripped from input
	Points       []FrequencyPoint
}

// FormatError reports a malformed input file. Line is 1-based, 0 when the
// problem is not tied to a single line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("touchstone: %s", e.Reason)
	}
	return fmt.Sprintf("touchstone: line %d: %s", e.Line, e.Reason)
}
