package touchstone

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"cs2cg/internal/consts"
)

// Columns per data row: frequency + S11, S12, S21, S22 as value pairs.
const rowColumns = 9

// Parse reads a 2-port sweep from raw file content. The option line must
// appear before the first data row; "!" comments and blank lines are
// ignored anywhere.
func Parse(input string) (*NetworkFile, error) {
	nf := &NetworkFile{
		RefImpedance: consts.DefaultRefImpedance,
		Format:       FormatMA,
		Unit:         UnitHz,
	}

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	haveHeader := false

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Strip trailing comment
		if idx := strings.Index(line, "!"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if haveHeader {
				return nil, &FormatError{Line: lineNo, Reason: "duplicate option line"}
			}
			if len(nf.Points) > 0 {
				return nil, &FormatError{Line: lineNo, Reason: "option line after data"}
			}
			if err := parseOptions(nf, line, lineNo); err != nil {
				return nil, err
			}
			haveHeader = true
			continue
		}

		if !haveHeader {
			return nil, &FormatError{Line: lineNo, Reason: "data before option line"}
		}
		pt, err := parseRow(nf, line, lineNo)
		if err != nil {
			return nil, err
		}
		nf.Points = append(nf.Points, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("touchstone: read: %w", err)
	}

	if !haveHeader {
		return nil, &FormatError{Reason: "missing option line"}
	}
	if len(nf.Points) == 0 {
		return nil, &FormatError{Reason: "no data rows"}
	}
	return nf, nil
}

// ParseFile reads and parses path.
func ParseFile(path string) (*NetworkFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("touchstone: %w", err)
	}
	return Parse(string(content))
}

// parseOptions handles the "#" option line. Tokens are case-insensitive and
// may be omitted; defaults are Hz, S, MA, R 50.
func parseOptions(nf *NetworkFile, line string, lineNo int) error {
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	for i := 0; i < len(fields); i++ {
		switch strings.ToUpper(fields[i]) {
		case "HZ":
			nf.Unit = UnitHz
		case "KHZ":
			nf.Unit = UnitKHz
		case "MHZ":
			nf.Unit = UnitMHz
		case "GHZ":
			nf.Unit = UnitGHz
		case "S":
			// parameter type; only S is supported
		case "Y", "Z", "H", "G":
			return &FormatError{Line: lineNo, Reason: fmt.Sprintf("unsupported parameter type %q", fields[i])}
		case "MA":
			nf.Format = FormatMA
		case "DB":
			nf.Format = FormatDB
		case "RI":
			nf.Format = FormatRI
		case "R":
			if i+1 >= len(fields) {
				return &FormatError{Line: lineNo, Reason: "R without impedance value"}
			}
			i++
			r, err := strconv.ParseFloat(fields[i], 64)
			if err != nil || r <= 0 {
				return &FormatError{Line: lineNo, Reason: fmt.Sprintf("invalid reference impedance %q", fields[i])}
			}
			nf.RefImpedance = r
		default:
			return &FormatError{Line: lineNo, Reason: fmt.Sprintf("unknown option %q", fields[i])}
		}
	}
	return nil
}

func parseRow(nf *NetworkFile, line string, lineNo int) (FrequencyPoint, error) {
	fields := strings.Fields(line)
	if len(fields) != rowColumns {
		return FrequencyPoint{}, &FormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("expected %d columns, got %d", rowColumns, len(fields)),
		}
	}

	vals := make([]float64, rowColumns)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return FrequencyPoint{}, &FormatError{
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid number %q", f),
			}
		}
		vals[i] = v
	}

	pt := FrequencyPoint{Frequency: vals[0] * nf.Unit.Factor()}
	// Column order: S11 S12 S21 S22
	pt.S[0][0] = toComplex(nf.Format, vals[1], vals[2])
	pt.S[0][1] = toComplex(nf.Format, vals[3], vals[4])
	pt.S[1][0] = toComplex(nf.Format, vals[5], vals[6])
	pt.S[1][1] = toComplex(nf.Format, vals[7], vals[8])
	return pt, nil
}

// toComplex builds a complex value from one column pair per the declared
// format. Angles are degrees.
func toComplex(format Format, a, b float64) complex128 {
	switch format {
	case FormatRI:
		return complex(a, b)
	case FormatDB:
		a = math.Pow(10, a/20)
	}
	theta := b * math.Pi / 180
	return complex(a*math.Cos(theta), a*math.Sin(theta))
}
