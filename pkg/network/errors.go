package network

import "fmt"

// SingularMatrixError marks a parameter-domain conversion whose matrix
// inverse does not exist within tolerance. Such a point is degenerate or
// corrupted data and aborts the run rather than being zeroed out.
type SingularMatrixError struct {
	Stage string
	Det   float64 // determinant magnitude relative to the matrix scale
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix in %s (|det| = %g)", e.Stage, e.Det)
}

// NumericOverflowError marks a non-finite intermediate value.
type NumericOverflowError struct {
	Frequency float64 // Hz
	Stage     string
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("non-finite value in %s at %g Hz", e.Stage, e.Frequency)
}
