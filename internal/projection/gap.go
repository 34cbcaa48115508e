package projection

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when supply and ops sequences differ in length.
var ErrLengthMismatch = errors.New("supply and ops sequences must have equal length")

// Gap computes the elementwise supply-minus-operations difference for two
// aligned sequences.
func Gap(supply, ops []float64) ([]float64, error) {
	if len(supply) != len(ops) {
		return nil, fmt.Errorf("%w: supply=%d ops=%d", ErrLengthMismatch, len(supply), len(ops))
	}
	gap := make([]float64, len(supply))
	for i := range supply {
		gap[i] = supply[i] - ops[i]
	}
	return gap, nil
}
