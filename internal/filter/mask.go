// internal/filter/mask.go
package filter

import (
	"context"
	"errors"
	"fmt"
)

// ErrMaskerOutput is returned when a masking tool's output cannot be read.
var ErrMaskerOutput = errors.New("unreadable masker output")

// Masker reports the masked (low-complexity) fraction of each sequence,
// in input order, as a value in [0,1].
type Masker interface {
	Mask(ctx context.Context, seqs []string) ([]float64, error)
}

// MaskOK passes when the masked fraction does not exceed max.
func MaskOK(frac, max float64) bool { return frac <= max }

// Masker kinds accepted by NewMasker.
const (
	MaskerDUST       = "dust"
	MaskerDustmasker = "dustmasker"
)

// NewMasker returns the in-process DUST masker or a wrapper around the
// NCBI dustmasker executable found at path ("" = look up on $PATH).
func NewMasker(kind, path string) (Masker, error) {
	switch kind {
	case "", MaskerDUST:
		return DefaultDUST(), nil
	case MaskerDustmasker:
		return &Dustmasker{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown masker %q (want %s | %s)", kind, MaskerDUST, MaskerDustmasker)
	}
}
