// internal/design/design.go
package design

import (
	"errors"
	"fmt"

	"oligostan/internal/thermo"
)

// Config is the immutable parameter set for one design run.
type Config struct {
	MinLen   int
	MaxLen   int
	MinScore float64 // in [0,1]
	Spacing  int     // minimum gap (nt) between consecutive probes
	Desired  float64 // ΔG37 set-point (kcal/mol)
	Table    thermo.Table
}

// Validate checks the length/score/spacing bounds.
func (c Config) Validate() error {
	switch {
	case c.MinLen < 2:
		return fmt.Errorf("design: min length %d must be ≥ 2", c.MinLen)
	case c.MinLen > c.MaxLen:
		return fmt.Errorf("design: min length %d exceeds max length %d", c.MinLen, c.MaxLen)
	case c.MinScore < 0 || c.MinScore > 1:
		return fmt.Errorf("design: min score %v outside [0,1]", c.MinScore)
	case c.Spacing < 0:
		return errors.New("design: spacing must be ≥ 0")
	}
	return nil
}

// Designer places probes on working-strand sequences.
type Designer struct{ cfg Config }

// New validates c and returns a Designer.
func New(c Config) (*Designer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Designer{cfg: c}, nil
}

// Config returns the parameters the Designer was built with.
func (d *Designer) Config() Config { return d.cfg }

// WithDesired returns a Designer that differs only in its set-point.
func (d *Designer) WithDesired(dg float64) *Designer {
	c := d.cfg
	c.Desired = dg
	return &Designer{cfg: c}
}

// Probes runs matrix → resolve → select on a normalized working-strand
// sequence. A sequence shorter than the longest probe yields no probes.
func (d *Designer) Probes(seq string) ([]Probe, error) {
	if len(seq) < d.cfg.MinLen {
		return nil, nil
	}
	steps, err := thermo.Steps(seq, &d.cfg.Table)
	if err != nil {
		return nil, err
	}
	m := BuildMatrix(steps, len(seq), d.cfg)
	return Select(m.Resolve(), seq, d.cfg), nil
}
