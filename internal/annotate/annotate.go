// internal/annotate/annotate.go
package annotate

import (
	"context"
	"fmt"
	"sort"

	"oligostan/internal/design"
	"oligostan/internal/filter"
	"oligostan/internal/oligo"
	"oligostan/internal/thermo"
)

// Flap suffixes appended to every probe for secondary-oligo binding.
type Flaps struct {
	X, Y, Z string
}

// DefaultFlaps are the reference X/Y/Z adapters.
var DefaultFlaps = Flaps{
	X: "CCTCCTAAGTTTCGAGCTGGACTCAGTG",
	Y: "TTACACTCGGACCTCGTCGACATGCATT",
	Z: "CCAGCTTCTAGCATCCATGCCCTATAAG",
}

// Settings drives the screening of placed probes.
type Settings struct {
	MinGC     float64
	MaxGC     float64
	Rules     []filter.Rule // subset ANDed into the PNAS outcome
	Masking   bool
	MaxMasked float64
	Flaps     Flaps
	Table     thermo.Table
}

// Record is a placed probe with every derived report field.
type Record struct {
	Name      string
	DesiredDG float64 // set-point used for placement

	// Original-orientation coordinates: orig[Start:End] is the target
	// region the probe hybridizes to.
	Start  int
	End    int
	Length int

	Seq   string
	Score float64
	DG37  float64
	GC    float64

	GCPass    bool
	Rules     filter.Outcome
	PNASCount int
	PNASPass  bool

	MaskedFraction float64
	MaskPass       bool

	FlapX string
	FlapY string
	FlapZ string
}

// Accepted reports whether r survives GC ∧ PNAS ∧ (masking ⇒ mask ok).
func (r Record) Accepted(masking bool) bool {
	return r.GCPass && r.PNASPass && (!masking || r.MaskPass)
}

// Annotate derives records for probes placed on a working strand of
// length n. The masker is only consulted when s.Masking is set.
func Annotate(ctx context.Context, name string, n int, desired float64, probes []design.Probe, s Settings, m filter.Masker) ([]Record, error) {
	if len(probes) == 0 {
		return nil, nil
	}
	masked := make([]float64, len(probes))
	if s.Masking {
		if m == nil {
			return nil, fmt.Errorf("annotate %s: masking enabled without a masker", name)
		}
		seqs := make([]string, len(probes))
		for i, p := range probes {
			seqs[i] = p.Seq
		}
		fr, err := m.Mask(ctx, seqs)
		if err != nil {
			return nil, fmt.Errorf("annotate %s: mask: %w", name, err)
		}
		if len(fr) != len(probes) {
			return nil, fmt.Errorf("annotate %s: masker returned %d values for %d probes", name, len(fr), len(probes))
		}
		masked = fr
	}

	out := make([]Record, 0, len(probes))
	for i, p := range probes {
		dg, err := thermo.DuplexEnergy(p.Seq, &s.Table)
		if err != nil {
			return nil, fmt.Errorf("annotate %s: %w", name, err)
		}
		rules := filter.Evaluate(p.Seq)
		end := n - p.Start
		out = append(out, Record{
			Name:           name,
			DesiredDG:      desired,
			Start:          end - p.Length,
			End:            end,
			Length:         p.Length,
			Seq:            p.Seq,
			Score:          p.Score,
			DG37:           dg,
			GC:             oligo.GCFraction(p.Seq),
			GCPass:         filter.GC(p.Seq, s.MinGC, s.MaxGC),
			Rules:          rules,
			PNASCount:      rules.Passed(),
			PNASPass:       filter.PNAS(p.Seq, s.Rules),
			MaskedFraction: masked[i],
			MaskPass:       filter.MaskOK(masked[i], s.MaxMasked),
			FlapX:          p.Seq + s.Flaps.X,
			FlapY:          p.Seq + s.Flaps.Y,
			FlapZ:          p.Seq + s.Flaps.Z,
		})
	}
	return out, nil
}

// SortByPNAS orders records by PNAS pass count, highest first; ties keep
// their prior order.
func SortByPNAS(rs []Record) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].PNASCount > rs[j].PNASCount })
}

// Accepted returns the records that pass every active screen, preserving
// order.
func Accepted(rs []Record, masking bool) []Record {
	var out []Record
	for _, r := range rs {
		if r.Accepted(masking) {
			out = append(out, r)
		}
	}
	return out
}

// Views is the pair of report tables for one input.
type Views struct {
	All      []Record
	Filtered []Record
}

// Partition sorts rs by PNAS count and splits it into the all-records and
// accepted views.
func Partition(rs []Record, masking bool) Views {
	all := append([]Record(nil), rs...)
	SortByPNAS(all)
	return Views{All: all, Filtered: Accepted(all, masking)}
}
