// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"oligostan/internal/annotate"
	"oligostan/internal/jsonlutil"
	"oligostan/pkg/api"
)

// ToAPIProbe converts a record to the stable wire schema (v1).
func ToAPIProbe(r annotate.Record, masking bool) api.ProbeV1 {
	return api.ProbeV1{
		SequenceID: r.Name,
		DesiredDG:  r.DesiredDG,
		Start:      r.Start,
		End:        r.End,
		Length:     r.Length,
		Seq:        r.Seq,
		Score:      r.Score,
		DG37:       r.DG37,
		GC:         r.GC,
		Filters: api.FiltersV1{
			GC:         r.GCPass,
			AComp:      r.Rules.AComp,
			AStack:     r.Rules.AStack,
			CComp:      r.Rules.CComp,
			CStack:     r.Rules.CStack,
			CSpecStack: r.Rules.CSpecStack,
			PNAS:       r.PNASPass,
			Masked:     r.MaskPass,
		},
		PNASCount:      r.PNASCount,
		MaskedFraction: r.MaskedFraction,
		Accepted:       r.Accepted(masking),
		FlapX:          r.FlapX,
		FlapY:          r.FlapY,
		FlapZ:          r.FlapZ,
	}
}

func toAPIProbes(recs []annotate.Record, masking bool) []api.ProbeV1 {
	out := make([]api.ProbeV1, 0, len(recs))
	for _, r := range recs {
		out = append(out, ToAPIProbe(r, masking))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 probes (pretty-indented).
func WriteJSON(w io.Writer, recs []annotate.Record, masking bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPIProbes(recs, masking))
}

// WriteJSONL writes one compact v1 probe per line.
func WriteJSONL(w io.Writer, recs []annotate.Record, masking bool) error {
	return jsonlutil.Write(w, recs, func(r annotate.Record) api.ProbeV1 {
		return ToAPIProbe(r, masking)
	})
}
