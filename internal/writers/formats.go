// internal/writers/formats.go
package writers

import (
	"io"

	"oligostan/internal/annotate"
	"oligostan/internal/output"
	"oligostan/internal/pretty"
)

func init() {
	Register("tsv", Format{
		Ext: ".txt",
		Write: func(w io.Writer, recs []annotate.Record, _ bool) error {
			return output.WriteTSV(w, recs)
		},
	})
	Register("json", Format{Ext: ".json", Write: output.WriteJSON})
	Register("jsonl", Format{Ext: ".jsonl", Write: output.WriteJSONL})
	Register("pretty", Format{
		Ext: ".pretty.txt",
		Write: func(w io.Writer, recs []annotate.Record, masking bool) error {
			return pretty.Write(w, recs, masking, pretty.DefaultOptions)
		},
	})
	Register("fasta", Format{
		Ext:          ".fa",
		FilteredOnly: true,
		Write: func(w io.Writer, recs []annotate.Record, _ bool) error {
			return output.WriteFASTA(w, recs)
		},
	})
}
