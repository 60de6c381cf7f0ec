// internal/output/tsv.go
package output

import (
	"bufio"
	"io"
	"strconv"

	"oligostan/internal/annotate"
)

// TSVHeader is the column row of the ALL/FILT tables. The names match the
// tables downstream R scripts already read; do not rename.
const TSVHeader = "dGOpt\tProbesNames\ttheStartPos\ttheEndPos\tProbeSize\tSeq\tdGScore\tdG37\tGCpc" +
	"\tGCFilter\taCompFilter\taStackFilter\tcCompFilter\tcStackFilter\tcSpecStackFilter" +
	"\tNbOfPNAS\tPNASFilter\tMaskedFilter\tRepeatMaskerPC\tHybFlpX\tHybFlpY\tHybFlpZ"

// NoProbesMessage replaces the FILT table when nothing was accepted.
const NoProbesMessage = "No probes found after filtering. Change filtering parameters."

// WriteTSV writes the header and one row per record.
func WriteTSV(w io.Writer, recs []annotate.Record) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(TSVHeader)
	bw.WriteByte('\n')
	var buf []byte
	for i := range recs {
		buf = AppendRow(buf[:0], &recs[i])
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteNoProbes writes the placeholder line used for an empty FILT table.
func WriteNoProbes(w io.Writer) error {
	_, err := io.WriteString(w, NoProbesMessage+"\n")
	return err
}

// AppendRow appends the TSV row for r (no trailing newline) to dst.
func AppendRow(dst []byte, r *annotate.Record) []byte {
	tab := func(b []byte) []byte { return append(b, '\t') }
	dst = appendFloat(dst, r.DesiredDG)
	dst = append(tab(dst), r.Name...)
	dst = strconv.AppendInt(tab(dst), int64(r.Start), 10)
	dst = strconv.AppendInt(tab(dst), int64(r.End), 10)
	dst = strconv.AppendInt(tab(dst), int64(r.Length), 10)
	dst = append(tab(dst), r.Seq...)
	dst = appendFloat(tab(dst), r.Score)
	dst = appendFloat(tab(dst), r.DG37)
	dst = appendFloat(tab(dst), r.GC)
	for _, ok := range []bool{
		r.GCPass,
		r.Rules.AComp, r.Rules.AStack, r.Rules.CComp, r.Rules.CStack, r.Rules.CSpecStack,
	} {
		dst = appendFlag(tab(dst), ok)
	}
	dst = strconv.AppendInt(tab(dst), int64(r.PNASCount), 10)
	dst = appendFlag(tab(dst), r.PNASPass)
	dst = appendFlag(tab(dst), r.MaskPass)
	dst = appendFloat(tab(dst), r.MaskedFraction)
	dst = append(tab(dst), r.FlapX...)
	dst = append(tab(dst), r.FlapY...)
	dst = append(tab(dst), r.FlapZ...)
	return dst
}

// 15 significant digits, as R prints doubles.
func appendFloat(dst []byte, x float64) []byte {
	return strconv.AppendFloat(dst, x, 'g', 15, 64)
}

func appendFlag(dst []byte, ok bool) []byte {
	if ok {
		return append(dst, '1')
	}
	return append(dst, '0')
}
