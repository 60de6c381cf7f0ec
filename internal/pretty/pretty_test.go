package pretty

import (
	"bytes"
	"strings"
	"testing"

	"oligostan/internal/annotate"
)

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.ExactGlyph != "|" || d.MismatchGlyph != " " || !d.ShowFilters {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}

func TestRenderRecord(t *testing.T) {
	r := annotate.Record{
		Name: "tx1", Start: 12, End: 20, Length: 8, Seq: "GGCATCCA",
		DG37: -9.5, Score: 0.95, PNASCount: 3, GCPass: true, PNASPass: true,
	}
	got := RenderRecord(r, 2, false, DefaultOptions)
	want := "# tx1 #2  12..20 (8 nt)  dG37 -9.50  score 0.950  PNAS 3/5  gc+ pnas+  accepted\n" +
		"# 5'-TGGATGCC-3'  target\n" +
		"#    ||||||||\n" +
		"# 3'-ACCTACGG-5'  probe\n\n"
	if got != want {
		t.Errorf("RenderRecord mismatch:\n got: %q\nwant: %q", got, want)
	}

	r.MaskPass = false
	got = RenderRecord(r, 1, true, DefaultOptions)
	if !strings.Contains(got, "mask-") || strings.Contains(got, "accepted") {
		t.Errorf("masking not shown:\n%s", got)
	}
}

func TestPairLine(t *testing.T) {
	if got := pairLine("ACGT", "TGGA", DefaultOptions); got != "|| |" {
		t.Errorf("pairLine = %q", got)
	}
	if got := pairLine("ACGT", "TG", Options{ExactGlyph: "*", MismatchGlyph: "."}); got != "**" {
		t.Errorf("short bottom = %q", got)
	}
}

func TestWriteNumbersPerSequence(t *testing.T) {
	recs := []annotate.Record{
		{Name: "a", Seq: "ACGT", Length: 4},
		{Name: "b", Seq: "ACGT", Length: 4},
		{Name: "a", Seq: "ACGT", Length: 4},
	}
	var buf bytes.Buffer
	if err := Write(&buf, recs, false, DefaultOptions); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# a #1 ", "# b #1 ", "# a #2 "} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
}
