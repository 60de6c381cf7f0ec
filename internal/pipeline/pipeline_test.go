package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"oligostan/internal/annotate"
	"oligostan/internal/design"
	"oligostan/internal/fasta"
	"oligostan/internal/filter"
	"oligostan/internal/oligo"
	"oligostan/internal/thermo"
)

// Reverse complement of a 40-nt working strand that yields exactly one
// 28-nt probe at set-point -32.
const target = "ATGGATCCGTAAGCTTGACCTGGATCGTAAACTGGATGCC"

const wantProbe = "GGCATCCAGTTTACGATCCAGGTCAAGC"

func testConfig() Config {
	return Config{
		Design: design.Config{
			MinLen:   26,
			MaxLen:   32,
			MinScore: 0.9,
			Spacing:  2,
			Desired:  -32,
			Table:    thermo.DefaultTable(),
		},
		Annotate: annotate.Settings{
			MinGC:     0.4,
			MaxGC:     0.6,
			Rules:     []filter.Rule{filter.AComp, filter.AStack, filter.CStack},
			MaxMasked: 0.1,
			Flaps:     annotate.DefaultFlaps,
			Table:     thermo.DefaultTable(),
		},
		Workers: 4,
		Logger:  log.New(io.Discard),
	}
}

func newRunner(t *testing.T, c Config) *Runner {
	t.Helper()
	r, err := New(c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func writeFASTA(t *testing.T, name, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fn
}

func TestNewRejects(t *testing.T) {
	c := testConfig()
	c.Design.MinLen = 40
	if _, err := New(c); err == nil {
		t.Error("want error for MinLen > MaxLen")
	}
	c = testConfig()
	c.Annotate.Masking = true
	if _, err := New(c); err == nil {
		t.Error("want error for masking without masker")
	}
	c = testConfig()
	c.MinProbes = -1
	if _, err := New(c); err == nil {
		t.Error("want error for negative min probes")
	}
}

func TestRunSingleSequence(t *testing.T) {
	r := newRunner(t, testConfig())
	res, err := r.Run(context.Background(), []fasta.Record{{ID: "tx1", Seq: target}}, -32)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Err != nil {
		t.Fatalf("results = %+v", res)
	}
	got := res[0]
	if got.ID != "tx1" || got.Length != 40 || got.Placed != 1 || len(got.Records) != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
	rec := got.Records[0]
	if rec.Seq != wantProbe || rec.Start != 12 || rec.End != 40 || rec.Length != 28 {
		t.Errorf("record = %+v", rec)
	}
	if target[rec.Start:rec.End] != oligo.RevComp(rec.Seq) {
		t.Errorf("probe does not hybridize to target[%d:%d]", rec.Start, rec.End)
	}
	// C fraction is 8/28, so only c-comp fails.
	if rec.PNASCount != 4 || !rec.PNASPass || !rec.GCPass {
		t.Errorf("screens = count %d pnas %v gc %v", rec.PNASCount, rec.PNASPass, rec.GCPass)
	}
	if got.Accepted(false) != 1 {
		t.Errorf("accepted = %d, want 1", got.Accepted(false))
	}
}

func TestRunKeepsInputOrder(t *testing.T) {
	r := newRunner(t, testConfig())
	var recs []fasta.Record
	for i := 0; i < 50; i++ {
		seq := target
		if i%3 == 0 {
			seq = "ACGT"
		}
		recs = append(recs, fasta.Record{ID: fmt.Sprintf("s%02d", i), Seq: seq})
	}
	res, err := r.Run(context.Background(), recs, -32)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range res {
		if x.ID != recs[i].ID {
			t.Fatalf("result %d has ID %q, want %q", i, x.ID, recs[i].ID)
		}
		want := 1
		if i%3 == 0 {
			want = 0
		}
		if x.Placed != want {
			t.Errorf("%s placed %d, want %d", x.ID, x.Placed, want)
		}
	}
}

func TestRunInvalidSequence(t *testing.T) {
	r := newRunner(t, testConfig())
	res, err := r.Run(context.Background(), []fasta.Record{
		{ID: "bad", Seq: "ACGTXACGT"},
		{ID: "empty", Seq: ""},
		{ID: "ok", Seq: target},
	}, -32)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res[0].Err, oligo.ErrInvalidBase) {
		t.Errorf("bad: err = %v", res[0].Err)
	}
	if !errors.Is(res[1].Err, oligo.ErrEmptySequence) {
		t.Errorf("empty: err = %v", res[1].Err)
	}
	if res[2].Err != nil || res[2].Placed != 1 {
		t.Errorf("ok: %+v", res[2])
	}
}

type failMasker struct{}

func (failMasker) Mask(context.Context, []string) ([]float64, error) {
	return nil, errors.New("boom")
}

func TestRunMaskerFailure(t *testing.T) {
	c := testConfig()
	c.Annotate.Masking = true
	c.Masker = failMasker{}
	r := newRunner(t, c)
	res, err := r.Run(context.Background(), []fasta.Record{{ID: "tx1", Seq: target}}, -32)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Err == nil || !strings.Contains(res[0].Err.Error(), "boom") {
		t.Errorf("err = %v, want masker failure", res[0].Err)
	}
}

func TestRunCancelled(t *testing.T) {
	r := newRunner(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, []fasta.Record{{ID: "tx1", Seq: target}}, -32); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if _, err := r.Run(ctx, nil, -32); !errors.Is(err, context.Canceled) {
		t.Errorf("empty batch err = %v, want context.Canceled", err)
	}
}

func TestBest(t *testing.T) {
	r := newRunner(t, testConfig())
	recs := []fasta.Record{{ID: "tx1", Seq: target}}

	sw, err := r.Best(context.Background(), recs, []float64{-20, -32, -40})
	if err != nil {
		t.Fatal(err)
	}
	if sw.DesiredDG != -32 || sw.Accepted != 1 {
		t.Errorf("sweep = dg %v accepted %d, want -32 and 1", sw.DesiredDG, sw.Accepted)
	}
	if sw.Results[0].Records[0].DesiredDG != -32 {
		t.Errorf("record set-point = %v", sw.Results[0].Records[0].DesiredDG)
	}

	// Nothing accepted anywhere: first set-point wins.
	sw, err = r.Best(context.Background(), recs, []float64{-40, -20})
	if err != nil {
		t.Fatal(err)
	}
	if sw.DesiredDG != -40 || sw.Accepted != 0 {
		t.Errorf("tie sweep = dg %v accepted %d, want -40 and 0", sw.DesiredDG, sw.Accepted)
	}

	if _, err := r.Best(context.Background(), recs, nil); err == nil {
		t.Error("want error for empty set-point list")
	}
}

func TestFile(t *testing.T) {
	fn := writeFASTA(t, "genes.fa", ">tx1 first\n"+target[:20]+"\n"+target[20:]+"\n>bad\nACGTNNACGT\n>short\nACGTACGT\n")
	r := newRunner(t, testConfig())
	fr, err := r.File(context.Background(), fn, []float64{-32})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Base != "genes" || fr.DesiredDG != -32 {
		t.Errorf("base %q dg %v", fr.Base, fr.DesiredDG)
	}
	if len(fr.Results) != 3 || len(fr.Skipped) != 1 {
		t.Fatalf("results %d skipped %d", len(fr.Results), len(fr.Skipped))
	}
	names := func(rs []annotate.Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name+":"+r.Seq)
		}
		return out
	}
	want := []string{"tx1:" + wantProbe}
	if diff := cmp.Diff(want, names(fr.Views.All)); diff != "" {
		t.Errorf("ALL (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, names(fr.Views.Filtered)); diff != "" {
		t.Errorf("FILT (-want +got):\n%s", diff)
	}
	if fr.Dropped != nil {
		t.Errorf("dropped = %v", fr.Dropped)
	}
}

func TestFileMinProbes(t *testing.T) {
	// tx2 places two probes but the second carries an A run, so both
	// sequences hold one accepted probe.
	body := ">tx1\n" + target + "\n>tx2\n" + target + "TTTTTTTTTT" + target + "\n>short\nACGTACGT\n"
	fn := writeFASTA(t, "genes.fa", body)

	for _, tc := range []struct {
		min      int
		dropped  []string
		filtered []string
	}{
		{0, nil, []string{"tx1", "tx2"}},
		{1, []string{"short"}, []string{"tx1", "tx2"}},
		{2, []string{"tx1", "tx2", "short"}, nil},
	} {
		c := testConfig()
		c.MinProbes = tc.min
		r := newRunner(t, c)
		fr, err := r.File(context.Background(), fn, []float64{-32})
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.dropped, fr.Dropped); diff != "" {
			t.Errorf("min %d: dropped (-want +got):\n%s", tc.min, diff)
		}
		if len(fr.Views.All) != 3 {
			t.Errorf("min %d: ALL has %d records, want 3", tc.min, len(fr.Views.All))
		}
		var got []string
		for _, rec := range fr.Views.Filtered {
			got = append(got, rec.Name)
		}
		if diff := cmp.Diff(tc.filtered, got); diff != "" {
			t.Errorf("min %d: filtered (-want +got):\n%s", tc.min, diff)
		}
	}
}

func TestFileErrors(t *testing.T) {
	r := newRunner(t, testConfig())
	if _, err := r.File(context.Background(), filepath.Join(t.TempDir(), "missing.fa"), []float64{-32}); err == nil {
		t.Error("want error for missing file")
	}
	fn := writeFASTA(t, "empty.fa", "")
	if _, err := r.File(context.Background(), fn, []float64{-32}); !errors.Is(err, ErrNoSequences) {
		t.Errorf("err = %v, want ErrNoSequences", err)
	}
}
