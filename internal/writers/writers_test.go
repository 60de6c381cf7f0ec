package writers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"

	"oligostan/internal/annotate"
	"oligostan/internal/output"
)

func rec(name string, accepted bool) annotate.Record {
	return annotate.Record{
		Name: name, Start: 0, End: 4, Length: 4, Seq: "ACGT",
		GCPass: accepted, PNASPass: accepted, MaskPass: true,
	}
}

func TestLookup(t *testing.T) {
	if diff := cmp.Diff([]string{"fasta", "json", "jsonl", "pretty", "tsv"}, Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	_, err := Lookup("nope-format")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("want unknown format error, got %v", err)
	}
}

func TestWriteReportTSV(t *testing.T) {
	out := t.TempDir()
	v := annotate.Partition([]annotate.Record{rec("a", true), rec("b", false)}, false)
	paths, err := WriteReport(out, "genes", "tsv", v, false)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(out, "Probes_genes")
	want := []string{
		filepath.Join(dir, "Probes_genes_ALL.txt"),
		filepath.Join(dir, "Probes_genes_FILT.txt"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
	all, _ := os.ReadFile(paths[0])
	filt, _ := os.ReadFile(paths[1])
	if n := strings.Count(string(all), "\n"); n != 3 {
		t.Errorf("ALL has %d lines, want 3", n)
	}
	if n := strings.Count(string(filt), "\n"); n != 2 {
		t.Errorf("FILT has %d lines, want 2", n)
	}
	if !strings.HasPrefix(string(filt), output.TSVHeader+"\n") {
		t.Errorf("FILT missing header:\n%s", filt)
	}
}

func TestWriteReportPlaceholder(t *testing.T) {
	out := t.TempDir()
	paths, err := WriteReport(out, "genes", "tsv", annotate.Views{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "Probes_genes_FILT.txt" {
		t.Fatalf("paths = %v", paths)
	}
	filt, _ := os.ReadFile(paths[0])
	if string(filt) != output.NoProbesMessage+"\n" {
		t.Errorf("FILT = %q, want placeholder", filt)
	}

	// placed but rejected: FILT keeps its header
	v := annotate.Partition([]annotate.Record{rec("b", false)}, false)
	paths, err = WriteReport(out, "genes", "tsv", v, false)
	if err != nil {
		t.Fatal(err)
	}
	filt, _ = os.ReadFile(paths[1])
	if string(filt) != output.TSVHeader+"\n" {
		t.Errorf("FILT = %q, want header only", filt)
	}

	// json keeps an empty array rather than the placeholder
	paths, err = WriteReport(out, "genes", "json", annotate.Views{}, false)
	if err != nil {
		t.Fatal(err)
	}
	filt, _ = os.ReadFile(paths[1])
	if strings.TrimSpace(string(filt)) != "[]" {
		t.Errorf("json FILT = %q", filt)
	}
}

func TestWriteReportPretty(t *testing.T) {
	out := t.TempDir()
	v := annotate.Partition([]annotate.Record{rec("a", true), rec("b", false)}, false)
	paths, err := WriteReport(out, "genes", "pretty", v, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || filepath.Base(paths[1]) != "Probes_genes_FILT.pretty.txt" {
		t.Fatalf("paths = %v", paths)
	}
	all, _ := os.ReadFile(paths[0])
	if strings.Count(string(all), "  target\n") != 2 {
		t.Errorf("ALL =\n%s", all)
	}
}

func TestWriteReportFASTA(t *testing.T) {
	out := t.TempDir()
	v := annotate.Partition([]annotate.Record{rec("a", true), rec("b", false)}, false)
	paths, err := WriteReport(out, "genes", "fasta", v, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "Probes_genes_FILT.fa" {
		t.Fatalf("paths = %v", paths)
	}
	b, _ := os.ReadFile(paths[0])
	if !strings.HasPrefix(string(b), ">a_1 ") || strings.Contains(string(b), ">b_") {
		t.Errorf("FASTA =\n%s", b)
	}
}

func TestWriteReportUnknownFormat(t *testing.T) {
	out := t.TempDir()
	if _, err := WriteReport(out, "genes", "xml", annotate.Views{}, false); err == nil {
		t.Fatal("want error")
	}
	if _, err := os.Stat(Dir(out, "genes")); !os.IsNotExist(err) {
		t.Errorf("report dir created for unknown format: %v", err)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestWriteStream(t *testing.T) {
	v := annotate.Partition([]annotate.Record{rec("a", true), rec("b", false)}, false)
	var buf bytes.Buffer
	if err := WriteStream(&buf, "fasta", v, false); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), ">") != 1 {
		t.Errorf("stream =\n%s", buf.String())
	}
	if err := WriteStream(brokenWriter{}, "tsv", v, false); err != nil {
		t.Errorf("broken pipe not swallowed: %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{syscall.EPIPE, true},
		{io.ErrClosedPipe, true},
		{errors.Join(errors.New("write"), syscall.EPIPE), true},
		{errors.New("other"), false},
	}
	for _, c := range cases {
		if got := IsBrokenPipe(c.err); got != c.want {
			t.Errorf("IsBrokenPipe(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
