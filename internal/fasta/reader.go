// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Record is one parsed FASTA entry. Seq is the raw residue text with line
// breaks removed; validation happens downstream.
type Record struct {
	ID  string
	Seq string
}

// ReadCtx parses FASTA from r and calls emit once per record. Sequence
// lines before the first header form a record with an empty ID.
// It returns promptly when ctx is done.
func ReadCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow long single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id      string
		started bool
		seq     bytes.Buffer
	)
	flush := func() error {
		if !started {
			return nil
		}
		return emit(Record{ID: id, Seq: seq.String()})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			started = true
			seq.Reset()
			continue
		}
		started = true
		seq.Write(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadFile reads every record of path ("-" = stdin, gzip detected).
func ReadFile(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var out []Record
	err = ReadCtx(ctx, rc, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// BaseName is the file name without directory and FASTA/gzip extensions
// ("data/humanRNU1_1.fa.gz" → "humanRNU1_1"). Stdin is "stdin".
func BaseName(path string) string {
	if path == "-" {
		return "stdin"
	}
	b := filepath.Base(path)
	b = strings.TrimSuffix(b, ".gz")
	for _, ext := range []string{".fasta", ".fas", ".fna", ".fa", ".txt"} {
		if strings.HasSuffix(strings.ToLower(b), ext) {
			return b[:len(b)-len(ext)]
		}
	}
	return b
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
