// internal/writers/report.go
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"oligostan/internal/annotate"
	"oligostan/internal/output"
)

// Dir returns the report directory for an input stem: <outDir>/Probes_<base>.
func Dir(outDir, base string) string {
	return filepath.Join(outDir, "Probes_"+base)
}

// WriteReport writes the views of one input under Dir(outDir, base) as
// Probes_<base>_ALL<ext> and Probes_<base>_FILT<ext>, and returns the
// paths written. In tsv format an input without any placed probe gets
// only a FILT file holding the no-probes placeholder.
func WriteReport(outDir, base, format string, v annotate.Views, masking bool) ([]string, error) {
	f, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	dir := Dir(outDir, base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	stem := filepath.Join(dir, "Probes_"+base)

	placeholder := format == "tsv" && len(v.All) == 0

	var paths []string
	if !f.FilteredOnly && !placeholder {
		p := stem + "_ALL" + f.Ext
		if err := writeFile(p, func(w io.Writer) error { return f.Write(w, v.All, masking) }); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	p := stem + "_FILT" + f.Ext
	write := func(w io.Writer) error { return f.Write(w, v.Filtered, masking) }
	if placeholder {
		write = output.WriteNoProbes
	}
	if err := writeFile(p, write); err != nil {
		return paths, err
	}
	return append(paths, p), nil
}

// WriteStream writes the filtered view to w, treating a closed reader as
// success.
func WriteStream(w io.Writer, format string, v annotate.Views, masking bool) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	if err := f.Write(w, v.Filtered, masking); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := fn(fh); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
