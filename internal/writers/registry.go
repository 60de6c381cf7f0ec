// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"oligostan/internal/annotate"
)

// WriteFunc encodes recs to w. masking tells encoders that report
// acceptance whether the mask screen is active.
type WriteFunc func(w io.Writer, recs []annotate.Record, masking bool) error

// Format is a registered report encoding.
type Format struct {
	Ext          string // file suffix, with dot
	FilteredOnly bool   // no ALL file is written
	Write        WriteFunc
}

var formats = map[string]Format{}

// Register adds or replaces (last wins) a format.
func Register(name string, f Format) { formats[name] = f }

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return Format{}, fmt.Errorf("unknown format %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered formats, sorted.
func Names() []string {
	out := make([]string, 0, len(formats))
	for k := range formats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
