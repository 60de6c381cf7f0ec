// internal/filter/dustmasker.go
package filter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Dustmasker runs the NCBI dustmasker binary over a batch of probes and
// converts its interval output into masked fractions.
type Dustmasker struct {
	Path   string // executable; "" = "dustmasker" on $PATH
	Level  int    // -level (0 = tool default)
	Window int    // -window (0 = tool default)
}

func (d *Dustmasker) args() []string {
	args := []string{"-outfmt", "interval"}
	if d.Level > 0 {
		args = append(args, "-level", strconv.Itoa(d.Level))
	}
	if d.Window > 0 {
		args = append(args, "-window", strconv.Itoa(d.Window))
	}
	return args
}

// Mask implements Masker. Sequences are fed on stdin as FASTA with ids
// p0..pN-1.
func (d *Dustmasker) Mask(ctx context.Context, seqs []string) ([]float64, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	bin := d.Path
	if bin == "" {
		bin = "dustmasker"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("failed to find a dustmasker executable at %s: %w", bin, err)
	}

	var in bytes.Buffer
	for i, s := range seqs {
		fmt.Fprintf(&in, ">p%d\n%s\n", i, s)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, d.args()...)
	cmd.Stdin = &in
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed at executing dustmasker: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	masked, err := parseIntervals(out)
	if err != nil {
		return nil, err
	}
	fr := make([]float64, len(seqs))
	for i, s := range seqs {
		if len(s) == 0 {
			continue
		}
		m := masked["p"+strconv.Itoa(i)]
		if m > len(s) {
			m = len(s)
		}
		fr[i] = float64(m) / float64(len(s))
	}
	return fr, nil
}

// parseIntervals reads `-outfmt interval` output: a ">id" line followed by
// zero or more "start - end" lines (0-based, inclusive). It returns the
// number of masked bases per id.
func parseIntervals(out []byte) (map[string]int, error) {
	res := make(map[string]int)
	sc := bufio.NewScanner(bytes.NewReader(out))
	id := ""
	line := 0
	for sc.Scan() {
		line++
		txt := strings.TrimSpace(sc.Text())
		if txt == "" {
			continue
		}
		if txt[0] == '>' {
			f := strings.Fields(txt[1:])
			if len(f) == 0 {
				return nil, fmt.Errorf("%w: empty header at line %d", ErrMaskerOutput, line)
			}
			id = f[0]
			res[id] += 0
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("%w: interval before header at line %d", ErrMaskerOutput, line)
		}
		parts := strings.Split(txt, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMaskerOutput, line, txt)
		}
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil || b < a {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMaskerOutput, line, txt)
		}
		res[id] += b - a + 1
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dustmasker output: %w", err)
	}
	return res, nil
}
