// internal/oligo/oligo.go
package oligo

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptySequence is returned for records that carry no bases.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrInvalidBase is returned for anything outside A C G T/U.
	ErrInvalidBase = errors.New("invalid base")
)

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// Normalize removes whitespace/quotes, uppercases bases and reads U as T.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'U' {
			r = 'T'
		}
		if r > unicode.MaxASCII {
			// keep a placeholder so Validate reports the position
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return string(out)
}

// Validate returns the normalized sequence or an error if it is empty or
// contains anything but A, C, G and T (U accepted as T).
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", ErrEmptySequence
	}
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return "", fmt.Errorf("%w %q at %d; allowed: A C G T U", ErrInvalidBase, s[i], i+1)
		}
	}
	return s, nil
}

// RevComp returns the reverse complement of a normalized A/C/G/T sequence.
// Unknown bytes become N.
func RevComp(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// GCFraction is (G+C)/n; 0 for an empty string.
func GCFraction(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	gc := strings.Count(s, "G") + strings.Count(s, "C")
	return float64(gc) / float64(len(s))
}
