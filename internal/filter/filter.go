// internal/filter/filter.go
// Composition screens for candidate probes. Every predicate takes an
// upper-case A/C/G/T string; an empty string fails the fraction rules.
package filter

import (
	"fmt"
	"strings"
)

// Rule identifies one of the five PNAS composition rules (1-based, as
// used in configuration files).
type Rule int

const (
	AComp      Rule = iota + 1 // A fraction < 28%
	AStack                     // no AAAA
	CComp                      // 22% < C fraction < 28%
	CStack                     // no CCCC
	CSpecStack                 // no 6-nt window with more than 3 C
)

// AllRules lists the five rules in report order.
var AllRules = []Rule{AComp, AStack, CComp, CStack, CSpecStack}

var ruleNames = map[Rule]string{
	AComp:      "a-comp",
	AStack:     "a-stack",
	CComp:      "c-comp",
	CStack:     "c-stack",
	CSpecStack: "c-spec-stack",
}

func (r Rule) String() string {
	if n, ok := ruleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Valid reports whether r is one of the five rules.
func (r Rule) Valid() bool { return r >= AComp && r <= CSpecStack }

// Check evaluates a single rule.
func (r Rule) Check(s string) bool {
	switch r {
	case AComp:
		return ACompOK(s)
	case AStack:
		return AStackOK(s)
	case CComp:
		return CCompOK(s)
	case CStack:
		return CStackOK(s)
	case CSpecStack:
		return CSpecStackOK(s)
	}
	return false
}

// ParseRules converts configuration indices (1..5) into rules.
func ParseRules(idx []int) ([]Rule, error) {
	out := make([]Rule, 0, len(idx))
	for _, i := range idx {
		r := Rule(i)
		if !r.Valid() {
			return nil, fmt.Errorf("unknown PNAS rule %d (want 1..5)", i)
		}
		out = append(out, r)
	}
	return out, nil
}

func fraction(s string, base string) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return float64(strings.Count(s, base)) / float64(len(s)), true
}

// GC passes when min ≤ (G+C)/n ≤ max.
func GC(s string, min, max float64) bool {
	if len(s) == 0 {
		return false
	}
	gc := float64(strings.Count(s, "G")+strings.Count(s, "C")) / float64(len(s))
	return min <= gc && gc <= max
}

// ACompOK passes when the A fraction is below 28%.
func ACompOK(s string) bool {
	f, ok := fraction(s, "A")
	return ok && f < 0.28
}

// AStackOK passes when s has no run of four A.
func AStackOK(s string) bool { return !strings.Contains(s, "AAAA") }

// CCompOK passes when the C fraction is strictly between 22% and 28%.
func CCompOK(s string) bool {
	f, ok := fraction(s, "C")
	return ok && 0.22 < f && f < 0.28
}

// CStackOK passes when s has no run of four C.
func CStackOK(s string) bool { return !strings.Contains(s, "CCCC") }

// CSpecStackOK passes when every 6-nt window holds at most 3 C.
// Strings shorter than 6 have no window and pass.
func CSpecStackOK(s string) bool {
	const win = 6
	if len(s) < win {
		return true
	}
	c := strings.Count(s[:win], "C")
	if c > win/2 {
		return false
	}
	for i := win; i < len(s); i++ {
		if s[i] == 'C' {
			c++
		}
		if s[i-win] == 'C' {
			c--
		}
		if c > win/2 {
			return false
		}
	}
	return true
}

// PNAS is the AND over the selected rules. An empty selection passes.
func PNAS(s string, rules []Rule) bool {
	for _, r := range rules {
		if !r.Check(s) {
			return false
		}
	}
	return true
}

// Outcome holds every individual rule result for one probe.
type Outcome struct {
	AComp      bool
	AStack     bool
	CComp      bool
	CStack     bool
	CSpecStack bool
}

// Evaluate runs all five rules.
func Evaluate(s string) Outcome {
	return Outcome{
		AComp:      ACompOK(s),
		AStack:     AStackOK(s),
		CComp:      CCompOK(s),
		CStack:     CStackOK(s),
		CSpecStack: CSpecStackOK(s),
	}
}

// Passed returns how many of the five rules passed (0..5).
func (o Outcome) Passed() int {
	n := 0
	for _, ok := range []bool{o.AComp, o.AStack, o.CComp, o.CStack, o.CSpecStack} {
		if ok {
			n++
		}
	}
	return n
}

// PassCount is Evaluate(s).Passed().
func PassCount(s string) int { return Evaluate(s).Passed() }
