// Package config is for app wide settings that are unmarshalled from
// Viper: built-in defaults, an optional settings file, OLIGOSTAN_* env
// vars and command line flags (see internal/cli).
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"oligostan/internal/annotate"
	"oligostan/internal/design"
	"oligostan/internal/filter"
	"oligostan/internal/oligo"
	"oligostan/internal/thermo"
)

// ErrInvalid wraps every configuration error so callers can tell them
// apart from "no probes found" and input errors.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is the prefix of environment overrides (OLIGOSTAN_MIN_LENGTH).
const EnvPrefix = "OLIGOSTAN"

// FlapConfig holds the three adapter suffixes.
type FlapConfig struct {
	X string `mapstructure:"x" yaml:"x"`
	Y string `mapstructure:"y" yaml:"y"`
	Z string `mapstructure:"z" yaml:"z"`
}

// Config is the root-level settings struct.
type Config struct {
	// probe length bounds (nt)
	MinLength int `mapstructure:"min-length" yaml:"min-length"`
	MaxLength int `mapstructure:"max-length" yaml:"max-length"`

	// minimum ΔG37 match score for a candidate to be placed
	MinScore float64 `mapstructure:"min-score" yaml:"min-score"`

	// minimum gap between consecutive probes (nt)
	Spacing int `mapstructure:"spacing" yaml:"spacing"`

	// ΔG37 set-point (kcal/mol); DGSweep "min:max:step" overrides it with
	// the best-yielding value of a sweep
	DesiredDG float64 `mapstructure:"desired-dg" yaml:"desired-dg"`
	DGSweep   string  `mapstructure:"dg-sweep" yaml:"dg-sweep,omitempty"`

	MinGC float64 `mapstructure:"min-gc" yaml:"min-gc"`
	MaxGC float64 `mapstructure:"max-gc" yaml:"max-gc"`

	// PNAS rules (1..5) ANDed into the aggregate PNAS outcome
	PNASRules []int `mapstructure:"pnas-rules" yaml:"pnas-rules,flow"`

	// low-complexity screen
	Masking    bool    `mapstructure:"masking" yaml:"masking"`
	Masker     string  `mapstructure:"masker" yaml:"masker"`
	MaskerPath string  `mapstructure:"masker-path" yaml:"masker-path,omitempty"`
	MaxMasked  float64 `mapstructure:"max-masked" yaml:"max-masked"`

	// sequences with fewer accepted probes are dropped from the filtered view
	MinProbes int `mapstructure:"min-probes" yaml:"min-probes"`

	// dinucleotide stacking ΔG37 table (16 entries)
	DG37 map[string]float64 `mapstructure:"dg37" yaml:"dg37"`

	Flaps FlapConfig `mapstructure:"flaps" yaml:"flaps"`
}

// Default returns the reference settings.
func Default() Config {
	return Config{
		MinLength: 26,
		MaxLength: 32,
		MinScore:  0.9,
		Spacing:   2,
		DesiredDG: -32.0,
		MinGC:     0.4,
		MaxGC:     0.6,
		PNASRules: []int{1, 2, 4},
		Masking:   false,
		Masker:    filter.MaskerDUST,
		MaxMasked: 0.1,
		MinProbes: 0,
		DG37:      thermo.DefaultValues(),
		Flaps: FlapConfig{
			X: annotate.DefaultFlaps.X,
			Y: annotate.DefaultFlaps.Y,
			Z: annotate.DefaultFlaps.Z,
		},
	}
}

// SetDefaults registers Default() on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("min-length", d.MinLength)
	v.SetDefault("max-length", d.MaxLength)
	v.SetDefault("min-score", d.MinScore)
	v.SetDefault("spacing", d.Spacing)
	v.SetDefault("desired-dg", d.DesiredDG)
	v.SetDefault("dg-sweep", d.DGSweep)
	v.SetDefault("min-gc", d.MinGC)
	v.SetDefault("max-gc", d.MaxGC)
	v.SetDefault("pnas-rules", d.PNASRules)
	v.SetDefault("masking", d.Masking)
	v.SetDefault("masker", d.Masker)
	v.SetDefault("masker-path", d.MaskerPath)
	v.SetDefault("max-masked", d.MaxMasked)
	v.SetDefault("min-probes", d.MinProbes)
	// nested as map[string]any so a settings file can override single dimers
	dg := make(map[string]any, len(d.DG37))
	for k, x := range d.DG37 {
		dg[k] = x
	}
	v.SetDefault("dg37", dg)
	v.SetDefault("flaps.x", d.Flaps.X)
	v.SetDefault("flaps.y", d.Flaps.Y)
	v.SetDefault("flaps.z", d.Flaps.Z)
}

// New returns a Viper instance with defaults and env overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional settings file into v, unmarshals and validates.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalid, path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %v", ErrInvalid, err)
	}
	// viper lower-cases keys; dimers read better upper-case
	dg := make(map[string]float64, len(c.DG37))
	for k, x := range c.DG37 {
		dg[strings.ToUpper(k)] = x
	}
	c.DG37 = dg
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, a...)...)
}

func unit(name string, x float64) error {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return invalid("%s %v outside [0,1]", name, x)
	}
	return nil
}

// Validate fails fast on any setting that would make a run meaningless.
func (c Config) Validate() error {
	if c.MinLength < 2 {
		return invalid("min-length %d must be ≥ 2", c.MinLength)
	}
	if c.MinLength > c.MaxLength {
		return invalid("min-length %d exceeds max-length %d", c.MinLength, c.MaxLength)
	}
	for _, b := range []struct {
		name string
		x    float64
	}{
		{"min-score", c.MinScore},
		{"min-gc", c.MinGC},
		{"max-gc", c.MaxGC},
		{"max-masked", c.MaxMasked},
	} {
		if err := unit(b.name, b.x); err != nil {
			return err
		}
	}
	if c.MinGC > c.MaxGC {
		return invalid("min-gc %v exceeds max-gc %v", c.MinGC, c.MaxGC)
	}
	if c.Spacing < 0 {
		return invalid("spacing %d must be ≥ 0", c.Spacing)
	}
	if c.MinProbes < 0 {
		return invalid("min-probes %d must be ≥ 0", c.MinProbes)
	}
	if _, err := filter.ParseRules(c.PNASRules); err != nil {
		return invalid("pnas-rules: %v", err)
	}
	if _, err := thermo.NewTable(c.DG37); err != nil {
		return invalid("dg37: %v", err)
	}
	for _, f := range []struct{ name, seq string }{{"x", c.Flaps.X}, {"y", c.Flaps.Y}, {"z", c.Flaps.Z}} {
		if _, err := oligo.Validate(f.seq); err != nil {
			return invalid("flaps.%s: %v", f.name, err)
		}
	}
	if _, err := filter.NewMasker(c.Masker, c.MaskerPath); err != nil {
		return invalid("%v", err)
	}
	if _, err := c.SetPoints(); err != nil {
		return err
	}
	return nil
}

// Table returns the validated stacking table.
func (c Config) Table() thermo.Table {
	t, err := thermo.NewTable(c.DG37)
	if err != nil {
		return thermo.DefaultTable()
	}
	return t
}

// Design returns the placement parameters for set-point dg.
func (c Config) Design(dg float64) design.Config {
	return design.Config{
		MinLen:   c.MinLength,
		MaxLen:   c.MaxLength,
		MinScore: c.MinScore,
		Spacing:  c.Spacing,
		Desired:  dg,
		Table:    c.Table(),
	}
}

// Annotate returns the screening settings.
func (c Config) Annotate() annotate.Settings {
	rules, _ := filter.ParseRules(c.PNASRules)
	return annotate.Settings{
		MinGC:     c.MinGC,
		MaxGC:     c.MaxGC,
		Rules:     rules,
		Masking:   c.Masking,
		MaxMasked: c.MaxMasked,
		Flaps: annotate.Flaps{
			X: oligo.Normalize(c.Flaps.X),
			Y: oligo.Normalize(c.Flaps.Y),
			Z: oligo.Normalize(c.Flaps.Z),
		},
		Table: c.Table(),
	}
}

// NewMasker builds the configured masker.
func (c Config) NewMasker() (filter.Masker, error) {
	return filter.NewMasker(c.Masker, c.MaskerPath)
}

// maxSweepPoints bounds a dg-sweep so a typo cannot explode the run.
const maxSweepPoints = 1000

// SetPoints returns the set-points to evaluate: DesiredDG alone, or every
// value of DGSweep "min:max:step" in ascending order.
func (c Config) SetPoints() ([]float64, error) {
	if strings.TrimSpace(c.DGSweep) == "" {
		return []float64{c.DesiredDG}, nil
	}
	parts := strings.Split(c.DGSweep, ":")
	if len(parts) != 3 {
		return nil, invalid("dg-sweep %q: want min:max:step", c.DGSweep)
	}
	var f [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, invalid("dg-sweep %q: %v", c.DGSweep, err)
		}
		f[i] = x
	}
	lo, hi, step := f[0], f[1], f[2]
	if step <= 0 || lo > hi {
		return nil, invalid("dg-sweep %q: need min ≤ max and step > 0", c.DGSweep)
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	if n > maxSweepPoints {
		return nil, invalid("dg-sweep %q: %d points exceeds %d", c.DGSweep, n, maxSweepPoints)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out, nil
}

// YAML renders c as a settings file that Load accepts.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
