package smoothing

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultResolution is the step of the discretized alpha universe (101 samples on [0, 1])
	DefaultResolution = 0.01
	// MinResolution bounds the number of alpha samples (and so the time of a single inference)
	MinResolution = 1e-4
	// DefaultFallbackAlpha is used when no rule fires
	DefaultFallbackAlpha = 0.3
	// DefaultSizeBlendWeight is the fixed blend weight for width and height
	DefaultSizeBlendWeight = 0.5
	// DefaultMaxMotion is the upper bound of the motion universe, pixels
	DefaultMaxMotion = 100.0
)

// Config holds everything the fuzzy smoother needs: membership functions, rule table and blending constants.
// Engines and filters copy it on construction, so changing a Config afterwards has no effect on them.
type Config struct {
	Motion     LinguisticVariable
	Confidence LinguisticVariable
	Alpha      LinguisticVariable
	Rules      []Rule
	// Step of the alpha universe sampling used by centroid defuzzification
	Resolution float64
	// Alpha used when total aggregated membership is zero
	FallbackAlpha float64
	// Blend weight for size. Does not depend on alpha.
	SizeBlendWeight float64
}

// DefaultConfig returns configuration with the stock membership functions and rules
func DefaultConfig() Config {
	return Config{
		Motion: LinguisticVariable{
			Name: "motion",
			Min:  0,
			Max:  DefaultMaxMotion,
			Terms: []Term{
				{Name: "small", Function: Trapezoid{A: 0, B: 0, C: 3, D: 8}},
				{Name: "medium", Function: Trapezoid{A: 5, B: 12, C: 18, D: 25}},
				{Name: "large", Function: Trapezoid{A: 20, B: 40, C: 100, D: 100}},
			},
		},
		Confidence: LinguisticVariable{
			Name: "confidence",
			Min:  0,
			Max:  1,
			Terms: []Term{
				{Name: "low", Function: Trapezoid{A: 0, B: 0, C: 0.3, D: 0.5}},
				{Name: "medium", Function: Trapezoid{A: 0.4, B: 0.5, C: 0.6, D: 0.7}},
				{Name: "high", Function: Trapezoid{A: 0.6, B: 0.75, C: 1.0, D: 1.0}},
			},
		},
		Alpha: LinguisticVariable{
			Name: "alpha",
			Min:  0,
			Max:  1,
			Terms: []Term{
				{Name: "very_small", Function: Triangle{A: 0, B: 0.05, C: 0.15}},
				{Name: "small", Function: Triangle{A: 0.1, B: 0.2, C: 0.3}},
				{Name: "medium", Function: Triangle{A: 0.25, B: 0.4, C: 0.55}},
				{Name: "large", Function: Triangle{A: 0.5, B: 0.7, C: 0.85}},
				{Name: "very_large", Function: Triangle{A: 0.8, B: 0.95, C: 1.0}},
			},
		},
		Rules:           DefaultRules(),
		Resolution:      DefaultResolution,
		FallbackAlpha:   DefaultFallbackAlpha,
		SizeBlendWeight: DefaultSizeBlendWeight,
	}
}

// Validate checks every variable, every rule reference and the blending constants
func (cfg Config) Validate() error {
	for _, v := range []LinguisticVariable{cfg.Motion, cfg.Confidence, cfg.Alpha} {
		if err := v.Validate(); err != nil {
			return errors.Wrap(err, "invalid config")
		}
	}
	if cfg.Motion.Min < 0 {
		return errors.Wrapf(ErrBadUniverse, "invalid config: motion magnitude can't be negative, got min %v", cfg.Motion.Min)
	}
	if !inUnit(cfg.Confidence.Min) || !inUnit(cfg.Confidence.Max) {
		return errors.Wrapf(ErrOutOfUnit, "invalid config: confidence universe [%v, %v]", cfg.Confidence.Min, cfg.Confidence.Max)
	}
	if !inUnit(cfg.Alpha.Min) || !inUnit(cfg.Alpha.Max) {
		return errors.Wrapf(ErrOutOfUnit, "invalid config: alpha universe [%v, %v]", cfg.Alpha.Min, cfg.Alpha.Max)
	}
	if _, err := compileRules(cfg.Rules, cfg.Motion, cfg.Confidence, cfg.Alpha); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if !(cfg.Resolution >= MinResolution && cfg.Resolution <= 1) {
		return errors.Wrapf(ErrBadResolution, "invalid config: got %v", cfg.Resolution)
	}
	if !inUnit(cfg.FallbackAlpha) {
		return errors.Wrapf(ErrOutOfUnit, "invalid config: fallback alpha %v", cfg.FallbackAlpha)
	}
	if !inUnit(cfg.SizeBlendWeight) {
		return errors.Wrapf(ErrOutOfUnit, "invalid config: size blend weight %v", cfg.SizeBlendWeight)
	}
	return nil
}

func (cfg Config) clone() Config {
	cfg.Motion = cfg.Motion.clone()
	cfg.Confidence = cfg.Confidence.clone()
	cfg.Alpha = cfg.Alpha.clone()
	rules := make([]Rule, len(cfg.Rules))
	copy(rules, cfg.Rules)
	cfg.Rules = rules
	return cfg
}

func inUnit(value float64) bool {
	return value >= 0 && value <= 1
}

// LoadConfig reads JSON config from disk. Fields missing in the file keep values of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "can't read config '%s'", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "can't parse config '%s'", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config '%s'", path)
	}
	return cfg, nil
}

type configJSON struct {
	Motion          *LinguisticVariable `json:"motion,omitempty"`
	Confidence      *LinguisticVariable `json:"confidence,omitempty"`
	Alpha           *LinguisticVariable `json:"alpha,omitempty"`
	Rules           []Rule              `json:"rules,omitempty"`
	Resolution      *float64            `json:"resolution,omitempty"`
	FallbackAlpha   *float64            `json:"fallback_alpha,omitempty"`
	SizeBlendWeight *float64            `json:"size_blend_weight,omitempty"`
}

// MarshalJSON encodes config with every field present
func (cfg Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		Motion:          &cfg.Motion,
		Confidence:      &cfg.Confidence,
		Alpha:           &cfg.Alpha,
		Rules:           cfg.Rules,
		Resolution:      &cfg.Resolution,
		FallbackAlpha:   &cfg.FallbackAlpha,
		SizeBlendWeight: &cfg.SizeBlendWeight,
	})
}

// UnmarshalJSON overrides only the fields present in b
func (cfg *Config) UnmarshalJSON(b []byte) error {
	var raw configJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Motion != nil {
		cfg.Motion = *raw.Motion
	}
	if raw.Confidence != nil {
		cfg.Confidence = *raw.Confidence
	}
	if raw.Alpha != nil {
		cfg.Alpha = *raw.Alpha
	}
	if raw.Rules != nil {
		cfg.Rules = raw.Rules
	}
	if raw.Resolution != nil {
		cfg.Resolution = *raw.Resolution
	}
	if raw.FallbackAlpha != nil {
		cfg.FallbackAlpha = *raw.FallbackAlpha
	}
	if raw.SizeBlendWeight != nil {
		cfg.SizeBlendWeight = *raw.SizeBlendWeight
	}
	return nil
}

type variableJSON struct {
	Name  string     `json:"name"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Terms []termJSON `json:"terms"`
}

type termJSON struct {
	Name   string    `json:"name"`
	Shape  string    `json:"shape"`
	Points []float64 `json:"points"`
}

// MarshalJSON encodes terms as {"name", "shape", "points"}
func (v LinguisticVariable) MarshalJSON() ([]byte, error) {
	raw := variableJSON{
		Name:  v.Name,
		Min:   v.Min,
		Max:   v.Max,
		Terms: make([]termJSON, len(v.Terms)),
	}
	for i, term := range v.Terms {
		if term.Function == nil {
			return nil, errors.Wrapf(ErrBadBreakpoints, "term '%s' has no membership function", term.Name)
		}
		raw.Terms[i] = termJSON{
			Name:   term.Name,
			Shape:  term.Function.Kind().String(),
			Points: term.Function.Breakpoints(),
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes variable and builds membership functions from "shape" and "points"
func (v *LinguisticVariable) UnmarshalJSON(b []byte) error {
	var raw variableJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	terms := make([]Term, len(raw.Terms))
	for i, t := range raw.Terms {
		fn, err := parseMembership(t.Shape, t.Points)
		if err != nil {
			return errors.Wrapf(err, "variable '%s', term '%s'", raw.Name, t.Name)
		}
		terms[i] = Term{Name: t.Name, Function: fn}
	}
	*v = LinguisticVariable{
		Name:  raw.Name,
		Min:   raw.Min,
		Max:   raw.Max,
		Terms: terms,
	}
	return nil
}

// ParseShape converts shape name into ShapeKind
func ParseShape(value string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trapezoid", "trap", "trapmf":
		return ShapeTrapezoid, nil
	case "triangle", "tri", "trimf":
		return ShapeTriangle, nil
	default:
		return ShapeTrapezoid, errors.Errorf("unknown membership shape '%s'", value)
	}
}

func parseMembership(shape string, points []float64) (MembershipFunction, error) {
	kind, err := ParseShape(shape)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ShapeTrapezoid:
		if len(points) != 4 {
			return nil, errors.Wrapf(ErrBadBreakpoints, "trapezoid needs 4 points, got %d", len(points))
		}
		return NewTrapezoid(points[0], points[1], points[2], points[3])
	default:
		if len(points) != 3 {
			return nil, errors.Wrapf(ErrBadBreakpoints, "triangle needs 3 points, got %d", len(points))
		}
		return NewTriangle(points[0], points[1], points[2])
	}
}
