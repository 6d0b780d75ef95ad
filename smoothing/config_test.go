package smoothing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Error(err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(cfg *Config)
		target error
	}{
		{
			name:   "unknown alpha term",
			modify: func(cfg *Config) { cfg.Rules[0].Alpha = "tiny" },
			target: ErrUnknownTerm,
		},
		{
			name:   "unknown confidence term",
			modify: func(cfg *Config) { cfg.Rules[4].Confidence = "average" },
			target: ErrUnknownTerm,
		},
		{
			name:   "empty rules",
			modify: func(cfg *Config) { cfg.Rules = nil },
			target: ErrNoRules,
		},
		{
			name: "duplicate term",
			modify: func(cfg *Config) {
				cfg.Motion.Terms = append(cfg.Motion.Terms, Term{Name: "small", Function: Trapezoid{A: 0, B: 1, C: 2, D: 3}})
			},
			target: ErrDuplicateTerm,
		},
		{
			name:   "unordered breakpoints",
			modify: func(cfg *Config) { cfg.Alpha.Terms[0].Function = Triangle{A: 0.1, B: 0.05, C: 0.15} },
			target: ErrBadBreakpoints,
		},
		{
			name:   "no terms",
			modify: func(cfg *Config) { cfg.Confidence.Terms = nil },
			target: ErrNoTerms,
		},
		{
			name:   "zero resolution",
			modify: func(cfg *Config) { cfg.Resolution = 0 },
			target: ErrBadResolution,
		},
		{
			name:   "tiny resolution",
			modify: func(cfg *Config) { cfg.Resolution = 1e-20 },
			target: ErrBadResolution,
		},
		{
			name:   "resolution below minimum",
			modify: func(cfg *Config) { cfg.Resolution = 1e-9 },
			target: ErrBadResolution,
		},
		{
			name:   "fallback out of unit",
			modify: func(cfg *Config) { cfg.FallbackAlpha = 1.5 },
			target: ErrOutOfUnit,
		},
		{
			name:   "size weight out of unit",
			modify: func(cfg *Config) { cfg.SizeBlendWeight = -0.1 },
			target: ErrOutOfUnit,
		},
		{
			name:   "alpha universe out of unit",
			modify: func(cfg *Config) { cfg.Alpha.Max = 2 },
			target: ErrOutOfUnit,
		},
		{
			name:   "inverted universe",
			modify: func(cfg *Config) { cfg.Motion.Min, cfg.Motion.Max = 100, 0 },
			target: ErrBadUniverse,
		},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		c.modify(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, c.target) {
			t.Errorf("%s: expected %v, got %v", c.name, c.target, err)
		}
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoother.json")
	data := []byte(`{
		"fallback_alpha": 0.2,
		"motion": {
			"name": "motion", "min": 0, "max": 50,
			"terms": [
				{"name": "small", "shape": "trapezoid", "points": [0, 0, 2, 4]},
				{"name": "medium", "shape": "trapmf", "points": [3, 6, 9, 12]},
				{"name": "large", "shape": "trapezoid", "points": [10, 20, 50, 50]}
			]
		}
	}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Error(err)
		return
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Error(err)
		return
	}
	if cfg.FallbackAlpha != 0.2 {
		t.Errorf("Wrong fallback alpha: %v, expected: %v", cfg.FallbackAlpha, 0.2)
	}
	if cfg.Motion.Max != 50 || len(cfg.Motion.Terms) != 3 {
		t.Errorf("Wrong motion variable: %+v", cfg.Motion)
	}
	if cfg.Motion.Terms[2].Function != (Trapezoid{A: 10, B: 20, C: 50, D: 50}) {
		t.Errorf("Wrong 'large' motion: %v", cfg.Motion.Terms[2].Function)
	}
	// Untouched fields keep defaults
	if cfg.SizeBlendWeight != DefaultSizeBlendWeight || cfg.Resolution != DefaultResolution || len(cfg.Rules) != 9 {
		t.Errorf("Fields missing in file should keep defaults: %+v", cfg)
	}
	if cfg.Alpha.Terms[4].Function != (Triangle{A: 0.8, B: 0.95, C: 1.0}) {
		t.Errorf("Wrong 'very_large' alpha: %v", cfg.Alpha.Terms[4].Function)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tinyResolution := filepath.Join(dir, "tiny_resolution.json")
	if err := os.WriteFile(tinyResolution, []byte(`{"resolution": 1e-20}`), 0o644); err != nil {
		t.Error(err)
		return
	}
	if _, err := LoadConfig(tinyResolution); !errors.Is(err, ErrBadResolution) {
		t.Errorf("Expected ErrBadResolution, got %v", err)
	}
	cfg := DefaultConfig()
	cfg.Resolution = 1e-20
	if _, err := NewInferenceEngine(cfg); !errors.Is(err, ErrBadResolution) {
		t.Errorf("Expected ErrBadResolution from engine constructor, got %v", err)
	}
	cfg.Resolution = MinResolution
	engine, err := NewInferenceEngine(cfg)
	if err != nil {
		t.Error(err)
		return
	}
	if engine.Samples() != 10001 {
		t.Errorf("Wrong number of samples: %d, expected: %d", engine.Samples(), 10001)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Missing file should be an error")
	}

	badShape := filepath.Join(dir, "bad_shape.json")
	err = os.WriteFile(badShape, []byte(`{"alpha": {"name": "alpha", "min": 0, "max": 1, "terms": [{"name": "x", "shape": "gauss", "points": [0.5, 0.1]}]}}`), 0o644)
	if err != nil {
		t.Error(err)
		return
	}
	if _, err := LoadConfig(badShape); err == nil {
		t.Error("Unknown shape should be an error")
	}

	badRules := filepath.Join(dir, "bad_rules.json")
	err = os.WriteFile(badRules, []byte(`{"rules": [{"motion": "small", "confidence": "high", "alpha": "huge"}]}`), 0o644)
	if err != nil {
		t.Error(err)
		return
	}
	if _, err := LoadConfig(badRules); !errors.Is(err, ErrUnknownTerm) {
		t.Errorf("Expected ErrUnknownTerm, got %v", err)
	}
}

func TestConfigJSONBehaviour(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Error(err)
		return
	}
	path := filepath.Join(t.TempDir(), "default.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Error(err)
		return
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Error(err)
		return
	}
	loaded, err := NewInferenceEngine(cfg)
	if err != nil {
		t.Error(err)
		return
	}
	builtin := NewInferenceEngineDefault()
	for _, input := range [][2]float64{{0, 0.9}, {10, 0.9}, {22, 0.55}, {90, 0.3}} {
		if loaded.Infer(input[0], input[1]) != builtin.Infer(input[0], input[1]) {
			t.Errorf("Loaded config behaves differently for %v", input)
		}
	}
}
