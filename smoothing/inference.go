package smoothing

import (
	"math"

	"github.com/pkg/errors"
)

// zeroMembershipSum is the threshold below which aggregated output set is treated as empty
const zeroMembershipSum = 1e-12

// InferenceEngine is Mamdani-style fuzzy controller with two inputs (motion, confidence) and one output (alpha).
// Fuzzification -> min conjunction -> max aggregation -> centroid defuzzification.
// It is immutable after construction and safe for concurrent use.
type InferenceEngine struct {
	cfg   Config
	rules []compiledRule
	// Sample points of alpha universe
	samples []float64
	// Membership of every alpha term at every sample point: [term][sample]
	curves [][]float64
}

// Inference is a detailed result of a single inference step
type Inference struct {
	// Crisp inputs after clamping
	Motion     float64
	Confidence float64
	// Membership degrees per term, in term order
	MotionDegrees     []float64
	ConfidenceDegrees []float64
	// Firing strength per rule, in rule order
	Firing []float64
	// Aggregated strength per alpha term
	Aggregated map[string]float64
	Alpha      float64
	// Fallback is true when no rule fired and FallbackAlpha was used
	Fallback bool
}

// NewInferenceEngineDefault creates engine with DefaultConfig
func NewInferenceEngineDefault() *InferenceEngine {
	engine, err := NewInferenceEngine(DefaultConfig())
	if err != nil {
		panic(errors.Wrap(err, "default config must be valid"))
	}
	return engine
}

// NewInferenceEngine validates config and precomputes output membership curves
func NewInferenceEngine(cfg Config) (*InferenceEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	rules, err := compileRules(cfg.Rules, cfg.Motion, cfg.Confidence, cfg.Alpha)
	if err != nil {
		return nil, errors.Wrap(err, "can't compile rules")
	}

	// Same as arange(min, max + step, step): endpoint is included when the range is a multiple of step
	n := int(math.Floor((cfg.Alpha.Max-cfg.Alpha.Min)/cfg.Resolution+1e-9)) + 1
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = cfg.Alpha.Min + float64(i)*cfg.Resolution
	}
	curves := make([][]float64, len(cfg.Alpha.Terms))
	for k, term := range cfg.Alpha.Terms {
		curves[k] = make([]float64, n)
		for i, x := range samples {
			curves[k][i] = clip(term.Function.Evaluate(x), 0, 1)
		}
	}

	return &InferenceEngine{
		cfg:     cfg,
		rules:   rules,
		samples: samples,
		curves:  curves,
	}, nil
}

// Config returns copy of engine configuration
func (engine *InferenceEngine) Config() Config {
	return engine.cfg.clone()
}

// Samples returns number of sample points used for defuzzification
func (engine *InferenceEngine) Samples() int {
	return len(engine.samples)
}

// Infer computes blend factor for given motion magnitude (pixels) and detector confidence.
// Inputs are clamped to their universes. Result is always within alpha universe.
func (engine *InferenceEngine) Infer(motion, confidence float64) float64 {
	return engine.InferDetailed(motion, confidence).Alpha
}

// InferDetailed is the same as Infer but exposes every intermediate step
func (engine *InferenceEngine) InferDetailed(motion, confidence float64) Inference {
	cfg := &engine.cfg
	result := Inference{
		Motion:            cfg.Motion.Clamp(motion),
		Confidence:        cfg.Confidence.Clamp(confidence),
		MotionDegrees:     make([]float64, len(cfg.Motion.Terms)),
		ConfidenceDegrees: make([]float64, len(cfg.Confidence.Terms)),
		Firing:            make([]float64, len(engine.rules)),
		Aggregated:        make(map[string]float64, len(cfg.Alpha.Terms)),
	}

	// Fuzzification
	cfg.Motion.fuzzifyInto(result.Motion, result.MotionDegrees)
	cfg.Confidence.fuzzifyInto(result.Confidence, result.ConfidenceDegrees)

	// Rule firing (min) and aggregation (max) per output term
	aggregated := make([]float64, len(cfg.Alpha.Terms))
	for i, rule := range engine.rules {
		strength := minFloat64(result.MotionDegrees[rule.motion], result.ConfidenceDegrees[rule.confidence])
		result.Firing[i] = strength
		aggregated[rule.alpha] = maxFloat64(aggregated[rule.alpha], strength)
	}
	for k, term := range cfg.Alpha.Terms {
		result.Aggregated[term.Name] = aggregated[k]
	}

	// Centroid of pointwise max over clipped output terms
	num, den := 0.0, 0.0
	for i, x := range engine.samples {
		mu := 0.0
		for k := range engine.curves {
			mu = maxFloat64(mu, minFloat64(engine.curves[k][i], aggregated[k]))
		}
		num += x * mu
		den += mu
	}
	if den <= zeroMembershipSum {
		result.Alpha = cfg.FallbackAlpha
		result.Fallback = true
		return result
	}
	result.Alpha = clip(num/den, cfg.Alpha.Min, cfg.Alpha.Max)
	return result
}
