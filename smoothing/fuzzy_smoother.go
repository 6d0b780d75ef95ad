package smoothing

import "math"

// FuzzySmoother smooths a stream of detections of a single object.
// Center is blended with a weight computed by the fuzzy InferenceEngine from motion and confidence,
// size is blended with a fixed weight.
//
// FuzzySmoother is not safe for concurrent use: every tracked object must own its own instance.
// It implements BBoxSmoother interface.
type FuzzySmoother struct {
	engine          *InferenceEngine
	sizeBlendWeight float64
	state           SmootherState
	frames          int
	last            Inference
}

// DebugInfo is a read-only snapshot of FuzzySmoother
type DebugInfo struct {
	State SmootherState
	// Number of Smooth calls since construction or last reset, the passthrough one included
	Frames int
	// Values of the latest blended frame. Zero when Frames < 2.
	LastMotion     float64
	LastConfidence float64
	LastAlpha      float64
	LastFallback   bool
}

// Initialized returns true when the smoother has a previous center and size
func (info DebugInfo) Initialized() bool {
	_, ok := info.State.(Tracking)
	return ok
}

// NewFuzzySmootherDefault creates smoother with DefaultConfig
func NewFuzzySmootherDefault() *FuzzySmoother {
	return NewFuzzySmootherWithEngine(NewInferenceEngineDefault())
}

// NewFuzzySmoother creates smoother with given configuration
func NewFuzzySmoother(cfg Config) (*FuzzySmoother, error) {
	engine, err := NewInferenceEngine(cfg)
	if err != nil {
		return nil, err
	}
	return NewFuzzySmootherWithEngine(engine), nil
}

// NewFuzzySmootherWithEngine creates smoother on top of existing engine.
// Engine is immutable, so a single one may back many smoothers.
func NewFuzzySmootherWithEngine(engine *InferenceEngine) *FuzzySmoother {
	return &FuzzySmoother{
		engine:          engine,
		sizeBlendWeight: engine.cfg.SizeBlendWeight,
		state:           Uninitialized{},
	}
}

// Engine returns underlying inference engine
func (smoother *FuzzySmoother) Engine() *InferenceEngine {
	return smoother.engine
}

// Smooth consumes the detection of the current frame and returns smoothed box with corners rounded to integer pixels.
// The first call after construction or Reset returns bbox unchanged.
// A box with non-finite corners (or corners so large that its center or size overflows) does not change the state: the previous smoothed box is returned instead
// (or bbox itself if there is nothing to return yet).
func (smoother *FuzzySmoother) Smooth(bbox BoundingBox, confidence float64) BoundingBox {
	switch state := smoother.state.(type) {
	case Tracking:
		if !bbox.isFinite() {
			return state.BoundingBox().Round()
		}
		return smoother.blend(state, bbox, confidence)
	default:
		if !bbox.isFinite() {
			return bbox
		}
		smoother.frames = 1
		smoother.last = Inference{}
		smoother.state = Tracking{
			Center: bbox.Center(),
			Size:   bbox.Size(),
		}
		return bbox
	}
}

func (smoother *FuzzySmoother) blend(prev Tracking, bbox BoundingBox, confidence float64) BoundingBox {
	center := bbox.Center()
	size := bbox.Size()

	motion := euclideanDistance(center, prev.Center)
	if math.IsNaN(confidence) {
		confidence = 0
	}
	inference := smoother.engine.InferDetailed(motion, confidence)
	alpha := inference.Alpha

	next := Tracking{
		Center: Point{
			X: prev.Center.X + alpha*(center.X-prev.Center.X),
			Y: prev.Center.Y + alpha*(center.Y-prev.Center.Y),
		},
		Size: Size{
			Width:  prev.Size.Width + smoother.sizeBlendWeight*(size.Width-prev.Size.Width),
			Height: prev.Size.Height + smoother.sizeBlendWeight*(size.Height-prev.Size.Height),
		},
	}
	answer := next.BoundingBox()
	if !answer.isFinite() {
		// Blending overflowed: hold previous state
		return prev.BoundingBox().Round()
	}
	smoother.frames++
	smoother.last = inference
	smoother.state = next
	return answer.Round()
}

// Reset forgets previous center and size. Next Smooth call behaves as the first detection.
func (smoother *FuzzySmoother) Reset() {
	smoother.state = Uninitialized{}
	smoother.frames = 0
	smoother.last = Inference{}
}

// State returns current state
func (smoother *FuzzySmoother) State() SmootherState {
	return smoother.state
}

// DebugInfo returns snapshot of current state and of the latest inference
func (smoother *FuzzySmoother) DebugInfo() DebugInfo {
	return DebugInfo{
		State:          smoother.state,
		Frames:         smoother.frames,
		LastMotion:     smoother.last.Motion,
		LastConfidence: smoother.last.Confidence,
		LastAlpha:      smoother.last.Alpha,
		LastFallback:   smoother.last.Fallback,
	}
}
