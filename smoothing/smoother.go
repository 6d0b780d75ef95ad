package smoothing

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// BBoxSmoother is the interface for per-object bounding box smoothers.
// Smooth is called once per frame with the raw detection, Reset starts over as if no detection was seen.
type BBoxSmoother interface {
	Smooth(bbox BoundingBox, confidence float64) BoundingBox
	Reset()
}

var (
	_ BBoxSmoother = (*FuzzySmoother)(nil)
	_ BBoxSmoother = (*KalmanSmoother)(nil)
	_ BBoxSmoother = PassthroughSmoother{}
)

// PassthroughSmoother returns detections unchanged. Useful as the "raw" side of a comparison.
type PassthroughSmoother struct{}

// Smooth returns bbox
func (PassthroughSmoother) Smooth(bbox BoundingBox, _ float64) BoundingBox {
	return bbox
}

// Reset does nothing
func (PassthroughSmoother) Reset() {}

// KalmanParams are parameters of constant-velocity 8-D bounding box Kalman filter.
// State vector: [cx, cy, w, h, vx, vy, vw, vh].
type KalmanParams struct {
	// Time step between frames
	Dt float64
	// Control inputs (acceleration) for center and size
	UCx, UCy, UW, UH float64
	// Process noise
	StdDevA float64
	// Measurement noise for center and size
	StdDevMCx, StdDevMCy, StdDevMW, StdDevMH float64
}

// DefaultKalmanParams returns parameters tuned for 25-30 fps detector output
func DefaultKalmanParams() KalmanParams {
	return KalmanParams{
		Dt:        1.0,
		UCx:       0.0,
		UCy:       0.0,
		UW:        0.0,
		UH:        0.0,
		StdDevA:   0.5,
		StdDevMCx: 2.0,
		StdDevMCy: 2.0,
		StdDevMW:  2.0,
		StdDevMH:  2.0,
	}
}

// KalmanSmoother smooths bounding box with Kalman filter. Confidence is ignored.
// It is the baseline for comparing FuzzySmoother with.
type KalmanSmoother struct {
	params  KalmanParams
	tracker *kalman_filter.KalmanBBox
	lastErr error
}

// NewKalmanSmootherDefault creates Kalman smoother with DefaultKalmanParams
func NewKalmanSmootherDefault() *KalmanSmoother {
	return NewKalmanSmoother(DefaultKalmanParams())
}

// NewKalmanSmoother creates Kalman smoother with given parameters
func NewKalmanSmoother(params KalmanParams) *KalmanSmoother {
	return &KalmanSmoother{
		params: params,
	}
}

func (smoother *KalmanSmoother) init(bbox BoundingBox) {
	center := bbox.Center()
	size := bbox.Size()
	p := smoother.params
	smoother.tracker = kalman_filter.NewKalmanBBox(
		p.Dt, p.UCx, p.UCy, p.UW, p.UH,
		p.StdDevA, p.StdDevMCx, p.StdDevMCy, p.StdDevMW, p.StdDevMH,
		kalman_filter.WithStateBBox(center.X, center.Y, size.Width, size.Height),
	)
}

// Smooth executes predict and update steps and returns filtered box rounded to integer pixels.
// The first call after construction or Reset returns bbox unchanged.
// If update step fails the filter is re-initialized at bbox, error is available via Err.
func (smoother *KalmanSmoother) Smooth(bbox BoundingBox, _ float64) BoundingBox {
	if smoother.tracker == nil {
		if bbox.isFinite() {
			smoother.init(bbox)
		}
		return bbox
	}
	if !bbox.isFinite() {
		return smoother.current().Round()
	}
	smoother.tracker.Predict()
	center := bbox.Center()
	size := bbox.Size()
	err := smoother.tracker.Update(center.X, center.Y, size.Width, size.Height)
	if err != nil {
		smoother.lastErr = errors.Wrap(err, "Can't update bbox tracker")
		smoother.init(bbox)
		return bbox.Round()
	}
	smoother.lastErr = nil
	return smoother.current().Round()
}

func (smoother *KalmanSmoother) current() BoundingBox {
	cx, cy, w, h := smoother.tracker.GetState()
	return NewBoundingBoxFromCenter(Point{X: cx, Y: cy}, Size{Width: w, Height: h})
}

// Err returns error of the latest update step if any
func (smoother *KalmanSmoother) Err() error {
	return smoother.lastErr
}

// Reset drops the filter. Next Smooth call behaves as the first detection.
func (smoother *KalmanSmoother) Reset() {
	smoother.tracker = nil
	smoother.lastErr = nil
}
