package smoothing

import (
	"math"
	"testing"
)

// jitterySamples emulates stationary object with detector noise of +-3 pixels
func jitterySamples(n int) []Sample {
	offsets := []float64{3, -3, 2, -2, 3, -1, -3, 1}
	samples := make([]Sample, n)
	for i := range samples {
		dx := offsets[i%len(offsets)]
		dy := offsets[(i+3)%len(offsets)]
		samples[i] = Sample{
			Frame:      i,
			BBox:       NewBoundingBox(100+dx, 100+dy, 200+dx, 200+dy),
			Confidence: 0.9,
		}
	}
	return samples
}

func TestPassthroughSmoother(t *testing.T) {
	smoother := PassthroughSmoother{}
	bbox := NewBoundingBox(1.5, 2.5, 3.5, 4.5)
	if smoother.Smooth(bbox, 0.1) != bbox {
		t.Errorf("Passthrough should return bbox unchanged")
	}
}

func TestKalmanSmoother(t *testing.T) {
	smoother := NewKalmanSmootherDefault()
	first := NewBoundingBox(100, 100, 200, 200)
	if answer := smoother.Smooth(first, 0.9); answer != first {
		t.Errorf("First detection should pass through: %v, expected: %v", answer, first)
	}
	for i := 0; i < 10; i++ {
		answer := smoother.Smooth(first, 0.9)
		if smoother.Err() != nil {
			t.Error(smoother.Err())
			return
		}
		if math.Abs(answer.X1-first.X1) > 1 || math.Abs(answer.Y1-first.Y1) > 1 || math.Abs(answer.X2-first.X2) > 1 || math.Abs(answer.Y2-first.Y2) > 1 {
			t.Errorf("Iteration #%d: stationary object should stay in place: %v, expected: %v", i, answer, first)
			return
		}
	}
	smoother.Reset()
	other := NewBoundingBox(0, 0, 10, 10)
	if answer := smoother.Smooth(other, 0.5); answer != other {
		t.Errorf("First detection after reset should pass through: %v, expected: %v", answer, other)
	}
}

func TestReplayResetGap(t *testing.T) {
	samples := []Sample{
		{Frame: 0, BBox: NewBoundingBox(100, 100, 200, 200), Confidence: 0.9},
		{Frame: 1, BBox: NewBoundingBox(110, 100, 210, 200), Confidence: 0.9},
		// Object was lost for a while and found elsewhere
		{Frame: 30, BBox: NewBoundingBox(400, 300, 450, 350), Confidence: 0.9},
	}
	out := Replay(samples, NewFuzzySmootherDefault(), 5)
	if out[2] != samples[2].BBox {
		t.Errorf("Detection after a gap should pass through: %v, expected: %v", out[2], samples[2].BBox)
	}
	out = Replay(samples, NewFuzzySmootherDefault(), 0)
	if out[2] == samples[2].BBox {
		t.Errorf("Without reset gap detection should be smoothed: %v", out[2])
	}
}

func TestCompareSmoothers(t *testing.T) {
	samples := jitterySamples(200)
	stats := CompareSmoothers(samples, map[string]BBoxSmoother{
		"raw":    PassthroughSmoother{},
		"fuzzy":  NewFuzzySmootherDefault(),
		"kalman": NewKalmanSmootherDefault(),
	}, 0)
	if len(stats) != 3 {
		t.Errorf("Wrong number of stats: %d, expected: %d", len(stats), 3)
		return
	}
	raw := stats["raw"]
	fuzzy := stats["fuzzy"]
	if raw.Frames != 200 || fuzzy.Frames != 200 {
		t.Errorf("Wrong number of frames: raw %d, fuzzy %d", raw.Frames, fuzzy.Frames)
	}
	if math.Abs(raw.MeanIoU-1.0) > eps {
		t.Errorf("Raw output should perfectly overlap raw input, got IoU %v", raw.MeanIoU)
	}
	if fuzzy.MeanStep >= raw.MeanStep {
		t.Errorf("Fuzzy smoothing should reduce jitter: %v >= %v", fuzzy.MeanStep, raw.MeanStep)
	}
	if fuzzy.MaxStep >= raw.MaxStep {
		t.Errorf("Fuzzy smoothing should reduce max step: %v >= %v", fuzzy.MaxStep, raw.MaxStep)
	}
	if fuzzy.MeanIoU < 0.8 {
		t.Errorf("Fuzzy output should stay close to detections, got IoU %v", fuzzy.MeanIoU)
	}
}

func TestJitterEmpty(t *testing.T) {
	stats := Jitter(nil, nil)
	if stats != (JitterStats{}) {
		t.Errorf("Wrong stats for empty input: %+v", stats)
	}
}
