package smoothing

import "sort"

// Sample is a single detection of a single object
type Sample struct {
	Frame      int
	BBox       BoundingBox
	Confidence float64
}

// JitterStats describes how stable and how laggy a smoothed trajectory is
type JitterStats struct {
	Frames int
	// Mean and max frame-to-frame displacement of the output center, pixels
	MeanStep float64
	MaxStep  float64
	// Mean IoU between raw detection and output box. Lower values mean more lag.
	MeanIoU float64
}

// Replay resets smoother and feeds samples into it in order.
// If resetGap > 0 the smoother is reset whenever frame number jumps by more than resetGap (object was lost).
func Replay(samples []Sample, smoother BBoxSmoother, resetGap int) []BoundingBox {
	smoother.Reset()
	out := make([]BoundingBox, len(samples))
	for i, sample := range samples {
		if resetGap > 0 && i > 0 && sample.Frame-samples[i-1].Frame > resetGap {
			smoother.Reset()
		}
		out[i] = smoother.Smooth(sample.BBox, sample.Confidence)
	}
	return out
}

// Jitter computes JitterStats for raw samples and corresponding outputs
func Jitter(samples []Sample, out []BoundingBox) JitterStats {
	stats := JitterStats{Frames: len(out)}
	if len(out) == 0 {
		return stats
	}
	iouSum := 0.0
	for i := range out {
		if i < len(samples) {
			iouSum += IoU(samples[i].BBox.Rect(), out[i].Rect())
		}
		if i == 0 {
			continue
		}
		step := euclideanDistance(out[i].Center(), out[i-1].Center())
		stats.MeanStep += step
		stats.MaxStep = maxFloat64(stats.MaxStep, step)
	}
	if len(out) > 1 {
		stats.MeanStep /= float64(len(out) - 1)
	}
	stats.MeanIoU = iouSum / float64(len(out))
	return stats
}

// CompareSmoothers replays the same samples through every smoother and returns statistics keyed by smoother name
func CompareSmoothers(samples []Sample, smoothers map[string]BBoxSmoother, resetGap int) map[string]JitterStats {
	names := make([]string, 0, len(smoothers))
	for name := range smoothers {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make(map[string]JitterStats, len(smoothers))
	for _, name := range names {
		out := Replay(samples, smoothers[name], resetGap)
		result[name] = Jitter(samples, out)
	}
	return result
}
