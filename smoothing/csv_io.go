package smoothing

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SmoothedSample is a sample together with FuzzySmoother output for it
type SmoothedSample struct {
	Sample
	Smoothed BoundingBox
	// Alpha is one for passthrough frames (first detection after construction or reset) and zero for held frames
	Alpha    float64
	Fallback bool
	// Held is true when the detection was rejected (non-finite box) and the previous output was repeated
	Held bool
}

// ReplayFuzzy works like Replay but also reports alpha of every frame
func ReplayFuzzy(samples []Sample, smoother *FuzzySmoother, resetGap int) []SmoothedSample {
	smoother.Reset()
	out := make([]SmoothedSample, len(samples))
	for i, sample := range samples {
		if resetGap > 0 && i > 0 && sample.Frame-samples[i-1].Frame > resetGap {
			smoother.Reset()
		}
		before := smoother.DebugInfo().Frames
		smoothed := smoother.Smooth(sample.BBox, sample.Confidence)
		info := smoother.DebugInfo()
		out[i] = SmoothedSample{
			Sample:   sample,
			Smoothed: smoothed,
		}
		switch {
		case info.Frames == before:
			out[i].Held = true
		case info.Frames == 1:
			out[i].Alpha = 1.0
		default:
			out[i].Alpha = info.LastAlpha
			out[i].Fallback = info.LastFallback
		}
	}
	return out
}

var samplesHeader = []string{"frame", "x1", "y1", "x2", "y2", "confidence"}

var smoothedHeader = []string{"frame", "x1", "y1", "x2", "y2", "confidence", "sx1", "sy1", "sx2", "sy2", "alpha", "fallback", "held"}

// ReadSamples reads "frame;x1;y1;x2;y2;confidence" rows. Header row is optional.
func ReadSamples(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = len(samplesHeader)
	reader.TrimLeadingSpace = true

	samples := []Sample{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read samples at line %d", line)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), samplesHeader[0]) {
			continue
		}
		sample, err := parseSample(record)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse sample at line %d", line)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func parseSample(record []string) (Sample, error) {
	frame, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return Sample{}, errors.Wrap(err, "frame")
	}
	values := make([]float64, 5)
	for i := range values {
		values[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return Sample{}, errors.Wrap(err, samplesHeader[i+1])
		}
	}
	return Sample{
		Frame:      frame,
		BBox:       NewBoundingBox(values[0], values[1], values[2], values[3]),
		Confidence: values[4],
	}, nil
}

// WriteSmoothed writes smoothed samples with header row
func WriteSmoothed(w io.Writer, samples []SmoothedSample) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	err := writer.Write(smoothedHeader)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, s := range samples {
		record := []string{
			strconv.Itoa(s.Frame),
			formatFloat(s.BBox.X1), formatFloat(s.BBox.Y1), formatFloat(s.BBox.X2), formatFloat(s.BBox.Y2),
			formatFloat(s.Confidence),
			formatFloat(s.Smoothed.X1), formatFloat(s.Smoothed.Y1), formatFloat(s.Smoothed.X2), formatFloat(s.Smoothed.Y2),
			strconv.FormatFloat(s.Alpha, 'f', 4, 64),
			strconv.FormatBool(s.Fallback),
			strconv.FormatBool(s.Held),
		}
		err = writer.Write(record)
		if err != nil {
			return errors.Wrapf(err, "Can't write frame %d", s.Frame)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush smoothed samples")
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
