package segmenter

import "math"

// amin is the power floor used before taking logarithms.
const amin = 1e-10

// Params controls the energy split.
type Params struct {
	// TopDB is the threshold in decibels below the loudest frame under
	// which a frame counts as silence.
	TopDB       float64
	FrameLength int
	HopLength   int
}

// Split returns [start, end) sample bounds of the non-silent regions of y.
//
// Frames of FrameLength samples are taken every HopLength samples, centred
// on the hop position with zero padding at both ends. A frame is non-silent
// when its mean power is within TopDB of the loudest frame. Runs of
// non-silent frames become intervals, with frame boundaries mapped back to
// samples as frame*HopLength and clipped to len(y).
//
// A signal whose loudest frame is below the power floor has no intervals.
func Split(y []float32, p Params) [][2]int {
	nonSilent := nonSilentFrames(y, p)
	if len(nonSilent) == 0 {
		return nil
	}

	var edges []int
	if nonSilent[0] {
		edges = append(edges, 0)
	}
	for i := 1; i < len(nonSilent); i++ {
		if nonSilent[i] != nonSilent[i-1] {
			edges = append(edges, i)
		}
	}
	if nonSilent[len(nonSilent)-1] {
		edges = append(edges, len(nonSilent))
	}

	out := make([][2]int, 0, len(edges)/2)
	for i := 0; i+1 < len(edges); i += 2 {
		start := min(edges[i]*p.HopLength, len(y))
		end := min(edges[i+1]*p.HopLength, len(y))
		if start < end {
			out = append(out, [2]int{start, end})
		}
	}
	return out
}

func nonSilentFrames(y []float32, p Params) []bool {
	if len(y) == 0 || p.FrameLength <= 0 || p.HopLength <= 0 {
		return nil
	}

	pad := p.FrameLength / 2
	padded := len(y) + 2*pad
	if padded < p.FrameLength {
		return nil
	}
	nFrames := 1 + (padded-p.FrameLength)/p.HopLength

	// prefix[i] is the sum of squares of the first i padded samples.
	prefix := make([]float64, padded+1)
	for i := 0; i < padded; i++ {
		var v float64
		if j := i - pad; j >= 0 && j < len(y) {
			v = float64(y[j])
		}
		prefix[i+1] = prefix[i] + v*v
	}

	power := make([]float64, nFrames)
	peak := 0.0
	for f := 0; f < nFrames; f++ {
		lo := f * p.HopLength
		hi := lo + p.FrameLength
		power[f] = (prefix[hi] - prefix[lo]) / float64(p.FrameLength)
		if power[f] > peak {
			peak = power[f]
		}
	}

	if peak < amin {
		return nil
	}

	ref := 10 * math.Log10(peak)
	out := make([]bool, nFrames)
	for f, pw := range power {
		db := 10*math.Log10(math.Max(amin, pw)) - ref
		out[f] = db > -p.TopDB
	}
	return out
}
