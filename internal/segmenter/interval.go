package segmenter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// places is the number of decimal places kept for second offsets.
const places = 2

// Interval is a non-silent span in seconds. Offsets are truncated to two
// decimal places so the JSON payload and the saved text file carry the
// same values.
type Interval struct {
	Start decimal.Decimal
	End   decimal.Decimal
}

// NewInterval converts sample bounds to seconds at sampleRate.
func NewInterval(startSample, endSample, sampleRate int) Interval {
	return Interval{
		Start: samplesToSeconds(startSample, sampleRate),
		End:   samplesToSeconds(endSample, sampleRate),
	}
}

func samplesToSeconds(n, sampleRate int) decimal.Decimal {
	return decimal.NewFromInt(int64(n)).
		Div(decimal.NewFromInt(int64(sampleRate))).
		Truncate(places)
}

// String formats the interval as a timestamps file line, "start - end".
func (iv Interval) String() string {
	return fmt.Sprintf("%s - %s", iv.Start.StringFixed(places), iv.End.StringFixed(places))
}

// MarshalJSON encodes the interval as a numeric pair, [start, end].
func (iv Interval) MarshalJSON() ([]byte, error) {
	return []byte("[" + iv.Start.StringFixed(places) + "," + iv.End.StringFixed(places) + "]"), nil
}

// FormatLines renders intervals one per line, each newline-terminated.
func FormatLines(intervals []Interval) []byte {
	var b []byte
	for _, iv := range intervals {
		b = append(b, iv.String()...)
		b = append(b, '\n')
	}
	return b
}
