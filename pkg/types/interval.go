package types

import "fmt"

// Interval is an inclusive byte range [Start, End] within one named file.
// Two intervals are equal when filename, start and end all match, so Interval
// can be used directly as a map key.
type Interval struct {
	Filename string `json:"filename"`
	Start    int    `json:"start"` // inclusive
	End      int    `json:"end"`   // inclusive
}

// NewInterval builds an interval from a start offset and a length in bytes.
// It returns false for an empty length since inclusive intervals cannot be empty.
func NewInterval(filename string, start, length int) (Interval, bool) {
	if length <= 0 || start < 0 {
		return Interval{}, false
	}
	return Interval{Filename: filename, Start: start, End: start + length - 1}, true
}

// Len returns the number of bytes covered.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Valid reports whether Start <= End and both are non-negative.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.Start <= iv.End
}

// Contains reports whether other lies entirely inside iv (equal intervals contain each other).
func (iv Interval) Contains(other Interval) bool {
	return iv.Filename == other.Filename && iv.Start <= other.Start && other.End <= iv.End
}

// Overlaps reports whether the two intervals share at least one byte.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Filename == other.Filename && iv.Start <= other.End && other.Start <= iv.End
}

// Less orders intervals by filename, then start, then end.
func (iv Interval) Less(other Interval) bool {
	if iv.Filename != other.Filename {
		return iv.Filename < other.Filename
	}
	if iv.Start != other.Start {
		return iv.Start < other.Start
	}
	return iv.End < other.End
}

// String returns "file:[start,end]".
func (iv Interval) String() string {
	return fmt.Sprintf("%s:[%d,%d]", iv.Filename, iv.Start, iv.End)
}
