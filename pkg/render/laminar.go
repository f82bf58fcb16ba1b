package render

import (
	"fmt"

	"github.com/srcweave/srcweave/pkg/types"
)

// NestingError reports two wrappers whose intervals partially overlap.
type NestingError struct {
	Outer types.Wrapper
	Inner types.Wrapper
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("wrappers [%d,%d] and [%d,%d] cross",
		e.Outer.Prefix.Offset, e.Outer.Postfix.Offset,
		e.Inner.Prefix.Offset, e.Inner.Postfix.Offset)
}

// CheckLaminar verifies that every two wrappers are either disjoint or nested.
// Identical intervals count as nested.
func CheckLaminar(wrappers []types.Wrapper) error {
	var open []types.Wrapper
	for _, w := range Sort(wrappers) {
		for len(open) > 0 && open[len(open)-1].Postfix.Offset < w.Prefix.Offset {
			open = open[:len(open)-1]
		}
		if len(open) > 0 {
			top := open[len(open)-1]
			if w.Postfix.Offset > top.Postfix.Offset {
				return &NestingError{Outer: top, Inner: w}
			}
		}
		open = append(open, w)
	}
	return nil
}
