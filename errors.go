package lof

import "fmt"

// InvalidInputError reports a malformed parameter or dataset. It is returned
// before any computation begins, so a caller receiving it can fix the
// configuration and retry. Use errors.As to detect it.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "lof: invalid input: " + e.Reason
}

// invalidInputf builds an *InvalidInputError with a formatted reason.
func invalidInputf(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// DegenerateDensityError reports a numerical degeneracy discovered during
// local reachability density computation: the mean reachability distance of
// a point's neighborhood is exactly zero, which happens when at least k+1
// points coincide. Point is the lowest input index affected.
//
// The error is suppressed when Config.DuplicatePolicy is DuplicatesCap, in
// which case the affected densities are capped at a large finite value
// instead.
type DegenerateDensityError struct {
	Point int
}

func (e *DegenerateDensityError) Error() string {
	return fmt.Sprintf("lof: degenerate density at point %d: zero mean reachability distance (duplicate points?)", e.Point)
}
