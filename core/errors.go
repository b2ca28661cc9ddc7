package core

import "fmt"

// DegenerateInputError reports geometry input the kernel cannot work with:
// the zero vector, or an antipodal pair whose great-circle midpoint is
// undefined. Since the base icosahedron is a fixed table, seeing this error
// outside of direct kernel calls indicates a defect, not bad user input.
type DegenerateInputError struct {
	Op     string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate geometry input in %s: %s", e.Op, e.Reason)
}

// InvariantViolationError reports a post-construction count mismatch between
// the built topology and the closed-form vertex/triangle formulas. It is
// always fatal and signals a defect in midpoint deduplication.
type InvariantViolationError struct {
	What string
	Want int
	Got  int
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("mesh invariant violated: %s count is %d, want %d", e.What, e.Got, e.Want)
}

// InvalidResolutionError reports rejected build parameters: a negative
// refinement level, a bad inner/outer radius pair, or the single-layer
// degenerate case spanning a nonzero radial range. The caller can retry
// with corrected parameters; no construction work happens first.
type InvalidResolutionError struct {
	Reason string
}

func (e *InvalidResolutionError) Error() string {
	return "invalid mesh resolution: " + e.Reason
}
