package core

import "fmt"

// RadiusDistribution maps a layer index i in [0, n-1] to a radius between
// the inner and outer shell boundaries. Distributions only choose radii;
// horizontal topology is untouched, so non-uniform radial spacing plugs in
// without touching the builder.
type RadiusDistribution func(i, n int, inner, outer float64) float64

// UniformRadii is the default distribution: linear spacing from the inner
// to the outer boundary.
func UniformRadii(i, n int, inner, outer float64) float64 {
	if n == 1 {
		return outer
	}
	return inner + float64(i)*(outer-inner)/float64(n-1)
}

// buildRadii evaluates the distribution for every layer and validates the
// result. Radii must increase strictly from inner to outer boundary; a
// distribution that folds back or leaves the shell is caller error.
func buildRadii(layers int, inner, outer float64, dist RadiusDistribution) ([]float64, error) {
	radii := make([]float64, layers)
	for i := range radii {
		radii[i] = dist(i, layers, inner, outer)
	}
	for i := 1; i < layers; i++ {
		if radii[i] <= radii[i-1] {
			return nil, &InvalidResolutionError{
				Reason: fmt.Sprintf("radius distribution not strictly increasing at layer %d (%g <= %g)",
					i, radii[i], radii[i-1]),
			}
		}
	}
	if radii[0] < inner || radii[layers-1] > outer {
		return nil, &InvalidResolutionError{
			Reason: fmt.Sprintf("radius distribution leaves shell bounds [%g, %g]", inner, outer),
		}
	}
	return radii, nil
}
