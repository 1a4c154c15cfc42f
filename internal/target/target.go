// Package target models the slice of the DSL's target-feature plumbing
// this analyzer cares about: the single feature flag that activates it
// (spec.md §6 "Activation"). The rest of a real target (architecture,
// OS, device API) is out of scope and not modeled.
package target

// Feature is a target feature flag.
type Feature string

// ApplyPolyhedralModel is the feature flag named in spec.md §6: when set,
// the driver runs the dependence analyzer and the auto-parallelization
// pass; otherwise the IR passes through unchanged (spec.md §8 scenario 6).
const ApplyPolyhedralModel Feature = "apply_polyhedral_model"

// Target is a minimal stand-in for the DSL's target-feature set.
type Target struct {
	features map[Feature]bool
	Verbose  int
}

// New returns a Target with no features set.
func New() *Target {
	return &Target{features: make(map[Feature]bool)}
}

// SetFeature enables f on the target.
func (t *Target) SetFeature(f Feature) {
	t.features[f] = true
}

// HasFeature reports whether f is enabled.
func (t *Target) HasFeature(f Feature) bool {
	return t.features[f]
}
