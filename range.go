package depsolve

import "depsolve/internal/model"

// Range is a subset of a package's version numbers: a closed interval, a
// single point, or "every installed version".
type Range = model.Range

// Requirement ties a package to the union of version ranges acceptable
// for it; as a dependency it means the chosen version must lie in the
// union, as a conflict it is negated.
type Requirement = model.Requirement

// RequirementSet splits a package version's (or a top-level request's)
// constraints into dependencies and conflicts.
type RequirementSet = model.RequirementSet

// Interval builds a canonical Range from a lower/upper bound, reporting
// false if lower > upper.
func Interval(lower, upper Version) (Range, bool) {
	return model.Interval(lower, upper)
}

// IntervalUnchecked builds an Interval/Point without checking lower <=
// upper, for callers that have already established the invariant.
func IntervalUnchecked(lower, upper Version) Range {
	return model.IntervalUnchecked(lower, upper)
}

// Pt builds a Range containing exactly one version.
func Pt(v Version) Range {
	return model.Pt(v)
}

// All returns the Range matching every installed version.
func All() Range {
	return model.All()
}

// NewRequirement constructs a Requirement, panicking if versions is
// empty.
func NewRequirement(pkg PackageID, versions []Range) Requirement {
	return model.NewRequirement(pkg, versions)
}
