// Package repobuild is the external repository builder: it accepts
// user-typed package names and version tags plus arbitrary version sets
// and produces the internal id/range model (model.Repository) that the
// rest of the module resolves over. It never guesses at install
// semantics itself — a caller (a package manager's metadata client, a
// YAML fixture loader, a test) supplies the version tags, their
// ordering, and each requirement's acceptable-version predicate.
package repobuild

import "depsolve/internal/model"

// SetOf is an arbitrary predicate over version tags: "is v an acceptable
// version for this requirement". Requirements are expressed against this
// interface instead of a concrete range type so callers can plug in
// whatever their upstream metadata already gives them (a PEP 440
// specifier set, a Debian version relation, a plain version list).
type SetOf[V any] interface {
	Contains(v V) bool
}

// Union is the set of versions contained in at least one member set.
type Union[V any] []SetOf[V]

func (u Union[V]) Contains(v V) bool {
	for _, s := range u {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// Intersection is the set of versions contained in every member set.
type Intersection[V any] []SetOf[V]

func (i Intersection[V]) Contains(v V) bool {
	for _, s := range i {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Predicate adapts a plain function into a SetOf.
type Predicate[V any] func(v V) bool

func (p Predicate[V]) Contains(v V) bool { return p(v) }

// Exact is the singleton set containing only one version tag.
type Exact[V comparable] struct{ Version V }

func (e Exact[V]) Contains(v V) bool { return v == e.Version }

// ToRanges converts s into the canonical, id-space Range list implied by
// sortedVersions: the package's version tags in ascending order, already
// deduplicated, as assigned to PackageVers 1..N by RepositoryBuilder.build.
// It walks the list once, emitting a Range for every maximal contiguous
// run of members — a Point range for a run of length 1, an Interval
// range otherwise.
func ToRanges[V any](s SetOf[V], sortedVersions []V) []model.Range {
	var ranges []model.Range
	containing := false
	var low model.Version

	for i, v := range sortedVersions {
		idx := model.Version(i + 1)
		if containing {
			if !s.Contains(v) {
				containing = false
				high := idx - 1
				ranges = append(ranges, rangeFor(low, high))
			}
		} else {
			if s.Contains(v) {
				containing = true
				low = idx
			}
		}
	}
	if containing {
		high := model.Version(len(sortedVersions))
		ranges = append(ranges, rangeFor(low, high))
	}
	return ranges
}

func rangeFor(low, high model.Version) model.Range {
	if low == high {
		return model.Pt(low)
	}
	return model.IntervalUnchecked(low, high)
}
