// Package closure computes the transitive closure of packages reachable
// from a set of top-level requirements, following both dependencies and
// conflicts (a conflict still names a package whose versions must be
// encoded, even though the constraint itself is negated).
package closure

import (
	"fmt"

	"depsolve/internal/model"
)

// IllegalIndexError reports a requirement naming a package id outside the
// repository's bounds.
type IllegalIndexError struct {
	Index model.PackageID
}

func (e *IllegalIndexError) Error() string {
	return fmt.Sprintf("depsolve: requirement references unknown package id %d", e.Index)
}

// Set is the dense membership bitset a closure computation builds. It is
// sized to len(repo.Packages); a map-based set has no advantage here since
// package ids are already dense small integers.
type Set struct {
	present []bool
	order   []model.PackageID
}

// Contains reports whether pid is part of the closure.
func (s *Set) Contains(pid model.PackageID) bool {
	return int(pid) < len(s.present) && s.present[pid]
}

// Ordered returns the closure's members in first-insertion order: root
// first, each package ahead of the dependencies it reaches (not a
// topological sort — cycles are allowed and broken only by the insert-once
// guard below).
func (s *Set) Ordered() []model.PackageID {
	return s.order
}

func (s *Set) insert(pid model.PackageID) bool {
	if int(pid) >= len(s.present) {
		grown := make([]bool, pid+1)
		copy(grown, s.present)
		s.present = grown
	}
	if s.present[pid] {
		return false
	}
	s.present[pid] = true
	s.order = append(s.order, pid)
	return true
}

// Find computes the closure reachable from reqs over repo. It never
// recurses on tree structure (the dependency graph may be cyclic); instead
// it recurses on "have we already visited this package id", the same
// insert-then-recurse guard the ported algorithm uses.
func Find(repo *model.Repository, reqs []model.Requirement) (*Set, error) {
	s := &Set{present: make([]bool, len(repo.Packages))}
	if err := findHelper(repo, reqs, s); err != nil {
		return nil, err
	}
	return s, nil
}

func findHelper(repo *model.Repository, reqs []model.Requirement, acc *Set) error {
	for _, req := range reqs {
		if !acc.insert(req.Package) {
			continue
		}
		pkg, ok := repo.GetPackage(req.Package)
		if !ok {
			return &IllegalIndexError{Index: req.Package}
		}
		for _, ver := range pkg.Versions {
			all := make([]model.Requirement, 0, len(ver.Requirements.Dependencies)+len(ver.Requirements.Conflicts))
			all = append(all, ver.Requirements.Dependencies...)
			all = append(all, ver.Requirements.Conflicts...)
			if err := findHelper(repo, all, acc); err != nil {
				return err
			}
		}
	}
	return nil
}
