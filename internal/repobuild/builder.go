package repobuild

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolve/internal/model"
)

// ERequirement is a not-yet-translated requirement: a package name plus a
// SetOf describing which of that package's versions are acceptable.
type ERequirement[K comparable, V any] struct {
	Package  K
	Versions SetOf[V]
}

// EVersion is one not-yet-translated version of a package: its tag plus
// the dependencies/conflicts that apply when it's selected.
type EVersion[K comparable, V any] struct {
	Version      V
	Dependencies []ERequirement[K, V]
	Conflicts    []ERequirement[K, V]
}

// AddDependency appends a dependency requirement to this version.
func (v *EVersion[K, V]) AddDependency(r ERequirement[K, V]) {
	v.Dependencies = append(v.Dependencies, r)
}

// AddConflict appends a conflict requirement to this version.
func (v *EVersion[K, V]) AddConflict(r ERequirement[K, V]) {
	v.Conflicts = append(v.Conflicts, r)
}

// EPackageBuilder accumulates a package's versions before Less sorts and
// dedupes them at Build time.
type EPackageBuilder[K comparable, V any] struct {
	Name     K
	versions []EVersion[K, V]
}

// NewEPackageBuilder returns an empty builder for a package named name.
func NewEPackageBuilder[K comparable, V any](name K) *EPackageBuilder[K, V] {
	return &EPackageBuilder[K, V]{Name: name}
}

// AddVersion appends a version to the package under construction.
func (b *EPackageBuilder[K, V]) AddVersion(v EVersion[K, V]) {
	b.versions = append(b.versions, v)
}

type ePackage[K comparable, V any] struct {
	name     K
	versions []EVersion[K, V] // sorted ascending by the builder's Less, deduplicated by Equal
}

// build sorts the accumulated versions by less and drops any version tag
// that compares equal to one already kept, the way the original's
// IndexMap-backed builder silently ignores a duplicate insert.
func (b *EPackageBuilder[K, V]) build(less func(a, b V) bool, equal func(a, b V) bool) ePackage[K, V] {
	sorted := append([]EVersion[K, V]{}, b.versions...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i].Version, sorted[j].Version) })

	out := make([]EVersion[K, V], 0, len(sorted))
	for _, v := range sorted {
		if len(out) > 0 && equal(out[len(out)-1].Version, v.Version) {
			continue
		}
		out = append(out, v)
	}
	return ePackage[K, V]{name: b.Name, versions: out}
}

// UnknownPackageError reports that a requirement named a package the
// builder never saw added.
type UnknownPackageError[K comparable] struct {
	Source  K
	Version int // 1-indexed position of the offending version within Source, 0 if the requirement was top-level
	Unknown K
}

func (e *UnknownPackageError[K]) Error() string {
	return fmt.Sprintf("depsolve: package %v version %d references unknown package %v", e.Source, e.Version, e.Unknown)
}

// IllformedRequirementError reports that a requirement's SetOf matched no
// version of the package it named at all, making the requirement
// unsatisfiable by construction and almost certainly a metadata bug
// rather than an intended always-false constraint.
type IllformedRequirementError[K comparable] struct {
	Source  K
	Version int
	Against K
}

func (e *IllformedRequirementError[K]) Error() string {
	return fmt.Sprintf("depsolve: package %v version %d has a requirement against %v matching no known version", e.Source, e.Version, e.Against)
}

// RepositoryBuilder accumulates named packages and their version
// metadata, then Build translates everything to the positional
// PackageID/Version model the resolution core operates over: packages
// are assigned ids in insertion order, each package's versions are
// sorted and deduplicated by the caller-supplied comparator, and every
// requirement's SetOf is converted to canonical Ranges via ToRanges
// against the target package's sorted version list.
type RepositoryBuilder[K comparable, V any] struct {
	order []K
	byKey map[K]*EPackageBuilder[K, V]
}

// NewRepositoryBuilder returns an empty builder.
func NewRepositoryBuilder[K comparable, V any]() *RepositoryBuilder[K, V] {
	return &RepositoryBuilder[K, V]{byKey: map[K]*EPackageBuilder[K, V]{}}
}

// AddPackage registers pkg under its own Name, returning false (and
// leaving the builder unchanged) if that name was already registered.
func (b *RepositoryBuilder[K, V]) AddPackage(pkg *EPackageBuilder[K, V]) bool {
	if _, ok := b.byKey[pkg.Name]; ok {
		return false
	}
	b.byKey[pkg.Name] = pkg
	b.order = append(b.order, pkg.Name)
	return true
}

// Index is returned alongside a built model.Repository: the package-name
// -> PackageID assignment plus each package's sorted, deduplicated
// version tag list, so a caller can also range-convert and resolve
// requirements that aren't owned by any package version (a top-level
// requirement set) after the fact, via ResolveRequirement.
type Index[K comparable, V any] struct {
	ids      map[K]model.PackageID
	versions map[K][]V
}

// ResolveRequirement converts a not-yet-translated requirement into a
// model.Requirement against this Index's package/version assignment,
// exactly like a package-owned requirement is translated during Build.
func (idx *Index[K, V]) ResolveRequirement(req ERequirement[K, V]) (model.Requirement, error) {
	pid, ok := idx.ids[req.Package]
	if !ok {
		return model.Requirement{}, &UnknownPackageError[K]{Unknown: req.Package}
	}
	ranges := ToRanges(req.Versions, idx.versions[req.Package])
	if len(ranges) == 0 {
		return model.Requirement{}, &IllformedRequirementError[K]{Against: req.Package}
	}
	return model.NewRequirement(pid, ranges), nil
}

// PackageID looks up a registered package's assigned id.
func (idx *Index[K, V]) PackageID(name K) (model.PackageID, bool) {
	pid, ok := idx.ids[name]
	return pid, ok
}

// Build translates every registered package into a model.Repository.
// less/equal order and deduplicate a single package's version tags;
// requirements are resolved and range-converted against the target
// package's own sorted version list. Returns UnknownPackageError if a
// requirement names a package never added to the builder, or
// IllformedRequirementError if a requirement's SetOf matches none of the
// target package's versions.
func (b *RepositoryBuilder[K, V]) Build(less func(a, b V) bool, equal func(a, b V) bool) (*model.Repository, *Index[K, V], error) {
	built := make(map[K]ePackage[K, V], len(b.order))
	ids := make(map[K]model.PackageID, len(b.order))
	for i, name := range b.order {
		built[name] = b.byKey[name].build(less, equal)
		ids[name] = model.PackageID(i)
	}

	pkgs := make([]model.Package, len(b.order))
	for i, name := range b.order {
		ep := built[name]

		translated := make([]model.PackageVer, len(ep.versions))
		for vIdx, ev := range ep.versions {
			var rs model.RequirementSet
			for _, dep := range ev.Dependencies {
				req, err := translateRequirement(dep, built, ids, name, vIdx+1)
				if err != nil {
					return nil, nil, err
				}
				rs.AddDependency(req)
			}
			for _, anti := range ev.Conflicts {
				req, err := translateRequirement(anti, built, ids, name, vIdx+1)
				if err != nil {
					return nil, nil, err
				}
				rs.AddConflict(req)
			}
			translated[vIdx] = model.PackageVer{Requirements: rs}
		}

		pkgs[i] = model.Package{ID: model.PackageID(i), Versions: translated}
	}

	versionsByName := make(map[K][]V, len(b.order))
	for _, name := range b.order {
		ep := built[name]
		tags := make([]V, len(ep.versions))
		for j, v := range ep.versions {
			tags[j] = v.Version
		}
		versionsByName[name] = tags
	}

	return &model.Repository{Packages: pkgs}, &Index[K, V]{ids: ids, versions: versionsByName}, nil
}

func translateRequirement[K comparable, V any](
	req ERequirement[K, V],
	built map[K]ePackage[K, V],
	ids map[K]model.PackageID,
	sourceName K,
	sourceVersion int,
) (model.Requirement, error) {
	target, ok := built[req.Package]
	if !ok {
		return model.Requirement{}, &UnknownPackageError[K]{Source: sourceName, Version: sourceVersion, Unknown: req.Package}
	}
	targetVersions := make([]V, len(target.versions))
	for i, v := range target.versions {
		targetVersions[i] = v.Version
	}
	ranges := ToRanges(req.Versions, targetVersions)
	if len(ranges) == 0 {
		return model.Requirement{}, &IllformedRequirementError[K]{Source: sourceName, Version: sourceVersion, Against: req.Package}
	}
	return model.NewRequirement(ids[req.Package], ranges), nil
}

// errbuilderUnknown wraps either typed error above in
// the teacher's structured-error idiom for callers (cmd/depsolve) that
// surface a CLI exit code/message from an errbuilder-go error rather than
// a bare Go error.
func errbuilderUnknown(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("repository build failed").
		WithCause(err)
}

// WrapBuildError adapts a RepositoryBuilder.Build error into an
// errbuilder-go error carrying the same CodeInvalidArgument every other
// malformed-input path in this module reports.
func WrapBuildError(err error) error {
	if err == nil {
		return nil
	}
	return errbuilderUnknown(err)
}
