package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntervalOrdering(t *testing.T) {
	r, ok := Interval(3, 1)
	require.False(t, ok)
	require.Equal(t, Range{}, r)

	r, ok = Interval(2, 2)
	require.True(t, ok)
	require.Equal(t, Pt(2), r)

	r, ok = Interval(1, 4)
	require.True(t, ok)
	require.Equal(t, Range{Kind: RangeInterval, Lower: 1, Upper: 4}, r)
}

func TestNewRequirementPanicsOnEmptyVersions(t *testing.T) {
	require.Panics(t, func() {
		NewRequirement(0, nil)
	})
}

func TestPackageVersionAtBounds(t *testing.T) {
	pkg := Package{ID: 0, Versions: []PackageVer{{}, {}}}
	require.Equal(t, Version(2), pkg.NewestVersionNumber())
	require.NotPanics(t, func() { pkg.VersionAt(1) })
	require.Panics(t, func() { pkg.VersionAt(0) })
	require.Panics(t, func() { pkg.VersionAt(3) })
}

func TestRepositoryGetPackage(t *testing.T) {
	repo := &Repository{Packages: []Package{{ID: 0}, {ID: 1}}}
	_, ok := repo.GetPackage(5)
	require.False(t, ok)
	p, ok := repo.GetPackage(1)
	require.True(t, ok)
	require.Equal(t, PackageID(1), p.ID)
}

func TestPlanVersionOf(t *testing.T) {
	plan := Plan{{Package: 0, Version: 2}, {Package: 1, Version: 0}}
	v, ok := plan.VersionOf(0)
	require.True(t, ok)
	require.Equal(t, Version(2), v)

	_, ok = plan.VersionOf(9)
	require.False(t, ok)
}

func TestConstraintSetSplitsToplevelVsPackageOwned(t *testing.T) {
	cs := NewConstraintSet()
	top := NewRequirement(0, []Range{Pt(1)})
	owned := NewRequirement(1, []Range{Pt(2)})

	cs.AddDependency(0, 0, top)
	cs.AddConflict(2, 3, owned)

	require.Len(t, cs.ToplevelReqs.Dependencies, 1)
	require.Len(t, cs.PackageReqs[2][3].Conflicts, 1)
}
