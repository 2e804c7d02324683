package unsatcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/model"
	"depsolve/internal/symbolic"
)

func testRepo() *model.Repository {
	p0 := model.Package{ID: 0, Versions: make([]model.PackageVer, 3)}
	p1 := model.Package{ID: 1, Versions: make([]model.PackageVer, 5)}
	return &model.Repository{Packages: []model.Package{p0, p1}}
}

func TestDecodeBareVerEqIsTopLevelDependency(t *testing.T) {
	a := symbolic.NewArena()
	atom := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 3})

	cs := Decode(a, testRepo(), []symbolic.Ref{atom})
	require.Len(t, cs.ToplevelReqs.Dependencies, 1)
	require.Equal(t, model.NewRequirement(0, []model.Range{model.Pt(3)}), cs.ToplevelReqs.Dependencies[0])
}

func TestDecodeBareVerEqZeroIsTopLevelConflictAgainstInstalled(t *testing.T) {
	a := symbolic.NewArena()
	atom := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 0})

	cs := Decode(a, testRepo(), []symbolic.Ref{atom})
	require.Len(t, cs.ToplevelReqs.Conflicts, 1)
	require.Equal(t, model.NewRequirement(0, []model.Range{model.All()}), cs.ToplevelReqs.Conflicts[0])
}

func TestDecodeNegatedVerEqIsTopLevelConflict(t *testing.T) {
	a := symbolic.NewArena()
	atom := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 2})
	notExpr := a.Not(atom)

	cs := Decode(a, testRepo(), []symbolic.Ref{notExpr})
	require.Len(t, cs.ToplevelReqs.Conflicts, 1)
	require.Equal(t, model.NewRequirement(0, []model.Range{model.Pt(2)}), cs.ToplevelReqs.Conflicts[0])
}

func TestDecodeAndPairIsTopLevelIntervalDependency(t *testing.T) {
	a := symbolic.NewArena()
	ge := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerGE, Package: 0, Version: 2})
	le := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerLE, Package: 0, Version: 4})
	andRef := a.And(ge, le)

	cs := Decode(a, testRepo(), []symbolic.Ref{andRef})
	require.Len(t, cs.ToplevelReqs.Dependencies, 1)
	rg, ok := model.Interval(2, 4)
	require.True(t, ok)
	require.Equal(t, model.NewRequirement(0, []model.Range{rg}), cs.ToplevelReqs.Dependencies[0])
}

func TestDecodeOrPairUnionsPointRanges(t *testing.T) {
	a := symbolic.NewArena()
	v1 := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 1})
	v3 := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 3})
	orRef := a.Or(v1, v3)

	cs := Decode(a, testRepo(), []symbolic.Ref{orRef})
	require.Len(t, cs.ToplevelReqs.Dependencies, 1)
	require.ElementsMatch(t, []model.Range{model.Pt(1), model.Pt(3)}, cs.ToplevelReqs.Dependencies[0].Versions)
}

func TestDecodeImpliesIsPerVersionDependency(t *testing.T) {
	a := symbolic.NewArena()
	lhs := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 2})
	rhs := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 1, Version: 1})
	implExpr := a.Implies(lhs, rhs)

	cs := Decode(a, testRepo(), []symbolic.Ref{implExpr})
	rs, ok := cs.PackageReqs[0][2]
	require.True(t, ok)
	require.Len(t, rs.Dependencies, 1)
	require.Equal(t, model.NewRequirement(1, []model.Range{model.Pt(1)}), rs.Dependencies[0])
	require.Empty(t, rs.Conflicts)
}

func TestDecodeImpliesWithNegatedConsequentIsPerVersionConflict(t *testing.T) {
	a := symbolic.NewArena()
	lhs := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 2})
	target := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 1, Version: 5})
	rhs := a.Not(target)
	implExpr := a.Implies(lhs, rhs)

	cs := Decode(a, testRepo(), []symbolic.Ref{implExpr})
	rs, ok := cs.PackageReqs[0][2]
	require.True(t, ok)
	require.Len(t, rs.Conflicts, 1)
	require.Equal(t, model.NewRequirement(1, []model.Range{model.Pt(5)}), rs.Conflicts[0])
	require.Empty(t, rs.Dependencies)
}

func TestDecodeImpliesForcingUninstallIsPerVersionConflict(t *testing.T) {
	a := symbolic.NewArena()
	lhs := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 0, Version: 2})
	rhs := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerEq, Package: 1, Version: 0})
	implExpr := a.Implies(lhs, rhs)

	cs := Decode(a, testRepo(), []symbolic.Ref{implExpr})
	rs, ok := cs.PackageReqs[0][2]
	require.True(t, ok)
	require.Len(t, rs.Conflicts, 1)
	require.Equal(t, model.NewRequirement(1, []model.Range{model.All()}), rs.Conflicts[0])
}

func TestDecodeGroundUpperBoundMismatchPanics(t *testing.T) {
	a := symbolic.NewArena()
	// Package 0 has 3 versions; asserting its ground upper bound at 2 is
	// not the package's own bound and must panic.
	atom := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerLE, Package: 0, Version: 2})

	require.Panics(t, func() {
		Decode(a, testRepo(), []symbolic.Ref{atom})
	})
}

func TestDecodeGroundLowerBoundNonZeroPanics(t *testing.T) {
	a := symbolic.NewArena()
	atom := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerGE, Package: 0, Version: 1})

	require.Panics(t, func() {
		Decode(a, testRepo(), []symbolic.Ref{atom})
	})
}

func TestDecodeGroundBoundsMatchingPackageDoNotPanic(t *testing.T) {
	a := symbolic.NewArena()
	le := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerLE, Package: 0, Version: 3})
	ge := a.AtomExpr(symbolic.AtomicExpr{Kind: symbolic.VerGE, Package: 0, Version: 0})

	cs := Decode(a, testRepo(), []symbolic.Ref{le, ge})
	require.Empty(t, cs.ToplevelReqs.Dependencies)
	require.Empty(t, cs.ToplevelReqs.Conflicts)
}
